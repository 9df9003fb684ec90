package tx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResultClassification(t *testing.T) {
	require.True(t, TesSUCCESS.IsSuccess())
	require.True(t, TesSUCCESS.IsApplied())

	require.True(t, TecNOT_ADMIN.IsTec())
	require.True(t, TecNOT_ADMIN.IsApplied())
	require.False(t, TecNOT_ADMIN.IsSuccess())

	require.True(t, TemBAD_PATH.IsTem())
	require.False(t, TemBAD_PATH.IsApplied())

	require.True(t, TefINTERNAL.IsTef())
	require.False(t, TefINTERNAL.IsApplied())
}

func TestResultMessages(t *testing.T) {
	require.Equal(t, "Pool already exists", TecPOOL_EXISTS.Message())
	require.Equal(t, "Sender is not admin", TecNOT_ADMIN.Message())
	require.Equal(t, "Insufficient balance", TecINSUFFICIENT_BALANCE.Message())
	require.Equal(t, "Division by zero", TecDIVISION_BY_ZERO.Message())
	require.Equal(t, "Subtraction underflow", TecSUBTRACTION_UNDERFLOW.Message())
	require.Equal(t, "Insufficient balances", TecZERO_LIQUIDITY.Message())
}

func TestResultString(t *testing.T) {
	require.Equal(t, "tesSUCCESS", TesSUCCESS.String())
	require.Equal(t, "tecPOOL_EXISTS", TecPOOL_EXISTS.String())
	require.Equal(t, "temTOKENS_MATCH", TemTOKENS_MATCH.String())
	require.Equal(t, "Unknown(42)", Result(42).String())
}
