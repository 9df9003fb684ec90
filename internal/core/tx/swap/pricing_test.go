package swap

import (
	"testing"

	"github.com/provedex/goswapd/internal/core/tx"
	"github.com/stretchr/testify/require"
)

func TestOutGivenIn(t *testing.T) {
	out, res := outGivenIn(100, 1000, 2000, false)
	require.Equal(t, tx.TesSUCCESS, res)
	require.Equal(t, uint64(181), out)

	// Zero reserves with zero input have no price
	_, res = outGivenIn(0, 0, 2000, false)
	require.Equal(t, tx.TecDIVISION_BY_ZERO, res)
}

func TestOutGivenInWithFee(t *testing.T) {
	// Effective input 100*997/1000 = 99; floor(99*2000/1099) = 180
	out, res := outGivenIn(100, 1000, 2000, true)
	require.Equal(t, tx.TesSUCCESS, res)
	require.Equal(t, uint64(180), out)

	feeOut, _ := outGivenIn(100, 1000, 2000, true)
	noFeeOut, _ := outGivenIn(100, 1000, 2000, false)
	require.Less(t, feeOut, noFeeOut)
}

func TestInGivenOut(t *testing.T) {
	// floor(1000*181/(2000-181)) + 1 = 100
	in, res := inGivenOut(181, 1000, 2000, false)
	require.Equal(t, tx.TesSUCCESS, res)
	require.Equal(t, uint64(100), in)

	// Desired output must be strictly below the out-side reserve
	_, res = inGivenOut(2000, 1000, 2000, false)
	require.Equal(t, tx.TecDIVISION_BY_ZERO, res)
	_, res = inGivenOut(2001, 1000, 2000, false)
	require.Equal(t, tx.TecDIVISION_BY_ZERO, res)
}

func TestInGivenOutNeverZero(t *testing.T) {
	// A one-unit withdrawal against skewed reserves floors to zero; the
	// rounding unit keeps the trade from being free.
	in, res := inGivenOut(1, 1000, 2000, false)
	require.Equal(t, tx.TesSUCCESS, res)
	require.Equal(t, uint64(1), in)

	in, res = inGivenOut(1, 1, 1000000, false)
	require.Equal(t, tx.TesSUCCESS, res)
	require.Equal(t, uint64(1), in)
}

func TestInGivenOutWithFee(t *testing.T) {
	// No fee: floor(1000*1000/1000) + 1 = 1001; with fee the quotient is
	// grossed up by 1000/997 first: floor(1000000/997) + 1 = 1004.
	noFee, _ := inGivenOut(1000, 1000, 2000, false)
	withFee, res := inGivenOut(1000, 1000, 2000, true)
	require.Equal(t, tx.TesSUCCESS, res)
	require.Equal(t, uint64(1001), noFee)
	require.Equal(t, uint64(1004), withFee)
	require.Greater(t, withFee, noFee)
}

func TestValidatePath(t *testing.T) {
	require.True(t, validatePath([]uint64{5, 7}))
	require.True(t, validatePath([]uint64{5, 7, 9, 5}))
	require.True(t, validatePath([]uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))

	require.False(t, validatePath(nil))
	require.False(t, validatePath([]uint64{5}))
	require.False(t, validatePath([]uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}))
	require.False(t, validatePath([]uint64{5, 0}))
	require.False(t, validatePath([]uint64{5, 5}))
	require.False(t, validatePath([]uint64{5, 7, 7}))
}
