package tx

import "fmt"

// Result represents a transaction result code
type Result int

// Transaction result codes, organized by category:
// tes (success), tec (applied with failure outcome recorded),
// tef (failure), tem (malformed).
const (
	// tesSUCCESS (0-99)
	TesSUCCESS Result = 0

	// tec codes (100-199)
	// The transaction was processed and its failure outcome is recorded,
	// but no state change beyond the rejection itself is applied.
	TecNOT_ADMIN              Result = 100
	TecPOOL_EXISTS            Result = 101
	TecNO_POOL                Result = 102
	TecINSUFFICIENT_BALANCE   Result = 103
	TecINSUFFICIENT_SUPPLY    Result = 104
	TecINSUFFICIENT_ALLOWANCE Result = 105
	TecINSUFFICIENT_A_AMOUNT  Result = 106
	TecINSUFFICIENT_B_AMOUNT  Result = 107
	TecAMOUNT_OUT_TOO_LOW     Result = 108
	TecAMOUNT_IN_TOO_HIGH     Result = 109
	TecDIVISION_BY_ZERO       Result = 110
	TecSUBTRACTION_UNDERFLOW  Result = 111
	TecSENDER_MISMATCH        Result = 112
	TecZERO_LIQUIDITY         Result = 113

	// tef codes (-199 to -100)
	// The transaction failed and was not applied.
	TefINTERNAL Result = -192

	// tem codes (-299 to -200)
	// Malformed transaction, rejected before application.
	TemMALFORMED    Result = -299
	TemBAD_AMOUNT   Result = -298
	TemBAD_PATH     Result = -291
	TemINVALID      Result = -277
	TemTOKENS_MATCH Result = -262
	TemZERO_SUPPLY  Result = -261
	TemBAD_ACCOUNT  Result = -260
	TemBAD_TOKEN    Result = -259
)

// String returns the string representation of the result code
func (r Result) String() string {
	switch r {
	case TesSUCCESS:
		return "tesSUCCESS"
	case TecNOT_ADMIN:
		return "tecNOT_ADMIN"
	case TecPOOL_EXISTS:
		return "tecPOOL_EXISTS"
	case TecNO_POOL:
		return "tecNO_POOL"
	case TecINSUFFICIENT_BALANCE:
		return "tecINSUFFICIENT_BALANCE"
	case TecINSUFFICIENT_SUPPLY:
		return "tecINSUFFICIENT_SUPPLY"
	case TecINSUFFICIENT_ALLOWANCE:
		return "tecINSUFFICIENT_ALLOWANCE"
	case TecINSUFFICIENT_A_AMOUNT:
		return "tecINSUFFICIENT_A_AMOUNT"
	case TecINSUFFICIENT_B_AMOUNT:
		return "tecINSUFFICIENT_B_AMOUNT"
	case TecAMOUNT_OUT_TOO_LOW:
		return "tecAMOUNT_OUT_TOO_LOW"
	case TecAMOUNT_IN_TOO_HIGH:
		return "tecAMOUNT_IN_TOO_HIGH"
	case TecDIVISION_BY_ZERO:
		return "tecDIVISION_BY_ZERO"
	case TecSUBTRACTION_UNDERFLOW:
		return "tecSUBTRACTION_UNDERFLOW"
	case TecSENDER_MISMATCH:
		return "tecSENDER_MISMATCH"
	case TecZERO_LIQUIDITY:
		return "tecZERO_LIQUIDITY"
	case TefINTERNAL:
		return "tefINTERNAL"
	case TemMALFORMED:
		return "temMALFORMED"
	case TemBAD_AMOUNT:
		return "temBAD_AMOUNT"
	case TemBAD_PATH:
		return "temBAD_PATH"
	case TemINVALID:
		return "temINVALID"
	case TemTOKENS_MATCH:
		return "temTOKENS_MATCH"
	case TemZERO_SUPPLY:
		return "temZERO_SUPPLY"
	case TemBAD_ACCOUNT:
		return "temBAD_ACCOUNT"
	case TemBAD_TOKEN:
		return "temBAD_TOKEN"
	default:
		return fmt.Sprintf("Unknown(%d)", r)
	}
}

// Message returns a human-readable message for the result
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The transaction was applied."
	case TecNOT_ADMIN:
		return "Sender is not admin"
	case TecPOOL_EXISTS:
		return "Pool already exists"
	case TecNO_POOL:
		return "Pool does not exist"
	case TecINSUFFICIENT_BALANCE:
		return "Insufficient balance"
	case TecINSUFFICIENT_SUPPLY:
		return "Insufficient supply"
	case TecINSUFFICIENT_ALLOWANCE:
		return "Insufficient allowance"
	case TecINSUFFICIENT_A_AMOUNT:
		return "Insufficient A amount"
	case TecINSUFFICIENT_B_AMOUNT:
		return "Insufficient B amount"
	case TecAMOUNT_OUT_TOO_LOW:
		return "Amount out too low"
	case TecAMOUNT_IN_TOO_HIGH:
		return "Amount in too high"
	case TecDIVISION_BY_ZERO:
		return "Division by zero"
	case TecSUBTRACTION_UNDERFLOW:
		return "Subtraction underflow"
	case TecSENDER_MISMATCH:
		return "Sender does not match from account"
	case TecZERO_LIQUIDITY:
		return "Insufficient balances"
	case TefINTERNAL:
		return "Internal error."
	case TemMALFORMED:
		return "The transaction is malformed."
	case TemBAD_AMOUNT:
		return "Can only use positive amounts."
	case TemBAD_PATH:
		return "Swap path is invalid."
	case TemINVALID:
		return "The transaction is ill-formed."
	case TemTOKENS_MATCH:
		return "Tokens match"
	case TemZERO_SUPPLY:
		return "Zero initial supply"
	case TemBAD_ACCOUNT:
		return "Invalid account identifier."
	case TemBAD_TOKEN:
		return "Invalid token identifier."
	default:
		return r.String()
	}
}

// IsSuccess returns true if the result indicates success
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec (recorded failure) code
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTef returns true if this is a tef (failure) code
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTem returns true if this is a tem (malformed) code
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// IsApplied returns true if the transaction left a record in the ledger.
// True for tesSUCCESS and all tec codes.
func (r Result) IsApplied() bool {
	return r.IsSuccess() || r.IsTec()
}
