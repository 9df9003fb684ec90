package tx

// Type represents a transaction type code
type Type uint16

// All transaction type codes
const (
	TypeInvalid Type = 0xFFFF // Invalid/unknown type

	// Token ledger transaction types
	TypeAdminSet            Type = 0
	TypeAdminMint           Type = 1
	TypeTokenBurn           Type = 2
	TypeTokenTransfer       Type = 3
	TypeTokenTransferSigned Type = 4

	// Pool transaction types
	TypePoolCreate      Type = 10
	TypeLiquidityAdd    Type = 11
	TypeLiquidityRemove Type = 12
	TypeSwapExactIn     Type = 13
	TypeSwapExactOut    Type = 14
	TypeFeeSwitchSet    Type = 15
)

// String returns the string name of the transaction type
func (t Type) String() string {
	switch t {
	case TypeAdminSet:
		return "AdminSet"
	case TypeAdminMint:
		return "AdminMint"
	case TypeTokenBurn:
		return "TokenBurn"
	case TypeTokenTransfer:
		return "TokenTransfer"
	case TypeTokenTransferSigned:
		return "TokenTransferSigned"
	case TypePoolCreate:
		return "PoolCreate"
	case TypeLiquidityAdd:
		return "LiquidityAdd"
	case TypeLiquidityRemove:
		return "LiquidityRemove"
	case TypeSwapExactIn:
		return "SwapExactIn"
	case TypeSwapExactOut:
		return "SwapExactOut"
	case TypeFeeSwitchSet:
		return "FeeSwitchSet"
	default:
		return "Invalid"
	}
}

// TypeFromName returns the transaction type for a given name
func TypeFromName(name string) (Type, bool) {
	switch name {
	case "AdminSet":
		return TypeAdminSet, true
	case "AdminMint":
		return TypeAdminMint, true
	case "TokenBurn":
		return TypeTokenBurn, true
	case "TokenTransfer":
		return TypeTokenTransfer, true
	case "TokenTransferSigned":
		return TypeTokenTransferSigned, true
	case "PoolCreate":
		return TypePoolCreate, true
	case "LiquidityAdd":
		return TypeLiquidityAdd, true
	case "LiquidityRemove":
		return TypeLiquidityRemove, true
	case "SwapExactIn":
		return TypeSwapExactIn, true
	case "SwapExactOut":
		return TypeSwapExactOut, true
	case "FeeSwitchSet":
		return TypeFeeSwitchSet, true
	default:
		return TypeInvalid, false
	}
}
