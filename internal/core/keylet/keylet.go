package keylet

import (
	"encoding/binary"

	"github.com/provedex/goswapd/internal/crypto"
)

// Space identifiers for keylet generation. Each ledger entry family hashes
// under its own namespace so keys from different families never collide.
const (
	spaceBalance   uint16 = 'b' // per-(token, account) balance
	spaceSupply    uint16 = 's' // per-token total supply
	spacePool      uint16 = 'p' // pool registry entry
	spaceLPToken   uint16 = 'l' // liquidity share token id derivation
	spaceAdmin     uint16 = 'g' // admin singleton
	spaceFeeSwitch uint16 = 'w' // swap fee switch singleton
)

// Kind identifies the ledger entry family a keylet addresses.
type Kind uint8

const (
	KindBalance Kind = iota
	KindSupply
	KindPool
	KindAdmin
	KindFeeSwitch
)

// String returns the entry family name.
func (k Kind) String() string {
	switch k {
	case KindBalance:
		return "Balance"
	case KindSupply:
		return "Supply"
	case KindPool:
		return "Pool"
	case KindAdmin:
		return "Admin"
	case KindFeeSwitch:
		return "FeeSwitch"
	default:
		return "Unknown"
	}
}

// Keylet represents an addressable location in the ledger state.
// It combines an entry family with a 256-bit key.
type Keylet struct {
	Kind Kind
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)

	return crypto.Sha512Half(inputs...)
}

func u64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// Balance returns the keylet for the balance of account in token.
func Balance(token uint64, account [20]byte) Keylet {
	return Keylet{
		Kind: KindBalance,
		Key:  indexHash(spaceBalance, u64Bytes(token), account[:]),
	}
}

// Supply returns the keylet for the total supply of token.
func Supply(token uint64) Keylet {
	return Keylet{
		Kind: KindSupply,
		Key:  indexHash(spaceSupply, u64Bytes(token)),
	}
}

// CanonicalPair orders an unordered token pair into its canonical
// (hi, lo) form so that (a, b) and (b, a) derive identical keys.
func CanonicalPair(tokenA, tokenB uint64) (hi, lo uint64) {
	if tokenA >= tokenB {
		return tokenA, tokenB
	}
	return tokenB, tokenA
}

// Pool returns the keylet for the pool registry entry of an unordered
// token pair.
func Pool(tokenA, tokenB uint64) Keylet {
	hi, lo := CanonicalPair(tokenA, tokenB)
	return Keylet{
		Kind: KindPool,
		Key:  indexHash(spacePool, u64Bytes(hi), u64Bytes(lo)),
	}
}

// PoolAccountID derives the pool's key-less account from the pool keylet.
// The pool account is the first 20 bytes of the 32-byte pool key.
func PoolAccountID(tokenA, tokenB uint64) [20]byte {
	k := Pool(tokenA, tokenB)
	var accountID [20]byte
	copy(accountID[:], k.Key[:20])
	return accountID
}

// LPTokenID derives the liquidity share token id for an unordered token
// pair. The id is the first 8 bytes of a pair hash in the LP namespace
// with the top byte forced, keeping LP ids in the upper id range away
// from operator-assigned token ids.
func LPTokenID(tokenA, tokenB uint64) uint64 {
	hi, lo := CanonicalPair(tokenA, tokenB)
	h := indexHash(spaceLPToken, u64Bytes(hi), u64Bytes(lo))
	h[0] |= 0x80
	return binary.BigEndian.Uint64(h[:8])
}

// Admin returns the keylet for the singleton admin entry.
func Admin() Keylet {
	return Keylet{
		Kind: KindAdmin,
		Key:  indexHash(spaceAdmin),
	}
}

// FeeSwitch returns the keylet for the singleton swap fee switch entry.
func FeeSwitch() Keylet {
	return Keylet{
		Kind: KindFeeSwitch,
		Key:  indexHash(spaceFeeSwitch),
	}
}
