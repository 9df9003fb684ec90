package tx

import (
	"encoding/binary"

	"github.com/provedex/goswapd/internal/core/keylet"
)

// Ledger entry codecs and the balance/supply primitives shared by all
// transactors. Entries are fixed-width big-endian encodings:
//
//	Balance    8 bytes  uint64 amount
//	Supply     8 bytes  uint64 amount
//	Pool      24 bytes  tokenHi, tokenLo, lpToken
//	Admin     20 bytes  account ID
//	FeeSwitch  1 byte   0x00 disabled, 0x01 enabled
//
// Balance and supply entries are sparse: a missing entry reads as zero
// and an entry written to zero is erased.

// PoolEntry is the decoded pool registry entry
type PoolEntry struct {
	TokenHi uint64
	TokenLo uint64
	LPToken uint64
}

func encodeU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func decodeU64(data []byte) uint64 {
	if len(data) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data[:8])
}

// EncodePoolEntry encodes a pool registry entry
func EncodePoolEntry(p PoolEntry) []byte {
	b := make([]byte, 24)
	binary.BigEndian.PutUint64(b[0:8], p.TokenHi)
	binary.BigEndian.PutUint64(b[8:16], p.TokenLo)
	binary.BigEndian.PutUint64(b[16:24], p.LPToken)
	return b
}

// DecodePoolEntry decodes a pool registry entry
func DecodePoolEntry(data []byte) (PoolEntry, bool) {
	if len(data) != 24 {
		return PoolEntry{}, false
	}
	return PoolEntry{
		TokenHi: binary.BigEndian.Uint64(data[0:8]),
		TokenLo: binary.BigEndian.Uint64(data[8:16]),
		LPToken: binary.BigEndian.Uint64(data[16:24]),
	}, true
}

// GetBalance returns the balance of account in token. A missing entry
// is a zero balance, never an error.
func GetBalance(v LedgerView, token uint64, account AccountID) (uint64, Result) {
	data, err := v.Read(keylet.Balance(token, account))
	if err != nil {
		return 0, TefINTERNAL
	}
	if data == nil {
		return 0, TesSUCCESS
	}
	return decodeU64(data), TesSUCCESS
}

// GetSupply returns the total supply of token. A missing entry is a
// zero supply.
func GetSupply(v LedgerView, token uint64) (uint64, Result) {
	data, err := v.Read(keylet.Supply(token))
	if err != nil {
		return 0, TefINTERNAL
	}
	if data == nil {
		return 0, TesSUCCESS
	}
	return decodeU64(data), TesSUCCESS
}

// setEntryU64 writes value under k, keeping the sparse-map convention:
// zero values erase the entry instead of storing an explicit zero.
func setEntryU64(v LedgerView, k keylet.Keylet, value uint64) Result {
	exists, err := v.Exists(k)
	if err != nil {
		return TefINTERNAL
	}

	if value == 0 {
		if exists {
			if err := v.Erase(k); err != nil {
				return TefINTERNAL
			}
		}
		return TesSUCCESS
	}

	if exists {
		if err := v.Update(k, encodeU64(value)); err != nil {
			return TefINTERNAL
		}
	} else {
		if err := v.Insert(k, encodeU64(value)); err != nil {
			return TefINTERNAL
		}
	}
	return TesSUCCESS
}

func setBalance(v LedgerView, token uint64, account AccountID, value uint64) Result {
	return setEntryU64(v, keylet.Balance(token, account), value)
}

func setSupply(v LedgerView, token uint64, value uint64) Result {
	return setEntryU64(v, keylet.Supply(token), value)
}

// Transfer moves amount of token from one account to another. Supply is
// unchanged. Fails with tecINSUFFICIENT_BALANCE when from lacks funds.
// A self-transfer checks the balance and leaves the ledger untouched.
func Transfer(v LedgerView, token uint64, from, to AccountID, amount uint64) Result {
	fromBalance, res := GetBalance(v, token, from)
	if !res.IsSuccess() {
		return res
	}
	if fromBalance < amount {
		return TecINSUFFICIENT_BALANCE
	}
	if from == to {
		return TesSUCCESS
	}

	toBalance, res := GetBalance(v, token, to)
	if !res.IsSuccess() {
		return res
	}

	newFrom, res := SafeSub(fromBalance, amount)
	if !res.IsSuccess() {
		return res
	}

	if res := setBalance(v, token, from, newFrom); !res.IsSuccess() {
		return res
	}
	return setBalance(v, token, to, toBalance+amount)
}

// Mint credits amount of token to account and grows the total supply.
func Mint(v LedgerView, token uint64, account AccountID, amount uint64) Result {
	balance, res := GetBalance(v, token, account)
	if !res.IsSuccess() {
		return res
	}
	supply, res := GetSupply(v, token)
	if !res.IsSuccess() {
		return res
	}

	if res := setBalance(v, token, account, balance+amount); !res.IsSuccess() {
		return res
	}
	return setSupply(v, token, supply+amount)
}

// Burn debits amount of token from account and shrinks the total supply.
// Fails with tecINSUFFICIENT_BALANCE or tecINSUFFICIENT_SUPPLY when
// either side lacks the amount.
func Burn(v LedgerView, token uint64, account AccountID, amount uint64) Result {
	balance, res := GetBalance(v, token, account)
	if !res.IsSuccess() {
		return res
	}
	if balance < amount {
		return TecINSUFFICIENT_BALANCE
	}

	supply, res := GetSupply(v, token)
	if !res.IsSuccess() {
		return res
	}
	if supply < amount {
		return TecINSUFFICIENT_SUPPLY
	}

	newBalance, res := SafeSub(balance, amount)
	if !res.IsSuccess() {
		return res
	}
	newSupply, res := SafeSub(supply, amount)
	if !res.IsSuccess() {
		return res
	}

	if res := setBalance(v, token, account, newBalance); !res.IsSuccess() {
		return res
	}
	return setSupply(v, token, newSupply)
}

// GetAdmin returns the current admin account and whether one is set.
func GetAdmin(v LedgerView) (AccountID, bool, Result) {
	var admin AccountID
	data, err := v.Read(keylet.Admin())
	if err != nil {
		return admin, false, TefINTERNAL
	}
	if data == nil || len(data) != len(admin) {
		return admin, false, TesSUCCESS
	}
	copy(admin[:], data)
	return admin, true, TesSUCCESS
}

// AssertSenderAdmin fails with tecNOT_ADMIN unless an admin is set and
// the sender is it. An unset admin authorizes nobody.
func AssertSenderAdmin(v LedgerView, sender AccountID) Result {
	admin, isSet, res := GetAdmin(v)
	if !res.IsSuccess() {
		return res
	}
	if !isSet || admin != sender {
		return TecNOT_ADMIN
	}
	return TesSUCCESS
}

// SetAdmin writes the admin entry
func SetAdmin(v LedgerView, admin AccountID) Result {
	k := keylet.Admin()
	exists, err := v.Exists(k)
	if err != nil {
		return TefINTERNAL
	}
	if exists {
		if err := v.Update(k, admin[:]); err != nil {
			return TefINTERNAL
		}
	} else {
		if err := v.Insert(k, admin[:]); err != nil {
			return TefINTERNAL
		}
	}
	return TesSUCCESS
}

// PoolExists reports whether a pool is registered for the unordered pair.
func PoolExists(v LedgerView, tokenA, tokenB uint64) (bool, Result) {
	exists, err := v.Exists(keylet.Pool(tokenA, tokenB))
	if err != nil {
		return false, TefINTERNAL
	}
	return exists, TesSUCCESS
}

// RegisterPool inserts the pool registry entry for the unordered pair.
func RegisterPool(v LedgerView, tokenA, tokenB uint64) Result {
	hi, lo := keylet.CanonicalPair(tokenA, tokenB)
	entry := PoolEntry{
		TokenHi: hi,
		TokenLo: lo,
		LPToken: keylet.LPTokenID(tokenA, tokenB),
	}
	if err := v.Insert(keylet.Pool(tokenA, tokenB), EncodePoolEntry(entry)); err != nil {
		return TefINTERNAL
	}
	return TesSUCCESS
}

// SwapFeeEnabled reports whether the global swap fee switch is on.
// A missing entry means disabled, the genesis state.
func SwapFeeEnabled(v LedgerView) (bool, Result) {
	data, err := v.Read(keylet.FeeSwitch())
	if err != nil {
		return false, TefINTERNAL
	}
	return len(data) == 1 && data[0] == 1, TesSUCCESS
}

// SetSwapFee writes the fee switch entry
func SetSwapFee(v LedgerView, enabled bool) Result {
	k := keylet.FeeSwitch()
	value := []byte{0}
	if enabled {
		value[0] = 1
	}

	exists, err := v.Exists(k)
	if err != nil {
		return TefINTERNAL
	}
	if exists {
		if err := v.Update(k, value); err != nil {
			return TefINTERNAL
		}
	} else {
		if err := v.Insert(k, value); err != nil {
			return TefINTERNAL
		}
	}
	return TesSUCCESS
}
