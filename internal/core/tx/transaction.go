package tx

import (
	"encoding/hex"
	"errors"
)

// Common errors
var (
	ErrMissingRequiredField   = errors.New("missing required field")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidAccount         = errors.New("invalid account")
)

// AccountID is a 20-byte account identifier. Externally-owned accounts are
// supplied by the harness; pool accounts are derived from token pairs and
// have no corresponding key.
type AccountID [20]byte

// String returns the hex encoding of the account ID
func (a AccountID) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero returns true if the account ID is all zeroes
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

// DecodeAccountID decodes a 40-character hex string into an AccountID
func DecodeAccountID(s string) (AccountID, error) {
	var id AccountID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, ErrInvalidAccount
	}
	if len(raw) != len(id) {
		return id, ErrInvalidAccount
	}
	copy(id[:], raw)
	return id, nil
}

// EncodeAccountID encodes an AccountID as a hex string
func EncodeAccountID(id AccountID) string {
	return id.String()
}

// Transaction is the interface that all transaction types must implement
type Transaction interface {
	// TxType returns the transaction type
	TxType() Type

	// GetCommon returns the common transaction fields
	GetCommon() *Common

	// Validate checks if the transaction is valid
	Validate() error

	// Flatten returns a flat map of all transaction fields for serialization
	Flatten() (map[string]any, error)

	// GetRawBytes returns the original serialized bytes (for hash computation)
	// Returns nil if transaction was not parsed from bytes
	GetRawBytes() []byte

	// SetRawBytes stores the original serialized bytes
	SetRawBytes([]byte)
}

// Appliable is implemented by transaction types that can apply themselves
// to ledger state. This replaces a central switch statement in the engine.
type Appliable interface {
	Apply(ctx *ApplyContext) Result
}

// Memo represents a memo attached to a transaction
type Memo struct {
	MemoType string `json:"MemoType,omitempty"`
	MemoData string `json:"MemoData,omitempty"`
}

// MemoWrapper wraps a Memo for JSON serialization
type MemoWrapper struct {
	Memo Memo `json:"Memo"`
}

// Common contains fields common to all transaction types
type Common struct {
	// Account is the authenticated sender, hex encoded.
	// The harness authenticates it before submission; the engine only
	// compares identities.
	Account         string `json:"Account"`
	TransactionType string `json:"TransactionType"`

	// Optional common fields
	Memos []MemoWrapper `json:"Memos,omitempty"`

	// RawBytes stores the original serialized bytes for hash computation
	RawBytes []byte `json:"-"`
}

// Validate validates the common fields
func (c *Common) Validate() error {
	if c.Account == "" {
		return errors.New("Account is required")
	}
	if _, err := DecodeAccountID(c.Account); err != nil {
		return err
	}
	if c.TransactionType == "" {
		return errors.New("TransactionType is required")
	}
	return nil
}

// GetRawBytes returns the original serialized bytes
func (c *Common) GetRawBytes() []byte {
	return c.RawBytes
}

// SetRawBytes stores the original serialized bytes
func (c *Common) SetRawBytes(data []byte) {
	c.RawBytes = data
}

// AddMemo adds a memo to the transaction
func (c *Common) AddMemo(memoType, memoData string) {
	c.Memos = append(c.Memos, MemoWrapper{
		Memo: Memo{
			MemoType: memoType,
			MemoData: memoData,
		},
	})
}

// ToMap converts common fields to a map
func (c *Common) ToMap() map[string]any {
	m := map[string]any{
		"Account":         c.Account,
		"TransactionType": c.TransactionType,
	}
	if len(c.Memos) > 0 {
		m["Memos"] = c.Memos
	}
	return m
}

// BaseTx provides a base implementation for transactions
type BaseTx struct {
	Common
	txType Type
}

// TxType returns the transaction type
func (b *BaseTx) TxType() Type {
	return b.txType
}

// GetCommon returns the common transaction fields
func (b *BaseTx) GetCommon() *Common {
	return &b.Common
}

// Validate validates the base transaction
func (b *BaseTx) Validate() error {
	return b.Common.Validate()
}

// Flatten returns a flat map of transaction fields
func (b *BaseTx) Flatten() (map[string]any, error) {
	return b.Common.ToMap(), nil
}

// SenderID returns the decoded sender account
func (b *BaseTx) SenderID() (AccountID, error) {
	return DecodeAccountID(b.Account)
}

// NewBaseTx creates a new base transaction
func NewBaseTx(txType Type, account string) *BaseTx {
	return &BaseTx{
		Common: Common{
			Account:         account,
			TransactionType: txType.String(),
		},
		txType: txType,
	}
}
