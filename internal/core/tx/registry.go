package tx

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownTransactionType is returned when a transaction type is unknown
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// factories maps transaction types to their constructors. Transactor
// packages register themselves in init(); the engine never switches on
// the type itself.
var factories = map[Type]func() Transaction{}

// Register registers a transaction factory for a type. It panics on
// duplicate registration since that is always a programming error.
func Register(txType Type, factory func() Transaction) {
	if _, exists := factories[txType]; exists {
		panic(fmt.Sprintf("transaction type %s registered twice", txType))
	}
	factories[txType] = factory
}

// NewFromType creates a new transaction of the given type
func NewFromType(txType Type) (Transaction, error) {
	factory, ok := factories[txType]
	if !ok {
		return nil, ErrUnknownTransactionType
	}
	return factory(), nil
}

// FromJSON creates a Transaction from a JSON object
func FromJSON(data []byte) (Transaction, error) {
	// First, unmarshal to get the TransactionType
	var raw struct {
		TransactionType string `json:"TransactionType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	txType, ok := TypeFromName(raw.TransactionType)
	if !ok {
		return nil, ErrUnknownTransactionType
	}

	tx, err := NewFromType(txType)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, tx); err != nil {
		return nil, err
	}

	tx.SetRawBytes(data)
	return tx, nil
}

// ToJSON converts a Transaction to JSON
func ToJSON(tx Transaction) ([]byte, error) {
	flat, err := tx.Flatten()
	if err != nil {
		return nil, err
	}
	return json.Marshal(flat)
}

// SupportedTypes returns all registered transaction types
func SupportedTypes() []Type {
	types := make([]Type, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	return types
}
