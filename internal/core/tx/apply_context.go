package tx

// ApplyContext provides all the state and helpers needed to apply a
// transaction. It is passed to Appliable.Apply() instead of individual
// parameters.
type ApplyContext struct {
	// View provides read/write access to ledger state (the ApplyStateTable)
	View LedgerView

	// AccountID is the decoded, harness-authenticated sender
	AccountID AccountID

	// Config holds engine configuration
	Config EngineConfig

	// TxHash is the hash of the current transaction
	TxHash [32]byte

	// Metadata of the transaction being applied
	Metadata *Metadata
}
