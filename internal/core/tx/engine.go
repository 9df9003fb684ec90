package tx

import (
	"sort"
	"strings"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/crypto"
)

// Engine processes transactions against a ledger. Each transaction is
// applied against a buffering state table; the table is committed to the
// base view only when the transaction succeeds.
type Engine struct {
	view   LedgerView
	config EngineConfig
}

// EngineConfig holds configuration for the transaction engine
type EngineConfig struct {
	// LedgerSequence is the current ledger sequence
	LedgerSequence uint32
}

// LedgerView provides read/write access to ledger state
type LedgerView interface {
	// Read reads a ledger entry. A missing entry yields (nil, nil).
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists
	Exists(k keylet.Keylet) (bool, error)

	// Insert adds a new entry
	Insert(k keylet.Keylet, data []byte) error

	// Update modifies an existing entry
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry
	Erase(k keylet.Keylet) error

	// ForEach iterates over all state entries.
	// If fn returns false, iteration stops early.
	ForEach(fn func(key [32]byte, data []byte) bool) error
}

// ApplyResult contains the result of applying a transaction
type ApplyResult struct {
	// Result is the transaction result code
	Result Result

	// Applied indicates if the transaction left a record in the ledger
	Applied bool

	// TxHash is the transaction hash
	TxHash [32]byte

	// Metadata contains the changes made by the transaction
	Metadata *Metadata

	// Message is a human-readable result message
	Message string
}

// Metadata tracks changes made by a transaction
type Metadata struct {
	// AffectedNodes lists all entries that were created, modified, or deleted
	AffectedNodes []AffectedNode `json:"AffectedNodes"`

	// TransactionIndex is the index in the ledger
	TransactionIndex uint32 `json:"TransactionIndex"`

	// TransactionResult is the result code
	TransactionResult string `json:"TransactionResult"`
}

// AffectedNode describes one created, modified, or deleted ledger entry
type AffectedNode struct {
	NodeType        string `json:"NodeType"`
	LedgerEntryType string `json:"LedgerEntryType"`
	LedgerIndex     string `json:"LedgerIndex"`
}

// NewEngine creates a new transaction engine
func NewEngine(view LedgerView, config EngineConfig) *Engine {
	return &Engine{
		view:   view,
		config: config,
	}
}

// Hash computes the hash of a transaction. The hash is SHA512Half of the
// "TXN\x00" prefix plus the serialized transaction.
func Hash(tx Transaction) ([32]byte, error) {
	var txBytes []byte

	// Use raw bytes if available (from parsing), otherwise re-serialize
	if rawBytes := tx.GetRawBytes(); len(rawBytes) > 0 {
		txBytes = rawBytes
	} else {
		serialized, err := ToJSON(tx)
		if err != nil {
			return [32]byte{}, err
		}
		txBytes = serialized
	}

	prefix := []byte{0x54, 0x58, 0x4E, 0x00}
	return crypto.Sha512Half(prefix, txBytes), nil
}

// Apply processes a transaction. Preflight rejections (tem codes) leave
// no trace in the ledger; tec rejections are recorded as the
// transaction's outcome but apply no state change; tesSUCCESS commits
// every buffered write at once.
func (e *Engine) Apply(tx Transaction) ApplyResult {
	// Step 1: Preflight checks (syntax validation)
	result := e.preflight(tx)
	if !result.IsSuccess() {
		return ApplyResult{
			Result:  result,
			Applied: false,
			Message: result.Message(),
		}
	}

	// Step 2: Compute transaction hash
	txHash, err := Hash(tx)
	if err != nil {
		return ApplyResult{
			Result:  TefINTERNAL,
			Applied: false,
			Message: "failed to compute transaction hash: " + err.Error(),
		}
	}

	// Step 3: Apply against a buffering table
	metadata := &Metadata{
		AffectedNodes:     make([]AffectedNode, 0),
		TransactionResult: TesSUCCESS.String(),
	}

	table := NewApplyStateTable(e.view)

	accountID, err := DecodeAccountID(tx.GetCommon().Account)
	if err != nil {
		return ApplyResult{
			Result:  TemBAD_ACCOUNT,
			Applied: false,
			TxHash:  txHash,
			Message: TemBAD_ACCOUNT.Message(),
		}
	}

	ctx := &ApplyContext{
		View:      table,
		AccountID: accountID,
		Config:    e.config,
		TxHash:    txHash,
		Metadata:  metadata,
	}

	if appliable, ok := tx.(Appliable); ok {
		result = appliable.Apply(ctx)
	} else {
		result = TefINTERNAL
	}

	metadata.TransactionResult = result.String()

	// Commit buffered writes only on success. A tec outcome is recorded
	// but its pending writes are discarded with the table.
	if result.IsSuccess() {
		generatedMeta, err := table.Apply()
		if err != nil {
			return ApplyResult{
				Result:   TefINTERNAL,
				Applied:  false,
				TxHash:   txHash,
				Metadata: metadata,
				Message:  "failed to apply state changes: " + err.Error(),
			}
		}
		metadata.AffectedNodes = generatedMeta.AffectedNodes
		sortAffectedNodes(metadata.AffectedNodes)
	}

	return ApplyResult{
		Result:   result,
		Applied:  result.IsApplied(),
		TxHash:   txHash,
		Metadata: metadata,
		Message:  result.Message(),
	}
}

// preflight performs initial validation on the transaction
func (e *Engine) preflight(tx Transaction) Result {
	common := tx.GetCommon()

	if common.Account == "" {
		return TemBAD_ACCOUNT
	}
	if _, err := DecodeAccountID(common.Account); err != nil {
		return TemBAD_ACCOUNT
	}
	if common.TransactionType == "" {
		return TemINVALID
	}

	// Transaction-specific validation
	if err := tx.Validate(); err != nil {
		return parseValidationError(err)
	}

	return TesSUCCESS
}

// parseValidationError extracts a result code from a validation error
// message. Validate() implementations include the code as a prefix
// (e.g. "temBAD_AMOUNT: zero amount"); anything else maps to temINVALID.
func parseValidationError(err error) Result {
	msg := err.Error()

	temCodes := map[string]Result{
		"temMALFORMED":    TemMALFORMED,
		"temBAD_AMOUNT":   TemBAD_AMOUNT,
		"temBAD_PATH":     TemBAD_PATH,
		"temINVALID":      TemINVALID,
		"temTOKENS_MATCH": TemTOKENS_MATCH,
		"temZERO_SUPPLY":  TemZERO_SUPPLY,
		"temBAD_ACCOUNT":  TemBAD_ACCOUNT,
		"temBAD_TOKEN":    TemBAD_TOKEN,
	}

	for code, result := range temCodes {
		if strings.HasPrefix(msg, code) {
			if len(msg) == len(code) || msg[len(code)] == ':' || msg[len(code)] == ' ' {
				return result
			}
		}
	}

	return TemINVALID
}

// sortAffectedNodes orders metadata nodes by ledger index so metadata is
// deterministic across runs.
func sortAffectedNodes(nodes []AffectedNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].LedgerIndex < nodes[j].LedgerIndex
	})
}
