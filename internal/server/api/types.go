package api

import (
	"context"
	"encoding/json"

	"github.com/provedex/goswapd/internal/core/tx"
	"github.com/provedex/goswapd/internal/storage/txhistory"
)

// Backend is what the server needs from the node. The node implements it;
// tests substitute a stub.
type Backend interface {
	// Submit parses and applies a transaction, returning the engine result.
	Submit(rawTx json.RawMessage) (tx.ApplyResult, error)

	// Balance returns the committed balance of a hex account in token.
	Balance(token uint64, account string) (uint64, error)

	// Supply returns the committed total supply of token.
	Supply(token uint64) uint64

	// Pool returns pool details for an unordered pair.
	Pool(tokenA, tokenB uint64) (PoolInfo, bool)

	// Admin returns the hex admin account, if one is set.
	Admin() (string, bool)

	// FeeEnabled reports the swap fee switch state.
	FeeEnabled() bool

	// Tx looks up a transaction in the history index.
	Tx(ctx context.Context, hash string) (txhistory.Record, error)

	// AccountTx returns recent transactions sent by a hex account.
	AccountTx(ctx context.Context, account string, limit int) ([]txhistory.Record, error)

	// Info returns node status.
	Info() ServerInfo
}

// PoolInfo describes one pool's committed state.
type PoolInfo struct {
	TokenHi   uint64 `json:"token_hi"`
	TokenLo   uint64 `json:"token_lo"`
	ReserveHi uint64 `json:"reserve_hi"`
	ReserveLo uint64 `json:"reserve_lo"`
	LPToken   uint64 `json:"lp_token"`
	LPSupply  uint64 `json:"lp_supply"`
	Account   string `json:"account"`
}

// ServerInfo is the server_info result.
type ServerInfo struct {
	LedgerSeq   uint32 `json:"ledger_seq"`
	Entries     int    `json:"entries"`
	Backend     string `json:"backend"`
	TxCount     int64  `json:"tx_count"`
	FeeEnabled  bool   `json:"fee_enabled"`
	ListenAddr  string `json:"listen_addr"`
	Subscribers int    `json:"subscribers"`
}

// SubmitResult is the submit result.
type SubmitResult struct {
	EngineResult        string          `json:"engine_result"`
	EngineResultMessage string          `json:"engine_result_message"`
	Applied             bool            `json:"applied"`
	TxHash              string          `json:"tx_hash"`
	Metadata            *tx.Metadata    `json:"metadata,omitempty"`
	Tx                  json.RawMessage `json:"tx"`
}

// TxEvent is pushed to websocket subscribers for every applied transaction.
type TxEvent struct {
	Type         string       `json:"type"`
	TxHash       string       `json:"tx_hash"`
	EngineResult string       `json:"engine_result"`
	Account      string       `json:"account"`
	TxType       string       `json:"tx_type"`
	LedgerSeq    uint32       `json:"ledger_seq"`
	Metadata     *tx.Metadata `json:"metadata,omitempty"`
}

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      any             `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
	ID      any       `json:"id"`
}

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

type submitParams struct {
	Tx json.RawMessage `json:"tx"`
}

type balanceParams struct {
	Token   uint64 `json:"token"`
	Account string `json:"account"`
}

type supplyParams struct {
	Token uint64 `json:"token"`
}

type poolParams struct {
	TokenA uint64 `json:"token_a"`
	TokenB uint64 `json:"token_b"`
}

type txParams struct {
	Hash string `json:"hash"`
}

type accountTxParams struct {
	Account string `json:"account"`
	Limit   int    `json:"limit"`
}
