package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/core/tx"
	"github.com/provedex/goswapd/internal/storage/txhistory"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	submitResult tx.ApplyResult
	submitErr    error
	balances     map[string]uint64
	pool         PoolInfo
	poolExists   bool
	admin        string
	records      map[string]txhistory.Record
}

func (b *stubBackend) Submit(json.RawMessage) (tx.ApplyResult, error) {
	return b.submitResult, b.submitErr
}

func (b *stubBackend) Balance(token uint64, account string) (uint64, error) {
	if len(account) != 40 {
		return 0, fmt.Errorf("invalid account")
	}
	return b.balances[fmt.Sprintf("%d/%s", token, account)], nil
}

func (b *stubBackend) Supply(token uint64) uint64 { return token * 100 }

func (b *stubBackend) Pool(uint64, uint64) (PoolInfo, bool) { return b.pool, b.poolExists }

func (b *stubBackend) Admin() (string, bool) { return b.admin, b.admin != "" }

func (b *stubBackend) FeeEnabled() bool { return true }

func (b *stubBackend) Tx(_ context.Context, hash string) (txhistory.Record, error) {
	r, ok := b.records[hash]
	if !ok {
		return txhistory.Record{}, txhistory.ErrNotFound
	}
	return r, nil
}

func (b *stubBackend) AccountTx(_ context.Context, account string, _ int) ([]txhistory.Record, error) {
	var out []txhistory.Record
	for _, r := range b.records {
		if r.Account == account {
			out = append(out, r)
		}
	}
	return out, nil
}

func (b *stubBackend) Info() ServerInfo {
	return ServerInfo{LedgerSeq: 3, Entries: 9, Backend: "memory"}
}

func call(t *testing.T, ts *httptest.Server, method string, params any) rpcResponse {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
		"id":      1,
	})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out rpcResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func newTestServer(t *testing.T, backend Backend) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(backend, "127.0.0.1:0")
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func TestSubmit(t *testing.T) {
	backend := &stubBackend{
		submitResult: tx.ApplyResult{
			Result:  tx.TesSUCCESS,
			Applied: true,
			TxHash:  [32]byte{0xAB, 0xCD},
			Message: "The transaction was applied.",
		},
	}
	_, ts := newTestServer(t, backend)

	resp := call(t, ts, "submit", map[string]any{
		"tx": map[string]any{"TransactionType": "TokenTransfer"},
	})
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]any)
	require.Equal(t, "tesSUCCESS", result["engine_result"])
	require.Equal(t, true, result["applied"])
	require.True(t, strings.HasPrefix(result["tx_hash"].(string), "ABCD"))
}

func TestSubmitRejectsMissingTx(t *testing.T) {
	_, ts := newTestServer(t, &stubBackend{})

	resp := call(t, ts, "submit", map[string]any{})
	require.NotNil(t, resp.Error)
	require.Equal(t, codeInvalidParams, resp.Error.Code)
}

func TestBalanceAndSupply(t *testing.T) {
	alice := strings.Repeat("aa", 20)
	backend := &stubBackend{
		balances: map[string]uint64{"5/" + alice: 777},
	}
	_, ts := newTestServer(t, backend)

	resp := call(t, ts, "balance", map[string]any{"token": 5, "account": alice})
	require.Nil(t, resp.Error)
	require.Equal(t, float64(777), resp.Result.(map[string]any)["balance"])

	resp = call(t, ts, "supply", map[string]any{"token": 7})
	require.Nil(t, resp.Error)
	require.Equal(t, float64(700), resp.Result.(map[string]any)["supply"])
}

func TestPool(t *testing.T) {
	backend := &stubBackend{
		pool:       PoolInfo{TokenHi: 7, TokenLo: 5, ReserveHi: 2000, ReserveLo: 1000},
		poolExists: true,
	}
	_, ts := newTestServer(t, backend)

	resp := call(t, ts, "pool", map[string]any{"token_a": 5, "token_b": 7})
	require.Nil(t, resp.Error)
	require.Equal(t, float64(1000), resp.Result.(map[string]any)["reserve_lo"])

	backend.poolExists = false
	resp = call(t, ts, "pool", map[string]any{"token_a": 5, "token_b": 9})
	require.NotNil(t, resp.Error)
	require.Equal(t, "Pool does not exist", resp.Error.Message)
}

func TestLPToken(t *testing.T) {
	_, ts := newTestServer(t, &stubBackend{})

	resp := call(t, ts, "lp_token", map[string]any{"token_a": 7, "token_b": 5})
	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]any)
	require.Equal(t, float64(7), result["token_hi"])
	require.Equal(t, float64(5), result["token_lo"])
	require.Equal(t, float64(keylet.LPTokenID(5, 7)), result["lp_token"])

	resp = call(t, ts, "lp_token", map[string]any{"token_a": 5, "token_b": 5})
	require.NotNil(t, resp.Error)
	require.Equal(t, "Tokens match", resp.Error.Message)
}

func TestTxLookup(t *testing.T) {
	backend := &stubBackend{
		records: map[string]txhistory.Record{
			"AB12": {Hash: "AB12", Account: strings.Repeat("aa", 20), Result: "tesSUCCESS"},
		},
	}
	_, ts := newTestServer(t, backend)

	resp := call(t, ts, "tx", map[string]any{"hash": "ab12"})
	require.Nil(t, resp.Error)
	require.Equal(t, "AB12", resp.Result.(map[string]any)["Hash"])

	resp = call(t, ts, "tx", map[string]any{"hash": "FFFF"})
	require.NotNil(t, resp.Error)
}

func TestServerInfoAndUnknownMethod(t *testing.T) {
	_, ts := newTestServer(t, &stubBackend{})

	resp := call(t, ts, "server_info", nil)
	require.Nil(t, resp.Error)
	require.Equal(t, float64(3), resp.Result.(map[string]any)["ledger_seq"])

	resp = call(t, ts, "no_such_method", nil)
	require.NotNil(t, resp.Error)
	require.Equal(t, codeMethodNotFound, resp.Error.Code)
}

func TestGetRejected(t *testing.T) {
	_, ts := newTestServer(t, &stubBackend{})

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWebsocketEventStream(t *testing.T) {
	s, ts := newTestServer(t, &stubBackend{})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Subscription registration races the publish without a brief wait.
	require.Eventually(t, func() bool { return s.Hub().Len() == 1 },
		time.Second, 10*time.Millisecond)

	s.Hub().Publish(TxEvent{
		Type:         "transaction",
		TxHash:       "AB12",
		EngineResult: "tesSUCCESS",
		LedgerSeq:    4,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event TxEvent
	require.NoError(t, json.Unmarshal(msg, &event))
	require.Equal(t, "AB12", event.TxHash)
	require.Equal(t, uint32(4), event.LedgerSeq)
}
