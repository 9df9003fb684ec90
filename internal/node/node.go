// Package node wires the store, ledger, engine, history index, and API
// server together. Composition is explicit: every dependency enters through
// New, and Run owns the lifecycle.
package node

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/provedex/goswapd/internal/config"
	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/core/ledger"
	"github.com/provedex/goswapd/internal/core/tx"
	_ "github.com/provedex/goswapd/internal/core/tx/all"
	"github.com/provedex/goswapd/internal/server/api"
	"github.com/provedex/goswapd/internal/storage/kvstore"
	"github.com/provedex/goswapd/internal/storage/txhistory"
	"golang.org/x/sync/errgroup"
)

// Node is a running swapd instance.
type Node struct {
	cfg     *config.Config
	store   *kvstore.Store
	ledger  *ledger.Ledger
	history *txhistory.Index // nil when history is disabled
	server  *api.Server

	// applyMu serializes submissions: the engine applies exactly one
	// transaction at a time, as the state model requires.
	applyMu    sync.Mutex
	sinceFlush int
	flushEvery int
}

// New opens storage, restores or seeds the ledger, and builds the API
// server. It does not start serving; call Run.
func New(cfg *config.Config) (*Node, error) {
	store, err := kvstore.NewStore(cfg.Storage.Backend, cfg.StorePath(), cfg.Storage.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	l, restored, err := ledger.Load(store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !restored {
		l = ledger.New()
		if err := l.ApplyGenesis(cfg.Genesis.ToGenesis()); err != nil {
			store.Close()
			return nil, fmt.Errorf("apply genesis: %w", err)
		}
		if err := l.Save(store); err != nil {
			store.Close()
			return nil, fmt.Errorf("save genesis snapshot: %w", err)
		}
		log.Printf("ledger seeded from genesis: %d entries", l.EntryCount())
	} else {
		log.Printf("ledger restored at sequence %d: %d entries", l.Sequence(), l.EntryCount())
	}

	var history *txhistory.Index
	if path := cfg.HistoryPath(); path != "" {
		history, err = txhistory.Open(path)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("open history: %w", err)
		}
	}

	n := &Node{
		cfg:        cfg,
		store:      store,
		ledger:     l,
		history:    history,
		flushEvery: cfg.Server.SnapshotInterval,
	}
	n.server = api.NewServer(n, cfg.Server.ListenAddr)
	return n, nil
}

// Run serves the API until ctx is cancelled, then flushes state and closes
// storage.
func (n *Node) Run(ctx context.Context) error {
	log.Printf("swapd listening on %s (backend %s)", n.cfg.Server.ListenAddr, n.store.BackendName())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return n.server.Serve(ctx)
	})

	serveErr := g.Wait()

	n.applyMu.Lock()
	defer n.applyMu.Unlock()
	if err := n.ledger.Save(n.store); err != nil {
		log.Printf("final snapshot failed: %v", err)
	}
	if n.history != nil {
		n.history.Close()
	}
	if err := n.store.Close(); err != nil {
		log.Printf("store close failed: %v", err)
	}
	return serveErr
}

// Ledger exposes the committed state for direct inspection in tests.
func (n *Node) Ledger() *ledger.Ledger { return n.ledger }

// Submit parses and applies one transaction, closing a ledger around every
// applied result. Implements api.Backend.
func (n *Node) Submit(rawTx json.RawMessage) (tx.ApplyResult, error) {
	transaction, err := tx.FromJSON(rawTx)
	if err != nil {
		return tx.ApplyResult{}, fmt.Errorf("parse transaction: %w", err)
	}

	n.applyMu.Lock()
	defer n.applyMu.Unlock()

	engine := tx.NewEngine(n.ledger, tx.EngineConfig{LedgerSequence: n.ledger.Sequence()})
	res := engine.Apply(transaction)

	if res.Applied {
		seq := n.ledger.Close()
		n.recordHistory(transaction, res, seq)
		n.server.Hub().Publish(api.TxEvent{
			Type:         "transaction",
			TxHash:       hashHex(res.TxHash),
			EngineResult: res.Result.String(),
			Account:      transaction.GetCommon().Account,
			TxType:       transaction.GetCommon().TransactionType,
			LedgerSeq:    seq,
			Metadata:     res.Metadata,
		})

		n.sinceFlush++
		if n.flushEvery > 0 && n.sinceFlush >= n.flushEvery {
			if err := n.ledger.Save(n.store); err != nil {
				log.Printf("periodic snapshot failed: %v", err)
			} else {
				n.sinceFlush = 0
			}
		}
	}
	return res, nil
}

func (n *Node) recordHistory(transaction tx.Transaction, res tx.ApplyResult, seq uint32) {
	if n.history == nil {
		return
	}
	txJSON, err := tx.ToJSON(transaction)
	if err != nil {
		txJSON = []byte("{}")
	}
	err = n.history.Insert(context.Background(), txhistory.Record{
		Hash:      hashHex(res.TxHash),
		TxType:    transaction.GetCommon().TransactionType,
		Account:   transaction.GetCommon().Account,
		Result:    res.Result.String(),
		Applied:   res.Applied,
		LedgerSeq: seq,
		TxJSON:    string(txJSON),
	})
	if err != nil {
		log.Printf("history insert failed: %v", err)
	}
}

// Balance implements api.Backend.
func (n *Node) Balance(token uint64, account string) (uint64, error) {
	id, err := tx.DecodeAccountID(account)
	if err != nil {
		return 0, err
	}
	return n.ledger.BalanceOf(token, id), nil
}

// Supply implements api.Backend.
func (n *Node) Supply(token uint64) uint64 {
	return n.ledger.SupplyOf(token)
}

// Pool implements api.Backend.
func (n *Node) Pool(tokenA, tokenB uint64) (api.PoolInfo, bool) {
	if !n.ledger.PoolExists(tokenA, tokenB) {
		return api.PoolInfo{}, false
	}
	hi, lo := keylet.CanonicalPair(tokenA, tokenB)
	poolAccount := tx.AccountID(keylet.PoolAccountID(tokenA, tokenB))
	lpToken := keylet.LPTokenID(tokenA, tokenB)

	return api.PoolInfo{
		TokenHi:   hi,
		TokenLo:   lo,
		ReserveHi: n.ledger.BalanceOf(hi, poolAccount),
		ReserveLo: n.ledger.BalanceOf(lo, poolAccount),
		LPToken:   lpToken,
		LPSupply:  n.ledger.SupplyOf(lpToken),
		Account:   poolAccount.String(),
	}, true
}

// Admin implements api.Backend.
func (n *Node) Admin() (string, bool) {
	admin, isSet := n.ledger.Admin()
	if !isSet {
		return "", false
	}
	return admin.String(), true
}

// FeeEnabled implements api.Backend.
func (n *Node) FeeEnabled() bool {
	return n.ledger.SwapFeeEnabled()
}

// Tx implements api.Backend.
func (n *Node) Tx(ctx context.Context, hash string) (txhistory.Record, error) {
	if n.history == nil {
		return txhistory.Record{}, txhistory.ErrNotFound
	}
	return n.history.ByHash(ctx, hash)
}

// AccountTx implements api.Backend.
func (n *Node) AccountTx(ctx context.Context, account string, limit int) ([]txhistory.Record, error) {
	if n.history == nil {
		return nil, nil
	}
	return n.history.ByAccount(ctx, account, limit)
}

// Info implements api.Backend.
func (n *Node) Info() api.ServerInfo {
	info := api.ServerInfo{
		LedgerSeq:  n.ledger.Sequence(),
		Entries:    n.ledger.EntryCount(),
		Backend:    n.store.BackendName(),
		FeeEnabled: n.ledger.SwapFeeEnabled(),
		ListenAddr: n.cfg.Server.ListenAddr,
	}
	if n.history != nil {
		if count, err := n.history.Count(context.Background()); err == nil {
			info.TxCount = count
		}
	}
	return info
}

func hashHex(h [32]byte) string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}
