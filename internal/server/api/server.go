// Package api exposes the node over JSON-RPC: a POST endpoint for submits
// and queries, and a websocket stream of applied-transaction events at /ws.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Server serves the JSON-RPC API.
type Server struct {
	backend Backend
	hub     *Hub
	addr    string

	methods map[string]func(context.Context, json.RawMessage) (any, *rpcError)
}

// NewServer creates a server for backend listening on addr.
func NewServer(backend Backend, addr string) *Server {
	s := &Server{
		backend: backend,
		hub:     NewHub(),
		addr:    addr,
	}
	s.methods = map[string]func(context.Context, json.RawMessage) (any, *rpcError){
		"submit":      s.handleSubmit,
		"balance":     s.handleBalance,
		"supply":      s.handleSupply,
		"pool":        s.handlePool,
		"lp_token":    s.handleLPToken,
		"admin":       s.handleAdmin,
		"fee_switch":  s.handleFeeSwitch,
		"tx":          s.handleTx,
		"account_tx":  s.handleAccountTx,
		"server_info": s.handleServerInfo,
	}
	return s
}

// Hub returns the event hub so the node can publish applied transactions.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the HTTP handler serving the RPC and websocket endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveRPC)
	mux.HandleFunc("/ws", s.hub.ServeWS)
	return mux
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.hub.CloseAll()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("api serve: %w", err)
	}
}

func (s *Server) serveRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, rpcResponse{
			JSONRPC: "2.0",
			Error:   &rpcError{Code: codeParseError, Message: "parse error"},
		})
		return
	}
	if req.Method == "" {
		writeResponse(w, rpcResponse{
			JSONRPC: "2.0",
			Error:   &rpcError{Code: codeInvalidRequest, Message: "missing method"},
			ID:      req.ID,
		})
		return
	}

	handler, ok := s.methods[req.Method]
	if !ok {
		writeResponse(w, rpcResponse{
			JSONRPC: "2.0",
			Error:   &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("method %q not found", req.Method)},
			ID:      req.ID,
		})
		return
	}

	result, rpcErr := handler(r.Context(), req.Params)
	writeResponse(w, rpcResponse{
		JSONRPC: "2.0",
		Result:  result,
		Error:   rpcErr,
		ID:      req.ID,
	})
}

func writeResponse(w http.ResponseWriter, resp rpcResponse) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
