package api

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/storage/txhistory"
)

func decodeParams[T any](raw json.RawMessage) (T, *rpcError) {
	var params T
	if len(raw) == 0 {
		return params, &rpcError{Code: codeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return params, &rpcError{Code: codeInvalidParams, Message: "invalid params: " + err.Error()}
	}
	return params, nil
}

func (s *Server) handleSubmit(_ context.Context, raw json.RawMessage) (any, *rpcError) {
	params, rpcErr := decodeParams[submitParams](raw)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if len(params.Tx) == 0 {
		return nil, &rpcError{Code: codeInvalidParams, Message: "missing tx"}
	}

	res, err := s.backend.Submit(params.Tx)
	if err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: err.Error()}
	}

	return SubmitResult{
		EngineResult:        res.Result.String(),
		EngineResultMessage: res.Message,
		Applied:             res.Applied,
		TxHash:              strings.ToUpper(hex.EncodeToString(res.TxHash[:])),
		Metadata:            res.Metadata,
		Tx:                  params.Tx,
	}, nil
}

func (s *Server) handleBalance(_ context.Context, raw json.RawMessage) (any, *rpcError) {
	params, rpcErr := decodeParams[balanceParams](raw)
	if rpcErr != nil {
		return nil, rpcErr
	}
	balance, err := s.backend.Balance(params.Token, params.Account)
	if err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: err.Error()}
	}
	return map[string]any{
		"token":   params.Token,
		"account": params.Account,
		"balance": balance,
	}, nil
}

func (s *Server) handleSupply(_ context.Context, raw json.RawMessage) (any, *rpcError) {
	params, rpcErr := decodeParams[supplyParams](raw)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return map[string]any{
		"token":  params.Token,
		"supply": s.backend.Supply(params.Token),
	}, nil
}

func (s *Server) handlePool(_ context.Context, raw json.RawMessage) (any, *rpcError) {
	params, rpcErr := decodeParams[poolParams](raw)
	if rpcErr != nil {
		return nil, rpcErr
	}
	info, exists := s.backend.Pool(params.TokenA, params.TokenB)
	if !exists {
		return nil, &rpcError{Code: codeInvalidParams, Message: "Pool does not exist"}
	}
	return info, nil
}

func (s *Server) handleLPToken(_ context.Context, raw json.RawMessage) (any, *rpcError) {
	params, rpcErr := decodeParams[poolParams](raw)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if params.TokenA == params.TokenB {
		return nil, &rpcError{Code: codeInvalidParams, Message: "Tokens match"}
	}
	hi, lo := keylet.CanonicalPair(params.TokenA, params.TokenB)
	return map[string]any{
		"token_hi": hi,
		"token_lo": lo,
		"lp_token": keylet.LPTokenID(params.TokenA, params.TokenB),
	}, nil
}

func (s *Server) handleAdmin(_ context.Context, _ json.RawMessage) (any, *rpcError) {
	admin, isSet := s.backend.Admin()
	return map[string]any{
		"admin":  admin,
		"is_set": isSet,
	}, nil
}

func (s *Server) handleFeeSwitch(_ context.Context, _ json.RawMessage) (any, *rpcError) {
	return map[string]any{
		"enabled": s.backend.FeeEnabled(),
	}, nil
}

func (s *Server) handleTx(ctx context.Context, raw json.RawMessage) (any, *rpcError) {
	params, rpcErr := decodeParams[txParams](raw)
	if rpcErr != nil {
		return nil, rpcErr
	}
	record, err := s.backend.Tx(ctx, strings.ToUpper(params.Hash))
	if err == txhistory.ErrNotFound {
		return nil, &rpcError{Code: codeInvalidParams, Message: "transaction not found"}
	}
	if err != nil {
		return nil, &rpcError{Code: codeInternalError, Message: err.Error()}
	}
	return record, nil
}

func (s *Server) handleAccountTx(ctx context.Context, raw json.RawMessage) (any, *rpcError) {
	params, rpcErr := decodeParams[accountTxParams](raw)
	if rpcErr != nil {
		return nil, rpcErr
	}
	records, err := s.backend.AccountTx(ctx, params.Account, params.Limit)
	if err != nil {
		return nil, &rpcError{Code: codeInternalError, Message: err.Error()}
	}
	return map[string]any{
		"account":      params.Account,
		"transactions": records,
	}, nil
}

func (s *Server) handleServerInfo(_ context.Context, _ json.RawMessage) (any, *rpcError) {
	info := s.backend.Info()
	info.Subscribers = s.hub.Len()
	return info, nil
}
