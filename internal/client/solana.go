package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"go.uber.org/zap"

	"github.com/AlexZinkM/solace/internal/config"
)

// RPCGateway is a Gateway backed by a Solana JSON-RPC node.
type RPCGateway struct {
	rpcClient       *rpc.Client
	rpcURL          string
	commitment      rpc.CommitmentType
	confirmInterval time.Duration
	confirmTimeout  time.Duration
	log             *zap.Logger
}

// NewRPCGateway creates a gateway for the given RPC endpoint. Commitment
// level and confirmation timing come from the ambient configuration.
func NewRPCGateway(rpcURL string, log *zap.Logger) *RPCGateway {
	return &RPCGateway{
		rpcClient:       rpc.New(rpcURL),
		rpcURL:          rpcURL,
		commitment:      rpc.CommitmentType(config.GetCommitment()),
		confirmInterval: config.GetConfirmInterval(),
		confirmTimeout:  config.GetConfirmTimeout(),
		log:             log,
	}
}

// RPCURL returns the endpoint this gateway talks to.
func (g *RPCGateway) RPCURL() string {
	return g.rpcURL
}

// Balance returns the lamport balance of the given account.
func (g *RPCGateway) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	out, err := g.rpcClient.GetBalance(ctx, account, g.commitment)
	if err != nil {
		return 0, &NetworkError{Op: "get balance", Err: err}
	}
	return out.Value, nil
}

// LatestBlockhash returns a fresh blockhash for transaction assembly.
func (g *RPCGateway) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := g.rpcClient.GetLatestBlockhash(ctx, g.commitment)
	if err != nil {
		return solana.Hash{}, &NetworkError{Op: "get latest blockhash", Err: err}
	}
	return out.Value.Blockhash, nil
}

// SubmitAndConfirm sends the signed transaction and polls its signature
// status until it reaches the configured commitment. A status carrying a
// transaction error is a terminal rejection; running out the confirmation
// timeout is reported as a network error since the transaction may still
// land.
func (g *RPCGateway) SubmitAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := g.rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: g.commitment,
		},
	)
	if err != nil {
		return solana.Signature{}, classifySendError(err)
	}

	g.log.Info("transaction sent, awaiting confirmation",
		zap.String("signature", sig.String()),
		zap.String("commitment", string(g.commitment)),
	)

	deadline := time.Now().Add(g.confirmTimeout)
	for {
		out, err := g.rpcClient.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			// A single failed poll is not fatal; the deadline decides.
			g.log.Warn("signature status poll failed", zap.Error(err))
		} else if out != nil && len(out.Value) > 0 && out.Value[0] != nil {
			st := out.Value[0]
			if st.Err != nil {
				return solana.Signature{}, &RejectedError{Reason: fmt.Sprintf("%v", st.Err)}
			}
			if commitmentReached(st.ConfirmationStatus, g.commitment) {
				return sig, nil
			}
		}

		if time.Now().After(deadline) {
			return solana.Signature{}, &NetworkError{
				Op:  "confirm transaction",
				Err: fmt.Errorf("no %s confirmation for %s within %s", g.commitment, sig, g.confirmTimeout),
			}
		}
		select {
		case <-ctx.Done():
			return solana.Signature{}, &NetworkError{Op: "confirm transaction", Err: ctx.Err()}
		case <-time.After(g.confirmInterval):
		}
	}
}

// RecentSignatures lists the newest transaction signatures for the account.
func (g *RPCGateway) RecentSignatures(ctx context.Context, account solana.PublicKey, limit int) ([]Activity, error) {
	sigs, err := g.rpcClient.GetSignaturesForAddressWithOpts(
		ctx,
		account,
		&rpc.GetSignaturesForAddressOpts{
			Limit:      &limit,
			Commitment: g.commitment,
		},
	)
	if err != nil {
		return nil, &NetworkError{Op: "get signatures", Err: err}
	}

	activity := make([]Activity, 0, len(sigs))
	for _, s := range sigs {
		a := Activity{
			Signature: s.Signature,
			Slot:      s.Slot,
			Failed:    s.Err != nil,
		}
		if s.BlockTime != nil {
			t := s.BlockTime.Time()
			a.Time = &t
		}
		activity = append(activity, a)
	}
	return activity, nil
}

// classifySendError splits a send failure into ledger rejection vs
// transport failure. An RPC-level error means the node saw the payload and
// refused it (preflight failure, duplicate, stale blockhash); anything else
// means the payload may never have reached the node.
func classifySendError(err error) error {
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return &RejectedError{Reason: rpcErr.Message}
	}
	return &NetworkError{Op: "send transaction", Err: err}
}

// commitmentReached reports whether an observed confirmation status
// satisfies the requested commitment.
func commitmentReached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	rank := map[string]int{
		"processed": 0,
		"confirmed": 1,
		"finalized": 2,
	}
	got, ok := rank[string(status)]
	if !ok {
		return false
	}
	return got >= rank[string(want)]
}
