package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AlexZinkM/solace/internal/config"
)

// newRPCServer stubs the two JSON-RPC methods SubmitAndConfirm uses:
// sendTransaction always accepts and returns sig; getSignatureStatuses
// returns statusJSON(n) for the n-th poll (one entry of the value array,
// "null" for a not-yet-visible signature).
func newRPCServer(t *testing.T, sig solana.Signature, statusJSON func(call int) string) *httptest.Server {
	t.Helper()
	var statusCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode RPC request: %v", err)
			return
		}

		var result string
		switch req.Method {
		case "sendTransaction":
			result = fmt.Sprintf("%q", sig.String())
		case "getSignatureStatuses":
			result = fmt.Sprintf(`{"context":{"slot":1},"value":[%s]}`, statusJSON(int(statusCalls.Add(1))))
		default:
			t.Errorf("unexpected RPC method %q", req.Method)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, result)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// signedTransfer builds a minimal signed transfer to feed the gateway.
func signedTransfer(t *testing.T) *solana.Transaction {
	t.Helper()
	sender := solana.NewWallet()
	instruction := system.NewTransferInstruction(
		1_000,
		sender.PublicKey(),
		solana.NewWallet().PublicKey(),
	).Build()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		solana.Hash{1},
		solana.TransactionPayer(sender.PublicKey()),
	)
	require.NoError(t, err)

	_, err = tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
		if sender.PublicKey().Equals(pub) {
			return &sender.PrivateKey
		}
		return nil
	})
	require.NoError(t, err)
	return tx
}

func initConfirmConfig(t *testing.T, interval, timeout string) {
	t.Helper()
	t.Setenv("SOLACE_CONFIRM_INTERVAL", interval)
	t.Setenv("SOLACE_CONFIRM_TIMEOUT", timeout)
	require.NoError(t, config.Init())
}

func TestSubmitAndConfirmReturnsSignatureOnCommitment(t *testing.T) {
	initConfirmConfig(t, "10ms", "2s")

	sig := solana.Signature{4, 2}
	srv := newRPCServer(t, sig, func(call int) string {
		// Not visible on the first poll, confirmed on the second.
		if call == 1 {
			return "null"
		}
		return `{"slot":7,"confirmations":5,"err":null,"confirmationStatus":"confirmed"}`
	})

	gw := NewRPCGateway(srv.URL, zap.NewNop())
	got, err := gw.SubmitAndConfirm(context.Background(), signedTransfer(t))

	require.NoError(t, err)
	assert.Equal(t, sig, got)
}

func TestSubmitAndConfirmRejectionOnStatusError(t *testing.T) {
	initConfirmConfig(t, "10ms", "2s")

	srv := newRPCServer(t, solana.Signature{1}, func(call int) string {
		return `{"slot":7,"confirmations":null,"err":{"InstructionError":[0,{"Custom":1}]},"confirmationStatus":"processed"}`
	})

	gw := NewRPCGateway(srv.URL, zap.NewNop())
	_, err := gw.SubmitAndConfirm(context.Background(), signedTransfer(t))

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Contains(t, rejected.Reason, "InstructionError")
}

func TestSubmitAndConfirmTimesOutAsNetworkError(t *testing.T) {
	initConfirmConfig(t, "20ms", "150ms")

	srv := newRPCServer(t, solana.Signature{1}, func(call int) string {
		// Signature never becomes visible.
		return "null"
	})

	gw := NewRPCGateway(srv.URL, zap.NewNop())
	_, err := gw.SubmitAndConfirm(context.Background(), signedTransfer(t))

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "confirm transaction", netErr.Op)
}

func TestRPCURLReportsEndpoint(t *testing.T) {
	initConfirmConfig(t, "10ms", "2s")
	gw := NewRPCGateway("https://api.devnet.solana.com", zap.NewNop())
	assert.Equal(t, "https://api.devnet.solana.com", gw.RPCURL())
}
