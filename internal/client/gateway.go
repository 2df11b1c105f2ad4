package client

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
)

// Gateway is the surface of the remote ledger node the rest of the
// application depends on. Every call is synchronous and may block on
// network round-trips.
type Gateway interface {
	// Balance returns the lamport balance of the given account.
	Balance(ctx context.Context, account solana.PublicKey) (uint64, error)

	// LatestBlockhash returns a fresh blockhash for transaction assembly.
	// The value is short-lived and must not be cached across submissions.
	LatestBlockhash(ctx context.Context) (solana.Hash, error)

	// SubmitAndConfirm sends a signed transaction and blocks until the node
	// reports it committed at the configured commitment level, or until it
	// is terminally rejected (*RejectedError) or the wait expires
	// (*NetworkError).
	SubmitAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)

	// RecentSignatures lists the newest transaction signatures involving the
	// given account, newest first.
	RecentSignatures(ctx context.Context, account solana.PublicKey, limit int) ([]Activity, error)
}

// Activity is one row of the recent-activity listing.
type Activity struct {
	Signature solana.Signature
	Slot      uint64
	Time      *time.Time
	Failed    bool
}
