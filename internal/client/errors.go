package client

import "fmt"

// NetworkError indicates the node was unreachable, timed out, or the
// confirmation wait expired before the transaction committed. Transient:
// nothing is known about ledger state, the user may simply retry.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RejectedError indicates the node accepted the request but terminally
// rejected the transaction (insufficient funds, expired blockhash,
// duplicate submission, malformed instruction). The signed payload is
// dead: a retry needs a fresh blockhash and a new signature.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("transaction rejected by ledger: %s", e.Reason)
}
