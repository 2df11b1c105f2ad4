package sendflow

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/AlexZinkM/solace/internal/common"
)

var (
	// ErrInvalidRecipient marks recipient text that does not decode as a
	// Solana address.
	ErrInvalidRecipient = errors.New("invalid recipient address")
	// ErrInvalidAmount marks amount text that does not parse as a
	// non-negative decimal, or overflows lamports.
	ErrInvalidAmount = errors.New("invalid amount")
)

// ValidateRecipient decodes untrusted text into a Solana public key.
// Any decode failure (empty, wrong length, bad base58 characters) yields
// ErrInvalidRecipient. Purely syntactic: existence of the account on the
// ledger is not checked.
func ValidateRecipient(text string) (solana.PublicKey, error) {
	if text == "" {
		return solana.PublicKey{}, ErrInvalidRecipient
	}
	pubkey, err := solana.PublicKeyFromBase58(text)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	return pubkey, nil
}

// ValidateAmount parses a non-negative decimal SOL amount into lamports.
// Precision beyond nine decimals is truncated, not rounded. Sufficiency of
// funds is deliberately not checked here; the ledger rejects overdrafts.
func ValidateAmount(text string) (uint64, error) {
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}

	lamports := amount.Shift(common.SOLDecimals).Truncate(0).BigInt()
	if !lamports.IsUint64() {
		return 0, fmt.Errorf("%w: exceeds maximum transferable amount", ErrInvalidAmount)
	}
	return lamports.Uint64(), nil
}
