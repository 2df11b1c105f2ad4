// Package txfer assembles and signs single-recipient SOL transfers.
package txfer

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// BuildAndSign constructs a transaction with exactly one system-program
// transfer instruction moving lamports from the payer to the recipient,
// stamped with the given blockhash and signed with key. The payer must be
// the key's derived public key; a mismatch means the session credential is
// corrupted and is reported as an error rather than reaching the network.
func BuildAndSign(payer, to solana.PublicKey, lamports uint64, blockhash solana.Hash, key solana.PrivateKey) (*solana.Transaction, error) {
	if len(key) != 64 {
		return nil, fmt.Errorf("invalid private key length: expected 64 bytes")
	}
	if !key.PublicKey().Equals(payer) {
		return nil, fmt.Errorf("private key does not match sender address")
	}

	transferInstruction := system.NewTransferInstruction(
		lamports,
		payer,
		to,
	).Build()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{transferInstruction},
		blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	_, err = tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
		if key.PublicKey().Equals(pub) {
			return &key
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	return tx, nil
}
