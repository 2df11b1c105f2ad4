package wallet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/term"

	"github.com/AlexZinkM/solace/internal/crypto"
)

// DefaultKeypairPath returns the standard Solana CLI keypair location,
// ~/.config/solana/id.json.
func DefaultKeypairPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find home directory: %w", err)
	}
	return filepath.Join(home, ".config", "solana", "id.json"), nil
}

// LoadKeypair reads a plain solana-keygen JSON keypair file (a JSON array
// of 64 bytes). Failure is fatal to startup: there is no wallet without a
// credential.
func LoadKeypair(path string) (solana.PrivateKey, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load keypair from %s: %w", path, err)
	}
	if len(key) != 64 {
		return nil, fmt.Errorf("invalid keypair in %s: expected 64 bytes, got %d", path, len(key))
	}
	return key, nil
}

// LoadVault decrypts an encrypted .vault keypair file, prompting for the
// password on the terminal.
func LoadVault(path string) (solana.PrivateKey, error) {
	password, err := PromptPassword("Enter vault password: ")
	if err != nil {
		return nil, err
	}
	defer clear(password)

	_, data, err := crypto.DecryptVault(path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault %s: %w", path, err)
	}

	if len(data.PrivateKey) != 64 {
		clear(data.PrivateKey)
		return nil, fmt.Errorf("invalid private key length in vault %s", path)
	}
	return solana.PrivateKey(data.PrivateKey), nil
}

// PromptPassword reads a password from the terminal without echoing.
func PromptPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	password := make([]byte, len(raw))
	copy(password, raw)
	clear(raw)
	return password, nil
}
