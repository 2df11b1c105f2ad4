package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gagliardetto/solana-go"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/AlexZinkM/solace/internal/client"
	"github.com/AlexZinkM/solace/internal/config"
	"github.com/AlexZinkM/solace/internal/crypto"
	"github.com/AlexZinkM/solace/internal/model"
	"github.com/AlexZinkM/solace/internal/tui"
	"github.com/AlexZinkM/solace/internal/wallet"
)

const networkSolana = "solana"

func main() {
	app := &cli.App{
		Name:  "solace",
		Usage: "a Solana wallet with a terminal UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "keypair",
				Aliases: []string{"k"},
				Usage:   "path to keypair file (defaults to ~/.config/solana/id.json)",
				EnvVars: []string{"SOLACE_KEYPAIR"},
			},
			&cli.StringFlag{
				Name:    "vault",
				Usage:   "path to an encrypted .vault keypair file (overrides --keypair)",
				EnvVars: []string{"SOLACE_VAULT"},
			},
			&cli.StringFlag{
				Name:    "cluster",
				Aliases: []string{"c"},
				Usage:   "cluster to connect to (mainnet/testnet/devnet/localhost or custom RPC URL)",
				Value:   "mainnet",
				EnvVars: []string{"SOLACE_CLUSTER"},
			},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:  "vault",
				Usage: "wrap an existing keypair file into an encrypted .vault file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "keypair",
						Aliases: []string{"k"},
						Usage:   "path to the keypair file to encrypt",
					},
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "output .vault path",
						Required: true,
					},
				},
				Action: runVault,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if err := config.Init(); err != nil {
		return err
	}

	log, err := newLogger(config.GetLogFile())
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer log.Sync()

	key, err := loadCredential(c)
	if err != nil {
		return err
	}

	gateway := client.NewRPCGateway(config.ResolveRPCURL(c.String("cluster")), log)
	sess := wallet.NewSession(gateway, key, log)

	log.Info("wallet loaded",
		zap.String("address", sess.PublicKey().String()),
		zap.String("rpc_url", gateway.RPCURL()),
	)

	// Initial balance is best-effort; the UI starts regardless.
	sess.RefreshBalanceBestEffort(context.Background())

	program := tea.NewProgram(tui.New(sess, gateway.RPCURL(), log), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// loadCredential resolves and loads the signing credential. Any failure
// here is fatal to startup.
func loadCredential(c *cli.Context) (solana.PrivateKey, error) {
	if vaultPath := c.String("vault"); vaultPath != "" {
		return wallet.LoadVault(vaultPath)
	}

	keypairPath := c.String("keypair")
	if keypairPath == "" {
		var err error
		keypairPath, err = wallet.DefaultKeypairPath()
		if err != nil {
			return nil, err
		}
	}

	key, err := wallet.LoadKeypair(keypairPath)
	if err != nil {
		return nil, fmt.Errorf("%w\nPlease ensure the file exists and contains a valid Solana keypair.\nYou can create one with: solana-keygen new -o %s", err, keypairPath)
	}
	return key, nil
}

func runVault(c *cli.Context) error {
	keypairPath := c.String("keypair")
	if keypairPath == "" {
		var err error
		keypairPath, err = wallet.DefaultKeypairPath()
		if err != nil {
			return err
		}
	}

	key, err := wallet.LoadKeypair(keypairPath)
	if err != nil {
		return err
	}
	defer clear(key)

	password, err := wallet.PromptPassword("Choose vault password: ")
	if err != nil {
		return err
	}
	defer clear(password)

	confirm, err := wallet.PromptPassword("Repeat vault password: ")
	if err != nil {
		return err
	}
	defer clear(confirm)

	if string(password) != string(confirm) {
		return fmt.Errorf("passwords do not match")
	}

	data := &model.VaultData{
		PrivateKey: key,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	outPath := c.String("out")
	if err := crypto.EncryptVault(outPath, networkSolana, key.PublicKey().String(), data, password); err != nil {
		return fmt.Errorf("failed to encrypt vault: %w", err)
	}

	fmt.Printf("Vault written to %s for address %s\n", outPath, key.PublicKey())
	return nil
}

// newLogger builds a file-backed logger; a TUI owns the terminal, so
// logging is off unless a file is configured.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
