package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the application.
// Cluster and keypair location come from CLI flags; everything here is
// ambient tuning read from the environment.
type Config struct {
	Commitment      string        `envconfig:"SOLACE_COMMITMENT" default:"confirmed"`
	ConfirmInterval time.Duration `envconfig:"SOLACE_CONFIRM_INTERVAL" default:"2s"`
	ConfirmTimeout  time.Duration `envconfig:"SOLACE_CONFIRM_TIMEOUT" default:"90s"`
	ActivityLimit   int           `envconfig:"SOLACE_ACTIVITY_LIMIT" default:"20"`
	LogFile         string        `envconfig:"SOLACE_LOG_FILE"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	switch cfg.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("invalid SOLACE_COMMITMENT %q: must be processed, confirmed or finalized", cfg.Commitment)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetCommitment returns the configured confirmation commitment level
func GetCommitment() string {
	return Get().Commitment
}

// GetConfirmInterval returns the signature status poll interval
func GetConfirmInterval() time.Duration {
	return Get().ConfirmInterval
}

// GetConfirmTimeout returns how long to wait for a submitted transaction to commit
func GetConfirmTimeout() time.Duration {
	return Get().ConfirmTimeout
}

// GetActivityLimit returns how many recent signatures the activity view fetches
func GetActivityLimit() int {
	return Get().ActivityLimit
}

// GetLogFile returns the optional log file path ("" disables logging)
func GetLogFile() string {
	return Get().LogFile
}

// ResolveRPCURL maps a cluster preset name to its public RPC endpoint.
// Anything that is not a preset is treated as a custom URL; a missing
// scheme defaults to https.
func ResolveRPCURL(cluster string) string {
	switch strings.ToLower(cluster) {
	case "mainnet", "mainnet-beta":
		return "https://api.mainnet-beta.solana.com"
	case "testnet":
		return "https://api.testnet.solana.com"
	case "devnet":
		return "https://api.devnet.solana.com"
	case "localhost", "localnet":
		return "http://localhost:8899"
	default:
		if strings.HasPrefix(cluster, "http://") || strings.HasPrefix(cluster, "https://") {
			return cluster
		}
		return "https://" + cluster
	}
}

// NetworkName returns a human label for an RPC URL, for the settings view.
func NetworkName(rpcURL string) string {
	switch {
	case strings.Contains(rpcURL, "mainnet"):
		return "Mainnet Beta"
	case strings.Contains(rpcURL, "testnet"):
		return "Testnet"
	case strings.Contains(rpcURL, "devnet"):
		return "Devnet"
	case strings.Contains(rpcURL, "localhost"), strings.Contains(rpcURL, "127.0.0.1"):
		return "Localnet"
	default:
		return "Custom"
	}
}
