package wallet

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/AlexZinkM/solace/internal/client"
	"github.com/AlexZinkM/solace/internal/common"
)

// Session holds the signing credential, its derived public identity and the
// last-known balance for the lifetime of the process. The public key never
// changes after construction; the balance only changes through an explicit
// refresh, so it always reflects a real ledger query rather than local
// arithmetic.
type Session struct {
	gateway  client.Gateway
	key      solana.PrivateKey
	pubkey   solana.PublicKey
	lamports uint64
	log      *zap.Logger
}

// NewSession creates a session around a loaded credential. The balance
// starts at zero until the first refresh.
func NewSession(gateway client.Gateway, key solana.PrivateKey, log *zap.Logger) *Session {
	return &Session{
		gateway: gateway,
		key:     key,
		pubkey:  key.PublicKey(),
		log:     log,
	}
}

// Gateway returns the ledger gateway this session operates against.
func (s *Session) Gateway() client.Gateway { return s.gateway }

// PublicKey returns the wallet's public identity.
func (s *Session) PublicKey() solana.PublicKey { return s.pubkey }

// PrivateKey returns the signing credential. Read-only for signing; the
// session owns it for the process lifetime.
func (s *Session) PrivateKey() solana.PrivateKey { return s.key }

// Lamports returns the last-known balance in lamports.
func (s *Session) Lamports() uint64 { return s.lamports }

// SOL returns the last-known balance as a SOL display string.
func (s *Session) SOL() string { return common.LamportsToSOL(s.lamports) }

// RefreshBalance queries the gateway and overwrites the stored balance.
// Errors are surfaced for user-initiated refreshes; the stored balance is
// left unchanged on failure.
func (s *Session) RefreshBalance(ctx context.Context) error {
	lamports, err := s.gateway.Balance(ctx, s.pubkey)
	if err != nil {
		return err
	}
	s.lamports = lamports
	return nil
}

// RefreshBalanceBestEffort is RefreshBalance for passive refreshes
// (startup, after a successful submission): failures are logged and
// swallowed, never surfaced to the user.
func (s *Session) RefreshBalanceBestEffort(ctx context.Context) {
	if err := s.RefreshBalance(ctx); err != nil {
		s.log.Warn("passive balance refresh failed", zap.Error(err))
	}
}
