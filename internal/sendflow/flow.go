// Package sendflow drives a SOL transfer from raw keystrokes to a signed,
// broadcast and confirmed transaction: a three-stage state machine over a
// single in-progress transfer request.
package sendflow

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/AlexZinkM/solace/internal/txfer"
	"github.com/AlexZinkM/solace/internal/wallet"
)

// EventKind classifies one keystroke for the flow.
type EventKind int

const (
	// EventRune: a printable character typed into the active field.
	EventRune EventKind = iota
	// EventBackspace: remove the last character of the active field.
	EventBackspace
	// EventAccept: advance to the next stage (Enter).
	EventAccept
	// EventCancel: step back one stage, or exit the flow (Esc).
	EventCancel
)

// Event is a single keystroke delivered to the flow.
type Event struct {
	Kind EventKind
	Rune rune
}

// Flow is the submission flow controller. At most one transfer request is
// in progress at a time; all mutation happens on the caller's goroutine,
// one event per call.
type Flow struct {
	stage     Stage
	recipient string
	amount    string
	fieldErr  string
	outcome   Outcome
	log       *zap.Logger
}

// New returns a flow at StageRecipient with an empty request.
func New(log *zap.Logger) *Flow {
	return &Flow{log: log}
}

// Reset discards the in-progress request and any held outcome. Called on
// every entry into the send flow, so re-entry always starts fresh.
func (f *Flow) Reset() {
	f.stage = StageRecipient
	f.recipient = ""
	f.amount = ""
	f.fieldErr = ""
	f.outcome = Outcome{}
}

// Stage returns the currently active stage.
func (f *Flow) Stage() Stage { return f.stage }

// Recipient returns the recipient text as typed so far.
func (f *Flow) Recipient() string { return f.recipient }

// Amount returns the amount text as typed so far.
func (f *Flow) Amount() string { return f.amount }

// FieldError returns the validation error for the active field, if any.
func (f *Flow) FieldError() string { return f.fieldErr }

// Outcome returns the result of the last submission attempt. Meaningful
// only after Handle reported the flow as done.
func (f *Flow) Outcome() Outcome { return f.outcome }

// Handle processes one keystroke. It returns true when the flow has
// exited: cancelled out of the first stage, or a confirmed submission ran
// to completion (success or failure — the result is in Outcome). Validator
// errors never exit the flow; they pin the user to the offending stage
// with the text still editable.
//
// A confirmed submission blocks inside this call for the full network
// round-trip and confirmation wait. That is intentional: no other
// keystroke is processed while a transfer is in flight.
func (f *Flow) Handle(ctx context.Context, sess *wallet.Session, ev Event) (done bool) {
	switch f.stage {
	case StageRecipient:
		switch ev.Kind {
		case EventRune:
			f.recipient += string(ev.Rune)
		case EventBackspace:
			f.recipient = trimLastRune(f.recipient)
		case EventAccept:
			if f.recipient == "" {
				return false
			}
			if _, err := ValidateRecipient(f.recipient); err != nil {
				f.fieldErr = err.Error()
				return false
			}
			f.fieldErr = ""
			f.stage = StageAmount
		case EventCancel:
			return true
		}

	case StageAmount:
		switch ev.Kind {
		case EventRune:
			if ev.Rune >= '0' && ev.Rune <= '9' {
				f.amount += string(ev.Rune)
			} else if ev.Rune == '.' && !strings.ContainsRune(f.amount, '.') {
				f.amount += "."
			}
		case EventBackspace:
			f.amount = trimLastRune(f.amount)
		case EventAccept:
			// Parsing into lamports is deferred to confirmation time,
			// where it joins the freshly fetched network state.
			if f.amount != "" {
				f.fieldErr = ""
				f.stage = StageConfirm
			}
		case EventCancel:
			f.stage = StageRecipient
		}

	case StageConfirm:
		switch ev.Kind {
		case EventRune:
			switch ev.Rune {
			case 'y', 'Y':
				f.submit(ctx, sess)
				return true
			case 'n', 'N':
				f.stage = StageAmount
			}
		case EventCancel:
			f.stage = StageAmount
		}
	}
	return false
}

// submit runs the terminal step: parse the amount, fetch a fresh
// blockhash, build and sign, submit and wait for confirmation. Any failure
// becomes the flow's outcome; no error is silently dropped here.
func (f *Flow) submit(ctx context.Context, sess *wallet.Session) {
	to, err := ValidateRecipient(f.recipient)
	if err != nil {
		f.outcome.SetError(err.Error())
		return
	}

	lamports, err := ValidateAmount(f.amount)
	if err != nil {
		f.outcome.SetError(err.Error())
		return
	}

	gateway := sess.Gateway()

	// Fetched immediately before signing to keep the blockhash's validity
	// window as wide as possible.
	blockhash, err := gateway.LatestBlockhash(ctx)
	if err != nil {
		f.outcome.SetError(err.Error())
		return
	}

	tx, err := txfer.BuildAndSign(sess.PublicKey(), to, lamports, blockhash, sess.PrivateKey())
	if err != nil {
		f.outcome.SetError(err.Error())
		return
	}

	sig, err := gateway.SubmitAndConfirm(ctx, tx)
	if err != nil {
		f.log.Warn("transfer failed",
			zap.String("to", to.String()),
			zap.Uint64("lamports", lamports),
			zap.Error(err),
		)
		f.outcome.SetError(err.Error())
		return
	}

	f.log.Info("transfer confirmed",
		zap.String("to", to.String()),
		zap.Uint64("lamports", lamports),
		zap.String("signature", sig.String()),
	)
	f.outcome.SetSignature(sig.String())

	// Balance afterwards reflects a fresh ledger query, never a local
	// decrement.
	sess.RefreshBalanceBestEffort(ctx)
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}
