// Package tui is the terminal rendering surface: a single blocking event
// loop that reads one key, mutates the model, and redraws. It consumes
// read-only snapshots of the session and send flow and never holds wallet
// state of its own.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/AlexZinkM/solace/internal/client"
	"github.com/AlexZinkM/solace/internal/config"
	"github.com/AlexZinkM/solace/internal/sendflow"
	"github.com/AlexZinkM/solace/internal/wallet"
)

type view int

const (
	viewHome view = iota
	viewWallet
	viewSend
	viewReceive
	viewActivity
	viewSettings
)

var menuItems = []string{"Home", "Wallet", "Send", "Receive", "Activity", "Settings"}

// Model is the bubbletea model for the whole application.
type Model struct {
	sess   *wallet.Session
	flow   *sendflow.Flow
	rpcURL string
	log    *zap.Logger

	view    view
	menuIdx int

	// lastOutcome is the result of the most recent send flow, shown on the
	// wallet view until the next flow starts.
	lastOutcome sendflow.Outcome
	refreshErr  string

	activity    []client.Activity
	activityErr string
}

// New builds the initial model around an established session.
func New(sess *wallet.Session, rpcURL string, log *zap.Logger) Model {
	return Model{
		sess:   sess,
		flow:   sendflow.New(log),
		rpcURL: rpcURL,
		log:    log,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. All network calls triggered here run
// synchronously on the event loop: no key is processed while one is
// outstanding.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	ctx := context.Background()

	if m.view == viewSend {
		for _, ev := range keyToEvents(key) {
			if done := m.flow.Handle(ctx, m.sess, ev); done {
				m.lastOutcome = m.flow.Outcome()
				m.flow.Reset()
				m.view = viewWallet
				break
			}
		}
		return m, nil
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "r":
		if m.view == viewWallet {
			// User-initiated refresh: failures are surfaced.
			if err := m.sess.RefreshBalance(ctx); err != nil {
				m.refreshErr = err.Error()
			} else {
				m.refreshErr = ""
			}
		}
	case "esc":
		if m.view == viewReceive || m.view == viewActivity || m.view == viewSettings {
			m.view = viewWallet
		}
	case "up":
		if m.menuIdx > 0 {
			m.menuIdx--
		}
	case "down":
		if m.menuIdx < len(menuItems)-1 {
			m.menuIdx++
		}
	case "enter":
		m.enter(ctx, view(m.menuIdx))
	}
	return m, nil
}

// enter switches to the selected view, running its entry action.
func (m *Model) enter(ctx context.Context, v view) {
	switch v {
	case viewWallet:
		m.sess.RefreshBalanceBestEffort(ctx)
	case viewSend:
		m.flow.Reset()
		m.lastOutcome = sendflow.Outcome{}
	case viewActivity:
		activity, err := m.sess.Gateway().RecentSignatures(ctx, m.sess.PublicKey(), config.GetActivityLimit())
		if err != nil {
			m.activity = nil
			m.activityErr = err.Error()
		} else {
			m.activity = activity
			m.activityErr = ""
		}
	}
	m.view = v
}

// keyToEvents translates one terminal key into flow events. A paste
// arrives as a single KeyRunes message carrying many runes.
func keyToEvents(key tea.KeyMsg) []sendflow.Event {
	switch key.Type {
	case tea.KeyRunes:
		events := make([]sendflow.Event, 0, len(key.Runes))
		for _, r := range key.Runes {
			events = append(events, sendflow.Event{Kind: sendflow.EventRune, Rune: r})
		}
		return events
	case tea.KeyBackspace:
		return []sendflow.Event{{Kind: sendflow.EventBackspace}}
	case tea.KeyEnter:
		return []sendflow.Event{{Kind: sendflow.EventAccept}}
	case tea.KeyEsc:
		return []sendflow.Event{{Kind: sendflow.EventCancel}}
	default:
		return nil
	}
}
