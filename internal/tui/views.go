package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/skip2/go-qrcode"

	"github.com/AlexZinkM/solace/internal/config"
	"github.com/AlexZinkM/solace/internal/sendflow"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	menuStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(18)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	contentStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// View implements tea.Model.
func (m Model) View() string {
	var content string
	switch m.view {
	case viewHome:
		content = m.renderHome()
	case viewWallet:
		content = m.renderWallet()
	case viewSend:
		content = m.renderSend()
	case viewReceive:
		content = m.renderReceive()
	case viewActivity:
		content = m.renderActivity()
	case viewSettings:
		content = m.renderSettings()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderMenu(), contentStyle.Render(content))
}

func (m Model) renderMenu() string {
	lines := []string{titleStyle.Render("SOLACE"), ""}
	for i, item := range menuItems {
		if i == m.menuIdx {
			lines = append(lines, selectedStyle.Render("> "+item))
		} else {
			lines = append(lines, "  "+item)
		}
	}
	return menuStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderHome() string {
	return strings.Join([]string{
		"Welcome to Solace!",
		"",
		"A Solana wallet with a terminal UI",
		"",
		"Navigate with the arrow keys",
		"Press Enter to select",
		"Press 'q' to quit",
	}, "\n")
}

func (m Model) renderWallet() string {
	lines := []string{
		"Wallet Overview",
		"",
		fmt.Sprintf("Address: %s", m.sess.PublicKey()),
		fmt.Sprintf("Balance: %s SOL", m.sess.SOL()),
		"",
		dimStyle.Render("Press 'r' to refresh balance"),
	}
	if m.refreshErr != "" {
		lines = append(lines, "", errorStyle.Render("Refresh failed: "+m.refreshErr))
	}
	if sig := m.lastOutcome.Signature(); sig != "" {
		lines = append(lines, "", successStyle.Render("Transaction sent: "+sig))
	}
	if msg := m.lastOutcome.Err(); msg != "" {
		lines = append(lines, "", errorStyle.Render("Transfer failed: "+msg))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSend() string {
	lines := []string{"Send SOL", ""}

	switch m.flow.Stage() {
	case sendflow.StageRecipient:
		lines = append(lines,
			"Enter recipient address:",
			promptStyle.Render(m.flow.Recipient()+"█"),
			"",
			dimStyle.Render("Press Enter to continue, Esc to cancel"),
		)
	case sendflow.StageAmount:
		lines = append(lines,
			fmt.Sprintf("To: %s", m.flow.Recipient()),
			"",
			"Enter amount (SOL):",
			promptStyle.Render(m.flow.Amount()+"█"),
			"",
			fmt.Sprintf("Available balance: %s SOL", m.sess.SOL()),
			"",
			dimStyle.Render("Press Enter to continue, Esc to go back"),
		)
	case sendflow.StageConfirm:
		lines = append(lines,
			"Confirm Transaction",
			"",
			fmt.Sprintf("To: %s", m.flow.Recipient()),
			fmt.Sprintf("Amount: %s SOL", m.flow.Amount()),
			"",
			promptStyle.Render("Press Y to confirm, N to cancel"),
		)
	}

	if fieldErr := m.flow.FieldError(); fieldErr != "" {
		lines = append(lines, "", errorStyle.Render("Error: "+fieldErr))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderReceive() string {
	address := m.sess.PublicKey().String()
	lines := []string{
		"Receive SOL",
		"",
		"Your wallet address:",
		successStyle.Render(address),
		"",
	}

	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		lines = append(lines, errorStyle.Render("Failed to generate QR code"))
	} else {
		lines = append(lines, qr.ToSmallString(false))
	}

	lines = append(lines, "", dimStyle.Render("Press Esc to go back"))
	return strings.Join(lines, "\n")
}

func (m Model) renderActivity() string {
	lines := []string{"Recent Activity", ""}

	switch {
	case m.activityErr != "":
		lines = append(lines, errorStyle.Render("Failed to load activity: "+m.activityErr))
	case len(m.activity) == 0:
		lines = append(lines, "No transactions yet")
	default:
		for _, a := range m.activity {
			status := successStyle.Render("ok")
			if a.Failed {
				status = errorStyle.Render("failed")
			}
			age := "unknown age"
			if a.Time != nil {
				age = fmt.Sprintf("%s ago", time.Since(*a.Time).Round(time.Second))
			}
			lines = append(lines, fmt.Sprintf("%s  slot %d  %s  %s",
				shortSignature(a.Signature.String()), a.Slot, age, status))
		}
	}

	lines = append(lines, "", dimStyle.Render("Press Esc to go back"))
	return strings.Join(lines, "\n")
}

func (m Model) renderSettings() string {
	return strings.Join([]string{
		"Settings",
		"",
		fmt.Sprintf("RPC Endpoint: %s", m.rpcURL),
		fmt.Sprintf("Network: %s", config.NetworkName(m.rpcURL)),
		fmt.Sprintf("Commitment: %s", config.GetCommitment()),
		"",
		fmt.Sprintf("Wallet: %s", m.sess.PublicKey()),
		"",
		dimStyle.Render("Press Esc to go back"),
	}, "\n")
}

func shortSignature(sig string) string {
	if len(sig) <= 16 {
		return sig
	}
	return sig[:8] + ".." + sig[len(sig)-8:]
}
