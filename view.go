package main

import (
	"strings"

	"charm-mint-tui/helpers"
	"charm-mint-tui/styles"
	"charm-mint-tui/views/alert"
	"charm-mint-tui/views/landing"
	logview "charm-mint-tui/views/log"
	"charm-mint-tui/views/settings"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // Account for panel padding

	var addrDisplay string
	if m.account != "" {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cAccent2).
			Bold(true).
			Render("Account: " + helpers.FadeString(helpers.ShortenAddr(m.account), styles.FadeFrom, styles.FadeTo))
	} else {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Account: not connected")
	}

	statusIcon := "○"
	statusColor := cError
	var statusText string
	switch {
	case m.detecting:
		statusText = "Detecting wallet…"
	case m.provider == nil:
		statusText = "No wallet"
	case m.checkingChain:
		statusColor = cWarn
		statusText = "Checking network…"
	case m.chainOK:
		statusIcon = "●"
		statusColor = cAccent
		statusText = m.chainStatus
	case m.chainStatus != "":
		statusColor = cWarn
		statusText = m.chainStatus
	default:
		statusColor = cWarn
		statusText = "Wallet connected"
	}
	walletDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	titleText := lipgloss.NewStyle().Bold(true).Render(helpers.FadeString("nft mint", "#7EE787", "#82CFFD"))

	totalOtherWidth := lipgloss.Width(addrDisplay) + lipgloss.Width(walletDisplay) + lipgloss.Width(titleText)

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = addrDisplay + "\n" + titleText + "\n" + walletDisplay
	} else {
		// Three-column layout: Account | Title (centered) | Wallet
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding
		headerLine = addrDisplay + strings.Repeat(" ", max(1, leftPadding)) + titleText + strings.Repeat(" ", max(1, rightPadding)) + walletDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	out := headerLine + "\n" + separator
	if m.status != "" {
		out += "\n" + lipgloss.NewStyle().Foreground(cWarn).Render("⚠ "+m.status)
	}
	return out
}

// View implements tea.Model interface
func (m *model) View() string {
	if front, ok := m.alerts.Front(); ok {
		return alert.Render(front, len(m.alerts)-1, m.w, m.h)
	}

	header := panelStyle.Width(max(0, m.w-2)).Render(m.globalHeader())

	var content, nav string
	switch m.activePage {
	case pageSettings:
		content = panelStyle.Width(max(0, m.w-2)).Render(settings.Render(m.cfg, m.form))
		nav = settings.Nav(max(0, m.w-2), m.form != nil)

	default:
		content = panelStyle.Width(max(0, m.w-2)).Render(landing.Render(landing.State{
			Account:    m.account,
			Minting:    m.minting,
			Connecting: m.connecting,
			Spinner:    m.spin.View(),
			Collection: m.collection,
			Links:      m.cfg.Links,
		}, max(0, m.w-8)))
		m.keys.Action.SetHelp("enter", strings.ToLower(landing.ControlLabel(m.account, m.minting)))
		nav = navStyle.Width(max(0, m.w-2)).Render(m.help.View(m.keys))
	}

	parts := []string{header, content}
	if m.logEnabled {
		parts = append(parts, logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport))
	}
	parts = append(parts, nav)

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
