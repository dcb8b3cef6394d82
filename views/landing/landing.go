package landing

import (
	"charm-mint-tui/config"
	"charm-mint-tui/helpers"
	"charm-mint-tui/mint"
	"charm-mint-tui/styles"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	Brand   = "Big Dawg Selects"
	Tagline = "Mint one of these bad boys and feel great about yourself!"

	LabelConnect = "Connect to Wallet"
	LabelMint    = "Mint NFT"
	LabelMinting = "Minting…"
)

// ControlLabel returns the text of the single call-to-action control.
func ControlLabel(account string, minting bool) string {
	switch {
	case account == "":
		return LabelConnect
	case minting:
		return LabelMinting
	default:
		return LabelMint
	}
}

// State is what the landing page needs to draw itself
type State struct {
	Account    string
	Minting    bool
	Connecting bool
	Spinner    string
	Collection *mint.Collection
	Links      config.Links
}

// Render renders the landing page
func Render(s State, width int) string {
	center := lipgloss.NewStyle().Width(helpers.Max(0, width)).Align(lipgloss.Center)

	brand := lipgloss.NewStyle().Bold(true).Render(helpers.FadeString(Brand, styles.FadeFrom, styles.FadeTo))
	lines := []string{
		center.Render(brand),
		center.Render(styles.MutedStyle.Render(Tagline)),
		"",
		center.Render(button(s)),
	}

	if c := s.Collection; c != nil && s.Account != "" {
		info := fmt.Sprintf("%s (%s)", c.Name, c.Symbol)
		if c.Balance != nil {
			info += fmt.Sprintf("  ·  you hold %s", c.Balance.String())
		}
		lines = append(lines, "", center.Render(styles.MutedStyle.Render(info)))
	}

	lines = append(lines, "", "", center.Render(Footer(s.Links)))
	return strings.Join(lines, "\n")
}

func button(s State) string {
	label := ControlLabel(s.Account, s.Minting)
	if s.Minting || s.Connecting {
		prefix := ""
		if s.Spinner != "" {
			prefix = s.Spinner + " "
		}
		if s.Connecting {
			label = "Connecting…"
		}
		return styles.ButtonStyle.Render(prefix + label)
	}
	return styles.ActiveButtonStyle.Render(label)
}

// Footer renders the collection and social links as terminal hyperlinks.
func Footer(l config.Links) string {
	var parts []string
	if l.CollectionURL != "" {
		parts = append(parts, "⛵ "+helpers.Hyperlink(l.CollectionURL, "OpenSea Collection"))
	}
	if l.TwitterHandle != "" {
		parts = append(parts, "🐦 "+helpers.Hyperlink(l.TwitterURL(), l.TwitterHandle))
	}
	return lipgloss.NewStyle().Foreground(styles.CAccent2).Render(strings.Join(parts, "    "))
}
