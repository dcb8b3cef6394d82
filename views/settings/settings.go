package settings

import (
	"charm-mint-tui/config"
	"charm-mint-tui/styles"
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ValidateWalletURL accepts http(s) and ws(s) endpoints and IPC socket paths.
func ValidateWalletURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("wallet endpoint is required")
	}
	if !strings.Contains(s, "://") {
		if strings.HasPrefix(s, "/") || strings.HasPrefix(s, `\\.\pipe\`) {
			return nil
		}
		return errors.New("use a URL (http://, ws://) or an IPC socket path")
	}
	u, err := url.Parse(s)
	if err != nil {
		return errors.New("invalid URL")
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return errors.New("unsupported scheme " + u.Scheme)
	}
	if u.Host == "" {
		return errors.New("URL has no host")
	}
	return nil
}

// CreateForm builds the wallet endpoint form. The value is written to *walletURL.
func CreateForm(walletURL *string) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Wallet endpoint").
				Description("JSON-RPC URL or IPC path of your wallet (Frame, a local node...)").
				Placeholder("http://127.0.0.1:1248").
				Value(walletURL).
				Validate(ValidateWalletURL),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// Render renders the settings page
func Render(cfg config.Config, form *huh.Form) string {
	lines := []string{styles.TitleStyle.Render("Settings"), ""}

	if form != nil {
		lines = append(lines, form.View())
		return strings.Join(lines, "\n")
	}

	label := lipgloss.NewStyle().Foreground(styles.CMuted).Width(18)
	value := lipgloss.NewStyle().Foreground(styles.CText)
	row := func(k, v string) string { return label.Render(k) + value.Render(v) }

	lines = append(lines,
		row("Wallet endpoint", cfg.WalletURL),
		row("Network", cfg.Chain.ChainName+" ("+cfg.Chain.ChainID+")"),
		row("Explorer", cfg.Chain.Explorer()),
		row("Contract", cfg.Contract.Address),
		"",
		lipgloss.NewStyle().Foreground(styles.CMuted).Render("Press ")+styles.Key("e")+lipgloss.NewStyle().Foreground(styles.CMuted).Render(" to change the wallet endpoint."),
	)
	return strings.Join(lines, "\n")
}

// Nav returns the navigation bar for the settings page
func Nav(width int, editing bool) string {
	var left string
	if editing {
		left = strings.Join([]string{
			styles.Key("Enter") + " save",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("e") + " edit endpoint",
			styles.Key("l") + " log",
			styles.Key("Esc") + " back",
		}, "   ")
	}
	return styles.NavStyle.Width(width).Render(left)
}
