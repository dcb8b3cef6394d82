package helpers

import (
	"fmt"
	"image/color"
	"math/big"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mdp/qrterminal/v3"
	"github.com/muesli/gamut"
)

// ShortenAddr shortens an Ethereum address for display
func ShortenAddr(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// AssetURL builds the marketplace link for one token of a collection:
// <base>/<contract>/<tokenId>.
func AssetURL(base string, contract common.Address, tokenID *big.Int) string {
	id := "0"
	if tokenID != nil {
		id = tokenID.String()
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), contract.Hex(), id)
}

// TxURL links a transaction on a block explorer.
func TxURL(explorer string, hash common.Hash) string {
	return strings.TrimRight(explorer, "/") + "/tx/" + hash.Hex()
}

// Hyperlink wraps text in an OSC 8 terminal hyperlink. Terminals without
// support print text unchanged.
func Hyperlink(url, text string) string {
	if url == "" {
		return text
	}
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}

// QRCode renders s as a half-block QR code
func QRCode(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	qrterminal.GenerateHalfBlock(s, qrterminal.L, &b)
	return strings.TrimRight(b.String(), "\n")
}

// FadeString creates a gradient colored string
func FadeString(s string, firstColor string, lastColor string) string {
	n := len([]rune(s))
	if n == 0 {
		return ""
	}
	blends := gamut.Blends(lipgloss.Color(firstColor), lipgloss.Color(lastColor), n)
	return rainbow(lipgloss.NewStyle(), s, blends)
}

func rainbow(baseStyle lipgloss.Style, str string, colors []color.Color) string {
	var b strings.Builder
	i := 0
	for _, c := range str {
		col, _ := colorful.MakeColor(colors[i%len(colors)])
		b.WriteString(baseStyle.Foreground(lipgloss.Color(col.Hex())).Render(string(c)))
		i++
	}
	return b.String()
}

// Max returns the maximum of two integers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the minimum of two integers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
