package helpers

import (
	"math/big"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestShortenAddr(t *testing.T) {
	assert.Equal(t, "0x08C7…5Dd0", ShortenAddr("0x08C7898601E4FCd11b2D6310861e17240fad5Dd0"))
	assert.Equal(t, "0x1234", ShortenAddr("0x1234"))
}

func TestAssetURL(t *testing.T) {
	contract := common.HexToAddress("0x08C7898601E4FCd11b2D6310861e17240fad5Dd0")

	tests := []struct {
		name string
		base string
		id   *big.Int
		want string
	}{
		{"plain", "https://testnets.opensea.io/assets", big.NewInt(7), "https://testnets.opensea.io/assets/0x08C7898601E4FCd11b2D6310861e17240fad5Dd0/7"},
		{"trailing slash", "https://testnets.opensea.io/assets/", big.NewInt(12), "https://testnets.opensea.io/assets/0x08C7898601E4FCd11b2D6310861e17240fad5Dd0/12"},
		{"nil id", "https://x", nil, "https://x/0x08C7898601E4FCd11b2D6310861e17240fad5Dd0/0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssetURL(tt.base, contract, tt.id))
		})
	}
}

func TestTxURL(t *testing.T) {
	h := common.HexToHash("0x01")
	assert.Equal(t, "https://sepolia.etherscan.io/tx/"+h.Hex(), TxURL("https://sepolia.etherscan.io/", h))
}

func TestHyperlink(t *testing.T) {
	link := Hyperlink("https://twitter.com/gsrb_", "@gsrb_")
	assert.Contains(t, link, "https://twitter.com/gsrb_")
	assert.Equal(t, "@gsrb_", ansi.Strip(link))
	assert.Equal(t, "plain", Hyperlink("", "plain"))
}

func TestQRCode(t *testing.T) {
	assert.Empty(t, QRCode(""))
	qr := QRCode("https://testnets.opensea.io/assets/0x08C7898601E4FCd11b2D6310861e17240fad5Dd0/1")
	lines := strings.Split(qr, "\n")
	assert.Greater(t, len(lines), 10)
}

func TestFadeString(t *testing.T) {
	out := FadeString("Big Dawg Selects", "#F25D94", "#EDFF82")
	assert.Equal(t, "Big Dawg Selects", ansi.Strip(out))
	assert.Empty(t, FadeString("", "#000000", "#FFFFFF"))
}
