package landing

import (
	"math/big"
	"testing"

	"charm-mint-tui/config"
	"charm-mint-tui/mint"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestControlLabel(t *testing.T) {
	tests := []struct {
		account string
		minting bool
		want    string
	}{
		{"", false, LabelConnect},
		{"", true, LabelConnect},
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false, LabelMint},
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true, LabelMinting},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ControlLabel(tt.account, tt.minting))
	}
}

func TestRender(t *testing.T) {
	links := config.DefaultConfig().Links

	t.Run("disconnected", func(t *testing.T) {
		out := ansi.Strip(Render(State{Links: links}, 100))
		assert.Contains(t, out, Brand)
		assert.Contains(t, out, LabelConnect)
		assert.NotContains(t, out, LabelMint)
		assert.Contains(t, out, "OpenSea Collection")
		assert.Contains(t, out, links.TwitterHandle)
	})

	t.Run("connected with collection", func(t *testing.T) {
		out := ansi.Strip(Render(State{
			Account:    "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			Collection: &mint.Collection{Name: "BigDawgSelects", Symbol: "BDS", Balance: big.NewInt(3)},
			Links:      links,
		}, 100))
		assert.Contains(t, out, LabelMint)
		assert.NotContains(t, out, LabelConnect)
		assert.Contains(t, out, "BigDawgSelects (BDS)")
		assert.Contains(t, out, "you hold 3")
	})
}
