package alert

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueIsFIFO(t *testing.T) {
	var q Queue
	_, ok := q.Front()
	assert.False(t, ok)

	q.Push(Alert{Kind: Info, Message: "Mining... please wait."})
	q.Push(Alert{Kind: Error, Message: "Transaction was reverted."})
	require.Len(t, q, 2)
	assert.Equal(t, 1, q.Count(Error))

	front, ok := q.Front()
	require.True(t, ok)
	assert.Equal(t, "Mining... please wait.", front.Message)

	q.Dismiss()
	front, _ = q.Front()
	assert.Equal(t, "Transaction was reverted.", front.Message)

	q.Dismiss()
	q.Dismiss()
	assert.Empty(t, q)
}

func TestRender(t *testing.T) {
	a := Alert{
		Kind:    Success,
		Title:   "Minted",
		Message: "Your NFT was minted.",
		Link:    "https://testnets.opensea.io/assets/0x08C7898601E4FCd11b2D6310861e17240fad5Dd0/1",
	}
	out := ansi.Strip(Render(a, 2, 100, 40))
	assert.Contains(t, out, "Your NFT was minted.")
	assert.Contains(t, out, "c copy link")
	assert.Contains(t, out, "2 more alerts")

	out = ansi.Strip(Render(Alert{Message: "hi"}, 0, 80, 20))
	assert.Contains(t, out, "Notice")
	assert.NotContains(t, out, "copy link")
}
