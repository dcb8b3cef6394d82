package main

import (
	"context"
	"time"

	"charm-mint-tui/gateway"
	"charm-mint-tui/mint"
	"charm-mint-tui/network"
	"charm-mint-tui/provider"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

const (
	requestTimeout = 30 * time.Second
	// the wallet may wait on the user before answering
	promptTimeout = 5 * time.Minute
	mineTimeout   = 15 * time.Minute
)

// dialFunc opens a provider for a wallet endpoint
type dialFunc func(url string) (provider.Provider, error)

// dialWallet connects to the wallet's JSON-RPC endpoint
func dialWallet(url string) (provider.Provider, error) {
	result := provider.Connect(url)
	if result.Error != nil {
		return nil, result.Error
	}
	return result.Client, nil
}

// detectProvider dials the wallet endpoint
func detectProvider(dial dialFunc, url string) tea.Cmd {
	return func() tea.Msg {
		p, err := dial(url)
		return providerDetectedMsg{url: url, provider: p, err: err}
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// checkAuthorization looks for an already authorized account without prompting
func checkAuthorization(g *gateway.Gateway, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		s, err := g.CheckExistingAuthorization(ctx)
		return authCheckedMsg{gen: gen, session: s, err: err}
	}
}

// connectWallet asks the wallet to authorize the client
func connectWallet(g *gateway.Gateway, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), promptTimeout)
		defer cancel()
		s, err := g.Connect(ctx)
		return connectResultMsg{gen: gen, session: s, err: err}
	}
}

// ensureChain runs the network guard
func ensureChain(g *network.Guard, gen int, manual bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), promptTimeout)
		defer cancel()
		outcome, err := g.EnsureRequiredChain(ctx)
		return chainCheckedMsg{gen: gen, outcome: outcome, manual: manual, err: err}
	}
}

// submitMint sends the mint transaction for the wallet to sign
func submitMint(b *mint.Bridge, gen int, from string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), promptTimeout)
		defer cancel()
		hash, err := b.Submit(ctx, from)
		return mintSubmittedMsg{gen: gen, hash: hash, err: err}
	}
}

// waitMined polls for the mint transaction's receipt
func waitMined(b *mint.Bridge, gen int, hash common.Hash) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mineTimeout)
		defer cancel()
		r, err := b.WaitMined(ctx, hash)
		return mintMinedMsg{gen: gen, receipt: r, err: err}
	}
}

// waitForMintEvent blocks on the listener channel for the next event
func waitForMintEvent(ch <-chan mint.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return subscriptionClosedMsg{ch: ch}
		}
		return mintEventMsg{ch: ch, event: ev}
	}
}

// loadCollection reads collection info for account
func loadCollection(b *mint.Bridge, gen int, account string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		c, err := b.Collection(ctx, account)
		return collectionMsg{gen: gen, account: account, collection: c, err: err}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{err: clipboard.WriteAll(text)}
	}
}
