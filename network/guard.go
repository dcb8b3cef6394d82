// Package network keeps the wallet on the chain the collection is deployed to.
package network

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"charm-mint-tui/config"
	"charm-mint-tui/metrics"
	"charm-mint-tui/provider"

	"github.com/charmbracelet/log"
)

// Outcome is the result of EnsureRequiredChain.
type Outcome int

const (
	// Skipped means no wallet was detected.
	Skipped Outcome = iota
	OnRequiredChain
	Switched
	// Added means the wallet did not know the chain and was asked to register it.
	Added
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case OnRequiredChain:
		return "on_chain"
	case Switched:
		return "switched"
	case Added:
		return "added"
	default:
		return "failed"
	}
}

type switchParams struct {
	ChainID string `json:"chainId"`
}

type Guard struct {
	provider provider.Provider
	chain    config.ChainParams
	logger   *log.Logger
	metrics  *metrics.Registry
}

// New returns a guard for chain. p may be nil when no wallet was detected.
func New(p provider.Provider, chain config.ChainParams, logger *log.Logger, m *metrics.Registry) *Guard {
	return &Guard{provider: p, chain: chain, logger: logger, metrics: m}
}

// Chain returns the required chain.
func (g *Guard) Chain() config.ChainParams {
	return g.chain
}

// EnsureRequiredChain asks the wallet to switch to the required chain when it
// is elsewhere, registering the chain first if the wallet does not know it.
// A single switch request is issued; registration is not followed by another
// switch because wallets switch as part of adding.
func (g *Guard) EnsureRequiredChain(ctx context.Context) (Outcome, error) {
	outcome, err := g.ensure(ctx)
	g.metrics.IncChainCheck(outcome.String())
	return outcome, err
}

func (g *Guard) ensure(ctx context.Context) (Outcome, error) {
	if g.provider == nil {
		g.logger.Warn("no wallet, skipping network check")
		return Skipped, nil
	}

	current, err := provider.ChainID(ctx, g.provider)
	if err != nil {
		g.logger.Error("eth_chainId failed", "err", err)
		return Failed, fmt.Errorf("read chain id: %w", err)
	}
	g.logger.Info("Connected to chain " + current)

	same, err := SameChain(current, g.chain.ChainID)
	if err != nil {
		return Failed, err
	}
	if same {
		return OnRequiredChain, nil
	}

	_, err = g.provider.Request(ctx, provider.MethodSwitchChain, switchParams{ChainID: g.chain.ChainID})
	if err == nil {
		g.logger.Info("Switched network", "chain", g.chain.ChainName)
		return Switched, nil
	}
	if !provider.IsUnrecognizedChain(err) {
		g.logger.Error("wallet_switchEthereumChain failed", "err", err)
		return Failed, fmt.Errorf("switch to %s: %w", g.chain.ChainName, err)
	}

	g.logger.Info("Wallet does not know the chain, adding it", "chain", g.chain.ChainName)
	if _, err := g.provider.Request(ctx, provider.MethodAddChain, g.chain); err != nil {
		g.logger.Error("wallet_addEthereumChain failed", "err", err)
		return Failed, fmt.Errorf("add %s: %w", g.chain.ChainName, err)
	}
	return Added, nil
}

// SameChain compares two hex chain ids numerically, so "0x04" equals "0x4".
func SameChain(a, b string) (bool, error) {
	x, err := parseChainID(a)
	if err != nil {
		return false, err
	}
	y, err := parseChainID(b)
	if err != nil {
		return false, err
	}
	return x.Cmp(y) == 0, nil
}

// parseChainID is lenient about case and leading zeros, which hexutil rejects
// but some wallets emit.
func parseChainID(s string) (*big.Int, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	v, ok := new(big.Int).SetString(digits, 16)
	if !ok || digits == "" {
		return nil, fmt.Errorf("invalid chain id %q", s)
	}
	return v, nil
}
