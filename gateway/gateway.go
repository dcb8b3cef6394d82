// Package gateway authorizes the client with the user's wallet and exposes the
// connected account.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"charm-mint-tui/metrics"
	"charm-mint-tui/mint"
	"charm-mint-tui/provider"

	"github.com/charmbracelet/log"
)

var (
	// ErrNoProvider is returned by Connect when no wallet was detected.
	ErrNoProvider = errors.New("no wallet detected")
	// ErrNoAccounts is returned when the wallet authorized zero accounts.
	ErrNoAccounts = errors.New("wallet returned no accounts")
)

// Subscriber arms the mint event subscription for a freshly authorized account.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan mint.Event, error)
}

// Session is the outcome of a successful authorization. Account is empty
// when the wallet has not authorized this client.
type Session struct {
	Account string
	Events  <-chan mint.Event
}

type Gateway struct {
	provider   provider.Provider
	subscriber Subscriber
	logger     *log.Logger
	metrics    *metrics.Registry
}

// New returns a gateway. p may be nil when no wallet was detected.
func New(p provider.Provider, sub Subscriber, logger *log.Logger, m *metrics.Registry) *Gateway {
	return &Gateway{provider: p, subscriber: sub, logger: logger, metrics: m}
}

// CheckExistingAuthorization looks for accounts the wallet already authorized,
// without prompting. A missing wallet or an empty list is not an error.
func (g *Gateway) CheckExistingAuthorization(ctx context.Context) (Session, error) {
	if g.provider == nil {
		g.logger.Warn("Make sure you have a wallet running!")
		return Session{}, nil
	}
	g.logger.Debug("We have a wallet provider")

	accounts, err := provider.Accounts(ctx, g.provider)
	if err != nil {
		g.logger.Error("eth_accounts failed", "err", err)
		return Session{}, fmt.Errorf("list authorized accounts: %w", err)
	}
	if len(accounts) == 0 {
		g.logger.Info("No authorized account found")
		return Session{}, nil
	}

	account := accounts[0].Hex()
	g.logger.Info("Found an authorized account", "account", account)
	g.metrics.IncConnect("authorized")
	return g.session(ctx, account), nil
}

// Connect asks the wallet to authorize this client, which may prompt the user.
func (g *Gateway) Connect(ctx context.Context) (Session, error) {
	if g.provider == nil {
		g.metrics.IncConnect("no_provider")
		return Session{}, ErrNoProvider
	}

	accounts, err := provider.RequestAccounts(ctx, g.provider)
	if err != nil {
		if provider.IsUserRejected(err) {
			g.metrics.IncConnect("rejected")
		} else {
			g.metrics.IncConnect("failed")
		}
		g.logger.Error("eth_requestAccounts failed", "err", err)
		return Session{}, fmt.Errorf("request accounts: %w", err)
	}
	if len(accounts) == 0 {
		g.metrics.IncConnect("failed")
		return Session{}, ErrNoAccounts
	}

	account := accounts[0].Hex()
	g.logger.Info("Connected", "account", account)
	g.metrics.IncConnect("connected")
	return g.session(ctx, account), nil
}

// session arms the event subscription. A failure to arm leaves the account
// connected; minting still works without notifications.
func (g *Gateway) session(ctx context.Context, account string) Session {
	s := Session{Account: account}
	if g.subscriber == nil {
		return s
	}
	events, err := g.subscriber.Subscribe(ctx)
	if err != nil {
		g.logger.Error("could not set up mint event listener", "err", err)
		return s
	}
	g.logger.Info("Setup event listener!")
	s.Events = events
	return s
}
