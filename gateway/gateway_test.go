package gateway

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"charm-mint-tui/metrics"
	"charm-mint-tui/mint"
	"charm-mint-tui/provider"
	"charm-mint-tui/provider/providertest"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const account = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"

var quiet = log.New(io.Discard)

type countingSubscriber struct {
	calls int
	err   error
}

func (s *countingSubscriber) Subscribe(context.Context) (<-chan mint.Event, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return make(chan mint.Event), nil
}

func TestCheckExistingAuthorization(t *testing.T) {
	ctx := context.Background()

	t.Run("no provider is a silent no-op", func(t *testing.T) {
		sub := &countingSubscriber{}
		s, err := New(nil, sub, quiet, nil).CheckExistingAuthorization(ctx)
		require.NoError(t, err)
		assert.Empty(t, s.Account)
		assert.Zero(t, sub.calls)
	})

	t.Run("no authorized accounts", func(t *testing.T) {
		sub := &countingSubscriber{}
		w := providertest.New().Return(provider.MethodAccounts, []string{})
		s, err := New(w, sub, quiet, nil).CheckExistingAuthorization(ctx)
		require.NoError(t, err)
		assert.Empty(t, s.Account)
		assert.Zero(t, sub.calls)
		assert.Zero(t, w.Count(provider.MethodRequestAccounts), "must not prompt")
	})

	t.Run("authorized account arms listener", func(t *testing.T) {
		sub := &countingSubscriber{}
		w := providertest.New().Return(provider.MethodAccounts, []string{account, "0x0000000000000000000000000000000000000001"})
		s, err := New(w, sub, quiet, nil).CheckExistingAuthorization(ctx)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(account).Hex(), s.Account)
		assert.NotNil(t, s.Events)
		assert.Equal(t, 1, sub.calls)
	})

	t.Run("listener failure keeps account", func(t *testing.T) {
		sub := &countingSubscriber{err: errors.New("no logs")}
		w := providertest.New().Return(provider.MethodAccounts, []string{account})
		s, err := New(w, sub, quiet, nil).CheckExistingAuthorization(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, s.Account)
		assert.Nil(t, s.Events)
	})

	t.Run("provider error", func(t *testing.T) {
		w := providertest.New().Fail(provider.MethodAccounts, provider.CodeDisconnected, "disconnected")
		s, err := New(w, nil, quiet, nil).CheckExistingAuthorization(ctx)
		assert.Error(t, err)
		assert.Empty(t, s.Account)
	})
}

func TestRepeatedChecksKeepOneListener(t *testing.T) {
	ctx := context.Background()
	m := metrics.New()
	w := providertest.New().
		Return(provider.MethodAccounts, []string{account}).
		Return(provider.MethodBlockNumber, "0x10").
		Return(provider.MethodGetLogs, []any{})
	bridge := mint.New(w, mint.Config{
		Address:      common.HexToAddress("0x08C7898601E4FCd11b2D6310861e17240fad5Dd0"),
		ABI:          mint.DefaultABI(),
		PollInterval: time.Hour,
	}, quiet, m)
	defer bridge.Unsubscribe()

	g := New(w, bridge, quiet, m)
	first, err := g.CheckExistingAuthorization(ctx)
	require.NoError(t, err)
	second, err := g.CheckExistingAuthorization(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Account, second.Account)
	_, open := <-first.Events
	assert.False(t, open, "first listener must be torn down")
	assert.True(t, bridge.Subscribed())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveSubscriptions()))
}

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("no provider", func(t *testing.T) {
		m := metrics.New()
		s, err := New(nil, &countingSubscriber{}, quiet, m).Connect(ctx)
		assert.ErrorIs(t, err, ErrNoProvider)
		assert.Empty(t, s.Account)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Connects("no_provider")))
	})

	t.Run("connects first account", func(t *testing.T) {
		sub := &countingSubscriber{}
		w := providertest.New().Return(provider.MethodRequestAccounts, []string{account})
		s, err := New(w, sub, quiet, nil).Connect(ctx)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(account).Hex(), s.Account)
		assert.Equal(t, 1, sub.calls)
	})

	t.Run("user rejects", func(t *testing.T) {
		m := metrics.New()
		sub := &countingSubscriber{}
		w := providertest.New().Fail(provider.MethodRequestAccounts, provider.CodeUserRejected, "User rejected the request.")
		s, err := New(w, sub, quiet, m).Connect(ctx)
		require.Error(t, err)
		assert.True(t, provider.IsUserRejected(err))
		assert.Empty(t, s.Account)
		assert.Zero(t, sub.calls)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Connects("rejected")))
	})

	t.Run("empty account list", func(t *testing.T) {
		w := providertest.New().Return(provider.MethodRequestAccounts, []string{})
		_, err := New(w, nil, quiet, nil).Connect(ctx)
		assert.ErrorIs(t, err, ErrNoAccounts)
	})
}
