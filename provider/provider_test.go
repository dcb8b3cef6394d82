package provider_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"charm-mint-tui/provider"
	"charm-mint-tui/provider/providertest"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	t.Run("plain provider error", func(t *testing.T) {
		err := &provider.Error{Code: provider.CodeUnrecognizedChain, Message: "unknown chain"}
		assert.Equal(t, provider.CodeUnrecognizedChain, provider.ErrorCode(err))
		assert.True(t, provider.IsUnrecognizedChain(err))
	})

	t.Run("wrapped provider error", func(t *testing.T) {
		err := fmt.Errorf("switch chain: %w", &provider.Error{Code: provider.CodeUserRejected})
		assert.True(t, provider.IsUserRejected(err))
	})

	t.Run("nested original error", func(t *testing.T) {
		err := &provider.Error{
			Code:    -32603,
			Message: "internal error",
			Data: map[string]any{
				"originalError": map[string]any{"code": float64(4902)},
			},
		}
		assert.True(t, provider.IsUnrecognizedChain(err))
	})

	t.Run("non provider error", func(t *testing.T) {
		assert.Zero(t, provider.ErrorCode(errors.New("boom")))
		assert.Zero(t, provider.ErrorCode(nil))
	})
}

func TestTypedRequests(t *testing.T) {
	ctx := context.Background()
	addr := "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"

	w := providertest.New().
		Return(provider.MethodAccounts, []string{addr}).
		Return(provider.MethodRequestAccounts, []string{}).
		Return(provider.MethodChainID, "0xaa36a7")

	accounts, err := provider.Accounts(ctx, w)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, common.HexToAddress(addr), accounts[0])

	requested, err := provider.RequestAccounts(ctx, w)
	require.NoError(t, err)
	assert.Empty(t, requested)

	id, err := provider.ChainID(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, "0xaa36a7", id)

	t.Run("error passthrough", func(t *testing.T) {
		w.Fail(provider.MethodRequestAccounts, provider.CodeUserRejected, "User rejected the request.")
		_, err := provider.RequestAccounts(ctx, w)
		require.Error(t, err)
		assert.True(t, provider.IsUserRejected(err))
	})

	t.Run("bad payload", func(t *testing.T) {
		w.Return(provider.MethodChainID, 11155111)
		_, err := provider.ChainID(ctx, w)
		assert.Error(t, err)
	})
}
