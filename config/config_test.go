package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := LoadOrCreate(path)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err := os.Stat(path)
	require.NoError(t, err, "default config should be written on first run")

	cfg.WalletURL = "ws://127.0.0.1:1248"
	cfg.PollInterval = Duration(5 * time.Second)
	require.NoError(t, Save(path, cfg))

	reloaded := LoadOrCreate(path)
	assert.Equal(t, "ws://127.0.0.1:1248", reloaded.WalletURL)
	assert.Equal(t, Duration(5*time.Second), reloaded.PollInterval)
	assert.Equal(t, cfg.Chain, reloaded.Chain)
}

func TestLoadOrCreateInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	assert.Equal(t, DefaultConfig(), LoadOrCreate(path))
	assert.Equal(t, Config{}, Load(path))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("WALLET_RPC_URL", " http://localhost:8545 ")
	t.Setenv("MINT_CONTRACT_ADDRESS", "")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "http://localhost:8545", cfg.WalletURL)
	assert.Equal(t, DefaultConfig().Contract.Address, cfg.Contract.Address, "empty env must not override")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad address", func(c *Config) { c.Contract.Address = "0x123" }, true},
		{"bad chain id", func(c *Config) { c.Chain.ChainID = "sepolia" }, true},
		{"no marketplace", func(c *Config) { c.Links.MarketplaceAssetsURL = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLinks(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "https://twitter.com/gsrb_", cfg.Links.TwitterURL())

	cfg.Chain.BlockExplorerURLs = []string{"https://sepolia.etherscan.io/"}
	assert.Equal(t, "https://sepolia.etherscan.io", cfg.Chain.Explorer())

	cfg.Chain.BlockExplorerURLs = nil
	assert.Empty(t, cfg.Chain.Explorer())
}
