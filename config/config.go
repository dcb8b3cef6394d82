package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Config represents the application configuration
type Config struct {
	WalletURL    string         `json:"wallet_url"`
	Chain        ChainParams    `json:"chain"`
	Contract     ContractConfig `json:"contract"`
	Links        Links          `json:"links"`
	PollInterval Duration       `json:"poll_interval,omitempty"`
	MetricsAddr  string         `json:"metrics_addr,omitempty"`
	Logger       bool           `json:"logger"`
}

// ChainParams describes the required network. Field names follow EIP-3085 so the
// struct can be sent to wallet_addEthereumChain as is.
type ChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls,omitempty"`
}

// NativeCurrency is the chain's gas token
type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// ContractConfig locates the NFT collection contract
type ContractConfig struct {
	Address string `json:"address"`
	ABIPath string `json:"abi_path,omitempty"`
}

// Links are the outbound links shown in the footer and in mint alerts
type Links struct {
	TwitterHandle        string `json:"twitter_handle"`
	CollectionURL        string `json:"collection_url"`
	MarketplaceAssetsURL string `json:"marketplace_assets_url"`
}

// Duration is a time.Duration that reads and writes as "2s" in JSON.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// TwitterURL returns the profile link for the configured handle
func (l Links) TwitterURL() string {
	return "https://twitter.com/" + l.TwitterHandle
}

// Explorer returns the first block explorer URL without a trailing slash
func (c ChainParams) Explorer() string {
	if len(c.BlockExplorerURLs) == 0 {
		return ""
	}
	return strings.TrimRight(c.BlockExplorerURLs[0], "/")
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		WalletURL: "http://127.0.0.1:1248",
		Chain: ChainParams{
			ChainID:   "0xaa36a7",
			ChainName: "Sepolia Test Network",
			NativeCurrency: NativeCurrency{
				Name:     "Sepolia Ether",
				Symbol:   "ETH",
				Decimals: 18,
			},
			RPCURLs:           []string{"https://ethereum-sepolia-rpc.publicnode.com"},
			BlockExplorerURLs: []string{"https://sepolia.etherscan.io"},
		},
		Contract: ContractConfig{
			Address: "0x08C7898601E4FCd11b2D6310861e17240fad5Dd0",
		},
		Links: Links{
			TwitterHandle:        "gsrb_",
			CollectionURL:        "https://testnets.opensea.io/collection/bigdawgselects",
			MarketplaceAssetsURL: "https://testnets.opensea.io/assets",
		},
		PollInterval: Duration(2 * time.Second),
		Logger:       false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	// Try to read existing config
	data, err := os.ReadFile(path)
	if err != nil {
		// File doesn't exist, create default
		cfg := DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}

	// Start from defaults so older files pick up new fields
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Invalid config, return default
		return DefaultConfig()
	}

	return cfg
}

// ApplyEnv overrides file values with environment variables
func (c *Config) ApplyEnv() {
	c.WalletURL = envOr("WALLET_RPC_URL", c.WalletURL)
	c.Contract.Address = envOr("MINT_CONTRACT_ADDRESS", c.Contract.Address)
	c.MetricsAddr = envOr("MINT_METRICS_ADDR", c.MetricsAddr)
}

// Validate reports configuration that would make every mint fail
func (c Config) Validate() error {
	if !common.IsHexAddress(c.Contract.Address) {
		return fmt.Errorf("invalid contract address %q", c.Contract.Address)
	}
	if _, err := hexutil.DecodeBig(c.Chain.ChainID); err != nil {
		return fmt.Errorf("invalid chain id %q: %w", c.Chain.ChainID, err)
	}
	if c.Links.MarketplaceAssetsURL == "" {
		return fmt.Errorf("marketplace assets url is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return fallback
}
