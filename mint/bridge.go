// Package mint talks to the NFT collection contract through the wallet: it
// submits mint transactions, waits for them to be mined and listens for the
// contract's NewNFTMinted event.
package mint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"charm-mint-tui/metrics"
	"charm-mint-tui/provider"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	// ErrNoProvider is returned when no wallet was detected.
	ErrNoProvider = errors.New("ethereum provider doesn't exist")
	// ErrReverted is returned by WaitMined for a receipt with failed status.
	ErrReverted = errors.New("transaction was reverted")
	// ErrClosed is returned by Subscribe once the bridge is closed.
	ErrClosed = errors.New("bridge closed")
)

// Config locates the contract.
type Config struct {
	Address      common.Address
	ABI          abi.ABI
	PollInterval time.Duration
}

// Event is one NewNFTMinted emission.
type Event struct {
	Sender      common.Address
	TokenID     *big.Int
	TxHash      common.Hash
	BlockNumber uint64
}

// Receipt is the part of a transaction receipt the client cares about.
type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	Status      uint64
}

// Collection describes the contract and the caller's holdings.
type Collection struct {
	Name    string
	Symbol  string
	Balance *big.Int
}

// Bridge is a signer-bound handle to the collection contract. Signing happens
// in the wallet: transactions go out through eth_sendTransaction.
type Bridge struct {
	provider provider.Provider
	address  common.Address
	abi      abi.ABI
	poll     time.Duration
	logger   *log.Logger
	metrics  *metrics.Registry

	mu     sync.Mutex
	sub    *subscription
	closed bool
}

// New returns a bridge. p may be nil when no wallet was detected.
func New(p provider.Provider, cfg Config, logger *log.Logger, m *metrics.Registry) *Bridge {
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = 2 * time.Second
	}
	return &Bridge{
		provider: p,
		address:  cfg.Address,
		abi:      cfg.ABI,
		poll:     poll,
		logger:   logger,
		metrics:  m,
	}
}

// Address returns the contract address.
func (b *Bridge) Address() common.Address {
	return b.address
}

type txArgs struct {
	From common.Address `json:"from"`
	To   common.Address `json:"to"`
	Data hexutil.Bytes  `json:"data"`
}

type callArgs struct {
	To   common.Address `json:"to"`
	Data hexutil.Bytes  `json:"data"`
}

// Submit sends the mint call for from. It returns once the wallet has
// broadcast the transaction; use WaitMined to wait for inclusion.
func (b *Bridge) Submit(ctx context.Context, from string) (common.Hash, error) {
	if b.provider == nil {
		b.logger.Warn("Ethereum object doesn't exist!")
		return common.Hash{}, ErrNoProvider
	}
	if !common.IsHexAddress(from) {
		return common.Hash{}, fmt.Errorf("invalid sender %q", from)
	}

	data, err := b.abi.Pack(mintMethod)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pack %s: %w", mintMethod, err)
	}

	b.logger.Info("Going to pop wallet now to pay gas...")
	raw, err := b.provider.Request(ctx, provider.MethodSendTransaction, txArgs{
		From: common.HexToAddress(from),
		To:   b.address,
		Data: data,
	})
	if err != nil {
		if provider.IsUserRejected(err) {
			b.metrics.IncMint("rejected")
		} else {
			b.metrics.IncMint("failed")
		}
		return common.Hash{}, fmt.Errorf("send mint transaction: %w", err)
	}

	var hash common.Hash
	if err := json.Unmarshal(raw, &hash); err != nil {
		b.metrics.IncMint("failed")
		return common.Hash{}, fmt.Errorf("decode transaction hash: %w", err)
	}
	b.metrics.IncMint("submitted")
	return hash, nil
}

type receiptJSON struct {
	TxHash      common.Hash    `json:"transactionHash"`
	BlockNumber *hexutil.Big   `json:"blockNumber"`
	Status      hexutil.Uint64 `json:"status"`
}

// WaitMined polls until the transaction is mined or ctx is cancelled.
func (b *Bridge) WaitMined(ctx context.Context, hash common.Hash) (Receipt, error) {
	if b.provider == nil {
		return Receipt{}, ErrNoProvider
	}

	ticker := time.NewTicker(b.poll)
	defer ticker.Stop()

	for {
		raw, err := b.provider.Request(ctx, provider.MethodTransactionReceipt, hash)
		if err != nil {
			b.metrics.IncMint("failed")
			return Receipt{}, fmt.Errorf("get receipt: %w", err)
		}
		if len(raw) > 0 && string(raw) != "null" {
			var rj receiptJSON
			if err := json.Unmarshal(raw, &rj); err != nil {
				b.metrics.IncMint("failed")
				return Receipt{}, fmt.Errorf("decode receipt: %w", err)
			}
			r := Receipt{TxHash: rj.TxHash, Status: uint64(rj.Status)}
			if rj.BlockNumber != nil {
				r.BlockNumber = rj.BlockNumber.ToInt().Uint64()
			}
			if r.Status == 0 {
				b.metrics.IncMint("reverted")
				return r, ErrReverted
			}
			b.metrics.IncMint("mined")
			return r, nil
		}

		select {
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Collection reads the collection name and symbol and owner's balance.
func (b *Bridge) Collection(ctx context.Context, owner string) (Collection, error) {
	if b.provider == nil {
		return Collection{}, ErrNoProvider
	}

	var c Collection
	out, err := b.call(ctx, "name")
	if err != nil {
		return c, err
	}
	c.Name, _ = out[0].(string)

	out, err = b.call(ctx, "symbol")
	if err != nil {
		return c, err
	}
	c.Symbol, _ = out[0].(string)

	if common.IsHexAddress(owner) {
		out, err = b.call(ctx, "balanceOf", common.HexToAddress(owner))
		if err != nil {
			return c, err
		}
		c.Balance, _ = out[0].(*big.Int)
	}
	return c, nil
}

func (b *Bridge) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := b.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	raw, err := b.provider.Request(ctx, provider.MethodCall, callArgs{To: b.address, Data: data}, "latest")
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	var ret hexutil.Bytes
	if err := json.Unmarshal(raw, &ret); err != nil {
		return nil, fmt.Errorf("decode %s result: %w", method, err)
	}
	out, err := b.abi.Unpack(method, ret)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s returned nothing", method)
	}
	return out, nil
}
