package provider

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client is a Provider backed by a wallet's JSON-RPC endpoint
type Client struct {
	rpc *rpc.Client
	eth *ethclient.Client
	URL string
}

// ConnectResult holds the result of a wallet connection attempt
type ConnectResult struct {
	Client *Client
	Error  error
}

// Connect attempts to connect to a wallet endpoint
func Connect(url string) ConnectResult {
	return ConnectWithTimeout(url, 8*time.Second)
}

// ConnectWithTimeout attempts to connect with a custom timeout
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Client: nil, Error: err}
	}

	return ConnectResult{
		Client: &Client{
			rpc: c,
			eth: ethclient.NewClient(c),
			URL: url,
		},
		Error: nil,
	}
}

// Request implements Provider.
func (c *Client) Request(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.rpc.CallContext(ctx, &raw, method, params...); err != nil {
		return nil, convertError(err)
	}
	return raw, nil
}

// SubscribeFilterLogs implements ethereum.LogFilterer so callers can use push
// subscriptions when the endpoint is a websocket or IPC transport.
func (c *Client) SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return c.eth.SubscribeFilterLogs(ctx, q, ch)
}

// FilterLogs implements ethereum.LogFilterer.
func (c *Client) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	return c.eth.FilterLogs(ctx, q)
}

// Close releases the underlying connection.
func (c *Client) Close() {
	if c == nil || c.rpc == nil {
		return
	}
	c.rpc.Close()
}

func convertError(err error) error {
	var rpcErr rpc.Error
	if !errors.As(err, &rpcErr) {
		return err
	}
	perr := &Error{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		perr.Data = normalizeData(dataErr.ErrorData())
	}
	return perr
}

// normalizeData round-trips error data through JSON so nested codes decode
// to the same shapes regardless of transport.
func normalizeData(data any) any {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return data
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return data
	}
	return out
}
