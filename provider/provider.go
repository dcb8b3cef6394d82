package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// JSON-RPC methods the client issues against the wallet.
const (
	MethodAccounts           = "eth_accounts"
	MethodRequestAccounts    = "eth_requestAccounts"
	MethodChainID            = "eth_chainId"
	MethodSwitchChain        = "wallet_switchEthereumChain"
	MethodAddChain           = "wallet_addEthereumChain"
	MethodSendTransaction    = "eth_sendTransaction"
	MethodTransactionReceipt = "eth_getTransactionReceipt"
	MethodBlockNumber        = "eth_blockNumber"
	MethodGetLogs            = "eth_getLogs"
	MethodCall               = "eth_call"
)

// EIP-1193 and EIP-3326 provider error codes.
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeUnsupportedMethod = 4200
	CodeDisconnected      = 4900
	CodeChainDisconnected = 4901
	CodeUnrecognizedChain = 4902
)

// Provider is the wallet capability handed to the application at start-up.
// It mirrors the EIP-1193 request API: one method, JSON in and out.
type Provider interface {
	Request(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

// Error is a structured error reported by the wallet.
type Error struct {
	Code    int
	Message string
	Data    any
}

func (e *Error) Error() string {
	return fmt.Sprintf("wallet error %d: %s", e.Code, e.Message)
}

// ErrorCode returns the wallet error code carried by err, or 0.
// Some wallets wrap the meaningful code in data.originalError.code, so that
// is consulted when the outer code is not a provider code.
func ErrorCode(err error) int {
	var perr *Error
	if !errors.As(err, &perr) {
		return 0
	}
	if perr.Code >= 4000 && perr.Code < 5000 {
		return perr.Code
	}
	if data, ok := perr.Data.(map[string]any); ok {
		if orig, ok := data["originalError"].(map[string]any); ok {
			if code, ok := orig["code"].(float64); ok {
				return int(code)
			}
		}
	}
	return perr.Code
}

// IsUserRejected reports whether the user declined the request in the wallet.
func IsUserRejected(err error) bool {
	return ErrorCode(err) == CodeUserRejected
}

// IsUnrecognizedChain reports whether the wallet does not know the requested chain.
func IsUnrecognizedChain(err error) bool {
	return ErrorCode(err) == CodeUnrecognizedChain
}

// Accounts lists the accounts already authorized for this client without prompting.
func Accounts(ctx context.Context, p Provider) ([]common.Address, error) {
	return requestAddresses(ctx, p, MethodAccounts)
}

// RequestAccounts asks the wallet to authorize this client. The wallet may prompt the user.
func RequestAccounts(ctx context.Context, p Provider) ([]common.Address, error) {
	return requestAddresses(ctx, p, MethodRequestAccounts)
}

// ChainID returns the wallet's active chain id as the hex string it reported.
func ChainID(ctx context.Context, p Provider) (string, error) {
	raw, err := p.Request(ctx, MethodChainID)
	if err != nil {
		return "", err
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", fmt.Errorf("decode chain id: %w", err)
	}
	return id, nil
}

func requestAddresses(ctx context.Context, p Provider, method string) ([]common.Address, error) {
	raw, err := p.Request(ctx, method)
	if err != nil {
		return nil, err
	}
	var out []common.Address
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", method, err)
	}
	return out, nil
}
