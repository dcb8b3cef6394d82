package mint

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"charm-mint-tui/provider"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

type subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	events chan Event
}

// Subscribe arms the NewNFTMinted listener and returns its event channel.
// At most one listener is active: arming again tears the previous one down
// and closes its channel. ctx only bounds the setup calls; the listener
// lives until Unsubscribe.
func (b *Bridge) Subscribe(ctx context.Context) (<-chan Event, error) {
	if b.provider == nil {
		b.logger.Warn("Ethereum object doesn't exist!")
		return nil, ErrNoProvider
	}
	ev, ok := b.abi.Events[eventName]
	if !ok {
		return nil, fmt.Errorf("abi has no %s event", eventName)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	b.stopLocked()

	subCtx, cancel := context.WithCancel(context.Background())
	s := &subscription{
		cancel: cancel,
		done:   make(chan struct{}),
		events: make(chan Event, 16),
	}

	if lf, ok := b.provider.(ethereum.LogFilterer); ok {
		logs := make(chan types.Log, 16)
		q := ethereum.FilterQuery{
			Addresses: []common.Address{b.address},
			Topics:    [][]common.Hash{{ev.ID}},
		}
		gethSub, err := lf.SubscribeFilterLogs(ctx, q, logs)
		if err == nil {
			go b.runPush(subCtx, s, gethSub, logs)
			b.activate(s)
			return s.events, nil
		}
		b.logger.Debug("push subscription unavailable, polling for logs", "err", err)
	}

	head, err := b.blockNumber(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("arm %s listener: %w", eventName, err)
	}
	go b.runPoll(subCtx, s, head+1)
	b.activate(s)
	return s.events, nil
}

// Unsubscribe stops the active listener, if any, and waits for it to exit.
func (b *Bridge) Unsubscribe() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

// Close stops the active listener and makes later Subscribe calls fail, so
// a call still in flight against a replaced bridge cannot arm a new one.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.stopLocked()
}

// Subscribed reports whether a listener is armed.
func (b *Bridge) Subscribed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sub != nil
}

func (b *Bridge) activate(s *subscription) {
	b.sub = s
	b.metrics.SetActiveSubscriptions(1)
}

func (b *Bridge) stopLocked() {
	if b.sub == nil {
		return
	}
	b.sub.cancel()
	<-b.sub.done
	b.sub = nil
	b.metrics.SetActiveSubscriptions(0)
}

func (b *Bridge) runPush(ctx context.Context, s *subscription, gethSub ethereum.Subscription, logs <-chan types.Log) {
	dropped := false
	// runs after done is closed, so a concurrent stopLocked never waits on it
	defer func() {
		if dropped {
			b.release(s)
		}
	}()
	defer close(s.done)
	defer close(s.events)
	defer gethSub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-gethSub.Err():
			if err != nil {
				b.logger.Error("mint event subscription dropped", "err", err)
			}
			dropped = true
			return
		case l := <-logs:
			if !b.deliver(ctx, s, l) {
				return
			}
		}
	}
}

// release forgets s if it is still the active listener.
func (b *Bridge) release(s *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sub != s {
		return
	}
	b.sub = nil
	b.metrics.SetActiveSubscriptions(0)
}

func (b *Bridge) runPoll(ctx context.Context, s *subscription, from uint64) {
	defer close(s.done)
	defer close(s.events)

	ticker := time.NewTicker(b.poll)
	defer ticker.Stop()

	next := from
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		head, err := b.blockNumber(ctx)
		if err != nil {
			if ctx.Err() == nil {
				b.logger.Warn("poll block number", "err", err)
			}
			continue
		}
		if head < next {
			continue
		}

		logs, err := b.getLogs(ctx, next, head)
		if err != nil {
			if ctx.Err() == nil {
				b.logger.Warn("poll mint events", "err", err)
			}
			continue
		}
		for _, l := range logs {
			if !b.deliver(ctx, s, l) {
				return
			}
		}
		next = head + 1
	}
}

// deliver decodes l and hands it to the listener. It returns false once the
// subscription is cancelled.
func (b *Bridge) deliver(ctx context.Context, s *subscription, l types.Log) bool {
	if l.Removed {
		return true
	}
	ev, err := b.decode(l)
	if err != nil {
		b.logger.Warn("skipping undecodable log", "tx", l.TxHash.Hex(), "err", err)
		return true
	}
	b.logger.Info("NewNFTMinted", "sender", ev.Sender.Hex(), "tokenId", ev.TokenID)

	select {
	case <-ctx.Done():
		return false
	case s.events <- ev:
		b.metrics.IncMintEvent()
		return true
	}
}

func (b *Bridge) decode(l types.Log) (Event, error) {
	ev := b.abi.Events[eventName]
	if len(l.Topics) == 0 || l.Topics[0] != ev.ID {
		return Event{}, fmt.Errorf("not a %s log", eventName)
	}

	var out struct {
		Sender  common.Address
		TokenId *big.Int
	}
	if len(l.Data) > 0 {
		if err := b.abi.UnpackIntoInterface(&out, eventName, l.Data); err != nil {
			return Event{}, err
		}
	}
	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if len(indexed) > 0 {
		if err := abi.ParseTopics(&out, indexed, l.Topics[1:]); err != nil {
			return Event{}, err
		}
	}
	if out.TokenId == nil {
		return Event{}, fmt.Errorf("%s log without token id", eventName)
	}

	return Event{
		Sender:      out.Sender,
		TokenID:     out.TokenId,
		TxHash:      l.TxHash,
		BlockNumber: l.BlockNumber,
	}, nil
}

type logFilter struct {
	Address   common.Address  `json:"address"`
	Topics    [][]common.Hash `json:"topics"`
	FromBlock string          `json:"fromBlock"`
	ToBlock   string          `json:"toBlock"`
}

func (b *Bridge) getLogs(ctx context.Context, from, to uint64) ([]types.Log, error) {
	raw, err := b.provider.Request(ctx, provider.MethodGetLogs, logFilter{
		Address:   b.address,
		Topics:    [][]common.Hash{{b.abi.Events[eventName].ID}},
		FromBlock: hexutil.EncodeUint64(from),
		ToBlock:   hexutil.EncodeUint64(to),
	})
	if err != nil {
		return nil, err
	}
	var logs []types.Log
	if err := json.Unmarshal(raw, &logs); err != nil {
		return nil, fmt.Errorf("decode logs: %w", err)
	}
	return logs, nil
}

func (b *Bridge) blockNumber(ctx context.Context) (uint64, error) {
	raw, err := b.provider.Request(ctx, provider.MethodBlockNumber)
	if err != nil {
		return 0, err
	}
	var n hexutil.Uint64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("decode block number: %w", err)
	}
	return uint64(n), nil
}
