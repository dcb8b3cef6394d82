package main

import (
	"charm-mint-tui/gateway"
	"charm-mint-tui/mint"
	"charm-mint-tui/network"
	"charm-mint-tui/provider"

	"github.com/ethereum/go-ethereum/common"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture. Messages answering a
// wallet call carry the wiring generation they were issued under; Update
// drops them once the wallet has been re-wired.

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// providerDetectedMsg contains result of dialing the wallet endpoint
type providerDetectedMsg struct {
	url      string
	provider provider.Provider
	err      error
}

// authCheckedMsg contains result of the silent eth_accounts check at start-up
type authCheckedMsg struct {
	gen     int
	session gateway.Session
	err     error
}

// connectResultMsg contains result of an interactive connect
type connectResultMsg struct {
	gen     int
	session gateway.Session
	err     error
}

// chainCheckedMsg contains result of the network guard. manual is set when
// the user asked for the check.
type chainCheckedMsg struct {
	gen     int
	outcome network.Outcome
	manual  bool
	err     error
}

// mintSubmittedMsg is sent once the wallet accepted or refused the mint transaction
type mintSubmittedMsg struct {
	gen  int
	hash common.Hash
	err  error
}

// mintMinedMsg is sent once the mint transaction has a receipt
type mintMinedMsg struct {
	gen     int
	receipt mint.Receipt
	err     error
}

// mintEventMsg carries one NewNFTMinted event from the listener channel ch
type mintEventMsg struct {
	ch    <-chan mint.Event
	event mint.Event
}

// subscriptionClosedMsg is sent when listener channel ch is closed
type subscriptionClosedMsg struct {
	ch <-chan mint.Event
}

// collectionMsg contains collection name, symbol and the account's balance
type collectionMsg struct {
	gen        int
	account    string
	collection mint.Collection
	err        error
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct {
	err error
}
