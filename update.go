package main

import (
	"errors"
	"fmt"
	"strings"

	"charm-mint-tui/config"
	"charm-mint-tui/gateway"
	"charm-mint-tui/helpers"
	"charm-mint-tui/mint"
	"charm-mint-tui/network"
	"charm-mint-tui/provider"
	"charm-mint-tui/views/alert"
	logview "charm-mint-tui/views/log"
	"charm-mint-tui/views/settings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/ethereum/go-ethereum/common"
)

const (
	miningMessage     = "Mining... please wait."
	mintFailedMessage = "Minting failed: the transaction was rejected or reverted."
	mintedMessage     = "Your NFT was minted and sent to your wallet. Please wait ~10 minutes for it to appear on the marketplace. Here's the link:"
)

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var tempWalletURL string

// -------------------- UPDATE --------------------

// Update implements tea.Model interface and handles all messages
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var formCmd tea.Cmd

	// The settings form sees every message first; keys stop there.
	if m.activePage == pageSettings && m.form != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.form = nil
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f

			switch m.form.State {
			case huh.StateCompleted:
				m.form = nil
				return m, m.applyWalletURL(strings.TrimSpace(tempWalletURL))
			case huh.StateAborted:
				m.form = nil
				return m, nil
			}
		}
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		formCmd = cmd
	}

	cmd := m.handleMsg(msg)
	m.updateLogViewport()
	if formCmd == nil {
		return m, cmd
	}
	return m, tea.Batch(formCmd, cmd)
}

func (m *model) handleMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return nil
		}
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.help.Width = msg.Width
		// Width accounts for border and padding
		m.logViewport.Width = max(0, msg.Width-6)
		m.logViewport.Height = logview.Height(msg.Height)
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		// Update log spinner too if log is enabled but not ready
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)

	case providerDetectedMsg:
		if msg.url != m.cfg.WalletURL {
			// endpoint changed while dialing
			if c, ok := msg.provider.(interface{ Close() }); ok {
				c.Close()
			}
			return nil
		}
		m.detecting = false
		if msg.err != nil {
			m.status = "No wallet detected at " + msg.url
			m.addLog("warning", fmt.Sprintf("Make sure you have a wallet running at `%s`: %s", msg.url, msg.err))
			m.wire(nil)
		} else {
			m.status = ""
			m.addLog("success", fmt.Sprintf("Wallet detected at `%s`", msg.url))
			m.wire(msg.provider)
		}
		// Both start-up checks run regardless of the outcome, in no particular order.
		m.checkingChain = true
		return tea.Batch(ensureChain(m.guard, m.gen, false), checkAuthorization(m.gateway, m.gen))

	case authCheckedMsg:
		if msg.gen != m.gen {
			m.dropStale("authorization check")
			return nil
		}
		if msg.err != nil {
			m.status = "Could not read wallet accounts"
			m.addLog("error", fmt.Sprintf("Authorization check failed: %s", msg.err))
			return nil
		}
		if msg.session.Account == "" {
			return nil
		}
		return m.startSession(msg.session)

	case connectResultMsg:
		if msg.gen != m.gen {
			m.dropStale("connect")
			return nil
		}
		m.connecting = false
		if msg.err != nil {
			m.alerts.Push(connectAlert(msg.err, m.cfg.WalletURL))
			m.addLog("error", fmt.Sprintf("Connect failed: %s", msg.err))
			return nil
		}
		return m.startSession(msg.session)

	case chainCheckedMsg:
		if msg.gen != m.gen {
			m.dropStale("network check")
			return nil
		}
		m.checkingChain = false
		m.handleChainChecked(msg)
		return nil

	case mintSubmittedMsg:
		if msg.gen != m.gen {
			m.dropStale("mint submission")
			return nil
		}
		if msg.err != nil {
			m.minting = false
			m.failMint(msg.err)
			return nil
		}
		m.pendingTx = msg.hash
		m.addLog("info", fmt.Sprintf("%s tx `%s`", miningMessage, helpers.ShortenAddr(msg.hash.Hex())))
		m.alerts.Push(alert.Alert{
			Kind:    alert.Info,
			Title:   "Mining",
			Message: miningMessage,
			Link:    m.txURL(msg.hash),
		})
		return waitMined(m.bridge, m.gen, msg.hash)

	case mintMinedMsg:
		if msg.gen != m.gen {
			m.dropStale("mint receipt")
			return nil
		}
		m.minting = false
		m.pendingTx = common.Hash{}
		if msg.err != nil {
			m.failMint(msg.err)
			return nil
		}
		if url := m.txURL(msg.receipt.TxHash); url != "" {
			m.addLog("success", "Mined, see transaction: "+url)
		} else {
			m.addLog("success", "Mined in block "+fmt.Sprint(msg.receipt.BlockNumber))
		}
		return loadCollection(m.bridge, m.gen, m.account)

	case mintEventMsg:
		if msg.ch != m.events {
			return nil
		}
		link := helpers.AssetURL(m.cfg.Links.MarketplaceAssetsURL, m.bridge.Address(), msg.event.TokenID)
		m.alerts.Push(alert.Alert{
			Kind:    alert.Success,
			Title:   "NFT minted",
			Message: mintedMessage,
			Link:    link,
			QR:      true,
		})
		m.addLog("success", fmt.Sprintf("Token #%s minted by `%s`", msg.event.TokenID, helpers.ShortenAddr(msg.event.Sender.Hex())))
		return waitForMintEvent(msg.ch)

	case subscriptionClosedMsg:
		if msg.ch == m.events {
			m.events = nil
			m.status = "Mint event listener stopped"
			m.addLog("warning", "Mint event listener stopped")
		}
		return nil

	case collectionMsg:
		if msg.gen != m.gen || msg.account != m.account {
			return nil
		}
		if msg.err != nil {
			m.addLog("warning", fmt.Sprintf("Could not load collection info: %s", msg.err))
			return nil
		}
		c := msg.collection
		m.collection = &c
		return nil

	case clipboardCopiedMsg:
		if msg.err != nil {
			m.addLog("error", fmt.Sprintf("Clipboard copy failed: %s", msg.err))
		} else {
			m.addLog("info", "Copied link to clipboard")
		}
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// alerts are modal
	if front, ok := m.alerts.Front(); ok {
		switch msg.String() {
		case "ctrl+c":
			return tea.Quit
		case "enter", "esc", " ":
			m.alerts.Dismiss()
		case "c", "C":
			if front.Link != "" {
				return copyToClipboard(front.Link)
			}
		}
		return nil
	}

	// global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Log):
		return m.toggleLog()

	case key.Matches(msg, m.keys.Scroll):
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return cmd
		}
		return nil
	}

	// page-specific behavior
	switch m.activePage {
	case pageSettings:
		switch msg.String() {
		case "e", "E":
			tempWalletURL = m.cfg.WalletURL
			m.form = settings.CreateForm(&tempWalletURL)
		case "esc":
			m.activePage = pageLanding
		}
		return nil

	default:
		switch {
		case key.Matches(msg, m.keys.Action):
			return m.primaryAction()
		case key.Matches(msg, m.keys.Network):
			return m.retryNetwork()
		case key.Matches(msg, m.keys.Settings):
			m.activePage = pageSettings
		}
		return nil
	}
}

// primaryAction is the single call-to-action control: connect when no account
// is known, mint otherwise.
func (m *model) primaryAction() tea.Cmd {
	if m.account == "" {
		if m.connecting {
			return nil
		}
		if m.detecting {
			m.addLog("info", "Still looking for a wallet…")
			return nil
		}
		m.connecting = true
		return connectWallet(m.gateway, m.gen)
	}

	if m.minting {
		m.addLog("warning", "A mint is already in flight")
		return nil
	}
	m.minting = true
	return submitMint(m.bridge, m.gen, m.account)
}

// retryNetwork re-runs the network guard on user request
func (m *model) retryNetwork() tea.Cmd {
	if m.detecting || m.checkingChain {
		return nil
	}
	m.checkingChain = true
	m.addLog("info", fmt.Sprintf("Checking network, want %s", m.cfg.Chain.ChainName))
	return ensureChain(m.guard, m.gen, true)
}

func (m *model) handleChainChecked(msg chainCheckedMsg) {
	switch msg.outcome {
	case network.OnRequiredChain, network.Switched, network.Added:
		m.chainOK = true
		m.chainStatus = m.cfg.Chain.ChainName
		m.addLog("success", fmt.Sprintf("On %s (%s)", m.cfg.Chain.ChainName, msg.outcome))

	case network.Skipped:
		m.chainOK = false
		m.chainStatus = ""
		if msg.manual {
			m.alerts.Push(alert.Alert{
				Kind:    alert.Error,
				Title:   "No wallet",
				Message: "No wallet is connected, so the network cannot be switched.",
			})
		}

	default:
		m.chainOK = false
		m.chainStatus = "wrong network, press n"
		m.addLog("error", fmt.Sprintf("Could not switch to %s: %s", m.cfg.Chain.ChainName, msg.err))
		if msg.manual {
			m.alerts.Push(alert.Alert{
				Kind:    alert.Error,
				Title:   "Wrong network",
				Message: fmt.Sprintf("Could not switch your wallet to %s. Approve the request in your wallet and press n to retry.", m.cfg.Chain.ChainName),
			})
		}
	}
}

// startSession records an authorized account and starts listening for mints
func (m *model) startSession(s gateway.Session) tea.Cmd {
	m.account = s.Account
	m.events = s.Events
	m.status = ""
	m.addLog("success", fmt.Sprintf("Connected `%s`", helpers.ShortenAddr(s.Account)))
	return tea.Batch(waitForMintEvent(s.Events), loadCollection(m.bridge, m.gen, s.Account))
}

// dropStale logs an answer that belongs to a wallet wiring since replaced.
// Its bridge is already closed, so any listener it armed is gone too.
func (m *model) dropStale(what string) {
	m.addLog("debug", fmt.Sprintf("Ignoring %s result from a previous wallet endpoint", what))
}

// failMint raises the one generic alert for a failed mint
func (m *model) failMint(err error) {
	switch {
	case errors.Is(err, mint.ErrReverted):
		m.addLog("error", "Transaction was reverted.")
	case provider.IsUserRejected(err):
		m.addLog("error", "Transaction was rejected in the wallet.")
	default:
		m.addLog("error", fmt.Sprintf("Mint failed: %s", err))
	}
	m.alerts.Push(alert.Alert{
		Kind:    alert.Error,
		Title:   "Mint failed",
		Message: mintFailedMessage,
	})
}

func connectAlert(err error, url string) alert.Alert {
	a := alert.Alert{Kind: alert.Error, Title: "Could not connect"}
	switch {
	case errors.Is(err, gateway.ErrNoProvider):
		a.Title = "No wallet"
		a.Message = fmt.Sprintf("You need a wallet! Start one listening on %s or change the endpoint in settings (s).", url)
	case provider.IsUserRejected(err):
		a.Message = "The connection request was rejected in your wallet."
	default:
		a.Message = fmt.Sprintf("Your wallet did not connect: %s", err)
	}
	return a
}

func (m *model) txURL(hash common.Hash) string {
	explorer := m.cfg.Chain.Explorer()
	if explorer == "" {
		return ""
	}
	return helpers.TxURL(explorer, hash)
}

// applyWalletURL saves a new wallet endpoint and detects the provider again
func (m *model) applyWalletURL(url string) tea.Cmd {
	if url == "" || (url == m.cfg.WalletURL && m.provider != nil) {
		return nil
	}
	m.cfg.WalletURL = url
	m.saveConfig()
	m.addLog("success", fmt.Sprintf("Wallet endpoint set to `%s`", url))

	// the old wallet's session does not carry over
	m.account = ""
	m.events = nil
	m.collection = nil
	m.chainOK = false
	m.chainStatus = ""
	m.connecting = false
	m.checkingChain = false
	m.minting = false
	m.pendingTx = common.Hash{}
	m.wire(nil)

	m.detecting = true
	return detectProvider(m.dial, url)
}

func (m *model) toggleLog() tea.Cmd {
	m.logEnabled = !m.logEnabled
	m.saveConfig()
	if m.logEnabled {
		if m.w > 0 {
			m.logViewport.Width = m.w - 6
		}
		m.logReady = false
		return tea.Batch(initLogViewport(), m.logSpinner.Tick)
	}
	m.logBuffer.Reset()
	m.logReady = false
	return nil
}

// saveConfig persists the settings the UI can change. Environment overrides
// in m.cfg are not written back.
func (m *model) saveConfig() {
	if m.configPath == "" {
		return
	}
	cfg := config.LoadOrCreate(m.configPath)
	cfg.WalletURL = m.cfg.WalletURL
	cfg.Logger = m.logEnabled
	if err := config.Save(m.configPath, cfg); err != nil {
		m.addLog("error", fmt.Sprintf("Could not save config: %s", err))
	}
}

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logEnabled || !m.logReady {
		return
	}
	m.logViewport.SetContent(m.logBuffer.String())
	// Scroll to bottom to show latest entries
	m.logViewport.GotoBottom()
}
