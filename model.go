package main

import (
	"bytes"
	"sync"
	"time"

	"charm-mint-tui/config"
	"charm-mint-tui/gateway"
	"charm-mint-tui/metrics"
	"charm-mint-tui/mint"
	"charm-mint-tui/network"
	"charm-mint-tui/provider"
	"charm-mint-tui/styles"
	"charm-mint-tui/views/alert"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- MODEL --------------------

type page int

const (
	pageLanding page = iota
	pageSettings
)

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage page

	cfg         config.Config
	configPath  string
	contractABI abi.ABI
	metrics     *metrics.Registry
	dial        dialFunc

	// wallet wiring, rebuilt each time the provider is detected. gen counts
	// rebuilds so answers from an earlier wiring can be told apart.
	gen           int
	provider      provider.Provider
	gateway       *gateway.Gateway
	guard         *network.Guard
	bridge        *mint.Bridge
	detecting     bool
	checkingChain bool

	// Account is only ever set from gateway results
	account    string
	events     <-chan mint.Event
	connecting bool
	collection *mint.Collection

	// in-flight mint guard
	minting   bool
	pendingTx common.Hash

	chainOK     bool
	chainStatus string
	status      string // last background warning

	alerts alert.Queue

	// settings form
	form *huh.Form

	spin spinner.Model
	keys keyMap
	help help.Model

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *syncBuffer
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// syncBuffer is the log sink. Components log from command goroutines while
// the view reads it from Update.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// -------------------- INIT --------------------

// newModel creates the model. No provider is wired until detection reports back.
func newModel(cfg config.Config, configPath string, contractABI abi.ABI, reg *metrics.Registry, dial dialFunc) model {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	logBuf := &syncBuffer{}
	logger := log.NewWithOptions(logBuf, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	logger.SetLevel(log.DebugLevel)
	logger.SetStyles(logStyles())

	// Initialize log viewport
	vp := viewport.New(0, 10) // Will be resized in Update on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	m := model{
		activePage:  pageLanding,
		cfg:         cfg,
		configPath:  configPath,
		contractABI: contractABI,
		metrics:     reg,
		dial:        dial,
		spin:        sp,
		keys:        newKeyMap(),
		help:        help.New(),
		logEnabled:  cfg.Logger,
		logger:      logger,
		logBuffer:   logBuf,
		logViewport: vp,
		logSpinner:  logSpin,
	}
	m.wire(nil)
	return m
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	m.detecting = true
	cmds = append(cmds, detectProvider(m.dial, m.cfg.WalletURL))
	return tea.Batch(cmds...)
}

// wire rebuilds the gateway, guard and bridge around p, closing the
// previous bridge and connection. p may be nil.
func (m *model) wire(p provider.Provider) {
	if m.bridge != nil {
		m.bridge.Close()
	}
	if c, ok := m.provider.(interface{ Close() }); ok && m.provider != p {
		c.Close()
	}

	m.gen++
	m.provider = p
	m.bridge = mint.New(p, mint.Config{
		Address:      common.HexToAddress(m.cfg.Contract.Address),
		ABI:          m.contractABI,
		PollInterval: time.Duration(m.cfg.PollInterval),
	}, m.logger.WithPrefix("mint"), m.metrics)
	m.gateway = gateway.New(p, m.bridge, m.logger.WithPrefix("gateway"), m.metrics)
	m.guard = network.New(p, m.cfg.Chain, m.logger.WithPrefix("network"), m.metrics)
}

// shutdown stops the mint listener and closes the wallet connection
func (m *model) shutdown() {
	m.wire(nil)
}
