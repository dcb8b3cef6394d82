package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the client's Prometheus collectors. A nil *Registry is valid
// and records nothing.
type Registry struct {
	registry            *prometheus.Registry
	mintsTotal          *prometheus.CounterVec
	connectsTotal       *prometheus.CounterVec
	chainChecksTotal    *prometheus.CounterVec
	mintEventsTotal     prometheus.Counter
	activeSubscriptions prometheus.Gauge
}

func New() *Registry {
	mints := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nftmint_mints_total",
		Help: "Mint transactions by outcome",
	}, []string{"status"})

	connects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nftmint_wallet_connects_total",
		Help: "Wallet authorization attempts by outcome",
	}, []string{"result"})

	chainChecks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nftmint_chain_checks_total",
		Help: "Required chain checks by outcome",
	}, []string{"outcome"})

	events := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nftmint_mint_events_total",
		Help: "NewNFTMinted events delivered to the UI",
	})

	subs := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "nftmint_event_subscriptions_active",
		Help: "Active mint event subscriptions",
	})

	r := prometheus.NewRegistry()
	r.MustRegister(mints, connects, chainChecks, events, subs)

	return &Registry{
		registry:            r,
		mintsTotal:          mints,
		connectsTotal:       connects,
		chainChecksTotal:    chainChecks,
		mintEventsTotal:     events,
		activeSubscriptions: subs,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Registry) IncMint(status string) {
	if m == nil {
		return
	}
	m.mintsTotal.WithLabelValues(status).Inc()
}

func (m *Registry) IncConnect(result string) {
	if m == nil {
		return
	}
	m.connectsTotal.WithLabelValues(result).Inc()
}

func (m *Registry) IncChainCheck(outcome string) {
	if m == nil {
		return
	}
	m.chainChecksTotal.WithLabelValues(outcome).Inc()
}

func (m *Registry) IncMintEvent() {
	if m == nil {
		return
	}
	m.mintEventsTotal.Inc()
}

func (m *Registry) SetActiveSubscriptions(n int) {
	if m == nil {
		return
	}
	m.activeSubscriptions.Set(float64(n))
}

// Counter values for tests and the status header.

func (m *Registry) Mints(status string) prometheus.Counter {
	return m.mintsTotal.WithLabelValues(status)
}

func (m *Registry) ActiveSubscriptions() prometheus.Gauge {
	return m.activeSubscriptions
}

func (m *Registry) ChainChecks(outcome string) prometheus.Counter {
	return m.chainChecksTotal.WithLabelValues(outcome)
}

func (m *Registry) Connects(result string) prometheus.Counter {
	return m.connectsTotal.WithLabelValues(result)
}

func (m *Registry) MintEvents() prometheus.Counter {
	return m.mintEventsTotal
}
