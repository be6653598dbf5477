package remotesync

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opPush  = "push"
	opFetch = "fetch"

	resultSuccess = "success"
	resultFailure = "failure"
)

type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

// NewMetrics registers the sync collectors; a nil registerer uses the default one.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		requests: registerCollector(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_sync_requests_total",
			Help: "Remote cart requests grouped by operation and result.",
		}, []string{"operation", "result"})),
		duration: registerCollector(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_cart_sync_duration_seconds",
			Help:    "Duration of remote cart requests in seconds.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"})),
		inflight: registerCollector(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_cart_sync_inflight",
			Help: "Remote cart pushes currently in flight.",
		})),
	}
}

func registerCollector[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(T)
			if !ok {
				panic("collector already registered with unexpected type")
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

func (m *Metrics) observe(operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultFailure
	}
	m.requests.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(seconds)
}

func (m *Metrics) pushStarted() {
	if m != nil {
		m.inflight.Inc()
	}
}

func (m *Metrics) pushFinished() {
	if m != nil {
		m.inflight.Dec()
	}
}
