package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRecoveries      *prometheus.CounterVec
	CounterStrategy        *prometheus.CounterVec
	CounterFallbacks       *prometheus.CounterVec
	CounterLLMCalls        *prometheus.CounterVec
	CounterQuotaRejections *prometheus.CounterVec

	// histograms
	HistLLMDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("fitness_ai", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitness_ai", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRecoveries := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "recoveries",
		Help:      "The total number of model replies run through recovery",
	}, []string{"path", "outcome"})
	counterStrategy := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "extraction_strategy",
		Help:      "Extraction strategy that produced a structured value",
	}, []string{"strategy"})
	counterFallbacks := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "fallbacks",
		Help:      "The total number of synthesized fallback results",
	}, []string{"path", "reason"})
	counterLLMCalls := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "llm_calls",
		Help:      "The total number of LLM provider calls",
	}, []string{"provider", "status"})
	counterQuotaRejections := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "quota_rejections",
		Help:      "Requests rejected because the daily AI limit was reached",
	}, []string{"kind"})

	histLLMDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
			Name:      "llm_call_duration_seconds",
			Help:      "Duration of a single LLM provider call in seconds",
		},
		[]string{"provider"},
	)

	return &Manager{
		CounterRecoveries:      counterRecoveries,
		CounterStrategy:        counterStrategy,
		CounterFallbacks:       counterFallbacks,
		CounterLLMCalls:        counterLLMCalls,
		CounterQuotaRejections: counterQuotaRejections,
		HistLLMDuration:        histLLMDuration,
	}
}

// ObserveLLMCall records one provider call. A nil Manager is a no-op.
func (m *Manager) ObserveLLMCall(provider, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.CounterLLMCalls.WithLabelValues(provider, status).Inc()
	m.HistLLMDuration.WithLabelValues(provider).Observe(took.Seconds())
}

// ObserveRecovery records the outcome of one recovery run. An empty strategy
// means nothing was extracted; an empty fallbackReason means no fallback.
func (m *Manager) ObserveRecovery(path, outcome, strategy, fallbackReason string) {
	if m == nil {
		return
	}
	m.CounterRecoveries.WithLabelValues(path, outcome).Inc()
	if strategy != "" {
		m.CounterStrategy.WithLabelValues(strategy).Inc()
	}
	if fallbackReason != "" {
		m.CounterFallbacks.WithLabelValues(path, fallbackReason).Inc()
	}
}

func (m *Manager) ObserveQuotaRejection(kind string) {
	if m == nil {
		return
	}
	m.CounterQuotaRejections.WithLabelValues(kind).Inc()
}
