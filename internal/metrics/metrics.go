package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Gacha Metrics
var (
	PullsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePullsTotal,
			Help: HelpTextPullsTotal,
		},
		[]string{LabelTier},
	)

	PullDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNamePullDuration,
			Help:    HelpTextPullDuration,
			Buckets: PullLatencyBuckets,
		},
		[]string{LabelMode},
	)

	GuaranteesApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGuaranteesApplied,
			Help: HelpTextGuaranteesApplied,
		},
		[]string{LabelKind},
	)

	DuplicatesConverted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDuplicatesConverted,
			Help: HelpTextDuplicatesConverted,
		},
		[]string{LabelTier},
	)

	DuplicateCurrencyAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDuplicateCurrency,
			Help: HelpTextDuplicateCurrency,
		},
	)

	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePersistenceFailures,
			Help: HelpTextPersistenceFailures,
		},
		[]string{LabelOperation},
	)

	UnconfirmedPlayers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameUnconfirmedPullsActive,
			Help: HelpTextUnconfirmedPullsActive,
		},
	)
)
