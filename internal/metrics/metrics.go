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

// Sync Metrics
var (
	PendingMutations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePendingMutations,
			Help: HelpTextPendingMutations,
		},
	)

	MutationsReplayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMutationsReplayed,
			Help: HelpTextMutationsReplayed,
		},
		[]string{LabelStore},
	)

	MutationReplayFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMutationReplayFailures,
			Help: HelpTextMutationReplayFailures,
		},
		[]string{LabelStore},
	)

	MutationsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMutationsSkipped,
			Help: HelpTextMutationsSkipped,
		},
		[]string{LabelStore},
	)

	DrainDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameDrainDuration,
			Help:    HelpTextDrainDuration,
			Buckets: SyncLatencyBuckets,
		},
	)

	BulkSyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameBulkSyncDuration,
			Help:    HelpTextBulkSyncDuration,
			Buckets: SyncLatencyBuckets,
		},
	)

	BulkSyncRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBulkSyncRecords,
			Help: HelpTextBulkSyncRecords,
		},
		[]string{LabelStore},
	)

	ConnectivityState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameConnectivityState,
			Help: HelpTextConnectivityState,
		},
	)
)
