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

// Engine Metrics
var (
	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	ComboBonuses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameComboBonuses,
			Help: HelpTextComboBonuses,
		},
	)

	CraftsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftsCompleted,
			Help: HelpTextCraftsCompleted,
		},
		[]string{LabelRarity},
	)

	CraftsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCraftsRejected,
			Help: HelpTextCraftsRejected,
		},
	)

	DebitsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDebitsFailed,
			Help: HelpTextDebitsFailed,
		},
		[]string{LabelResource},
	)

	GoalsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGoalsUnlocked,
			Help: HelpTextGoalsUnlocked,
		},
		[]string{LabelKind},
	)

	QuestRegenerations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameQuestRegenerations,
			Help: HelpTextQuestRegenerations,
		},
	)

	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePersistenceFailures,
			Help: HelpTextPersistenceFailures,
		},
		[]string{LabelKey},
	)

	PurchasesCredited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchasesCredited,
			Help: HelpTextPurchasesCredited,
		},
		[]string{LabelKind},
	)
)
