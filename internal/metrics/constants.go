package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Engine metric names
const (
	MetricNameLevelUps            = "level_ups_total"
	MetricNameComboBonuses        = "combo_bonuses_total"
	MetricNameCraftsCompleted     = "crafts_completed_total"
	MetricNameCraftsRejected      = "crafts_rejected_total"
	MetricNameDebitsFailed        = "debits_failed_total"
	MetricNameGoalsUnlocked       = "goals_unlocked_total"
	MetricNameQuestRegenerations  = "quest_regenerations_total"
	MetricNamePersistenceFailures = "persistence_failures_total"
	MetricNamePurchasesCredited   = "purchases_credited_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Engine metric help text
const (
	HelpTextLevelUps            = "Total number of player level ups"
	HelpTextComboBonuses        = "Total number of combo bonus awards"
	HelpTextCraftsCompleted     = "Total number of completed crafts by result rarity"
	HelpTextCraftsRejected      = "Total number of crafts rejected before mutation"
	HelpTextDebitsFailed        = "Total number of debits rejected for insufficient balance"
	HelpTextGoalsUnlocked       = "Total number of goal entries unlocked by kind"
	HelpTextQuestRegenerations  = "Total number of daily quest regenerations"
	HelpTextPersistenceFailures = "Total number of failed persistence writes by key"
	HelpTextPurchasesCredited   = "Total number of credited purchases by kind"
)

// Metric label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelResource = "resource"
	LabelRarity   = "rarity"
	LabelKind     = "kind"
	LabelKey      = "key"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
