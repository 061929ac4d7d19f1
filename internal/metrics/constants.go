package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Gacha metric names
const (
	MetricNamePullsTotal             = "gacha_pulls_total"
	MetricNamePullDuration           = "gacha_pull_duration_seconds"
	MetricNameGuaranteesApplied      = "gacha_guarantees_applied_total"
	MetricNameDuplicatesConverted    = "gacha_duplicates_converted_total"
	MetricNameDuplicateCurrency      = "gacha_duplicate_currency_awarded_total"
	MetricNamePersistenceFailures    = "gacha_persistence_failures_total"
	MetricNameUnconfirmedPullsActive = "gacha_unconfirmed_players"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextEventsPublished    = "Total number of events observed by the metrics collector"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextPullsTotal             = "Total number of draws by resulting rarity tier"
	HelpTextPullDuration           = "Latency of a single or batch pull including persistence"
	HelpTextGuaranteesApplied      = "Draws whose tier came from a guarantee rather than the natural roll"
	HelpTextDuplicatesConverted    = "Duplicate draws converted to currency, by tier"
	HelpTextDuplicateCurrency      = "Currency owed to players for duplicate draws"
	HelpTextPersistenceFailures    = "Pity state load or save failures"
	HelpTextUnconfirmedPullsActive = "Players whose latest pity state has not been durably saved"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelTier      = "tier"
	LabelKind      = "kind"
	LabelMode      = "mode"
	LabelOperation = "operation"
)

// Guarantee kinds
const (
	GuaranteeRareInterval = "rare_interval"
	GuaranteeHardPity     = "hard_pity"
	GuaranteeBatch        = "batch"
)

// Pull modes
const (
	ModeSingle = "single"
	ModeBatch  = "batch"
)

// Persistence operations
const (
	OperationLoad  = "load"
	OperationSave  = "save"
	OperationFlush = "flush"
)

// UnmatchedRoute labels requests that did not hit a registered route
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

var (
	HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	PullLatencyBuckets = []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgMetricsRecorded    = "Metrics recorded for event"
	LogMsgEventPayloadDecode = "Event payload could not be decoded for metrics"
)
