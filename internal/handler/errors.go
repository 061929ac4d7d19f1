package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgRequestTooLarge       = "Request body too large"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidPlayerError = "Invalid player id"
	ErrMsgBatchSizeError     = "Batch size is out of range"
	ErrMsgUnavailableError   = "Pull service is temporarily unavailable. Please try again later."
	ErrMsgCatalogEmptyError  = "No spirits are available to summon"
)

// Health messages
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	MsgStorageUnavailable   = "storage connection failed"
)

// Response headers
const (
	HeaderRetryAfter      = "Retry-After"
	RetryAfterUnavailable = "5"
)

// Log messages
const (
	LogMsgSummonCompleted   = "Summon completed"
	LogMsgSummonUnconfirmed = "Summon result not yet durable"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgDecodeFailed      = "Failed to decode request body"
	LogMsgRequestTooLarge   = "Request body exceeded limit"
	LogMsgMissingQueryParam = "Missing query parameter"
)
