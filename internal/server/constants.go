package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: repeated failed authentication"
	SecurityAlertHighRate   = "SECURITY ALERT: request budget exhausted"
	SecurityAlertPullBudget = "SECURITY ALERT: pull budget exhausted"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting      = "Server starting"
	LogMsgRequestStarted      = "Request started"
	LogMsgRequestCompleted    = "Request completed"
	LogMsgRequestHeaders      = "Request headers"
	LogMsgAuthFailed          = "Authentication failed"
	LogMsgInvalidTrustedProxy = "Ignoring trusted proxy that is not an IP address"
)

// Client guard defaults
const (
	DefaultGuardWindow       = 5 * time.Minute
	DefaultRequestBudget     = 1000
	DefaultPullBudget        = 300
	DefaultFailedAuthAlertAt = 5
	DefaultMaxTrackedClients = 10000

	MaxRequestBodyBytes = 1 << 20
)

// Routes
const (
	RoutePrefixAPI = "/api/v1"
	RoutePull      = RoutePrefixAPI + "/gacha/pull"
	RouteBatch     = RoutePrefixAPI + "/gacha/batch"
	RoutePity      = RoutePrefixAPI + "/gacha/pity"
)

// HTTP header names
const (
	HeaderAPIKey             = "X-API-Key"
	HeaderAuthorization      = "Authorization"
	HeaderForwardedFor       = "X-Forwarded-For"
	HeaderRetryAfter         = "Retry-After"
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderFrameOptions       = "X-Frame-Options"
	HeaderReferrerPolicy     = "Referrer-Policy"
	HeaderCacheControl       = "Cache-Control"
)

// Security header values
const (
	HeaderValueNoSniff    = "nosniff"
	HeaderValueDeny       = "DENY"
	HeaderValueNoReferrer = "no-referrer"
	HeaderValueNoStore    = "no-store"
)

// Public path prefixes that bypass authentication
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
