package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyAccountID contextKey = "account_id"
	ContextKeyEmail     contextKey = "email"
	ContextKeySessionID contextKey = "session_id"
)

const (
	RequestParamID   = "id"
	RequestParamSlot = "slot"
	RequestParamDate = "date"
	RequestMaxMemory = 10 << 20 // 10 MB
)

const (
	DateFormat     = "2006-01-02"
	SlotFormat     = "15:04"
	DateTimeFormat = time.RFC3339
)

const (
	OtelServiceScopeName = "service"
	OtelGatewayScopeName = "gateway"
	OtelHandlerScopeName = "handler"
	OtelEventScopeName   = "event"
	OtelS3ScopeName      = "s3"

	OtelEndpointAttributeKey = "endpoint"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
)

const (
	ContentTypeJSON              = "application/json"
	ContentTypeMultipartFormData = "multipart/form-data"
	FormFileLogo                 = "logo"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	KafkaTopicAppointmentEvents = "appointment-events"
)

const (
	Asterix = "*"
	Empty   = ""
)
