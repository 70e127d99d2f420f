package constant

// Domain service error codes
const (
	// Codegen service - Validation errors (1xx)
	ErrCodeEmptyPayload  = "SVC101"
	ErrCodeEmptySSID     = "SVC102"
	ErrCodeEmptyPassword = "SVC103"

	// Codegen service - Rendering errors (2xx)
	ErrCodeRenderFailure   = "SVC201"
	ErrCodeEncodingFailure = "SVC202"

	// Codegen service - Storage errors (3xx)
	ErrCodeStorageFailure = "SVC301"

	// Codegen service - Retrieval errors (4xx)
	ErrCodeArtifactNotFound = "SVC401"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Store operation errors (1xx)
	ErrCodeDBCheckExists = "DB101"
	ErrCodeDBInsert      = "DB102"

	// FindByID operation errors (2xx)
	ErrCodeDBLookup     = "DB201"
	ErrCodeDBScanRows   = "DB202"
	ErrCodeDBRowIterate = "DB203"

	// Close operation errors (3xx)
	ErrCodeDBClose = "DB301"
)

// Infrastructure error codes
const (
	// Logo resolution (never surfaced, log-only)
	ErrCodeLogoDecode = "LOGO001"
	ErrCodeLogoFetch  = "LOGO002"

	// Event recorder
	ErrCodeEventMarshal = "EVT001"
	ErrCodeEventWrite   = "EVT002"
	ErrCodeEventRead    = "EVT003"

	// Webhook delivery (fire-and-forget, log-only)
	ErrCodeWebhookPost = "HOOK001"

	// Rate limiter
	ErrCodeRateLimited = "RATE001"
)

// Error types for categorization
const (
	// Domain error types
	ErrTypeValidation = "validation"
	ErrTypeEncoding   = "encoding"
	ErrTypeStorage    = "storage"
	ErrTypeRetrieval  = "retrieval"
	ErrTypeAnalytics  = "analytics"
	ErrTypeRateLimit  = "rate_limit"

	// Infrastructure error types
	ErrTypeDB      = "db"
	ErrTypeLogo    = "logo"
	ErrTypeWebhook = "webhook"
)
