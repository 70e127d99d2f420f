package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain      = "domain"
	CtxGenerate    = "Generate"
	CtxGetArtifact = "GetArtifact"
	CtxTrackScan   = "TrackScan"
	CtxRecordLogin = "RecordLogin"

	// Infrastructure context names
	CtxDB        = "db"
	CtxStore     = "Store"
	CtxFindByID  = "FindByID"
	CtxClose     = "Close"
	CtxRender    = "Render"
	CtxLogo      = "LogoResolver"
	CtxEvents    = "EventRecorder"
	CtxWebhook   = "Webhook"
	CtxRateLimit = "RateLimit"
	CtxAPI       = "api"

	// Handler context names
	CtxHome                = "Home"
	CtxDocs                = "Docs"
	CtxGenerateQRPage      = "GenerateQRPage"
	CtxGenerateBarcodePage = "GenerateBarcodePage"
	CtxAPIGenerateQR       = "APIGenerateQR"
	CtxAPIGenerateBarcode  = "APIGenerateBarcode"
	CtxAPIGenerateWifiQR   = "APIGenerateWifiQR"
	CtxViewArtifact        = "ViewArtifact"
	CtxArtifactImage       = "ArtifactImage"
	CtxScanArtifact        = "ScanArtifact"
	CtxAdminLogin          = "AdminLogin"
	CtxAdminDashboard      = "AdminDashboard"

	// General context names
	CtxRouter = "Router"
	CtxMain   = "Main"
)

// Data field keys
const (
	// Service data fields
	DataService    = "service"
	DataArtifactID = "artifact_id"
	DataSymbology  = "symbology"
	DataPayloadLen = "payload_len"
	DataSSID       = "ssid"
	DataUsername   = "username"
	DataLogoSource = "logo_source"
	DataEventType  = "event_type"
	DataWebhookURL = "webhook_url"
	DataCount      = "count"
	DataLimit      = "limit"
	DataDay        = "day"

	// Database data fields
	DataPath    = "path"
	DataElapsed = "elapsed"
	DataRows    = "rows"
	DataSQL     = "sql"
	DataData    = "data"

	// API data fields
	DataMethod      = "method"
	DataIP          = "ip"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataEnvironment = "environment"
)

// Error message constants
const (
	ErrEmptyPayload       = "payload cannot be empty"
	ErrEmptySSID          = "ssid cannot be empty"
	ErrEmptyPassword      = "password cannot be empty"
	ErrUnknownSymbology   = "unknown symbology"
	ErrUnsupportedPayload = "payload contains characters unsupported by the symbology"
	ErrArtifactNotFound   = "artifact not found"
	ErrArtifactExists     = "artifact id already exists"
	ErrRateLimited        = "daily request limit reached"
)

// Error codes
const (
	ErrCodeAPIParseForm      = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAppDBInit         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
)

// Error types
const (
	ErrTypeDomain = "domain"
	ErrTypeAPI    = "api"
	ErrTypeApp    = "application"
)

// API routes
const (
	RouteHome                = "/"
	RouteDocs                = "/docs"
	RouteGenerateQRPage      = "/generate-qr"
	RouteGenerateBarcodePage = "/generate-barcode"
	RouteAPIGenerateQR       = "/api/generate-qr"
	RouteAPIGenerateBarcode  = "/api/generate-barcode"
	RouteAPIGenerateWifiQR   = "/api/generate-wifi-qr"
	RouteArtifactView        = "/qr/{artifactID}"
	RouteArtifactImage       = "/qr/{artifactID}/image"
	RouteArtifactScan        = "/qr/{artifactID}/scan"
	RouteAdminLogin          = "/admin/login"
	RouteAdminDashboard      = "/admin/dashboard"
	RouteHealthcheck         = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Message constants for application
const (
	MsgApplicationStarting = "Application starting"
	MsgFailedToInitDB      = "Failed to initialize database"
	MsgServerStarting      = "Server starting"
	MsgServerFailedToStart = "Server failed to start"
	MsgServerShuttingDown  = "Server shutting down"
	MsgServerShutdownError = "Error during server shutdown"
	MsgServerStopped       = "Server stopped"
	MsgRequestReceived     = "Request received"
	MsgSettingUpRoutes     = "Setting up API routes"
	MsgHealthcheckRequest  = "Handling healthcheck request"
	MsgHealthy             = "Healthy"
	MsgRequestCompleted    = "Request completed"
	MsgHandlingGenerate    = "Handling generate request"
	MsgHandlingRetrieve    = "Handling artifact retrieval"
	MsgHandlingScan        = "Handling scan callback"
)

// Form field names
const (
	FormFieldData     = "data"
	FormFieldLogo     = "logo"
	FormFieldLogoFile = "logo_file"
	FormFieldSSID     = "ssid"
	FormFieldPassword = "password"
	FormFieldSecurity = "security"
	FormFieldUsername = "username"
)

// Cache namespaces
const (
	ArtifactNamespace  = "ARTIFACT"
	RateLimitNamespace = "RATE"
)

// Wi-Fi security protocols
const (
	SecurityWPA  = "WPA"
	SecurityWEP  = "WEP"
	SecurityNone = "nopass"
)

// DayKeyLayout is the calendar-day key format used by the rate limiter.
const DayKeyLayout = "2006-01-02"
