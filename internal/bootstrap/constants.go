package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionLimit is the maximum number of log files to keep
	LogFileRetentionLimit = 10

	// LogFileRetentionCount is the number of log files to retain after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized   = "Logging initialized"
	LogMsgStartingSpiritSummon = "Starting SpiritSummon"
	LogMsgConfigurationLoaded  = "Configuration loaded"
	LogMsgFailedCreateLogsDir  = "failed to create logs directory"
	LogMsgFailedOpenLogFile    = "failed to open log file"
	LogMsgFailedDeleteOldLog   = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Storage Configuration
// =============================================================================

const (
	LogMsgStorageInitialized    = "Storage initialized"
	LogMsgMemoryStorageWarning  = "Using in-memory storage; pity state is lost on restart"
	ErrMsgUnknownStorageDriver  = "unknown storage driver"
	ErrMsgFailedConnectPostgres = "failed to connect to postgres"
	ErrMsgFailedMigratePostgres = "failed to migrate postgres"
	ErrMsgFailedOpenSQLite      = "failed to open sqlite store"
	ErrMsgFailedCreateSQLiteDir = "failed to create sqlite directory"
)

// =============================================================================
// Engine Configuration
// =============================================================================

const (
	LogMsgLoadingEngineConfig = "Loading gacha engine configuration..."
	LogMsgEngineConfigLoaded  = "Gacha engine configuration loaded"
	LogMsgSeededRNG           = "Using seeded random source; draws are reproducible"

	ErrMsgFailedLoadGachaConfig = "failed to load gacha config"
	ErrMsgFailedLoadCatalog     = "failed to load spirit catalog"
	ErrMsgFailedCreateService   = "failed to create gacha service"
)

// =============================================================================
// Event System Configuration
// =============================================================================

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedConnectNATS              = "failed to connect to NATS"

	EventTransportMemory = "memory"
	EventTransportNATS   = "nats"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgClosingEventTransport      = "Closing event transport..."
	LogMsgClosingStorage             = "Closing storage..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgEventTransportCloseFailed  = "Event transport close failed"
	LogMsgStorageCloseFailed         = "Storage close failed"
)
