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

// Logger setup log messages
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingApp         = "Starting tradepost"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// Storage and backend log messages
const (
	LogMsgLocalCacheReady         = "Local cache ready"
	LogMsgRemoteBackendConfigured = "Remote backend configured"
)

// Event handler registration log messages
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgReconnectHandlerRegistered = "Reconnect handler registered"
)

// Shutdown log messages
const (
	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgServerStopped         = "Server stopped"
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgSchedulerStopped      = "Scheduler stopped"
	LogMsgWorkerPoolStopped     = "Worker pool stopped"
	LogMsgRemotePoolClosed      = "Remote backend pool closed"
	LogMsgLocalCacheCloseFailed = "Local cache close failed"
)
