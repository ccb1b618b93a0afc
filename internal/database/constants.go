package database

// Driver configuration
const (
	DriverName = "sqlite"

	// The local cache is single-writer-at-a-time; one open connection keeps
	// database/sql from racing writers into SQLITE_BUSY.
	MaxOpenConnections = 1

	BusyTimeoutMillis = 5000
)

// Error message constants
const (
	ErrMsgFailedToOpenDatabase  = "failed to open local database"
	ErrMsgFailedToPingDatabase  = "failed to ping local database"
	ErrMsgFailedToSetDialect    = "failed to set migration dialect"
	ErrMsgFailedToRunMigrations = "failed to run migrations"
)

// Log message constants
const (
	LogMsgDatabaseOpened     = "Local database opened"
	LogMsgMigrationsComplete = "Database migrations complete"
)
