package config

import "time"

// Remote backend kinds
const (
	RemoteKindHTTP     = "http"
	RemoteKindPostgres = "postgres"
)

// Default configuration values
const (
	DefaultPort          = 8080
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultLogDir        = "logs"
	DefaultEnvironment   = "dev"
	DefaultCachePath     = "data/tradepost.db"
	DefaultRemoteKind    = RemoteKindHTTP
	DefaultRemoteBaseURL = "http://localhost:9000"

	DefaultDrainInterval    = 30 * time.Second
	DefaultBulkSyncInterval = 15 * time.Minute

	DefaultWorkerCount     = 4
	DefaultWorkerQueueSize = 16

	DefaultEntityCacheSize = 256
	DefaultEntityCacheTTL  = 5 * time.Minute
)
