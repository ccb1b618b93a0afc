package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"

	_ "modernc.org/sqlite"
)

// Handle is the subset of database operations used by health checks and
// shutdown. *sql.DB satisfies it.
type Handle interface {
	PingContext(ctx context.Context) error
	Close() error
}

// Open opens (creating if necessary) the local SQLite cache at path and
// applies the pragmas the offline cache relies on: WAL journaling so reads
// don't block the writer, a busy timeout instead of immediate SQLITE_BUSY,
// and foreign keys on.
//
// The special path ":memory:" opens an in-memory database, used by tests.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}

	db.SetMaxOpenConns(MaxOpenConnections)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgDatabaseOpened, "path", path)
	return db, nil
}

// dsn builds the modernc.org/sqlite connection string with pragmas applied at
// connection time.
func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", BusyTimeoutMillis))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	return "file:" + path + "?" + q.Encode()
}
