package zombiezen

import (
	"fmt"
	"runtime"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const busyTimeout = 5 * time.Second

// NewPool opens the bin database at dbPath, creating it if needed, and makes
// sure the bin tables exist. The file is opened in WAL mode.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool("file:"+dbPath, sqlitex.PoolOptions{
		PoolSize:    runtime.NumCPU(),
		PrepareConn: prepareConn,
	})
	if err != nil {
		return nil, fmt.Errorf("open bin database %s: %w", dbPath, err)
	}

	if err := CreateSchemas(pool, DocsSchema); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// prepareConn runs on every new connection. Deleting a bin relies on the
// cascading foreign keys.
func prepareConn(conn *sqlite.Conn) error {
	conn.SetBusyTimeout(busyTimeout)
	return sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = ON;", nil)
}
