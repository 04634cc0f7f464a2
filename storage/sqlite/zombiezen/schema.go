package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"path"

	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// DocsSchema creates the bin tables and the entity index.
const DocsSchema = "docs.sql"

// CreateSchemas runs the embedded scripts named in one savepoint. The
// scripts only create missing objects, so running them twice is harmless.
func CreateSchemas(pool *sqlitex.Pool, names ...string) (err error) {
	scripts := make([]string, 0, len(names))
	for _, name := range names {
		script, err := sqlFiles.ReadFile(path.Join("sql", name))
		if err != nil {
			return fmt.Errorf("schema %s: %w", name, err)
		}
		scripts = append(scripts, string(script))
	}

	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	defer sqlitex.Save(conn)(&err)
	for i, script := range scripts {
		if err = sqlitex.ExecuteScript(conn, script, nil); err != nil {
			return fmt.Errorf("schema %s: %w", names[i], err)
		}
	}
	return nil
}
