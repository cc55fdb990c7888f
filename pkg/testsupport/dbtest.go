package testsupport

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-api/pkg/storage"
)

func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewSQLiteBunDB opens a named shared in-memory database wrapped in bun.
// Distinct names isolate tests running in the same process.
func NewSQLiteBunDB(name string) (*bun.DB, error) {
	return storage.Open(storage.Config{
		Driver: "sqlite3",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name),
	})
}
