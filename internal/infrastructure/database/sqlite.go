package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	"bookstore-catalog/internal/shared/utils"

	"modernc.org/sqlite"
)

var (
	registerFoldOnce sync.Once
	registerFoldErr  error
)

// registerFold installs the Unicode-aware lower-casing function used by
// substring search. Functions are process-wide, so it runs once.
func registerFold() error {
	registerFoldOnce.Do(func() {
		registerFoldErr = sqlite.RegisterDeterministicScalarFunction(utils.FoldFunc, 1, fold)
	})
	return registerFoldErr
}

func fold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// OpenSQLite opens (creating if needed) the SQLite database at path and
// applies migrations. A single connection serialises writers.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if err := registerFold(); err != nil {
		return nil, fmt.Errorf("register sqlite functions: %w", err)
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := MigrateSQLite(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}
