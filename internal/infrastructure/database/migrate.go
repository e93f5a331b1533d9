package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	txutil "bookstore-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
)

//go:embed migrations
var migrationsFS embed.FS

type migrationFile struct {
	version  int
	filename string
}

// listMigrations returns the NNN_*.sql files under migrations/<dialect> in version order.
func listMigrations(dialect string) ([]migrationFile, error) {
	dir := "migrations/" + dialect
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, err
	}

	var files []migrationFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		var ver int
		if _, err := fmt.Sscanf(e.Name(), "%03d_", &ver); err != nil {
			continue
		}
		files = append(files, migrationFile{version: ver, filename: dir + "/" + e.Name()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
	return files, nil
}

const schemaVersionTable = `
CREATE TABLE IF NOT EXISTS schema_version (
    version    INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
)`

// Migrate applies pending PostgreSQL migrations, each in its own transaction.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if _, err := db.Pool.Exec(ctx, schemaVersionTable); err != nil {
		return fmt.Errorf("ensure schema table: %w", err)
	}

	var current int
	if err := db.Pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	files, err := listMigrations("postgres")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	for _, f := range files {
		if f.version <= current {
			continue
		}
		body, err := migrationsFS.ReadFile(f.filename)
		if err != nil {
			return err
		}
		err = txutil.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(body)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO schema_version (version, applied_at) VALUES ($1, $2)`,
				f.version, time.Now().UTC().Format(time.RFC3339))
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %d: %w", f.version, err)
		}
	}
	return nil
}

// MigrateSQLite applies pending SQLite migrations.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaVersionTable); err != nil {
		return fmt.Errorf("ensure schema table: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	files, err := listMigrations("sqlite")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	for _, f := range files {
		if f.version <= current {
			continue
		}
		if err := applySQLiteMigration(ctx, db, f); err != nil {
			return fmt.Errorf("apply migration %d: %w", f.version, err)
		}
	}
	return nil
}

func applySQLiteMigration(ctx context.Context, db *sql.DB, f migrationFile) error {
	body, err := migrationsFS.ReadFile(f.filename)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`,
		f.version, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}
