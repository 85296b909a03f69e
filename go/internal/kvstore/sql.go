package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftboard/go/internal/sqlutil"
)

// Dialect isolates the driver-specific bits of the SQL store.
type Dialect interface {
	DriverName() string
	ConfigureConnection(db *sql.DB) error
	CreateTableQuery() string
	UpsertQuery() string
	SelectQuery() string
	DeleteQuery() string
}

// SQLiteDialect implements Dialect for SQLite.
type SQLiteDialect struct{}

func (SQLiteDialect) DriverName() string {
	return "sqlite3"
}

func (SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// A single writer avoids SQLITE_BUSY on concurrent Set calls.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}
	return nil
}

func (SQLiteDialect) CreateTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (SQLiteDialect) UpsertQuery() string {
	return `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
}

func (SQLiteDialect) SelectQuery() string {
	return `SELECT value FROM kv_entries WHERE key = ?`
}

func (SQLiteDialect) DeleteQuery() string {
	return `DELETE FROM kv_entries WHERE key = ?`
}

// SQL is a Store over database/sql.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL opens dsn with the dialect's driver and creates the table.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*SQL, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect.DriverName(), err)
	}
	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure %s connection: %w", dialect.DriverName(), err)
	}

	s := &SQL{db: db, dialect: dialect}
	if _, err := db.ExecContext(ctx, dialect.CreateTableQuery()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	log.Info().Str("driver", dialect.DriverName()).Str("dsn", dsn).Msg("SQL key-value store ready")
	return s, nil
}

// kvQueries binds the dialect's statements to one transaction.
type kvQueries struct {
	tx      *sql.Tx
	dialect Dialect
}

func (s *SQL) newQueries(tx *sql.Tx) *kvQueries {
	return &kvQueries{tx: tx, dialect: s.dialect}
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.dialect.SelectQuery(), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return sqlutil.Run(ctx, s.db, s.newQueries, func(q *kvQueries) error {
		if _, err := q.tx.ExecContext(ctx, q.dialect.UpsertQuery(), key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		return nil
	})
}

func (s *SQL) Clear(ctx context.Context, key string) error {
	return sqlutil.Run(ctx, s.db, s.newQueries, func(q *kvQueries) error {
		if _, err := q.tx.ExecContext(ctx, q.dialect.DeleteQuery(), key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
		return nil
	})
}

func (s *SQL) Close() error {
	return s.db.Close()
}
