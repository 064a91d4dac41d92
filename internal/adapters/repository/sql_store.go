package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const DefaultTable = "kv_store"

var _ domain.KVStore = (*SQLStore)(nil)

// SQLStore keeps the key/value surface in a single table. Queries are written
// with '?' placeholders and rebound for the driver, so the same statements run on
// Postgres (pgx or lib/pq) and SQLite.
type SQLStore struct {
	db    *sqlx.DB
	table string
}

func NewSQLStore(db *sqlx.DB, table string) *SQLStore {
	if table == "" {
		table = DefaultTable
	}
	return &SQLStore{
		db:    db,
		table: pq.QuoteIdentifier(table),
	}
}

// OpenSQL connects with the given driver ("pgx", "postgres" or "sqlite").
func OpenSQL(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("repository: connect %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// sqlite serializes writers; one connection also keeps :memory: databases shared.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	return db, nil
}

func (s *SQLStore) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			store_key   TEXT PRIMARY KEY,
			store_value TEXT NOT NULL,
			updated_at  TIMESTAMP NOT NULL
		)`, s.table)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("repository: migrate %s: %w", s.table, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var value string
	query := s.db.Rebind(fmt.Sprintf(`SELECT store_value FROM %s WHERE store_key = ?`, s.table))

	err := s.db.GetContext(ctx, &value, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrKeyNotFound
		}
		return "", fmt.Errorf("repository: get %q failed: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := s.db.Rebind(fmt.Sprintf(`
		INSERT INTO %s (store_key, store_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (store_key) DO UPDATE
		SET store_value = excluded.store_value,
		    updated_at  = excluded.updated_at`, s.table))

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("repository: set %q failed: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := s.db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE store_key = ?`, s.table))

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("repository: remove %q failed: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
