package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

// Store is the key-value persistence boundary. Keys are "wa:<identity>";
// values are whole ledger documents. Last write wins.
type Store interface {
	Get(ctx context.Context, key string) (map[string]any, bool, error)
	Put(ctx context.Context, key string, doc map[string]any) error
	Exists(ctx context.Context, key string) (bool, error)
}

// pgStore keeps documents in a single jsonb table.
type pgStore struct {
	pool *pgxpool.Pool
}

func newPGStore(pool *pgxpool.Pool) *pgStore {
	return &pgStore{pool: pool}
}

func (s *pgStore) Get(ctx context.Context, key string) (map[string]any, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, "SELECT value FROM kv_ledgers WHERE key = $1", key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %s: %w", key, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, fmt.Errorf("kv get %s: decode value: %w", key, err)
	}
	return doc, true, nil
}

func (s *pgStore) Put(ctx context.Context, key string, doc map[string]any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("kv put %s: encode value: %w", key, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO kv_ledgers (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, raw)
	if err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}

func (s *pgStore) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM kv_ledgers WHERE key = $1)", key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("kv exists %s: %w", key, err)
	}
	return exists, nil
}

// runMigrations applies pending migrations from the given directory.
func runMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// getMigrationVersion reports the current schema version and dirty flag.
func getMigrationVersion(db *sql.DB, migrationsPath string) (uint, bool, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return 0, false, err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return 0, false, err
	}

	return m.Version()
}
