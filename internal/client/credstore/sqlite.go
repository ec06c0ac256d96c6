package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/avelichko/contactdesk/internal/client/credstore/migrations"
	"github.com/avelichko/contactdesk/internal/logging"
)

const tokenKey = "token"

// SQLiteStore keeps the token in a local sqlite database so it survives
// process restarts. The driver (modernc.org/sqlite) is registered by the
// importing binary.
type SQLiteStore struct {
	db  *sql.DB
	log logging.Logger
}

// Open opens (or creates) the credential database at dsn and brings the
// schema up to date.
func Open(ctx context.Context, dsn string, log logging.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open credential db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate credential db: %w", err)
	}

	return &SQLiteStore{db: db, log: log}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, tokenKey, token)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Load fails open: a missing row or a storage error both report "no stored
// token", so an unreadable database degrades to an unauthenticated start.
func (s *SQLiteStore) Load(ctx context.Context) (string, bool) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?`, tokenKey).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.log.Warn(ctx, "credential store unreadable, treating as empty", "error", err)
		return "", false
	}
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, tokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
