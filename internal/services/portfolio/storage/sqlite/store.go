// Package sqlite provides the SQLite-backed portfolio store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/portfolio/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage"
	"github.com/louisbranch/portfolio/internal/services/portfolio/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists portfolio content in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the SQLite database at path and applies embedded migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	s := &Store{sqlDB: sqlDB, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DB exposes the underlying handle for maintenance commands.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.sqlDB
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.sqlDB.PingContext(ctx)
}

// Counts returns the number of stored records per entity.
func (s *Store) Counts(ctx context.Context) (storage.Counts, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Counts{}, err
	}
	var c storage.Counts
	err := s.sqlDB.QueryRowContext(ctx, `SELECT
	    (SELECT COUNT(*) FROM projects),
	    (SELECT COUNT(*) FROM experiences),
	    (SELECT COUNT(*) FROM skills)`).Scan(&c.Projects, &c.Experiences, &c.Skills)
	if err != nil {
		return storage.Counts{}, fmt.Errorf("count records: %w", err)
	}
	return c, nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// stamp fills created/updated times for an insert.
func (s *Store) stamp(createdAt, updatedAt time.Time) (time.Time, time.Time) {
	if createdAt.IsZero() && updatedAt.IsZero() {
		now := s.now().UTC()
		return now, now
	}
	if createdAt.IsZero() {
		createdAt = updatedAt
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	return createdAt.UTC(), updatedAt.UTC()
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// uniqueViolation maps a SQLite unique or primary key constraint error to a
// *storage.UniqueViolation naming the offending columns. It returns nil for
// any other error.
func uniqueViolation(err error) *storage.UniqueViolation {
	if err == nil {
		return nil
	}
	isUnique := false
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			isUnique = true
		}
	}
	message := err.Error()
	const marker = "UNIQUE constraint failed: "
	idx := strings.Index(message, marker)
	if idx == -1 && !isUnique {
		return nil
	}
	violation := &storage.UniqueViolation{}
	if idx == -1 {
		return violation
	}
	columns := message[idx+len(marker):]
	if end := strings.Index(columns, " ("); end != -1 {
		columns = columns[:end]
	}
	for _, col := range strings.Split(columns, ",") {
		col = strings.TrimSpace(col)
		table, name, ok := strings.Cut(col, ".")
		if !ok {
			name = col
			table = ""
		}
		if violation.Table == "" {
			violation.Table = table
		}
		if name != "" {
			violation.Fields = append(violation.Fields, name)
		}
	}
	return violation
}

func wrapWriteErr(op string, err error) error {
	if violation := uniqueViolation(err); violation != nil {
		return fmt.Errorf("%s: %w", op, violation)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func expectAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

var _ storage.Store = (*Store)(nil)
