// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/logging"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// logModel maps the audit_log table.
type logModel struct {
	bun.BaseModel  `bun:"table:audit_log"`
	ID             int64     `bun:"id,pk,autoincrement"`
	Timestamp      time.Time `bun:"timestamp,notnull"`
	Username       string    `bun:"username,notnull"`
	Action         string    `bun:"action,notnull"`
	File           string    `bun:"file"`
	KeyFingerprint string    `bun:"key_fingerprint"`
	Details        string    `bun:"details"`
}

// BunStore is a Store backed by SQLite, PostgreSQL or MySQL through Bun.
type BunStore struct {
	bun *bun.DB
}

// Open connects to the database named by dbType ("sqlite", "postgres" or
// "mysql") and dsn, and creates the audit_log table if it is missing.
func Open(ctx context.Context, dbType, dsn string) (*BunStore, error) {
	driverName, err := driverFor(dbType)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite in-memory databases are per connection.
	if dbType == "sqlite" && (dsn == ":memory:" || dsn == "file::memory:") {
		sqlDB.SetMaxOpenConns(1)
	}

	bdb := createBunDB(sqlDB, dbType)
	if _, err := bdb.NewCreateTable().Model((*logModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = bdb.Close()
		return nil, fmt.Errorf("failed to create audit_log table: %w", err)
	}
	logging.Debugf("audit: opened %s store in %s", dbType, time.Since(start))

	return &BunStore{bun: bdb}, nil
}

func driverFor(dbType string) (string, error) {
	switch dbType {
	case "sqlite":
		return "sqlite", nil
	case "postgres":
		// The pgx stdlib registers driver name "pgx".
		return "pgx", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported audit database type: '%s'", dbType)
	}
}

func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// Record inserts e. A zero Timestamp is replaced by the current time and an
// empty Username by the current OS user.
func (s *BunStore) Record(ctx context.Context, e Entry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Username == "" {
		e.Username = CurrentUsername()
	}
	m := &logModel{
		Timestamp:      e.Timestamp,
		Username:       e.Username,
		Action:         e.Action,
		File:           e.File,
		KeyFingerprint: e.KeyFingerprint,
		Details:        e.Details,
	}
	if _, err := s.bun.NewInsert().Model(m).Exec(ctx); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A limit below one
// returns every entry.
func (s *BunStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	var rows []logModel
	q := s.bun.NewSelect().Model(&rows).OrderExpr("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, Entry{
			ID:             r.ID,
			Timestamp:      r.Timestamp,
			Username:       r.Username,
			Action:         r.Action,
			File:           r.File,
			KeyFingerprint: r.KeyFingerprint,
			Details:        r.Details,
		})
	}
	return out, nil
}

// Close releases the database connection.
func (s *BunStore) Close() error {
	return s.bun.Close()
}
