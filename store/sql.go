// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/same-returns/db"
	"github.com/danielhkuo/same-returns/models"
)

// Dialect names a database/sql driver. The values double as driver names.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

const (
	upsertTallySQL = `
		INSERT INTO tally (namespace, stage, label, votes)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (namespace, stage, label)
		DO UPDATE SET votes = tally.votes + 1
	`
	selectTallySQL = `
		SELECT label, votes FROM tally
		WHERE namespace = ? AND stage = ?
	`
)

// SQLStore keeps tallies in the tally table, one row per label
type SQLStore struct {
	db        *sql.DB
	dialect   Dialect
	namespace string
}

// OpenSQL opens dsn with the dialect's driver, pings it and creates the schema
func OpenSQL(ctx context.Context, dialect Dialect, dsn, namespace string) (*SQLStore, error) {
	conn, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	switch dialect {
	case DialectSQLite:
		// SQLite allows one writer; a single connection queues writers in
		// database/sql instead of failing them with SQLITE_BUSY
		conn.SetMaxOpenConns(1)
	default:
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, unavailable("ping "+string(dialect), err)
	}

	if err := db.CreateSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	return NewSQLStore(conn, dialect, namespace), nil
}

// NewSQLStore wraps an open connection whose schema already exists
func NewSQLStore(conn *sql.DB, dialect Dialect, namespace string) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect, namespace: namespace}
}

func (s *SQLStore) Increment(ctx context.Context, stage, label string) (models.Tally, error) {
	if err := validateKey(stage, label); err != nil {
		return models.Tally{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Tally{}, unavailable("begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.rebind(upsertTallySQL), s.namespace, stage, label); err != nil {
		return models.Tally{}, unavailable("increment", err)
	}

	tally, err := s.queryTally(ctx, tx, stage)
	if err != nil {
		return models.Tally{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Tally{}, unavailable("commit", err)
	}

	return tally, nil
}

func (s *SQLStore) Get(ctx context.Context, stage string) (models.Tally, error) {
	if err := validateStage(stage); err != nil {
		return models.Tally{}, err
	}

	tally, err := s.queryTally(ctx, s.db, stage)
	if err != nil {
		return models.Tally{}, err
	}
	if len(tally.Counts) == 0 {
		return models.Tally{}, ErrNotFound
	}
	return tally, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *SQLStore) queryTally(ctx context.Context, q queryer, stage string) (models.Tally, error) {
	rows, err := q.QueryContext(ctx, s.rebind(selectTallySQL), s.namespace, stage)
	if err != nil {
		return models.Tally{}, unavailable("query tally", err)
	}
	defer rows.Close()

	tally := models.NewTally(stage)
	for rows.Next() {
		var label string
		var votes int64
		if err := rows.Scan(&label, &votes); err != nil {
			return models.Tally{}, unavailable("scan tally", err)
		}
		tally.Counts[label] = votes
	}
	if err := rows.Err(); err != nil {
		return models.Tally{}, unavailable("read tally", err)
	}

	return tally, nil
}

// rebind rewrites ? placeholders to $1, $2, ... for PostgreSQL
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
