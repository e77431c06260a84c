// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// TallyTable holds one row per (namespace, stage, label)
const TallyTable = "tally"

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Same statement for PostgreSQL and SQLite
const schema = `
CREATE TABLE IF NOT EXISTS tally (
    namespace TEXT NOT NULL,
    stage TEXT NOT NULL,
    label TEXT NOT NULL,
    votes BIGINT NOT NULL DEFAULT 0 CHECK (votes >= 0),
    PRIMARY KEY (namespace, stage, label)
);
`
