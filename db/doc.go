// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation for the SQL storage backends.

# Schema Creation

CreateSchema initializes the tally table:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS. The same statement runs on
PostgreSQL and SQLite.

# Tables

	tally(namespace, stage, label, votes)

One row per counted label. The namespace column carries the configured
database name so several surveys can share one database. A stage's tally is
the set of rows for (namespace, stage); rows are only ever inserted or
incremented, never deleted.
*/
package db
