// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists per-stage vote tallies.

# Opening a Store

Open picks a backend from the configuration, connects and pings it:

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

The returned handle is passed to the router; there is no package-level
connection.

# Backends

  - mongo: document {_id: stage, <label>: n} in the "responses" collection,
    updated with FindOneAndUpdate($inc, upsert, return after)
  - postgres, sqlite: one row per (namespace, stage, label), upserted with
    ON CONFLICT DO UPDATE inside a transaction
  - redis: hash <namespace>:tally:<stage>, HINCRBY and HGETALL in MULTI/EXEC
  - memory: mutex-guarded map

All of them apply concurrent increments without losing any.

# Errors

  - ErrInvalidKey: empty stage or label, or a label that is not a plain field
    name ("_id", leading "$", containing ".")
  - ErrStorageUnavailable: the backend failed or could not be reached; the
    driver error is wrapped alongside it
  - ErrNotFound: Get on a stage nobody has voted on

Nothing is retried; callers decide.
*/
package store
