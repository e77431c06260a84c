// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the survey vote counter.

# Handler Types

Each handler is a struct with store and config dependencies:

  - VoteHandler: records a single vote and returns the stage tally
  - ResultsHandler: reads a stage tally without voting

Handlers are created via constructor functions that accept a store.Store
and Config:

	voteHandler := handlers.NewVoteHandler(st, cfg)

# Endpoints

	POST /vote          → Vote ({"stage": "stage1", "choice": "A"})
	GET  /tally/{stage} → GetTally

Both respond with the flat tally document, every label of the stage
present:

	{"_id": "stage1", "A": 3, "B": 5}

# Errors

Unknown stages, disallowed choices and malformed bodies are rejected with
400 before the store is touched. A stage that has never been voted on
reads as 404. Store failures map to 503 when the backend is unreachable
and 500 otherwise.
*/
package handlers
