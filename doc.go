// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the same-returns survey API server.

The survey asks participants whether they would switch between two
portfolios that end with the same return, then whether a 13% and a 25%
higher final value would change their mind. The server keeps a running
tally per stage and returns it after every vote.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=mongodb://localhost:27017 DATABASE_NAME=survey go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -n survey

Variables from a .env file in the working directory are loaded first;
variables already set in the environment take precedence.

# Configuration

Required settings:

  - DATABASE_URL or MONGODB_URI (-d): backend connection string
  - DATABASE_NAME or MONGODB_DB (-n): database name / namespace

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): mongo, postgres, sqlite, redis or memory (default: mongo)
  - -env-file: dotenv file to load (default: .env)

# Architecture

  - handlers: HTTP request handlers (vote, tally)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types and the Tally document
  - survey: Stage definitions, participant flow, HTTP client
  - store: Tally storage backends
  - db: SQL schema creation
  - cliparse: Configuration parsing

The terminal client lives in cmd/survey.
*/
package main
