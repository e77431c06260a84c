// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Storage connection string (required)
  - DatabaseName: Database name, used as the storage namespace (required)
  - DatabaseType: mongo, postgres, sqlite, redis or memory (default: mongo)
  - EnvFile: dotenv file loaded before reading the environment (default: .env)

# CLI Flags

	-p         Server port
	-d         Storage connection string
	-n         Storage database name
	-t         Storage type
	-env-file  Dotenv file

# Environment Variables

Flags fall back to environment variables:

	PORT                        → -p
	DATABASE_URL, MONGODB_URI   → -d
	DATABASE_NAME, MONGODB_DB   → -n
	DATABASE_TYPE               → -t

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over the dotenv file. A missing dotenv
file is not an error.

# Validation

ParseFlags returns an error wrapping ErrConfigurationMissing when either the
connection string or the database name is missing. main treats this as fatal.
*/
package cliparse
