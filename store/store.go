// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/same-returns/cliparse"
	"github.com/danielhkuo/same-returns/models"
)

var (
	ErrInvalidKey         = errors.New("invalid key")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrNotFound           = errors.New("tally not found")
)

// Store keeps one tally per stage
type Store interface {
	// Increment atomically adds one to label within stage's tally, creating
	// the tally when it does not exist, and returns the tally afterwards.
	Increment(ctx context.Context, stage, label string) (models.Tally, error)
	// Get returns the stage's tally or ErrNotFound.
	Get(ctx context.Context, stage string) (models.Tally, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the backend named by cfg.DatabaseType and verifies it is reachable
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	var (
		s   Store
		err error
	)

	// Each branch checks err itself so a nil *XStore never ends up in s
	switch cfg.DatabaseType {
	case cliparse.DatabaseMongo:
		var ms *MongoStore
		if ms, err = OpenMongo(ctx, cfg.DatabaseURL, cfg.DatabaseName); err == nil {
			s = ms
		}
	case cliparse.DatabasePostgres, cliparse.DatabaseSQLite:
		var ss *SQLStore
		if ss, err = OpenSQL(ctx, Dialect(cfg.DatabaseType), cfg.DatabaseURL, cfg.DatabaseName); err == nil {
			s = ss
		}
	case cliparse.DatabaseRedis:
		var rs *RedisStore
		if rs, err = OpenRedis(ctx, cfg.DatabaseURL, cfg.DatabaseName); err == nil {
			s = rs
		}
	case cliparse.DatabaseMemory:
		s = NewMemoryStore()
	default:
		err = fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if err != nil {
		return nil, err
	}
	return s, nil
}

// validateKey rejects keys that are empty or that would address something
// other than a plain counter field. Labels become field names in document
// and hash backends.
func validateKey(stage, label string) error {
	if err := validateStage(stage); err != nil {
		return err
	}
	switch {
	case label == "":
		return fmt.Errorf("%w: empty label", ErrInvalidKey)
	case label == models.IDField:
		return fmt.Errorf("%w: label %q is reserved", ErrInvalidKey, label)
	case strings.HasPrefix(label, "$"), strings.ContainsAny(label, ".\x00"):
		return fmt.Errorf("%w: label %q", ErrInvalidKey, label)
	}
	return nil
}

func validateStage(stage string) error {
	if stage == "" {
		return fmt.Errorf("%w: empty stage", ErrInvalidKey)
	}
	if strings.ContainsRune(stage, 0) {
		return fmt.Errorf("%w: stage %q", ErrInvalidKey, stage)
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
