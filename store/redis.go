// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/same-returns/models"
)

// RedisStore keeps each tally in a hash at <namespace>:tally:<stage>
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// OpenRedis parses a redis:// URL and pings the server
func OpenRedis(ctx context.Context, url, namespace string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, unavailable("ping redis", err)
	}

	return NewRedisStore(client, namespace), nil
}

func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{client: client, namespace: namespace}
}

func (s *RedisStore) key(stage string) string {
	return s.namespace + ":tally:" + stage
}

func (s *RedisStore) Increment(ctx context.Context, stage, label string) (models.Tally, error) {
	if err := validateKey(stage, label); err != nil {
		return models.Tally{}, err
	}

	key := s.key(stage)

	// MULTI/EXEC so the hash we read back is the one our increment produced
	var all *redis.MapStringStringCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, label, 1)
		all = pipe.HGetAll(ctx, key)
		return nil
	})
	if err != nil {
		return models.Tally{}, unavailable("increment", err)
	}

	return tallyFromHash(stage, all.Val())
}

func (s *RedisStore) Get(ctx context.Context, stage string) (models.Tally, error) {
	if err := validateStage(stage); err != nil {
		return models.Tally{}, err
	}

	fields, err := s.client.HGetAll(ctx, s.key(stage)).Result()
	if err != nil {
		return models.Tally{}, unavailable("read tally", err)
	}
	if len(fields) == 0 {
		return models.Tally{}, ErrNotFound
	}

	return tallyFromHash(stage, fields)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func tallyFromHash(stage string, fields map[string]string) (models.Tally, error) {
	tally := models.NewTally(stage)
	for label, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.Tally{}, fmt.Errorf("tally %s field %q: %w", stage, label, err)
		}
		tally.Counts[label] = n
	}
	return tally, nil
}
