// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"maps"
	"sync"

	"github.com/danielhkuo/same-returns/models"
)

// MemoryStore keeps tallies in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu      sync.Mutex
	tallies map[string]map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tallies: make(map[string]map[string]int64)}
}

func (s *MemoryStore) Increment(ctx context.Context, stage, label string) (models.Tally, error) {
	if err := validateKey(stage, label); err != nil {
		return models.Tally{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counts, ok := s.tallies[stage]
	if !ok {
		counts = make(map[string]int64)
		s.tallies[stage] = counts
	}
	counts[label]++

	return models.Tally{Stage: stage, Counts: maps.Clone(counts)}, nil
}

func (s *MemoryStore) Get(ctx context.Context, stage string) (models.Tally, error) {
	if err := validateStage(stage); err != nil {
		return models.Tally{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counts, ok := s.tallies[stage]
	if !ok {
		return models.Tally{}, ErrNotFound
	}
	return models.Tally{Stage: stage, Counts: maps.Clone(counts)}, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
