// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/same-returns/cliparse"
	"github.com/danielhkuo/same-returns/models"
	"github.com/danielhkuo/same-returns/store"
)

// SetupTestStore opens an empty SQLite-backed store in a temporary directory
func SetupTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "survey.db") + "?_pragma=busy_timeout(5000)"
	st, err := store.OpenSQL(context.Background(), store.DialectSQLite, dsn, "test")
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return st
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "memory://",
		DatabaseName: "test",
		DatabaseType: cliparse.DatabaseMemory,
	}
}

// FailingStore fails every call with Err
type FailingStore struct {
	Err error
}

func (f FailingStore) Increment(ctx context.Context, stage, label string) (models.Tally, error) {
	return models.Tally{}, f.Err
}

func (f FailingStore) Get(ctx context.Context, stage string) (models.Tally, error) {
	return models.Tally{}, f.Err
}

func (f FailingStore) Ping(ctx context.Context) error { return f.Err }

func (f FailingStore) Close() error { return nil }

// SeedVotes records count votes for choice on stage
func SeedVotes(t *testing.T, st store.Store, stage, choice string, count int) {
	t.Helper()

	for i := 0; i < count; i++ {
		if _, err := st.Increment(context.Background(), stage, choice); err != nil {
			t.Fatalf("Failed to seed vote %s/%s: %v", stage, choice, err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
