// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/danielhkuo/same-returns/models"
)

// StatusError is returned by HTTPVoter when the server rejects a vote
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("vote rejected: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("vote rejected: %d %s", e.StatusCode, e.Message)
}

// HTTPVoter posts votes to a running server
type HTTPVoter struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPVoter(baseURL string, client *http.Client) *HTTPVoter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPVoter{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

// Vote handles the POST /vote round trip
func (v *HTTPVoter) Vote(ctx context.Context, stage, choice string) (models.Tally, error) {
	body, err := json.Marshal(models.VoteRequest{Stage: stage, Choice: choice})
	if err != nil {
		return models.Tally{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.BaseURL+"/vote", bytes.NewReader(body))
	if err != nil {
		return models.Tally{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.Client.Do(req)
	if err != nil {
		return models.Tally{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &errResp) != nil {
			errResp.Message = strings.TrimSpace(string(raw))
		}
		return models.Tally{}, &StatusError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	var tally models.Tally
	if err := json.NewDecoder(resp.Body).Decode(&tally); err != nil {
		return models.Tally{}, fmt.Errorf("failed to decode tally: %w", err)
	}
	return tally, nil
}
