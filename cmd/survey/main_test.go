// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/same-returns/models"
	"github.com/danielhkuo/same-returns/survey"
)

// countingVoter keeps tallies in memory and can fail the next N votes
type countingVoter struct {
	tallies map[string]models.Tally
	failing int
	calls   []string
}

func newCountingVoter() *countingVoter {
	return &countingVoter{tallies: map[string]models.Tally{}}
}

func (v *countingVoter) Vote(ctx context.Context, stage, choice string) (models.Tally, error) {
	v.calls = append(v.calls, stage+"/"+choice)
	if v.failing > 0 {
		v.failing--
		return models.Tally{}, &survey.StatusError{StatusCode: http.StatusServiceUnavailable, Message: "Storage unavailable"}
	}
	t, ok := v.tallies[stage]
	if !ok {
		t = models.NewTally(stage)
	}
	t.Counts[choice]++
	v.tallies[stage] = t
	return t.WithLabels(), nil
}

func TestRun(t *testing.T) {
	voter := newCountingVoter()
	voter.tallies["stage3"] = models.Tally{Stage: "stage3", Counts: map[string]int64{"yes": 2, "no": 2}}

	var out bytes.Buffer
	err := run(context.Background(), strings.NewReader("1\nNo\nyes\n"), &out, voter)
	require.NoError(t, err)

	assert.Equal(t, []string{"stage1/A", "stage2/no", "stage3/yes"}, voter.calls)
	assert.Contains(t, out.String(), "[1/3] Which would you rather hold?")
	assert.Contains(t, out.String(), "Votes so far: yes: 3, no: 2")
	assert.Contains(t, out.String(), "60% of participants would switch")
}

func TestRun_RepromptsOnInvalidChoice(t *testing.T) {
	voter := newCountingVoter()

	var out bytes.Buffer
	err := run(context.Background(), strings.NewReader("maybe\nB\nyes\nno\n"), &out, voter)
	require.NoError(t, err)

	assert.Equal(t, []string{"stage1/B", "stage2/yes", "stage3/no"}, voter.calls, "invalid input never reaches the server")
	assert.Contains(t, out.String(), "Please answer A or B.")
	assert.Contains(t, out.String(), "0% of participants would switch")
}

func TestRun_RetriesAfterServerError(t *testing.T) {
	voter := newCountingVoter()
	voter.failing = 1

	var out bytes.Buffer
	err := run(context.Background(), strings.NewReader("A\nA\nyes\nyes\n"), &out, voter)
	require.NoError(t, err)

	assert.Equal(t, []string{"stage1/A", "stage1/A", "stage2/yes", "stage3/yes"}, voter.calls)
	assert.Contains(t, out.String(), "could not record your vote")
}

func TestRun_InputEndsEarly(t *testing.T) {
	err := run(context.Background(), strings.NewReader("A\n"), io.Discard, newCountingVoter())
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestParseChoice(t *testing.T) {
	stage1, err := survey.LookupStage("stage1")
	require.NoError(t, err)
	stage2, err := survey.LookupStage("stage2")
	require.NoError(t, err)

	tests := []struct {
		stage    survey.Stage
		input    string
		expected string
	}{
		{stage1, "1", "A"},
		{stage1, " 2 ", "B"},
		{stage1, "b", "B"},
		{stage1, "portfolio a", "A"},
		{stage2, "YES", "yes"},
		{stage2, "2", "no"},
		{stage2, "maybe", "maybe"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseChoice(tt.stage, tt.input), "input %q", tt.input)
	}
}
