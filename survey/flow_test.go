// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/same-returns/models"
)

// fakeVoter returns the tallies it is given and records every call
type fakeVoter struct {
	tallies map[string]models.Tally
	err     error
	calls   []string
}

func (f *fakeVoter) Vote(ctx context.Context, stage, choice string) (models.Tally, error) {
	f.calls = append(f.calls, stage+"/"+choice)
	if f.err != nil {
		return models.Tally{}, f.err
	}
	return f.tallies[stage], nil
}

func newFakeVoter() *fakeVoter {
	return &fakeVoter{tallies: map[string]models.Tally{
		Stage1: {Stage: Stage1, Counts: map[string]int64{"A": 4, "B": 1}},
		Stage2: {Stage: Stage2, Counts: map[string]int64{"yes": 1, "no": 0}},
		Stage3: {Stage: Stage3, Counts: map[string]int64{"yes": 3, "no": 1}},
	}}
}

func TestFlowAdvancesThroughStages(t *testing.T) {
	voter := newFakeVoter()
	flow := NewFlow(voter)
	ctx := context.Background()

	assert.Equal(t, 1, flow.Step())
	assert.Equal(t, Stage1, flow.Stage().ID)
	_, ok := flow.Result()
	assert.False(t, ok)

	require.NoError(t, flow.Choose(ctx, "A"))
	assert.Equal(t, 2, flow.Step())
	result, ok := flow.Result()
	require.True(t, ok)
	assert.Equal(t, Stage1, result.Stage)

	_, err := flow.Percentage()
	assert.ErrorIs(t, err, ErrNotFinished)

	require.NoError(t, flow.Choose(ctx, "no"))
	assert.Equal(t, 3, flow.Step())
	assert.False(t, flow.Done())

	_, err = flow.Percentage()
	assert.ErrorIs(t, err, ErrNotFinished, "stage2 tally is never used for the final share")

	require.NoError(t, flow.Choose(ctx, "yes"))
	assert.Equal(t, 3, flow.Step())
	assert.True(t, flow.Done())

	pct, err := flow.Percentage()
	require.NoError(t, err)
	assert.Equal(t, 75, pct)

	assert.Equal(t, []string{"stage1/A", "stage2/no", "stage3/yes"}, voter.calls)
}

func TestFlowRejectsChoiceLocally(t *testing.T) {
	voter := newFakeVoter()
	flow := NewFlow(voter)

	err := flow.Choose(context.Background(), "yes")
	assert.ErrorIs(t, err, ErrUnknownChoice)
	assert.Empty(t, voter.calls)
	assert.Equal(t, 1, flow.Step())
}

func TestFlowFailureKeepsState(t *testing.T) {
	voter := newFakeVoter()
	flow := NewFlow(voter)
	ctx := context.Background()

	require.NoError(t, flow.Choose(ctx, "B"))
	before, _ := flow.Result()

	boom := errors.New("connection refused")
	voter.err = boom

	err := flow.Choose(ctx, "yes")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, flow.Step())

	after, ok := flow.Result()
	require.True(t, ok)
	assert.Equal(t, before, after)

	// Retry succeeds once the voter recovers
	voter.err = nil
	require.NoError(t, flow.Choose(ctx, "yes"))
	assert.Equal(t, 3, flow.Step())
}

func TestFlowStaysOnLastStage(t *testing.T) {
	voter := newFakeVoter()
	flow := NewFlow(voter)
	ctx := context.Background()

	for _, choice := range []string{"A", "yes", "no", "yes"} {
		require.NoError(t, flow.Choose(ctx, choice))
	}

	assert.Equal(t, 3, flow.Step())
	assert.True(t, flow.Done())
	assert.Equal(t, []string{"stage1/A", "stage2/yes", "stage3/no", "stage3/yes"}, voter.calls)
}

func TestFlowPercentageWithoutVotes(t *testing.T) {
	voter := newFakeVoter()
	voter.tallies[Stage3] = models.Tally{Stage: Stage3, Counts: map[string]int64{}}
	flow := NewFlow(voter)
	ctx := context.Background()

	for _, choice := range []string{"A", "yes", "no"} {
		require.NoError(t, flow.Choose(ctx, choice))
	}

	_, err := flow.Percentage()
	assert.ErrorIs(t, err, ErrNoVotes)
}
