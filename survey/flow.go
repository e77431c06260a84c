// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/same-returns/models"
)

// ErrNotFinished is returned by Flow.Percentage before the last stage is answered
var ErrNotFinished = errors.New("survey not finished")

// Voter records a single vote and returns the stage tally after it
type Voter interface {
	Vote(ctx context.Context, stage, choice string) (models.Tally, error)
}

// Flow walks one participant through the stages. It only moves forward and
// stays on the last stage once reached. A Flow is not safe for concurrent use.
type Flow struct {
	voter  Voter
	step   int
	result *models.Tally
	done   bool
}

func NewFlow(voter Voter) *Flow {
	return &Flow{voter: voter, step: 1}
}

// Step returns the current step, 1 through 3
func (f *Flow) Step() int {
	return f.step
}

// Stage returns the stage shown at the current step
func (f *Flow) Stage() Stage {
	s, _ := StageAt(f.step)
	return s
}

// Done reports whether the last stage has been answered
func (f *Flow) Done() bool {
	return f.done
}

// Result returns the most recently returned tally, if any
func (f *Flow) Result() (models.Tally, bool) {
	if f.result == nil {
		return models.Tally{}, false
	}
	return *f.result, true
}

// Choose records choice for the current stage. On success the returned tally
// is kept and the flow advances unless it is already on the last stage. On
// failure nothing changes.
func (f *Flow) Choose(ctx context.Context, choice string) error {
	stage := f.Stage()
	if !stage.Allows(choice) {
		return fmt.Errorf("%w: %q for %s", ErrUnknownChoice, choice, stage.ID)
	}

	tally, err := f.voter.Vote(ctx, stage.ID, choice)
	if err != nil {
		return fmt.Errorf("vote %s/%s: %w", stage.ID, choice, err)
	}

	f.result = &tally
	if f.step < len(stages) {
		f.step++
	} else {
		f.done = true
	}
	return nil
}

// Percentage is the share of yes votes on the last stage. Only available once
// Done is true.
func (f *Flow) Percentage() (int, error) {
	if !f.done || f.result == nil {
		return 0, ErrNotFinished
	}
	return Percentage(*f.result)
}
