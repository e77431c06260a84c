// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownStage  = errors.New("unknown stage")
	ErrUnknownChoice = errors.New("unknown choice")
)

// Stage ids
const (
	Stage1 = "stage1"
	Stage2 = "stage2"
	Stage3 = "stage3"
)

// Choice labels
const (
	ChoiceA   = "A"
	ChoiceB   = "B"
	ChoiceYes = "yes"
	ChoiceNo  = "no"
)

// Option is one of the two answers offered at a stage
type Option struct {
	Label   string
	Caption string
}

// Stage is one survey question with its fixed pair of options
type Stage struct {
	ID      string
	Step    int
	Prompt  string
	Options [2]Option
}

// Labels returns the allowed choice labels of the stage in display order
func (s Stage) Labels() []string {
	return []string{s.Options[0].Label, s.Options[1].Label}
}

// Allows reports whether choice is one of the stage's labels
func (s Stage) Allows(choice string) bool {
	return slices.Contains(s.Labels(), choice)
}

var stages = []Stage{
	{
		ID:     Stage1,
		Step:   1,
		Prompt: "Which would you rather hold?",
		Options: [2]Option{
			{Label: ChoiceA, Caption: "Portfolio A"},
			{Label: ChoiceB, Caption: "Portfolio B"},
		},
	},
	{
		ID:     Stage2,
		Step:   2,
		Prompt: "If Portfolio B ended with a 13% higher final value, would you switch?",
		Options: [2]Option{
			{Label: ChoiceYes, Caption: "Yes"},
			{Label: ChoiceNo, Caption: "No"},
		},
	},
	{
		ID:     Stage3,
		Step:   3,
		Prompt: "If Portfolio B ended with a 25% higher final value, would you switch?",
		Options: [2]Option{
			{Label: ChoiceYes, Caption: "Yes"},
			{Label: ChoiceNo, Caption: "No"},
		},
	},
}

// Stages returns the survey stages in order
func Stages() []Stage {
	return slices.Clone(stages)
}

// LookupStage finds a stage by id
func LookupStage(id string) (Stage, error) {
	for _, s := range stages {
		if s.ID == id {
			return s, nil
		}
	}
	return Stage{}, fmt.Errorf("%w: %q", ErrUnknownStage, id)
}

// StageAt returns the stage shown at step (1-based)
func StageAt(step int) (Stage, error) {
	if step < 1 || step > len(stages) {
		return Stage{}, fmt.Errorf("%w: step %d", ErrUnknownStage, step)
	}
	return stages[step-1], nil
}

// ValidateVote checks that stage exists and choice is one of its labels
func ValidateVote(stageID, choice string) (Stage, error) {
	stage, err := LookupStage(stageID)
	if err != nil {
		return Stage{}, err
	}
	if !stage.Allows(choice) {
		return Stage{}, fmt.Errorf("%w: %q for %s", ErrUnknownChoice, choice, stageID)
	}
	return stage, nil
}
