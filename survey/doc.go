// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package survey holds the stage catalogue and the participant-side flow.

# Stages

Three questions, each with a fixed pair of answers:

	stage1  A | B       Which would you rather hold?
	stage2  yes | no    Switch at 13% higher final value?
	stage3  yes | no    Switch at 25% higher final value?

ValidateVote rejects unknown stages and choices outside a stage's pair, so a
choice label never reaches storage unless it belongs to the stage.

# Flow

Flow is a forward-only state machine over steps 1..3:

	flow := survey.NewFlow(survey.NewHTTPVoter("http://localhost:3318", nil))
	_ = flow.Choose(ctx, "A")   // step 1 -> 2
	_ = flow.Choose(ctx, "yes") // step 2 -> 3
	_ = flow.Choose(ctx, "no")  // stays on 3, Done() == true
	pct, err := flow.Percentage()

A failed vote leaves the step and the stored tally untouched.

# Percentage

Percentage computes round(yes / (yes + no) * 100). With no yes/no votes it
returns ErrNoVotes rather than a number.
*/
package survey
