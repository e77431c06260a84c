// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - VoteRequest: stage, choice (both required, checked with Validate)

# Domain Types

Tally holds the cumulative count per choice label for one survey stage.
It serializes as a flat JSON object keyed by label, with the stage id under
the reserved "_id" field:

	{"_id": "stage1", "A": 3, "B": 5}

WithLabels fills in labels that have not been voted on yet:

	t := models.NewTally("stage2").WithLabels("yes", "no")
	// {"_id": "stage2", "no": 0, "yes": 0}

# Response Types

  - ErrorResponse: error, message
*/
package models
