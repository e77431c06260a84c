// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"errors"
	"math"

	"github.com/danielhkuo/same-returns/models"
)

// ErrNoVotes is returned when a tally has no yes/no votes to compute a share from
var ErrNoVotes = errors.New("no yes/no votes recorded")

// Percentage returns round(yes / (yes + no) * 100) for a yes/no tally.
// Returns ErrNoVotes when yes + no is zero.
func Percentage(t models.Tally) (int, error) {
	yes := t.Count(ChoiceYes)
	no := t.Count(ChoiceNo)
	if yes+no == 0 {
		return 0, ErrNoVotes
	}
	return int(math.Round(float64(yes) / float64(yes+no) * 100)), nil
}
