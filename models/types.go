package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// IDField is the identity field of a serialized tally. It can never be used
// as a choice label.
const IDField = "_id"

var validate = newValidator()

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Request types

type VoteRequest struct {
	Stage  string `json:"stage" validate:"required"`
	Choice string `json:"choice" validate:"required"`
}

// Validate checks that both fields are present and non-empty
func (r VoteRequest) Validate() error {
	return validate.Struct(r)
}

// Domain types

// Tally is the cumulative vote count per choice label for a single stage.
// It serializes as a flat object: {"_id": "stage1", "A": 3, "B": 5}.
type Tally struct {
	Stage  string
	Counts map[string]int64
}

// NewTally returns an empty tally for stage
func NewTally(stage string) Tally {
	return Tally{Stage: stage, Counts: map[string]int64{}}
}

// Count returns the count for label, zero when the label was never voted on
func (t Tally) Count(label string) int64 {
	return t.Counts[label]
}

// Total returns the sum of all label counts
func (t Tally) Total() int64 {
	var total int64
	for _, n := range t.Counts {
		total += n
	}
	return total
}

// WithLabels returns a copy of t in which every label in labels is present,
// defaulted to zero.
func (t Tally) WithLabels(labels ...string) Tally {
	out := Tally{Stage: t.Stage, Counts: make(map[string]int64, len(t.Counts)+len(labels))}
	for label, n := range t.Counts {
		out.Counts[label] = n
	}
	for _, label := range labels {
		if _, ok := out.Counts[label]; !ok {
			out.Counts[label] = 0
		}
	}
	return out
}

func (t Tally) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(t.Counts)+1)
	for label, n := range t.Counts {
		doc[label] = n
	}
	doc[IDField] = t.Stage
	return json.Marshal(doc)
}

func (t *Tally) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	t.Stage = ""
	t.Counts = make(map[string]int64, len(doc))
	for key, raw := range doc {
		if key == IDField {
			if err := json.Unmarshal(raw, &t.Stage); err != nil {
				return fmt.Errorf("tally %s: %w", IDField, err)
			}
			continue
		}
		var n int64
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("tally field %q: %w", key, err)
		}
		t.Counts[key] = n
	}
	return nil
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
