package harvest

import (
	"context"
	"time"
)

// AttemptStatus is the outcome of a scrape invocation.
type AttemptStatus string

// AttemptStatus values.
const (
	AttemptInserted AttemptStatus = "inserted"
	AttemptUpdated  AttemptStatus = "updated"
	AttemptError    AttemptStatus = "error"
)

// Attempt is an immutable entry in the scrape audit trail.
type Attempt struct {
	ID           int64         `json:"id"`
	URL          string        `json:"url"`
	Mode         Mode          `json:"mode"`
	Timestamp    time.Time     `json:"timestamp"`
	Status       AttemptStatus `json:"status"`
	ErrorMessage string        `json:"errorMessage,omitempty"`
}

// Validate returns an error if the attempt contains invalid fields.
func (a *Attempt) Validate() error {
	switch a.Status {
	case AttemptInserted, AttemptUpdated, AttemptError:
	default:
		return Errorf(EINVALID, "invalid attempt status %q", a.Status)
	}
	return nil
}

// AttemptFilter represents a filter for FindAttempts.
type AttemptFilter struct {
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// AttemptService records scrape attempts. Entries are only ever appended.
type AttemptService interface {
	// LogAttempt appends an attempt and sets its ID and Timestamp.
	LogAttempt(ctx context.Context, attempt *Attempt) error

	// FindAttempts returns attempts in insertion order.
	FindAttempts(ctx context.Context, filter AttemptFilter) ([]*Attempt, error)
}
