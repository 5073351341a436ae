package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var _ harvest.AttemptService = (*AttemptService)(nil)

// AttemptService is a mock implementation of harvest.AttemptService.
type AttemptService struct {
	LogAttemptFn   func(ctx context.Context, attempt *harvest.Attempt) error
	FindAttemptsFn func(ctx context.Context, filter harvest.AttemptFilter) ([]*harvest.Attempt, error)
}

func (s *AttemptService) LogAttempt(ctx context.Context, attempt *harvest.Attempt) error {
	return s.LogAttemptFn(ctx, attempt)
}

func (s *AttemptService) FindAttempts(ctx context.Context, filter harvest.AttemptFilter) ([]*harvest.Attempt, error) {
	return s.FindAttemptsFn(ctx, filter)
}
