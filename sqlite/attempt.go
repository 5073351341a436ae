package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var _ harvest.AttemptService = (*AttemptService)(nil)

// AttemptService implements harvest.AttemptService using SQLite.
type AttemptService struct {
	db *DB
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(db *DB) *AttemptService {
	return &AttemptService{db: db}
}

// LogAttempt appends an attempt to the log and sets its ID.
// A zero timestamp is replaced with the current time.
func (s *AttemptService) LogAttempt(ctx context.Context, a *harvest.Attempt) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = s.db.now()
	}
	a.Timestamp = a.Timestamp.UTC().Round(0)

	var errMsg sql.NullString
	if a.ErrorMessage != "" {
		errMsg = sql.NullString{String: a.ErrorMessage, Valid: true}
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (url, mode, timestamp, status, error_message)
		VALUES (?, ?, ?, ?, ?)
	`, a.URL, string(a.Mode), formatTime(a.Timestamp), string(a.Status), errMsg)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

// FindAttempts retrieves attempts matching the filter in the order they were logged.
func (s *AttemptService) FindAttempts(ctx context.Context, filter harvest.AttemptFilter) ([]*harvest.Attempt, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, mode, timestamp, status, error_message FROM attempts WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []*harvest.Attempt{}
	for rows.Next() {
		var a harvest.Attempt
		var mode, status, timestamp string
		var errMsg sql.NullString

		if err := rows.Scan(&a.ID, &a.URL, &mode, &timestamp, &status, &errMsg); err != nil {
			return nil, err
		}
		a.Mode = harvest.Mode(mode)
		a.Status = harvest.AttemptStatus(status)
		a.Timestamp = parseTime(timestamp)
		a.ErrorMessage = errMsg.String
		attempts = append(attempts, &a)
	}
	return attempts, rows.Err()
}
