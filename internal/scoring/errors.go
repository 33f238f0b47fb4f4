package scoring

import "errors"

var (
	// ErrSessionNotFound means the session (or its case/user context) does
	// not exist. Surfaced to the caller; never converted to a default score.
	ErrSessionNotFound = errors.New("session not found")

	// ErrMetricsNotFound means no performance metrics record exists for the
	// session. Surfaced to the caller; nothing is persisted.
	ErrMetricsNotFound = errors.New("performance metrics not found for session")

	// ErrInvalidRubric marks a rubric that fails the weight invariants.
	// Fatal for that rubric version.
	ErrInvalidRubric = errors.New("invalid rubric")
)
