package engine

import "fmt"

// MissingFieldError indicates a mandatory input field was absent from the
// canonical row. The affected computation fails rather than defaulting the
// field to zero, since a silent zero would change the result's meaning.
type MissingFieldError struct {
	Field string
	Team  string
}

func (e *MissingFieldError) Error() string {
	if e.Team != "" {
		return fmt.Sprintf("missing required field %q for team %s", e.Field, e.Team)
	}
	return fmt.Sprintf("missing required field %q", e.Field)
}

// MissingOpponentDataError indicates a head-to-head computation was invoked
// with only one team's box-score row.
type MissingOpponentDataError struct {
	Team string
}

func (e *MissingOpponentDataError) Error() string {
	if e.Team != "" {
		return fmt.Sprintf("opponent box score required for comparison with %s", e.Team)
	}
	return "opponent box score required for comparison"
}
