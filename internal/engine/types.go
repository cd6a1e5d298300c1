package engine

import (
	"database/sql"
	"fmt"
)

// TeamBoxRow is one team's box-score line for a single game, already mapped to
// canonical field names by the CSV normalizer. Fields whose absence changes the
// meaning of a downstream computation (possession inputs, rebounding inputs)
// carry a validity flag; plain counts default to zero safely.
type TeamBoxRow struct {
	Team                   string        `json:"team"`
	Points                 int           `json:"points"`
	FieldGoalsMade         int           `json:"field_goals_made"`
	FieldGoalsAttempted    sql.NullInt32 `json:"field_goals_attempted"`
	TwoPointersMade        int           `json:"two_pointers_made"`
	TwoPointersAttempted   int           `json:"two_pointers_attempted"`
	ThreePointersMade      int           `json:"three_pointers_made"`
	ThreePointersAttempted int           `json:"three_pointers_attempted"`
	FreeThrowsMade         int           `json:"free_throws_made"`
	FreeThrowsAttempted    sql.NullInt32 `json:"free_throws_attempted"`
	OffensiveRebounds      sql.NullInt32 `json:"offensive_rebounds"`
	DefensiveRebounds      sql.NullInt32 `json:"defensive_rebounds"`
	Rebounds               int           `json:"rebounds"`
	Assists                int           `json:"assists"`
	Turnovers              sql.NullInt32 `json:"turnovers"`
	PersonalFouls          int           `json:"personal_fouls"`
}

// PlayerStatRow is one player's line for a single game.
type PlayerStatRow struct {
	Player                 string          `json:"player"`
	Number                 string          `json:"number"`
	Team                   string          `json:"team"`
	MinutesPlayed          sql.NullFloat64 `json:"minutes_played"`
	Points                 int             `json:"points"`
	FieldGoalsMade         int             `json:"field_goals_made"`
	FieldGoalsAttempted    int             `json:"field_goals_attempted"`
	ThreePointersMade      int             `json:"three_pointers_made"`
	ThreePointersAttempted int             `json:"three_pointers_attempted"`
	OffensiveRebounds      int             `json:"offensive_rebounds"`
	DefensiveRebounds      int             `json:"defensive_rebounds"`
	TotalRebounds          int             `json:"total_rebounds"`
	Assists                int             `json:"assists"`
	Steals                 int             `json:"steals"`
	Blocks                 int             `json:"blocks"`
	Turnovers              int             `json:"turnovers"`
	UsageRate              sql.NullFloat64 `json:"usage_rate"`
	OffensiveReboundPct    sql.NullFloat64 `json:"offensive_rebound_pct"`
	DefensiveReboundPct    sql.NullFloat64 `json:"defensive_rebound_pct"`
	AssistToTurnover       sql.NullFloat64 `json:"assist_to_turnover"`
}

// Shot result values as they appear in the canonical shot log.
const (
	ShotResultMade   = "Made"
	ShotResultMissed = "Missed"
)

// ShotEvent is a single shot attempt from the play-by-play export. Rows are
// read-only after load.
type ShotEvent struct {
	GameClock string          `json:"game_clock"`
	Quarter   int             `json:"quarter"`
	Player    string          `json:"player"`
	Team      string          `json:"team"`
	ShotType  string          `json:"shot_type"`
	Result    string          `json:"result"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	AssistBy  string          `json:"assist_by,omitempty"`
	Distance  sql.NullFloat64 `json:"distance"`
}

// Made reports whether the shot was converted.
func (s *ShotEvent) Made() bool {
	return s.Result == ShotResultMade
}

// Ratio is a division result that keeps the zero-denominator cases distinct
// from numeric values: 0/0 is undefined (rendered "N/A"), n/0 with n>0 is
// infinite (e.g. assists with zero turnovers). Neither is ever collapsed to 0.
type Ratio struct {
	Value     float64 `json:"value"`
	Undefined bool    `json:"undefined,omitempty"`
	Infinite  bool    `json:"infinite,omitempty"`
}

// NewRatio divides num by den, mapping zero denominators onto the undefined
// and infinite states instead of faulting.
func NewRatio(num, den float64) Ratio {
	if den == 0 {
		if num == 0 {
			return Ratio{Undefined: true}
		}
		return Ratio{Infinite: true}
	}
	return Ratio{Value: num / den}
}

// AttemptsRatio divides a total by an attempt count. Zero attempts always
// means "no data" (undefined), even when the numerator is non-zero — a team
// that scored only from the line still has no per-shot efficiency.
func AttemptsRatio(num, den float64) Ratio {
	if den == 0 {
		return Ratio{Undefined: true}
	}
	return Ratio{Value: num / den}
}

// DefinedRatio wraps an already-computed value.
func DefinedRatio(v float64) Ratio {
	return Ratio{Value: v}
}

// UndefinedRatio is the "no data" sentinel.
func UndefinedRatio() Ratio {
	return Ratio{Undefined: true}
}

// Defined reports whether the ratio holds a usable numeric value.
func (r Ratio) Defined() bool {
	return !r.Undefined && !r.Infinite
}

// Or returns the value, or fallback when the ratio is undefined or infinite.
func (r Ratio) Or(fallback float64) float64 {
	if !r.Defined() {
		return fallback
	}
	return r.Value
}

// String renders the ratio for reports: three decimals, "N/A", or "INF".
func (r Ratio) String() string {
	switch {
	case r.Undefined:
		return "N/A"
	case r.Infinite:
		return "INF"
	default:
		return fmt.Sprintf("%.3f", r.Value)
	}
}

// WarningCode identifies a class of data-quality issue.
type WarningCode string

const (
	WarnPossessionsClamped WarningCode = "possessions_clamped"
	WarnFTAUnavailable     WarningCode = "fta_unavailable"
	WarnPointsMismatch     WarningCode = "points_mismatch"
	WarnCoordinateClamped  WarningCode = "coordinate_clamped"
	WarnApproximate        WarningCode = "approximate_estimate"
)

// DataQualityWarning is a non-fatal issue found during an analysis run.
// Warnings are accumulated on result records and surfaced alongside them,
// never swallowed.
type DataQualityWarning struct {
	Code    WarningCode `json:"code"`
	Team    string      `json:"team,omitempty"`
	Message string      `json:"message"`
}

func warnf(code WarningCode, team, format string, args ...interface{}) DataQualityWarning {
	return DataQualityWarning{
		Code:    code,
		Team:    team,
		Message: fmt.Sprintf(format, args...),
	}
}

// validateBoxRow cross-checks the scoring identity points = 2*2PM + 3*3PM + FTM
// when the shot-split counts are present. A mismatch is reported, not enforced:
// exports disagree with themselves often enough that rejecting the row would
// lose the game.
func validateBoxRow(row *TeamBoxRow) []DataQualityWarning {
	if row.TwoPointersMade == 0 && row.ThreePointersMade == 0 {
		return nil
	}

	expected := 2*row.TwoPointersMade + 3*row.ThreePointersMade + row.FreeThrowsMade
	if expected != row.Points {
		return []DataQualityWarning{
			warnf(WarnPointsMismatch, row.Team,
				"points total %d disagrees with shot counts (expected %d)", row.Points, expected),
		}
	}
	return nil
}
