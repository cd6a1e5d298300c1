package store

import (
	"database/sql"
	"time"
)

// AnalysisRecord is one persisted game analysis. Key headline metrics are
// denormalized into columns for listing and filtering; the full GameAnalysis
// lives in Payload as JSON.
type AnalysisRecord struct {
	AnalysisID     string          `json:"analysis_id" db:"analysis_id"`
	OurTeam        string          `json:"our_team" db:"our_team"`
	OpponentTeam   string          `json:"opponent_team" db:"opponent_team"`
	OurPoints      int             `json:"our_points" db:"our_points"`
	OpponentPoints int             `json:"opponent_points" db:"opponent_points"`
	OurPossessions float64         `json:"our_possessions" db:"our_possessions"`
	OurPPP         sql.NullFloat64 `json:"our_ppp,omitempty" db:"our_ppp"`
	TurnoverRate   sql.NullFloat64 `json:"turnover_rate,omitempty" db:"turnover_rate"`
	ReboundMargin  int             `json:"rebound_margin" db:"rebound_margin"`
	ShotMixVerdict string          `json:"shot_mix_recommendation" db:"shot_mix_recommendation"`
	WarningCount   int             `json:"warning_count" db:"warning_count"`
	Payload        []byte          `json:"-" db:"payload"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// ZoneStatRecord is one zone of a persisted analysis grid. The ratio columns
// are nullable: a zone that saw no shots stores NULL, never 0.
type ZoneStatRecord struct {
	ID           int64           `json:"id" db:"id"`
	AnalysisID   string          `json:"analysis_id" db:"analysis_id"`
	Row          int             `json:"row" db:"zone_row"`
	Col          int             `json:"col" db:"zone_col"`
	Shots        int             `json:"shots" db:"shots"`
	Makes        int             `json:"makes" db:"makes"`
	Misses       int             `json:"misses" db:"misses"`
	Points       int             `json:"points" db:"points"`
	PPS          sql.NullFloat64 `json:"pps,omitempty" db:"pps"`
	PPP          sql.NullFloat64 `json:"ppp,omitempty" db:"ppp"`
	FieldGoalPct sql.NullFloat64 `json:"field_goal_pct,omitempty" db:"field_goal_pct"`
}
