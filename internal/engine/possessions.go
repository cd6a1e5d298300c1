package engine

// freeThrowWeight approximates the share of free-throw attempts that end a
// possession (the standard 0.44 coefficient).
const freeThrowWeight = 0.44

// PossessionEstimate is the box-score possession count for one team:
// possessions ≈ FGA - ORB + TOV + 0.44*FTA.
type PossessionEstimate struct {
	Team        string               `json:"team"`
	Possessions float64              `json:"possessions"`
	Approximate bool                 `json:"approximate,omitempty"`
	Warnings    []DataQualityWarning `json:"warnings,omitempty"`
}

// EstimatePossessions derives a team's possession count from its box-score
// row. FGA, ORB and TOV are mandatory; when FTA is absent the free-throw term
// is dropped and the estimate is flagged approximate. The result is clamped to
// a minimum of 1 so downstream rates never divide by zero, and the clamp is
// recorded as a data-quality warning.
func EstimatePossessions(row *TeamBoxRow) (*PossessionEstimate, error) {
	if !row.FieldGoalsAttempted.Valid {
		return nil, &MissingFieldError{Field: "field_goals_attempted", Team: row.Team}
	}
	if !row.OffensiveRebounds.Valid {
		return nil, &MissingFieldError{Field: "offensive_rebounds", Team: row.Team}
	}
	if !row.Turnovers.Valid {
		return nil, &MissingFieldError{Field: "turnovers", Team: row.Team}
	}

	est := &PossessionEstimate{Team: row.Team}
	est.Possessions = float64(row.FieldGoalsAttempted.Int32) -
		float64(row.OffensiveRebounds.Int32) +
		float64(row.Turnovers.Int32)

	if row.FreeThrowsAttempted.Valid {
		est.Possessions += freeThrowWeight * float64(row.FreeThrowsAttempted.Int32)
	} else {
		est.Approximate = true
		est.Warnings = append(est.Warnings, warnf(WarnFTAUnavailable, row.Team,
			"free-throw attempts unavailable; possession estimate is approximate"))
	}

	if est.Possessions < 1 {
		est.Warnings = append(est.Warnings, warnf(WarnPossessionsClamped, row.Team,
			"possession estimate %.2f clamped to 1", est.Possessions))
		est.Possessions = 1
	}

	return est, nil
}
