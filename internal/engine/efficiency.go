package engine

import "sort"

// TeamEfficiency holds a team's scoring-efficiency metrics for one game.
// Ratios over zero attempts stay in their undefined state so reporting can
// render "N/A" instead of a misleading 0.0.
type TeamEfficiency struct {
	Team        string  `json:"team"`
	Points      int     `json:"points"`
	Possessions float64 `json:"possessions"`

	PPP Ratio `json:"ppp"`
	PPS Ratio `json:"pps"`

	TwoPointPct   Ratio `json:"two_point_pct"`
	ThreePointPct Ratio `json:"three_point_pct"`
	TwoPointPPS   Ratio `json:"two_point_pps"`
	ThreePointPPS Ratio `json:"three_point_pps"`

	EffectiveFGPct  Ratio `json:"effective_fg_pct"`
	TrueShootingPct Ratio `json:"true_shooting_pct"`

	Warnings []DataQualityWarning `json:"warnings,omitempty"`
}

// CalculateTeamEfficiency computes PPP, PPS, the 2PT/3PT splits, eFG% and TS%
// for one team. The possession estimate comes from EstimatePossessions so the
// two possession notions (box-score vs. shot-chart) are never conflated.
func CalculateTeamEfficiency(row *TeamBoxRow, poss *PossessionEstimate) *TeamEfficiency {
	eff := &TeamEfficiency{
		Team:        row.Team,
		Points:      row.Points,
		Possessions: poss.Possessions,
		PPP:         NewRatio(float64(row.Points), poss.Possessions),
	}
	eff.Warnings = append(eff.Warnings, validateBoxRow(row)...)

	if row.FieldGoalsAttempted.Valid {
		fga := float64(row.FieldGoalsAttempted.Int32)
		eff.PPS = AttemptsRatio(float64(row.Points), fga)
		eff.EffectiveFGPct = AttemptsRatio(float64(row.FieldGoalsMade)+0.5*float64(row.ThreePointersMade), fga)

		tsAttempts := fga
		if row.FreeThrowsAttempted.Valid {
			tsAttempts += freeThrowWeight * float64(row.FreeThrowsAttempted.Int32)
		}
		eff.TrueShootingPct = AttemptsRatio(float64(row.Points), 2*tsAttempts)
	} else {
		eff.PPS = UndefinedRatio()
		eff.EffectiveFGPct = UndefinedRatio()
		eff.TrueShootingPct = UndefinedRatio()
	}

	eff.TwoPointPct = AttemptsRatio(float64(row.TwoPointersMade), float64(row.TwoPointersAttempted))
	eff.ThreePointPct = AttemptsRatio(float64(row.ThreePointersMade), float64(row.ThreePointersAttempted))
	eff.TwoPointPPS = scaleRatio(eff.TwoPointPct, 2)
	eff.ThreePointPPS = scaleRatio(eff.ThreePointPct, 3)

	return eff
}

// PlayerEfficiency is a player's shooting line with per-shot efficiency.
type PlayerEfficiency struct {
	Player              string  `json:"player"`
	Number              string  `json:"number"`
	MinutesPlayed       float64 `json:"minutes_played"`
	Points              int     `json:"points"`
	FieldGoalsMade      int     `json:"field_goals_made"`
	FieldGoalsAttempted int     `json:"field_goals_attempted"`
	PPS                 Ratio   `json:"pps"`
	FieldGoalPct        Ratio   `json:"field_goal_pct"`
	ThreePointPct       Ratio   `json:"three_point_pct"`
	UsageRate           Ratio   `json:"usage_rate"`
}

// CalculatePlayerEfficiency computes per-player scoring efficiency, sorted by
// attempts (highest volume first).
func CalculatePlayerEfficiency(players []PlayerStatRow) []PlayerEfficiency {
	lines := make([]PlayerEfficiency, 0, len(players))
	for i := range players {
		p := &players[i]
		line := PlayerEfficiency{
			Player:              p.Player,
			Number:              p.Number,
			Points:              p.Points,
			FieldGoalsMade:      p.FieldGoalsMade,
			FieldGoalsAttempted: p.FieldGoalsAttempted,
			PPS:                 AttemptsRatio(float64(p.Points), float64(p.FieldGoalsAttempted)),
			FieldGoalPct:        AttemptsRatio(float64(p.FieldGoalsMade), float64(p.FieldGoalsAttempted)),
			ThreePointPct:       AttemptsRatio(float64(p.ThreePointersMade), float64(p.ThreePointersAttempted)),
			UsageRate:           UndefinedRatio(),
		}
		if p.MinutesPlayed.Valid {
			line.MinutesPlayed = p.MinutesPlayed.Float64
		}
		if p.UsageRate.Valid {
			line.UsageRate = DefinedRatio(p.UsageRate.Float64)
		}
		lines = append(lines, line)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].FieldGoalsAttempted > lines[j].FieldGoalsAttempted
	})
	return lines
}

// EfficiencyDifferential is the signed gap (ours minus opponent) per metric.
// A differential is defined only when both sides are.
type EfficiencyDifferential struct {
	Points          int   `json:"points"`
	PPP             Ratio `json:"ppp"`
	PPS             Ratio `json:"pps"`
	TwoPointPct     Ratio `json:"two_point_pct"`
	ThreePointPct   Ratio `json:"three_point_pct"`
	EffectiveFGPct  Ratio `json:"effective_fg_pct"`
	TrueShootingPct Ratio `json:"true_shooting_pct"`
}

// CompareTeamEfficiency produces the head-to-head differential used for
// our-team-vs-opponent framing.
func CompareTeamEfficiency(ours, theirs *TeamEfficiency) (*EfficiencyDifferential, error) {
	if ours == nil {
		return nil, &MissingOpponentDataError{}
	}
	if theirs == nil {
		return nil, &MissingOpponentDataError{Team: ours.Team}
	}

	return &EfficiencyDifferential{
		Points:          ours.Points - theirs.Points,
		PPP:             diffRatio(ours.PPP, theirs.PPP),
		PPS:             diffRatio(ours.PPS, theirs.PPS),
		TwoPointPct:     diffRatio(ours.TwoPointPct, theirs.TwoPointPct),
		ThreePointPct:   diffRatio(ours.ThreePointPct, theirs.ThreePointPct),
		EffectiveFGPct:  diffRatio(ours.EffectiveFGPct, theirs.EffectiveFGPct),
		TrueShootingPct: diffRatio(ours.TrueShootingPct, theirs.TrueShootingPct),
	}, nil
}

func scaleRatio(r Ratio, factor float64) Ratio {
	if !r.Defined() {
		return r
	}
	return DefinedRatio(r.Value * factor)
}

func diffRatio(a, b Ratio) Ratio {
	if !a.Defined() || !b.Defined() {
		return UndefinedRatio()
	}
	return DefinedRatio(a.Value - b.Value)
}
