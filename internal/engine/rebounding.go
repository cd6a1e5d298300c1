package engine

import (
	"fmt"
	"math"
	"sort"
)

// TeamRebounding is one side of the rebounding comparison.
type TeamRebounding struct {
	Team                string `json:"team"`
	TotalRebounds       int    `json:"total_rebounds"`
	OffensiveRebounds   int    `json:"offensive_rebounds"`
	DefensiveRebounds   int    `json:"defensive_rebounds"`
	OffensiveReboundPct Ratio  `json:"offensive_rebound_pct"`
	DefensiveReboundPct Ratio  `json:"defensive_rebound_pct"`
}

// Rebounding comparison categories.
const (
	ReboundCategoryOffensive = "offensive_glass"
	ReboundCategoryDefensive = "defensive_glass"
	ReboundCategoryTotal     = "total_rebounds"
)

// ReboundControl ranks which team controls one rebounding category and by how
// much (percentage-point gap for the glass categories, raw count for totals).
type ReboundControl struct {
	Category string  `json:"category"`
	Leader   string  `json:"leader"`
	Gap      float64 `json:"gap"`
}

// PlayerReboundLine is one player's rebounding line with a per-36 rate.
type PlayerReboundLine struct {
	Player            string  `json:"player"`
	Number            string  `json:"number"`
	TotalRebounds     int     `json:"total_rebounds"`
	OffensiveRebounds int     `json:"offensive_rebounds"`
	DefensiveRebounds int     `json:"defensive_rebounds"`
	MinutesPlayed     float64 `json:"minutes_played"`
	ReboundsPer36     Ratio   `json:"rebounds_per_36"`
}

// ReboundingReport is the two-team rebounding analysis.
type ReboundingReport struct {
	Us       TeamRebounding `json:"us"`
	Opponent TeamRebounding `json:"opponent"`

	ReboundMargin          int `json:"rebound_margin"`
	OffensiveReboundMargin int `json:"offensive_rebound_margin"`

	Control []ReboundControl `json:"control"`

	// SecondChancePoints estimates points generated from offensive rebounds as
	// ORB x own 2PT points-per-shot. It is an approximation, not a measured
	// value, and carries a warning saying so.
	SecondChancePoints Ratio `json:"second_chance_points"`

	TopRebounders   []PlayerReboundLine  `json:"top_rebounders,omitempty"`
	Recommendations []string             `json:"recommendations,omitempty"`
	Warnings        []DataQualityWarning `json:"warnings,omitempty"`
}

// AnalyzeRebounding computes offensive/defensive rebound percentages for both
// teams, ranks who controls each category, and estimates second-chance
// production. Both teams' rows are required; ORB/DRB are mandatory fields.
func AnalyzeRebounding(us, opp *TeamBoxRow, ourEff *TeamEfficiency, players []PlayerStatRow) (*ReboundingReport, error) {
	if us == nil {
		return nil, &MissingOpponentDataError{}
	}
	if opp == nil {
		return nil, &MissingOpponentDataError{Team: us.Team}
	}
	for _, row := range []*TeamBoxRow{us, opp} {
		if !row.OffensiveRebounds.Valid {
			return nil, &MissingFieldError{Field: "offensive_rebounds", Team: row.Team}
		}
		if !row.DefensiveRebounds.Valid {
			return nil, &MissingFieldError{Field: "defensive_rebounds", Team: row.Team}
		}
	}

	ourORB := int(us.OffensiveRebounds.Int32)
	ourDRB := int(us.DefensiveRebounds.Int32)
	oppORB := int(opp.OffensiveRebounds.Int32)
	oppDRB := int(opp.DefensiveRebounds.Int32)

	report := &ReboundingReport{
		Us:       teamRebounding(us.Team, ourORB, ourDRB, oppORB, oppDRB),
		Opponent: teamRebounding(opp.Team, oppORB, oppDRB, ourORB, ourDRB),
	}
	report.ReboundMargin = report.Us.TotalRebounds - report.Opponent.TotalRebounds
	report.OffensiveReboundMargin = ourORB - oppORB
	report.Control = reboundControl(&report.Us, &report.Opponent)

	report.SecondChancePoints = scaleRatio(ourEff.TwoPointPPS, float64(ourORB))
	if report.SecondChancePoints.Defined() {
		report.Warnings = append(report.Warnings, warnf(WarnApproximate, us.Team,
			"second-chance points estimated as ORB x 2PT points-per-shot, not measured"))
	}

	report.TopRebounders = reboundLines(players)
	report.Recommendations = reboundingRecommendations(report)

	return report, nil
}

// teamRebounding computes one side's percentages against the opponent's
// counts: OREB% = ORB / (ORB + opponent DRB), DREB% = DRB / (DRB + opponent ORB).
func teamRebounding(team string, orb, drb, oppORB, oppDRB int) TeamRebounding {
	return TeamRebounding{
		Team:                team,
		TotalRebounds:       orb + drb,
		OffensiveRebounds:   orb,
		DefensiveRebounds:   drb,
		OffensiveReboundPct: AttemptsRatio(float64(orb), float64(orb+oppDRB)),
		DefensiveReboundPct: AttemptsRatio(float64(drb), float64(drb+oppORB)),
	}
}

func reboundControl(us, opp *TeamRebounding) []ReboundControl {
	control := make([]ReboundControl, 0, 3)

	if us.OffensiveReboundPct.Defined() && opp.OffensiveReboundPct.Defined() {
		control = append(control, rankCategory(ReboundCategoryOffensive, us, opp,
			us.OffensiveReboundPct.Value*100, opp.OffensiveReboundPct.Value*100))
	}
	if us.DefensiveReboundPct.Defined() && opp.DefensiveReboundPct.Defined() {
		control = append(control, rankCategory(ReboundCategoryDefensive, us, opp,
			us.DefensiveReboundPct.Value*100, opp.DefensiveReboundPct.Value*100))
	}
	control = append(control, rankCategory(ReboundCategoryTotal, us, opp,
		float64(us.TotalRebounds), float64(opp.TotalRebounds)))

	return control
}

func rankCategory(category string, us, opp *TeamRebounding, ourVal, oppVal float64) ReboundControl {
	leader := us.Team
	if oppVal > ourVal {
		leader = opp.Team
	}
	return ReboundControl{
		Category: category,
		Leader:   leader,
		Gap:      math.Abs(ourVal - oppVal),
	}
}

func reboundLines(players []PlayerStatRow) []PlayerReboundLine {
	lines := make([]PlayerReboundLine, 0, len(players))
	for i := range players {
		p := &players[i]
		if p.TotalRebounds == 0 {
			continue
		}
		line := PlayerReboundLine{
			Player:            p.Player,
			Number:            p.Number,
			TotalRebounds:     p.TotalRebounds,
			OffensiveRebounds: p.OffensiveRebounds,
			DefensiveRebounds: p.DefensiveRebounds,
			ReboundsPer36:     UndefinedRatio(),
		}
		if p.MinutesPlayed.Valid && p.MinutesPlayed.Float64 > 0 {
			line.MinutesPlayed = p.MinutesPlayed.Float64
			line.ReboundsPer36 = DefinedRatio(float64(p.TotalRebounds) / p.MinutesPlayed.Float64 * 36)
		}
		lines = append(lines, line)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].TotalRebounds > lines[j].TotalRebounds
	})
	return lines
}

func reboundingRecommendations(report *ReboundingReport) []string {
	var recs []string

	if report.Us.OffensiveReboundPct.Defined() && report.Us.OffensiveReboundPct.Value*100 < 25 {
		recs = append(recs, "Offensive rebounding below average (<25%). Focus on boxing out and crashing the boards.")
	}
	if report.Opponent.OffensiveReboundPct.Defined() && report.Opponent.OffensiveReboundPct.Value*100 > 35 {
		recs = append(recs, fmt.Sprintf("ALERT: opponent offensive rebounding is strong (%.1f%%). Defensive box-outs critical.",
			report.Opponent.OffensiveReboundPct.Value*100))
	}
	if report.ReboundMargin < -5 {
		recs = append(recs, "Losing the rebounding battle significantly. Emphasize rebounding fundamentals.")
	}
	if report.OffensiveReboundMargin < -3 {
		recs = append(recs, "Giving up too many offensive rebounds. Improve defensive positioning.")
	}

	return recs
}
