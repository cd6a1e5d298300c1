package engine

import (
	"fmt"
	"sort"
)

// PlayerTurnoverLine is one player's ball-security line. TurnoversPer36 is the
// minutes-based rate proxy used for risk flagging.
type PlayerTurnoverLine struct {
	Player           string  `json:"player"`
	Number           string  `json:"number"`
	Turnovers        int     `json:"turnovers"`
	MinutesPlayed    float64 `json:"minutes_played"`
	TurnoversPer36   Ratio   `json:"turnovers_per_36"`
	AssistToTurnover Ratio   `json:"assist_to_turnover"`
	HighRisk         bool    `json:"high_risk"`
}

// TurnoverReport is the team-level turnover analysis.
type TurnoverReport struct {
	Team                string               `json:"team"`
	Turnovers           int                  `json:"turnovers"`
	TurnoverRate        Ratio                `json:"turnover_rate"`
	AssistToTurnover    Ratio                `json:"assist_to_turnover"`
	PotentialPointsLost float64              `json:"potential_points_lost"`
	TeamTurnoversPer36  Ratio                `json:"team_turnovers_per_36"`
	Players             []PlayerTurnoverLine `json:"players,omitempty"`
	Recommendations     []string             `json:"recommendations,omitempty"`
	Warnings            []DataQualityWarning `json:"warnings,omitempty"`
}

// AnalyzeTurnovers computes turnover rate, AST/TO and the opportunity cost of
// turnovers (TOV x own PPP), and flags players whose per-36 turnover rate
// exceeds riskMultiplier times the team average. AST/TO with zero turnovers is
// the infinite sentinel, never a fault.
func AnalyzeTurnovers(row *TeamBoxRow, poss *PossessionEstimate, eff *TeamEfficiency,
	players []PlayerStatRow, riskMultiplier float64) (*TurnoverReport, error) {

	if !row.Turnovers.Valid {
		return nil, &MissingFieldError{Field: "turnovers", Team: row.Team}
	}
	turnovers := int(row.Turnovers.Int32)

	report := &TurnoverReport{
		Team:             row.Team,
		Turnovers:        turnovers,
		TurnoverRate:     NewRatio(float64(turnovers), poss.Possessions),
		AssistToTurnover: NewRatio(float64(row.Assists), float64(turnovers)),
	}

	// Opportunity cost of a possession ending in a turnover instead of a shot.
	report.PotentialPointsLost = float64(turnovers) * eff.PPP.Or(0)

	report.Players, report.TeamTurnoversPer36 = turnoverLines(players, turnovers, riskMultiplier)
	report.Recommendations = turnoverRecommendations(report)

	return report, nil
}

// turnoverLines builds per-player turnover rates and marks high-risk players
// against the team's per-36 average. Players without recorded minutes are
// listed but never flagged; their rate proxy is undefined.
func turnoverLines(players []PlayerStatRow, teamTurnovers int, riskMultiplier float64) ([]PlayerTurnoverLine, Ratio) {
	var teamMinutes float64
	for i := range players {
		if players[i].MinutesPlayed.Valid {
			teamMinutes += players[i].MinutesPlayed.Float64
		}
	}
	teamPer36 := NewRatio(float64(teamTurnovers)*36, teamMinutes)

	lines := make([]PlayerTurnoverLine, 0, len(players))
	for i := range players {
		p := &players[i]
		if p.Turnovers == 0 {
			continue
		}

		line := PlayerTurnoverLine{
			Player:           p.Player,
			Number:           p.Number,
			Turnovers:        p.Turnovers,
			TurnoversPer36:   UndefinedRatio(),
			AssistToTurnover: NewRatio(float64(p.Assists), float64(p.Turnovers)),
		}
		if p.AssistToTurnover.Valid {
			line.AssistToTurnover = DefinedRatio(p.AssistToTurnover.Float64)
		}
		if p.MinutesPlayed.Valid && p.MinutesPlayed.Float64 > 0 {
			line.MinutesPlayed = p.MinutesPlayed.Float64
			line.TurnoversPer36 = DefinedRatio(float64(p.Turnovers) / p.MinutesPlayed.Float64 * 36)
			if teamPer36.Defined() {
				line.HighRisk = line.TurnoversPer36.Value > riskMultiplier*teamPer36.Value
			}
		}
		lines = append(lines, line)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Turnovers > lines[j].Turnovers
	})
	return lines, teamPer36
}

func turnoverRecommendations(report *TurnoverReport) []string {
	var recs []string

	if report.TurnoverRate.Defined() {
		switch rate := report.TurnoverRate.Value * 100; {
		case rate > 20:
			recs = append(recs, fmt.Sprintf("CRITICAL: turnover rate is very high (%.1f%% of possessions). Focus on ball security.", rate))
		case rate > 15:
			recs = append(recs, fmt.Sprintf("WARNING: turnover rate is elevated (%.1f%% of possessions). Improve decision-making.", rate))
		}
	}

	if report.AssistToTurnover.Defined() && report.AssistToTurnover.Value < 1.0 {
		recs = append(recs, "Low assist-to-turnover ratio. Focus on better passing and court vision.")
	}

	for _, line := range report.Players {
		if line.HighRisk {
			recs = append(recs, fmt.Sprintf("High turnover rate from %s (#%s): %.1f per 36 minutes. Provide extra support on ball handling.",
				line.Player, line.Number, line.TurnoversPer36.Value))
			break
		}
	}

	return recs
}
