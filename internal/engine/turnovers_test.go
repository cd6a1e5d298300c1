package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turnoverFixtures(t *testing.T) (*TeamBoxRow, *PossessionEstimate, *TeamEfficiency) {
	t.Helper()
	row := harkerBox()
	est, err := EstimatePossessions(row)
	require.NoError(t, err)
	return row, est, CalculateTeamEfficiency(row, est)
}

func TestAnalyzeTurnoversRateAndPointsLost(t *testing.T) {
	row, est, eff := turnoverFixtures(t)

	report, err := AnalyzeTurnovers(row, est, eff, samplePlayers(), DefaultTurnoverRiskMultiplier)
	require.NoError(t, err)

	assert.Equal(t, 12, report.Turnovers)
	require.True(t, report.TurnoverRate.Defined())
	assert.InDelta(t, 12.0/62.0, report.TurnoverRate.Value, 1e-9)

	// Opportunity cost: 12 turnovers at the team's own PPP.
	assert.InDelta(t, 12.0*eff.PPP.Value, report.PotentialPointsLost, 1e-9)

	require.True(t, report.AssistToTurnover.Defined())
	assert.InDelta(t, 15.0/12.0, report.AssistToTurnover.Value, 1e-9)
}

func TestAnalyzeTurnoversInfiniteSentinelOnZeroTurnovers(t *testing.T) {
	row, _, _ := turnoverFixtures(t)
	row.Assists = 18
	row.Turnovers = n32(0)

	est, err := EstimatePossessions(row)
	require.NoError(t, err)
	eff := CalculateTeamEfficiency(row, est)

	report, err := AnalyzeTurnovers(row, est, eff, nil, DefaultTurnoverRiskMultiplier)
	require.NoError(t, err)

	assert.True(t, report.AssistToTurnover.Infinite)
	assert.False(t, report.AssistToTurnover.Undefined)
	assert.Equal(t, "INF", report.AssistToTurnover.String())
	assert.Zero(t, report.PotentialPointsLost)
}

func TestAnalyzeTurnoversMissingTurnoverColumn(t *testing.T) {
	row, est, eff := turnoverFixtures(t)
	row.Turnovers.Valid = false

	_, err := AnalyzeTurnovers(row, est, eff, nil, DefaultTurnoverRiskMultiplier)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "turnovers", missing.Field)
}

func TestAnalyzeTurnoversHighRiskFlag(t *testing.T) {
	row, est, eff := turnoverFixtures(t)

	players := []PlayerStatRow{
		// 6 turnovers in 12 minutes: 18 per 36, far past 1.5x any team average here.
		{Player: "R. Patel", Number: "5", MinutesPlayed: nf64(12), Turnovers: 6, Assists: 1},
		{Player: "M. Chen", Number: "12", MinutesPlayed: nf64(30), Turnovers: 2, Assists: 4},
		{Player: "D. Okafor", Number: "21", MinutesPlayed: nf64(26), Turnovers: 1, Assists: 3},
	}

	report, err := AnalyzeTurnovers(row, est, eff, players, DefaultTurnoverRiskMultiplier)
	require.NoError(t, err)
	require.NotEmpty(t, report.Players)

	// Sorted by turnover count, riskiest ball-handler first.
	assert.Equal(t, "R. Patel", report.Players[0].Player)
	assert.True(t, report.Players[0].HighRisk)
	assert.InDelta(t, 18.0, report.Players[0].TurnoversPer36.Value, 1e-9)

	for _, line := range report.Players[1:] {
		assert.False(t, line.HighRisk, "player %s", line.Player)
	}
}

func TestAnalyzeTurnoversPlayersWithoutMinutesAreNotFlagged(t *testing.T) {
	row, est, eff := turnoverFixtures(t)

	players := []PlayerStatRow{
		{Player: "B. Liu", Number: "30", Turnovers: 7}, // no minutes recorded
	}

	report, err := AnalyzeTurnovers(row, est, eff, players, DefaultTurnoverRiskMultiplier)
	require.NoError(t, err)
	require.Len(t, report.Players, 1)

	assert.False(t, report.Players[0].HighRisk)
	assert.True(t, report.Players[0].TurnoversPer36.Undefined)
}

func TestTurnoverRecommendationsEscalate(t *testing.T) {
	row, _, _ := turnoverFixtures(t)
	row.Turnovers = n32(20)
	row.Assists = 8

	est, err := EstimatePossessions(row)
	require.NoError(t, err)
	eff := CalculateTeamEfficiency(row, est)

	report, err := AnalyzeTurnovers(row, est, eff, nil, DefaultTurnoverRiskMultiplier)
	require.NoError(t, err)

	// 20/70 possessions is > 20%: the critical recommendation plus low AST/TO.
	require.NotEmpty(t, report.Recommendations)
	assert.Contains(t, report.Recommendations[0], "CRITICAL")
}
