package engine

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func n32(v int) sql.NullInt32 {
	return sql.NullInt32{Int32: int32(v), Valid: true}
}

func nf64(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

// harkerBox mirrors a typical varsity box line: 70 points on 60 attempts with
// no free-throw column in the export.
func harkerBox() *TeamBoxRow {
	return &TeamBoxRow{
		Team:                   "Harker",
		Points:                 70,
		FieldGoalsMade:         29,
		FieldGoalsAttempted:    n32(60),
		TwoPointersMade:        23,
		TwoPointersAttempted:   40,
		ThreePointersMade:      6,
		ThreePointersAttempted: 20,
		FreeThrowsMade:         6,
		OffensiveRebounds:      n32(10),
		DefensiveRebounds:      n32(20),
		Rebounds:               30,
		Assists:                15,
		Turnovers:              n32(12),
	}
}

func aptosBox() *TeamBoxRow {
	return &TeamBoxRow{
		Team:                   "Aptos",
		Points:                 65,
		FieldGoalsMade:         26,
		FieldGoalsAttempted:    n32(58),
		TwoPointersMade:        21,
		TwoPointersAttempted:   38,
		ThreePointersMade:      5,
		ThreePointersAttempted: 20,
		FreeThrowsMade:         2,
		FreeThrowsAttempted:    n32(6),
		OffensiveRebounds:      n32(15),
		DefensiveRebounds:      n32(25),
		Rebounds:               40,
		Assists:                12,
		Turnovers:              n32(10),
	}
}

func samplePlayers() []PlayerStatRow {
	return []PlayerStatRow{
		{
			Player: "J. Alvarez", Number: "3", Team: "home",
			MinutesPlayed: nf64(28), Points: 22,
			FieldGoalsMade: 9, FieldGoalsAttempted: 17,
			ThreePointersMade: 2, ThreePointersAttempted: 6,
			OffensiveRebounds: 2, DefensiveRebounds: 4, TotalRebounds: 6,
			Assists: 5, Turnovers: 4,
		},
		{
			Player: "M. Chen", Number: "12", Team: "home",
			MinutesPlayed: nf64(30), Points: 14,
			FieldGoalsMade: 6, FieldGoalsAttempted: 11,
			OffensiveRebounds: 4, DefensiveRebounds: 8, TotalRebounds: 12,
			Assists: 2, Turnovers: 2,
		},
		{
			Player: "D. Okafor", Number: "21", Team: "home",
			MinutesPlayed: nf64(18), Points: 8,
			FieldGoalsMade: 4, FieldGoalsAttempted: 7,
			TotalRebounds: 3, Assists: 1, Turnovers: 0,
		},
	}
}

func TestAnalyzeGameFullPass(t *testing.T) {
	eng := New(Config{OurTeam: "Harker", OpponentTeam: "Aptos"})

	analysis, err := eng.AnalyzeGame(GameInput{
		OurBox:      harkerBox(),
		OpponentBox: aptosBox(),
		Players:     samplePlayers(),
		Shots: []ShotEvent{
			{Player: "J. Alvarez", Team: "Harker", ShotType: "3PT Jump Shot", Result: ShotResultMade, X: 70, Y: 25},
			{Player: "M. Chen", Team: "Harker", ShotType: "Layup", Result: ShotResultMissed, X: 90, Y: 24},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Harker", analysis.OurTeam)
	assert.Equal(t, "Aptos", analysis.OpponentTeam)
	require.NotNil(t, analysis.OurPossessions)
	require.NotNil(t, analysis.Differential)
	require.NotNil(t, analysis.Turnovers)
	require.NotNil(t, analysis.Rebounding)
	require.NotNil(t, analysis.ShotMix)
	require.NotNil(t, analysis.ZoneGrid)
	assert.Len(t, analysis.Players, 3)

	// Harker's export has no FTA column; that warning must surface at the top level.
	var codes []WarningCode
	for _, w := range analysis.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, WarnFTAUnavailable)
}

func TestAnalyzeGameRequiresBothTeams(t *testing.T) {
	eng := New(DefaultConfig())

	_, err := eng.AnalyzeGame(GameInput{OurBox: harkerBox()})
	var missingOpp *MissingOpponentDataError
	require.ErrorAs(t, err, &missingOpp)
	assert.Equal(t, "Harker", missingOpp.Team)

	_, err = eng.AnalyzeGame(GameInput{})
	var missingField *MissingFieldError
	require.ErrorAs(t, err, &missingField)
}

func TestAnalyzeGameOmitsZoneGridWithoutShots(t *testing.T) {
	eng := New(DefaultConfig())

	analysis, err := eng.AnalyzeGame(GameInput{
		OurBox:      harkerBox(),
		OpponentBox: aptosBox(),
		Players:     samplePlayers(),
	})
	require.NoError(t, err)
	assert.Nil(t, analysis.ZoneGrid)
}

func TestValidateBoxRowFlagsScoringMismatch(t *testing.T) {
	row := harkerBox()
	row.Points = 75 // 2*23 + 3*6 + 6 = 70

	warnings := validateBoxRow(row)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnPointsMismatch, warnings[0].Code)
}
