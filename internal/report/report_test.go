package report

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreak/courtvision/internal/engine"
)

func sampleAnalysis(t *testing.T) *engine.GameAnalysis {
	t.Helper()

	eng := engine.New(engine.Config{OurTeam: "Harker", OpponentTeam: "Aptos"})
	analysis, err := eng.AnalyzeGame(engine.GameInput{
		OurBox: &engine.TeamBoxRow{
			Team: "Harker", Points: 70, FieldGoalsMade: 29,
			FieldGoalsAttempted:  sql.NullInt32{Int32: 60, Valid: true},
			TwoPointersMade:      23, TwoPointersAttempted: 40,
			ThreePointersMade:    6, ThreePointersAttempted: 20,
			FreeThrowsMade:       6,
			OffensiveRebounds:    sql.NullInt32{Int32: 10, Valid: true},
			DefensiveRebounds:    sql.NullInt32{Int32: 20, Valid: true},
			Rebounds:             30, Assists: 15,
			Turnovers:            sql.NullInt32{Int32: 12, Valid: true},
		},
		OpponentBox: &engine.TeamBoxRow{
			Team: "Aptos", Points: 65, FieldGoalsMade: 26,
			FieldGoalsAttempted:  sql.NullInt32{Int32: 58, Valid: true},
			TwoPointersMade:      21, TwoPointersAttempted: 38,
			ThreePointersMade:    5, ThreePointersAttempted: 20,
			FreeThrowsMade:       2,
			FreeThrowsAttempted:  sql.NullInt32{Int32: 6, Valid: true},
			OffensiveRebounds:    sql.NullInt32{Int32: 15, Valid: true},
			DefensiveRebounds:    sql.NullInt32{Int32: 25, Valid: true},
			Rebounds:             40, Assists: 12,
			Turnovers:            sql.NullInt32{Int32: 10, Valid: true},
		},
		Players: []engine.PlayerStatRow{
			{Player: "J. Alvarez", Number: "3",
				MinutesPlayed: sql.NullFloat64{Float64: 28, Valid: true},
				Points:        22, FieldGoalsMade: 9, FieldGoalsAttempted: 17,
				TotalRebounds: 6, Assists: 5, Turnovers: 4},
		},
		Shots: []engine.ShotEvent{
			{Team: "Harker", ShotType: "3PT Jump Shot", Result: engine.ShotResultMade, X: 68, Y: 25},
			{Team: "Harker", ShotType: "Layup", Result: engine.ShotResultMissed, X: 91, Y: 24},
		},
	})
	require.NoError(t, err)
	return analysis
}

func TestCoachPromptSections(t *testing.T) {
	prompt := CoachPrompt(sampleAnalysis(t))

	for _, want := range []string{
		"# Basketball Game Analysis Report: Harker vs Aptos",
		"**Final Score:** Harker 70 - 65 Aptos",
		"## 1. Executive Summary",
		"## 3. Turnover Analysis",
		"## 4. Rebounding Analysis",
		"## 5. Shot Selection Optimization",
		"## 7. Action Items",
		"J. Alvarez",
	} {
		assert.Contains(t, prompt, want)
	}

	// The FTA-unavailable flag from the box row must reach the report.
	assert.Contains(t, prompt, "Data Quality Notes")
	assert.Contains(t, prompt, string(engine.WarnFTAUnavailable))
}

func TestSummaryRendersSentinels(t *testing.T) {
	analysis := sampleAnalysis(t)
	out := Summary(analysis)

	assert.Contains(t, out, "GAME ANALYSIS SUMMARY")
	assert.Contains(t, out, "Final Score: 70 - 65")
	assert.Contains(t, out, "Rebound Margin: -10")
	assert.Contains(t, out, "Recommendation:")
	assert.NotContains(t, out, "%!", "no broken format verbs")
}

func TestWriteZoneCSVKeepsEmptyZonesBlank(t *testing.T) {
	analysis := sampleAnalysis(t)
	require.NotNil(t, analysis.ZoneGrid)

	var buf bytes.Buffer
	require.NoError(t, WriteZoneCSV(&buf, analysis.ZoneGrid))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	// Header plus one row per zone, empty ones included.
	require.Len(t, records, 1+analysis.ZoneGrid.Rows*analysis.ZoneGrid.Cols)
	assert.Equal(t, "PointsPerShot", records[0][7])

	var sawEmpty, sawOccupied bool
	for _, rec := range records[1:] {
		if rec[3] == "0" {
			sawEmpty = true
			assert.Empty(t, rec[7], "empty zone PPS cell stays blank")
			assert.Empty(t, rec[9], "empty zone FG%% cell stays blank")
		} else {
			sawOccupied = true
			assert.NotEmpty(t, rec[7])
		}
	}
	assert.True(t, sawEmpty)
	assert.True(t, sawOccupied)
}

func TestZoneMatrixShape(t *testing.T) {
	analysis := sampleAnalysis(t)
	out := ZoneMatrix(analysis.ZoneGrid, "pps")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 1+analysis.ZoneGrid.Rows)
	assert.Contains(t, lines[0], "Points per shot")
	assert.Contains(t, out, "-", "empty zones render as a dash")
}
