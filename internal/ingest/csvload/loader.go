// Package csvload reads box-score, player-stat and shot-log CSV exports and
// maps their heterogeneous headers onto the canonical engine row types. The
// engine never sees a raw header name; this package is the only place that
// knows export spelling.
package csvload

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fastbreak/courtvision/internal/engine"
)

// LoadTeamBox reads a team box-score export (one row per team). Missing
// mandatory-semantics columns (FGA, ORB, TOV, FTA) come through as null
// fields; the engine decides whether their absence is fatal.
func LoadTeamBox(r io.Reader) ([]engine.TeamBoxRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read team box header: %w", err)
	}
	idx := resolveHeader(header)
	if _, ok := idx[colTeam]; !ok {
		return nil, fmt.Errorf("team box export has no recognizable team column (headers: %s)", strings.Join(header, ", "))
	}

	var rows []engine.TeamBoxRow
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read team box row: %w", err)
		}

		rec := record{idx: idx, cells: cells}
		team := rec.text(colTeam)
		if team == "" {
			continue
		}
		rows = append(rows, buildTeamBoxRow(team, rec))
	}
	return rows, nil
}

func buildTeamBoxRow(team string, rec record) engine.TeamBoxRow {
	row := engine.TeamBoxRow{
		Team:                   team,
		Points:                 rec.intVal(colPoints),
		FieldGoalsMade:         rec.intVal(colFGMade),
		FieldGoalsAttempted:    rec.nullInt(colFGAtt),
		TwoPointersMade:        rec.intVal(colTwoMade),
		TwoPointersAttempted:   rec.intVal(colTwoAtt),
		ThreePointersMade:      rec.intVal(colThreeMade),
		ThreePointersAttempted: rec.intVal(colThreeAtt),
		FreeThrowsMade:         rec.intVal(colFTMade),
		FreeThrowsAttempted:    rec.nullInt(colFTAtt),
		OffensiveRebounds:      rec.nullInt(colORB),
		DefensiveRebounds:      rec.nullInt(colDRB),
		Rebounds:               rec.intVal(colREB),
		Assists:                rec.intVal(colAssists),
		Turnovers:              rec.nullInt(colTurnovers),
		PersonalFouls:          rec.intVal(colFouls),
	}

	// Combined "made-attempted" columns.
	if made, att, ok := rec.pair(colFGMade); ok {
		row.FieldGoalsMade = made
		row.FieldGoalsAttempted = sql.NullInt32{Int32: int32(att), Valid: true}
	}
	if made, att, ok := rec.pair(colThreeMade); ok {
		row.ThreePointersMade = made
		row.ThreePointersAttempted = att
	}
	if made, att, ok := rec.pair(colFTMade); ok {
		row.FreeThrowsMade = made
		row.FreeThrowsAttempted = sql.NullInt32{Int32: int32(att), Valid: true}
	}

	// Derive whichever shot-split representation the export left out.
	if row.FieldGoalsMade == 0 && row.TwoPointersMade+row.ThreePointersMade > 0 {
		row.FieldGoalsMade = row.TwoPointersMade + row.ThreePointersMade
	}
	if !row.FieldGoalsAttempted.Valid && row.TwoPointersAttempted+row.ThreePointersAttempted > 0 {
		row.FieldGoalsAttempted = sql.NullInt32{
			Int32: int32(row.TwoPointersAttempted + row.ThreePointersAttempted),
			Valid: true,
		}
	}
	if row.TwoPointersMade == 0 && row.FieldGoalsMade > row.ThreePointersMade {
		row.TwoPointersMade = row.FieldGoalsMade - row.ThreePointersMade
	}
	if row.TwoPointersAttempted == 0 && row.FieldGoalsAttempted.Valid {
		if att := int(row.FieldGoalsAttempted.Int32) - row.ThreePointersAttempted; att > 0 {
			row.TwoPointersAttempted = att
		}
	}
	if row.Rebounds == 0 && row.OffensiveRebounds.Valid && row.DefensiveRebounds.Valid {
		row.Rebounds = int(row.OffensiveRebounds.Int32 + row.DefensiveRebounds.Int32)
	}
	if row.Points == 0 && row.FieldGoalsMade > 0 {
		row.Points = 2*row.TwoPointersMade + 3*row.ThreePointersMade + row.FreeThrowsMade
	}

	return row
}

// MatchTeamRows picks our row and the opponent's row out of a box-score
// export. The opponent name may be empty; in a two-row export the remaining
// row is taken as the opponent.
func MatchTeamRows(rows []engine.TeamBoxRow, ours, opponent string) (*engine.TeamBoxRow, *engine.TeamBoxRow, error) {
	our := findTeamRow(rows, ours)
	if our == nil {
		return nil, nil, fmt.Errorf("team %q not found in box score (teams: %s)", ours, teamNames(rows))
	}

	var opp *engine.TeamBoxRow
	if opponent != "" {
		opp = findTeamRow(rows, opponent)
		if opp == nil {
			return nil, nil, fmt.Errorf("opponent %q not found in box score (teams: %s)", opponent, teamNames(rows))
		}
	} else {
		for i := range rows {
			if &rows[i] != our {
				opp = &rows[i]
				break
			}
		}
	}
	return our, opp, nil
}

func findTeamRow(rows []engine.TeamBoxRow, name string) *engine.TeamBoxRow {
	for i := range rows {
		if matchTeam(rows[i].Team, name) {
			return &rows[i]
		}
	}
	return nil
}

// matchTeam compares team identifiers loosely: exports abbreviate ("Harker"
// vs "Harker School") and case varies between sources.
func matchTeam(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if strings.EqualFold(a, b) {
		return true
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

func teamNames(rows []engine.TeamBoxRow) string {
	names := make([]string, 0, len(rows))
	for i := range rows {
		names = append(names, rows[i].Team)
	}
	return strings.Join(names, ", ")
}

// LoadPlayerStats reads a per-player export. Aggregate rows ("Totals",
// "Team") are dropped; player rows aggregate to the team box line separately.
func LoadPlayerStats(r io.Reader) ([]engine.PlayerStatRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read player stats header: %w", err)
	}
	idx := resolveHeader(header)
	if _, ok := idx[colPlayer]; !ok {
		return nil, fmt.Errorf("player export has no recognizable player column (headers: %s)", strings.Join(header, ", "))
	}

	var rows []engine.PlayerStatRow
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read player stats row: %w", err)
		}

		rec := record{idx: idx, cells: cells}
		name := rec.text(colPlayer)
		if name == "" || isAggregateRow(name) {
			continue
		}

		row := engine.PlayerStatRow{
			Player:                 name,
			Number:                 rec.text(colNumber),
			Team:                   rec.text(colTeam),
			MinutesPlayed:          rec.minutes(colMinutes),
			Points:                 rec.intVal(colPoints),
			FieldGoalsMade:         rec.intVal(colFGMade),
			FieldGoalsAttempted:    rec.intVal(colFGAtt),
			ThreePointersMade:      rec.intVal(colThreeMade),
			ThreePointersAttempted: rec.intVal(colThreeAtt),
			OffensiveRebounds:      rec.intVal(colORB),
			DefensiveRebounds:      rec.intVal(colDRB),
			TotalRebounds:          rec.intVal(colREB),
			Assists:                rec.intVal(colAssists),
			Steals:                 rec.intVal(colSteals),
			Blocks:                 rec.intVal(colBlocks),
			Turnovers:              rec.intVal(colTurnovers),
			UsageRate:              rec.nullFloat(colUsage),
			OffensiveReboundPct:    rec.nullFloat(colORBPct),
			DefensiveReboundPct:    rec.nullFloat(colDRBPct),
			AssistToTurnover:       rec.nullFloat(colAstTo),
		}

		if made, att, ok := rec.pair(colFGMade); ok {
			row.FieldGoalsMade, row.FieldGoalsAttempted = made, att
		}
		if made, att, ok := rec.pair(colThreeMade); ok {
			row.ThreePointersMade, row.ThreePointersAttempted = made, att
		}
		if row.TotalRebounds == 0 {
			row.TotalRebounds = row.OffensiveRebounds + row.DefensiveRebounds
		}

		rows = append(rows, row)
	}
	return rows, nil
}

func isAggregateRow(name string) bool {
	l := strings.ToLower(name)
	return strings.Contains(l, "total") || l == "team" || l == "tm"
}

// LoadShotLog reads a shot-event export. Result spelling is normalized onto
// the canonical Made/Missed values; everything else passes through as-is.
func LoadShotLog(r io.Reader) ([]engine.ShotEvent, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read shot log header: %w", err)
	}
	idx := resolveHeader(header)
	if _, ok := idx[colX]; !ok {
		return nil, fmt.Errorf("shot log has no recognizable coordinate columns (headers: %s)", strings.Join(header, ", "))
	}

	var shots []engine.ShotEvent
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read shot log row: %w", err)
		}

		rec := record{idx: idx, cells: cells}
		shots = append(shots, engine.ShotEvent{
			GameClock: rec.text(colGameClock),
			Quarter:   rec.intVal(colQuarter),
			Player:    rec.text(colPlayer),
			Team:      rec.text(colTeam),
			ShotType:  rec.text(colShotType),
			Result:    normalizeShotResult(rec.text(colResult)),
			X:         rec.floatVal(colX),
			Y:         rec.floatVal(colY),
			AssistBy:  rec.text(colAssistBy),
			Distance:  rec.nullFloat(colDistance),
		})
	}
	return shots, nil
}

func normalizeShotResult(result string) string {
	switch strings.ToLower(strings.TrimSpace(result)) {
	case "made", "make", "good", "hit", "1", "true", "y", "yes":
		return engine.ShotResultMade
	default:
		return engine.ShotResultMissed
	}
}

// File helpers for the CLI path.

func LoadTeamBoxFile(path string) ([]engine.TeamBoxRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open team box file: %w", err)
	}
	defer f.Close()
	return LoadTeamBox(f)
}

func LoadPlayerStatsFile(path string) ([]engine.PlayerStatRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open player stats file: %w", err)
	}
	defer f.Close()
	return LoadPlayerStats(f)
}

func LoadShotLogFile(path string) ([]engine.ShotEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shot log file: %w", err)
	}
	defer f.Close()
	return LoadShotLog(f)
}
