package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastbreak/courtvision/internal/store"
)

// AnalysesRepository handles persisted game analyses.
type AnalysesRepository struct {
	db *store.Database
}

// NewAnalysesRepository creates a new analyses repository.
func NewAnalysesRepository(db *store.Database) *AnalysesRepository {
	return &AnalysesRepository{db: db}
}

// SaveAnalysis stores one analysis and its zone rows atomically.
func (r *AnalysesRepository) SaveAnalysis(ctx context.Context, rec *store.AnalysisRecord, zones []store.ZoneStatRecord) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save analysis: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO game_analyses (
			analysis_id, our_team, opponent_team, our_points, opponent_points,
			our_possessions, our_ppp, turnover_rate, rebound_margin,
			shot_mix_recommendation, warning_count, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		rec.AnalysisID, rec.OurTeam, rec.OpponentTeam, rec.OurPoints, rec.OpponentPoints,
		rec.OurPossessions, rec.OurPPP, rec.TurnoverRate, rec.ReboundMargin,
		rec.ShotMixVerdict, rec.WarningCount, rec.Payload, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting analysis %s: %w", rec.AnalysisID, err)
	}

	for i := range zones {
		z := &zones[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO zone_stats (
				analysis_id, zone_row, zone_col, shots, makes, misses, points,
				pps, ppp, field_goal_pct
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			z.AnalysisID, z.Row, z.Col, z.Shots, z.Makes, z.Misses, z.Points,
			z.PPS, z.PPP, z.FieldGoalPct,
		)
		if err != nil {
			return fmt.Errorf("inserting zone (%d,%d) for analysis %s: %w", z.Row, z.Col, rec.AnalysisID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save analysis: %w", err)
	}
	return nil
}

const analysisColumns = `
	analysis_id, our_team, opponent_team, our_points, opponent_points,
	our_possessions, our_ppp, turnover_rate, rebound_margin,
	shot_mix_recommendation, warning_count, payload, created_at
`

// GetAnalysis returns one stored analysis by ID.
func (r *AnalysesRepository) GetAnalysis(ctx context.Context, analysisID string) (*store.AnalysisRecord, error) {
	query := `SELECT ` + analysisColumns + ` FROM game_analyses WHERE analysis_id = $1`

	rec := &store.AnalysisRecord{}
	err := r.db.DB().QueryRowContext(ctx, query, analysisID).Scan(
		&rec.AnalysisID, &rec.OurTeam, &rec.OpponentTeam, &rec.OurPoints, &rec.OpponentPoints,
		&rec.OurPossessions, &rec.OurPPP, &rec.TurnoverRate, &rec.ReboundMargin,
		&rec.ShotMixVerdict, &rec.WarningCount, &rec.Payload, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis %s not found", analysisID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying analysis %s: %w", analysisID, err)
	}
	return rec, nil
}

// ListRecent returns the most recent analyses, newest first.
func (r *AnalysesRepository) ListRecent(ctx context.Context, limit int) ([]*store.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + analysisColumns + ` FROM game_analyses ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent analyses: %w", err)
	}
	defer rows.Close()

	var recs []*store.AnalysisRecord
	for rows.Next() {
		rec := &store.AnalysisRecord{}
		if err := rows.Scan(
			&rec.AnalysisID, &rec.OurTeam, &rec.OpponentTeam, &rec.OurPoints, &rec.OpponentPoints,
			&rec.OurPossessions, &rec.OurPPP, &rec.TurnoverRate, &rec.ReboundMargin,
			&rec.ShotMixVerdict, &rec.WarningCount, &rec.Payload, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning analysis row: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// GetZoneStats returns the zone grid rows for one analysis in row-major order.
func (r *AnalysesRepository) GetZoneStats(ctx context.Context, analysisID string) ([]*store.ZoneStatRecord, error) {
	query := `
		SELECT id, analysis_id, zone_row, zone_col, shots, makes, misses, points,
			pps, ppp, field_goal_pct
		FROM zone_stats
		WHERE analysis_id = $1
		ORDER BY zone_row, zone_col
	`

	rows, err := r.db.DB().QueryContext(ctx, query, analysisID)
	if err != nil {
		return nil, fmt.Errorf("querying zone stats for %s: %w", analysisID, err)
	}
	defer rows.Close()

	var zones []*store.ZoneStatRecord
	for rows.Next() {
		z := &store.ZoneStatRecord{}
		if err := rows.Scan(
			&z.ID, &z.AnalysisID, &z.Row, &z.Col, &z.Shots, &z.Makes, &z.Misses, &z.Points,
			&z.PPS, &z.PPP, &z.FieldGoalPct,
		); err != nil {
			return nil, fmt.Errorf("scanning zone stats row: %w", err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}
