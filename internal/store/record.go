package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fastbreak/courtvision/internal/engine"
)

// NewAnalysisRecord converts a finished GameAnalysis into its persistence
// form: one AnalysisRecord with the full payload plus one ZoneStatRecord per
// grid cell when a shot log was analyzed.
func NewAnalysisRecord(a *engine.GameAnalysis) (*AnalysisRecord, []ZoneStatRecord, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal analysis payload: %w", err)
	}

	rec := &AnalysisRecord{
		AnalysisID:     uuid.New().String(),
		OurTeam:        a.OurTeam,
		OpponentTeam:   a.OpponentTeam,
		OurPoints:      a.OurEfficiency.Points,
		OpponentPoints: a.OpponentEfficiency.Points,
		OurPossessions: a.OurPossessions.Possessions,
		OurPPP:         nullRatio(a.OurEfficiency.PPP),
		WarningCount:   len(a.Warnings),
		Payload:        payload,
		CreatedAt:      time.Now().UTC(),
	}
	if a.Turnovers != nil {
		rec.TurnoverRate = nullRatio(a.Turnovers.TurnoverRate)
	}
	if a.Rebounding != nil {
		rec.ReboundMargin = a.Rebounding.ReboundMargin
	}
	if a.ShotMix != nil {
		rec.ShotMixVerdict = string(a.ShotMix.Recommendation)
	}

	var zones []ZoneStatRecord
	if a.ZoneGrid != nil {
		zones = make([]ZoneStatRecord, 0, len(a.ZoneGrid.Zones))
		for i := range a.ZoneGrid.Zones {
			z := &a.ZoneGrid.Zones[i]
			zones = append(zones, ZoneStatRecord{
				AnalysisID:   rec.AnalysisID,
				Row:          z.Row,
				Col:          z.Col,
				Shots:        z.Shots,
				Makes:        z.Makes,
				Misses:       z.Misses,
				Points:       z.Points,
				PPS:          nullRatio(z.PPS),
				PPP:          nullRatio(z.PPP),
				FieldGoalPct: nullRatio(z.FieldGoalPct),
			})
		}
	}

	return rec, zones, nil
}

// DecodePayload unmarshals the stored analysis back into its engine form.
func (r *AnalysisRecord) DecodePayload() (*engine.GameAnalysis, error) {
	var a engine.GameAnalysis
	if err := json.Unmarshal(r.Payload, &a); err != nil {
		return nil, fmt.Errorf("unmarshal analysis payload: %w", err)
	}
	return &a, nil
}

// nullRatio maps the undefined and infinite sentinel states onto SQL NULL.
func nullRatio(r engine.Ratio) sql.NullFloat64 {
	if !r.Defined() {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: r.Value, Valid: true}
}
