// Package engine derives basketball-analytics metrics from canonical box-score,
// player-stat and shot-log rows: possession estimates, points per possession
// and per shot, turnover and rebounding analysis, 2PT/3PT shot-mix
// optimization, and per-zone shooting efficiency on a court grid.
//
// Every computation is a pure function over immutable input rows. Non-fatal
// data issues accumulate as DataQualityWarning values on the results; missing
// mandatory inputs fail with typed errors.
package engine

// Engine runs the full derivation pass for one game.
type Engine struct {
	cfg Config
}

// New creates an engine with the given configuration; zero-valued tunables
// fall back to defaults.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// GameInput is the canonical table for one game. Shots is optional; the zone
// grid is omitted from the analysis when no shot log was exported.
type GameInput struct {
	OurBox      *TeamBoxRow
	OpponentBox *TeamBoxRow
	Players     []PlayerStatRow
	Shots       []ShotEvent
}

// GameAnalysis is the complete derived-metrics record for one game. All fields
// are plain named values so reporting and plotting collaborators can consume
// them without knowing how they were computed.
type GameAnalysis struct {
	OurTeam      string `json:"our_team"`
	OpponentTeam string `json:"opponent_team"`

	OurPossessions      *PossessionEstimate `json:"our_possessions"`
	OpponentPossessions *PossessionEstimate `json:"opponent_possessions"`

	OurEfficiency      *TeamEfficiency         `json:"our_efficiency"`
	OpponentEfficiency *TeamEfficiency         `json:"opponent_efficiency"`
	Differential       *EfficiencyDifferential `json:"differential"`

	Players []PlayerEfficiency `json:"players,omitempty"`

	Turnovers  *TurnoverReport   `json:"turnovers"`
	Rebounding *ReboundingReport `json:"rebounding"`
	ShotMix    *ShotMixReport    `json:"shot_mix"`

	ZoneGrid *ZoneGrid `json:"zone_grid,omitempty"`

	Warnings []DataQualityWarning `json:"warnings,omitempty"`
}

// AnalyzeGame runs every derivation over one game's rows. Both teams' box
// rows are required; everything downstream of a failed mandatory field check
// fails as a unit rather than producing a partially wrong analysis.
func (e *Engine) AnalyzeGame(in GameInput) (*GameAnalysis, error) {
	if in.OurBox == nil {
		return nil, &MissingFieldError{Field: "team_box_row"}
	}
	if in.OpponentBox == nil {
		return nil, &MissingOpponentDataError{Team: in.OurBox.Team}
	}

	analysis := &GameAnalysis{
		OurTeam:      in.OurBox.Team,
		OpponentTeam: in.OpponentBox.Team,
	}

	var err error
	if analysis.OurPossessions, err = EstimatePossessions(in.OurBox); err != nil {
		return nil, err
	}
	if analysis.OpponentPossessions, err = EstimatePossessions(in.OpponentBox); err != nil {
		return nil, err
	}

	analysis.OurEfficiency = CalculateTeamEfficiency(in.OurBox, analysis.OurPossessions)
	analysis.OpponentEfficiency = CalculateTeamEfficiency(in.OpponentBox, analysis.OpponentPossessions)
	if analysis.Differential, err = CompareTeamEfficiency(analysis.OurEfficiency, analysis.OpponentEfficiency); err != nil {
		return nil, err
	}

	analysis.Players = CalculatePlayerEfficiency(in.Players)

	if analysis.Turnovers, err = AnalyzeTurnovers(in.OurBox, analysis.OurPossessions,
		analysis.OurEfficiency, in.Players, e.cfg.TurnoverRiskMultiplier); err != nil {
		return nil, err
	}
	if analysis.Rebounding, err = AnalyzeRebounding(in.OurBox, in.OpponentBox,
		analysis.OurEfficiency, in.Players); err != nil {
		return nil, err
	}
	analysis.ShotMix = OptimizeShotMix(in.OurBox, e.cfg.IndifferenceThreshold)

	if len(in.Shots) > 0 {
		analysis.ZoneGrid = AggregateZones(in.Shots, e.cfg)
	}

	analysis.Warnings = collectWarnings(analysis)
	return analysis, nil
}

// collectWarnings gathers every sub-report's warnings into one list for
// surfacing alongside the analysis.
func collectWarnings(a *GameAnalysis) []DataQualityWarning {
	var all []DataQualityWarning
	for _, est := range []*PossessionEstimate{a.OurPossessions, a.OpponentPossessions} {
		if est != nil {
			all = append(all, est.Warnings...)
		}
	}
	for _, eff := range []*TeamEfficiency{a.OurEfficiency, a.OpponentEfficiency} {
		if eff != nil {
			all = append(all, eff.Warnings...)
		}
	}
	if a.Turnovers != nil {
		all = append(all, a.Turnovers.Warnings...)
	}
	if a.Rebounding != nil {
		all = append(all, a.Rebounding.Warnings...)
	}
	if a.ZoneGrid != nil {
		all = append(all, a.ZoneGrid.Warnings...)
	}
	return all
}
