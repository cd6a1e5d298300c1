package engine

import "strings"

// ZoneStats aggregates the shots that landed in one grid cell. A zone with no
// shots keeps its ratios in the undefined state: "no data" is distinct from a
// measured 0.0.
type ZoneStats struct {
	Row int `json:"row"`
	Col int `json:"col"`

	Shots  int `json:"shots"`
	Makes  int `json:"makes"`
	Misses int `json:"misses"`
	Points int `json:"points"`

	PPS Ratio `json:"pps"`
	// PPP uses the shot-chart convention of one possession per shot attempt.
	// This is a deliberate simplification and is distinct from the box-score
	// possession estimate; the two must not be unified.
	PPP          Ratio `json:"ppp"`
	FieldGoalPct Ratio `json:"field_goal_pct"`
}

// Empty reports whether the zone received no shots.
func (z *ZoneStats) Empty() bool {
	return z.Shots == 0
}

// ZoneGrid is the full court grid. Zones is row-major and always holds
// Rows x Cols entries, empty cells included, so the grid shape is reproducible
// for any consumer.
type ZoneGrid struct {
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	CourtWidth  float64 `json:"court_width"`
	CourtLength float64 `json:"court_length"`

	Zones      []ZoneStats `json:"zones"`
	TotalShots int         `json:"total_shots"`

	Warnings []DataQualityWarning `json:"warnings,omitempty"`
}

// At returns the zone at (row, col).
func (g *ZoneGrid) At(row, col int) *ZoneStats {
	return &g.Zones[row*g.Cols+col]
}

// IsThreePoint classifies a shot type as a 3PT attempt. The categorical
// ShotType field is the single source of truth for scoring; distance is never
// consulted, so every zone scores by the same rule.
func IsThreePoint(shotType string) bool {
	return strings.Contains(strings.ToUpper(shotType), "3PT")
}

// AggregateZones maps each shot onto the configured grid and aggregates
// per-zone counts, points, PPS and PPP. Aggregation is pure addition into
// fixed cells, so the result is identical under any ordering of the input.
func AggregateZones(shots []ShotEvent, cfg Config) *ZoneGrid {
	cfg = cfg.withDefaults()

	grid := &ZoneGrid{
		Rows:        cfg.GridRows,
		Cols:        cfg.GridCols,
		CourtWidth:  cfg.CourtWidth,
		CourtLength: cfg.CourtLength,
		Zones:       make([]ZoneStats, cfg.GridRows*cfg.GridCols),
	}
	for i := range grid.Zones {
		grid.Zones[i].Row = i / cfg.GridCols
		grid.Zones[i].Col = i % cfg.GridCols
		grid.Zones[i].PPS = UndefinedRatio()
		grid.Zones[i].PPP = UndefinedRatio()
		grid.Zones[i].FieldGoalPct = UndefinedRatio()
	}

	for i := range shots {
		shot := &shots[i]
		row, col, clamped := zoneFor(shot.X, shot.Y, cfg)
		if clamped {
			grid.Warnings = append(grid.Warnings, warnf(WarnCoordinateClamped, shot.Team,
				"shot at (%.1f, %.1f) outside the %gx%g court; clamped into zone (%d,%d)",
				shot.X, shot.Y, cfg.CourtWidth, cfg.CourtLength, row, col))
		}

		zone := grid.At(row, col)
		zone.Shots++
		grid.TotalShots++
		if shot.Made() {
			zone.Makes++
			zone.Points += shotPoints(shot)
		} else {
			zone.Misses++
		}
	}

	for i := range grid.Zones {
		zone := &grid.Zones[i]
		if zone.Empty() {
			continue
		}
		zone.PPS = AttemptsRatio(float64(zone.Points), float64(zone.Shots))
		zone.PPP = zone.PPS // one shot = one possession in the shot-chart convention
		zone.FieldGoalPct = AttemptsRatio(float64(zone.Makes), float64(zone.Shots))
	}

	return grid
}

// zoneFor maps court coordinates to grid indices. Indices are clamped into
// range so a coordinate exactly on the far edge (x = width or y = length)
// lands in the last zone instead of one past it; genuinely out-of-range
// coordinates are clamped too, and reported by the caller.
func zoneFor(x, y float64, cfg Config) (row, col int, clamped bool) {
	clamped = x < 0 || x > cfg.CourtWidth || y < 0 || y > cfg.CourtLength

	col = int(x / (cfg.CourtWidth / float64(cfg.GridCols)))
	row = int(y / (cfg.CourtLength / float64(cfg.GridRows)))

	col = clampIndex(col, cfg.GridCols)
	row = clampIndex(row, cfg.GridRows)
	return row, col, clamped
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func shotPoints(shot *ShotEvent) int {
	if IsThreePoint(shot.ShotType) {
		return 3
	}
	return 2
}
