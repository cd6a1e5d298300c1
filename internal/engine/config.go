package engine

// Default analysis parameters. A regulation court is 94 feet wide by 50 feet
// deep in the shot log's coordinate system (X along the baseline-to-baseline
// axis, Y across the court).
const (
	DefaultGridRows               = 5
	DefaultGridCols               = 5
	DefaultCourtWidth             = 94.0
	DefaultCourtLength            = 50.0
	DefaultIndifferenceThreshold  = 0.05
	DefaultTurnoverRiskMultiplier = 1.5
)

// Config carries every tunable the engine uses. It is passed in at
// construction; the engine holds no mutable package-level state.
type Config struct {
	OurTeam      string `json:"our_team"`
	OpponentTeam string `json:"opponent_team"`

	GridRows    int     `json:"grid_rows"`
	GridCols    int     `json:"grid_cols"`
	CourtWidth  float64 `json:"court_width"`
	CourtLength float64 `json:"court_length"`

	// IndifferenceThreshold is the EV gap (in points per shot) below which the
	// shot-mix optimizer reports a balanced mix instead of a preference.
	IndifferenceThreshold float64 `json:"indifference_threshold"`

	// TurnoverRiskMultiplier flags a player as high-turnover-risk when their
	// turnover rate exceeds this multiple of the team average.
	TurnoverRiskMultiplier float64 `json:"turnover_risk_multiplier"`
}

// DefaultConfig returns a config with every tunable at its default.
func DefaultConfig() Config {
	return Config{
		GridRows:               DefaultGridRows,
		GridCols:               DefaultGridCols,
		CourtWidth:             DefaultCourtWidth,
		CourtLength:            DefaultCourtLength,
		IndifferenceThreshold:  DefaultIndifferenceThreshold,
		TurnoverRiskMultiplier: DefaultTurnoverRiskMultiplier,
	}
}

// withDefaults fills zero-valued tunables so a partially specified config
// (team names only, say) behaves like DefaultConfig for the rest.
func (c Config) withDefaults() Config {
	if c.GridRows <= 0 {
		c.GridRows = DefaultGridRows
	}
	if c.GridCols <= 0 {
		c.GridCols = DefaultGridCols
	}
	if c.CourtWidth <= 0 {
		c.CourtWidth = DefaultCourtWidth
	}
	if c.CourtLength <= 0 {
		c.CourtLength = DefaultCourtLength
	}
	if c.IndifferenceThreshold <= 0 {
		c.IndifferenceThreshold = DefaultIndifferenceThreshold
	}
	if c.TurnoverRiskMultiplier <= 0 {
		c.TurnoverRiskMultiplier = DefaultTurnoverRiskMultiplier
	}
	return c
}
