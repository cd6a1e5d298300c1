package csvload

import (
	"database/sql"
	"strconv"
	"strings"
)

// Canonical column names. Exports disagree on header spelling; everything is
// mapped onto these before a row is built, so the row constructors never touch
// a raw header string.
const (
	colTeam      = "team"
	colPoints    = "points"
	colFGMade    = "fg_made"
	colFGAtt     = "fg_attempted"
	colTwoMade   = "two_made"
	colTwoAtt    = "two_attempted"
	colThreeMade = "three_made"
	colThreeAtt  = "three_attempted"
	colFTMade    = "ft_made"
	colFTAtt     = "ft_attempted"
	colORB       = "offensive_rebounds"
	colDRB       = "defensive_rebounds"
	colREB       = "rebounds"
	colAssists   = "assists"
	colSteals    = "steals"
	colBlocks    = "blocks"
	colTurnovers = "turnovers"
	colFouls     = "fouls"

	colPlayer  = "player"
	colNumber  = "number"
	colMinutes = "minutes"
	colUsage   = "usage_rate"
	colORBPct  = "orb_pct"
	colDRBPct  = "drb_pct"
	colAstTo   = "ast_to"

	colGameClock = "game_clock"
	colQuarter   = "quarter"
	colShotType  = "shot_type"
	colResult    = "result"
	colX         = "x"
	colY         = "y"
	colAssistBy  = "assist_by"
	colDistance  = "distance"
)

// headerAliases maps normalized header keys to canonical columns. Keys are the
// output of headerKey, so "FG Attempts", "fg_attempts" and "Shooting: FG Att"
// all collapse to the same entry.
var headerAliases = map[string]string{
	"team": colTeam, "teamname": colTeam, "school": colTeam, "opponent": colTeam,

	"pts": colPoints, "points": colPoints, "totalpoints": colPoints,

	"fgm": colFGMade, "fgmade": colFGMade, "fieldgoalsmade": colFGMade, "fieldgoals": colFGMade,
	"fga": colFGAtt, "fgatt": colFGAtt, "fgattempts": colFGAtt, "fieldgoalsattempted": colFGAtt, "fieldgoalattempts": colFGAtt,

	"2fgmade": colTwoMade, "2pm": colTwoMade, "2ptmade": colTwoMade, "twopointersmade": colTwoMade, "2fg": colTwoMade,
	"2fgatt": colTwoAtt, "2pa": colTwoAtt, "2ptatt": colTwoAtt, "2fgattempts": colTwoAtt, "twopointersattempted": colTwoAtt,

	"3fgmade": colThreeMade, "3pm": colThreeMade, "3ptmade": colThreeMade, "threepointersmade": colThreeMade, "3fg": colThreeMade,
	"3fgatt": colThreeAtt, "3pa": colThreeAtt, "3ptatt": colThreeAtt, "3fgattempts": colThreeAtt, "threepointersattempted": colThreeAtt,

	"ftmade": colFTMade, "ftm": colFTMade, "freethrowsmade": colFTMade, "ft": colFTMade,
	"ftatt": colFTAtt, "fta": colFTAtt, "ftattempts": colFTAtt, "freethrowsattempted": colFTAtt,

	"oreb": colORB, "orb": colORB, "offreb": colORB, "offensiverebounds": colORB,
	"dreb": colDRB, "drb": colDRB, "defreb": colDRB, "defensiverebounds": colDRB,
	"reb": colREB, "trb": colREB, "rebounds": colREB, "totalrebounds": colREB,

	"ast": colAssists, "assists": colAssists,
	"stl": colSteals, "steals": colSteals,
	"blk": colBlocks, "blocks": colBlocks,
	"to": colTurnovers, "tov": colTurnovers, "turnovers": colTurnovers,
	"pf": colFouls, "fouls": colFouls, "personalfouls": colFouls,

	"player": colPlayer, "athlete": colPlayer, "name": colPlayer, "playername": colPlayer,
	"#": colNumber, "no": colNumber, "number": colNumber, "jersey": colNumber, "uniform": colNumber,
	"min": colMinutes, "mins": colMinutes, "minutes": colMinutes, "minutesplayed": colMinutes,
	"usg": colUsage, "usg%": colUsage, "usage": colUsage, "usagerate": colUsage,
	"oreb%": colORBPct, "orb%": colORBPct, "offensivereboundpct": colORBPct,
	"dreb%": colDRBPct, "drb%": colDRBPct, "defensivereboundpct": colDRBPct,
	"ast/to": colAstTo, "astto": colAstTo, "asttoratio": colAstTo, "assisttoturnover": colAstTo,

	"gameclock": colGameClock, "clock": colGameClock, "time": colGameClock,
	"quarter": colQuarter, "period": colQuarter, "qtr": colQuarter,
	"shottype": colShotType, "type": colShotType,
	"result": colResult, "outcome": colResult, "mademiss": colResult,
	"x": colX, "xcoord": colX, "courtx": colX, "shotx": colX,
	"y": colY, "ycoord": colY, "courty": colY, "shoty": colY,
	"assistby": colAssistBy, "assist": colAssistBy, "assistedby": colAssistBy,
	"distance": colDistance, "dist": colDistance, "shotdistance": colDistance,
}

// Grouped exports prefix headers with a section label ("Basic: PTS").
var headerGroups = map[string]bool{
	"basic":    true,
	"advanced": true,
	"shooting": true,
}

// headerKey normalizes one raw header cell for alias lookup: group prefix and
// BOM stripped, lowercased, separators dropped. Symbols that carry meaning in
// stat headers (%, #, /) survive so "OREB%" and "OREB" stay distinct columns.
func headerKey(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimSpace(h)

	if i := strings.Index(h, ":"); i >= 0 {
		if headerGroups[strings.ToLower(strings.TrimSpace(h[:i]))] {
			h = h[i+1:]
		}
	}

	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == '%', r == '#', r == '/', r == '+':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// resolveHeader maps each canonical column to its index in the header row.
// Unknown headers are skipped; the first matching header wins on duplicates.
func resolveHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		canonical, ok := headerAliases[headerKey(h)]
		if !ok {
			continue
		}
		if _, dup := idx[canonical]; !dup {
			idx[canonical] = i
		}
	}
	return idx
}

// record is one data row bound to a resolved header. Accessors return the
// null state for absent columns and blank cells; they never invent a zero for
// a value the export did not provide.
type record struct {
	idx   map[string]int
	cells []string
}

func (r record) raw(col string) (string, bool) {
	i, ok := r.idx[col]
	if !ok || i >= len(r.cells) {
		return "", false
	}
	return strings.TrimSpace(r.cells[i]), true
}

// blankCells are the placeholders exports use for "no value".
func isBlank(s string) bool {
	switch s {
	case "", "-", "—", "–":
		return true
	}
	return strings.EqualFold(s, "n/a") || strings.EqualFold(s, "na")
}

func (r record) text(col string) string {
	s, ok := r.raw(col)
	if !ok || isBlank(s) {
		return ""
	}
	return s
}

func (r record) intVal(col string) int {
	s := r.text(col)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func (r record) nullInt(col string) sql.NullInt32 {
	s := r.text(col)
	if s == "" {
		return sql.NullInt32{}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(v), Valid: true}
}

func (r record) floatVal(col string) float64 {
	s := strings.TrimSuffix(r.text(col), "%")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func (r record) nullFloat(col string) sql.NullFloat64 {
	s := strings.TrimSuffix(r.text(col), "%")
	if s == "" {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

// pair parses a combined "made-attempted" cell such as "29-60". Some exports
// collapse each shot category into one column in this form.
func (r record) pair(col string) (made, att int, ok bool) {
	s := r.text(col)
	if !strings.Contains(s, "-") {
		return 0, 0, false
	}
	parts := strings.SplitN(s, "-", 2)
	made, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	att, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return made, att, true
}

// minutes parses a playing-time cell in either "MM:SS" or decimal form.
func (r record) minutes(col string) sql.NullFloat64 {
	s := r.text(col)
	if s == "" {
		return sql.NullFloat64{}
	}

	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 2)
		mins, err := strconv.Atoi(parts[0])
		if err != nil {
			return sql.NullFloat64{}
		}
		secs := 0
		if len(parts) > 1 && parts[1] != "" {
			secs, err = strconv.Atoi(parts[1])
			if err != nil {
				return sql.NullFloat64{}
			}
		}
		return sql.NullFloat64{Float64: float64(mins) + float64(secs)/60.0, Valid: true}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
