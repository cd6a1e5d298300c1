package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fastbreak/courtvision/internal/engine"
)

// WriteZoneCSV writes the per-zone statistics table. Every zone of the grid
// appears, row-major; zones without shots keep their ratio cells blank so a
// consumer can tell "no data" from a measured 0.0.
func WriteZoneCSV(w io.Writer, grid *engine.ZoneGrid) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Row", "Col", "Zone", "TotalShots", "MadeShots", "MissedShots",
		"TotalPoints", "PointsPerShot", "PointsPerPossession", "FieldGoalPercentage",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write zone csv header: %w", err)
	}

	for i := range grid.Zones {
		z := &grid.Zones[i]
		rec := []string{
			strconv.Itoa(z.Row),
			strconv.Itoa(z.Col),
			fmt.Sprintf("(%d,%d)", z.Row, z.Col),
			strconv.Itoa(z.Shots),
			strconv.Itoa(z.Makes),
			strconv.Itoa(z.Misses),
			strconv.Itoa(z.Points),
			ratioCell(z.PPS, 2),
			ratioCell(z.PPP, 2),
			percentCell(z.FieldGoalPct),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write zone csv row (%d,%d): %w", z.Row, z.Col, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func ratioCell(r engine.Ratio, decimals int) string {
	if !r.Defined() {
		return ""
	}
	return strconv.FormatFloat(r.Value, 'f', decimals, 64)
}

func percentCell(r engine.Ratio) string {
	if !r.Defined() {
		return ""
	}
	return strconv.FormatFloat(r.Value*100, 'f', 1, 64)
}

// ZoneMatrix renders one metric of the grid as an aligned rows x cols text
// matrix. Empty zones render as a dash.
func ZoneMatrix(grid *engine.ZoneGrid, metric string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s by zone (%dx%d grid):\n", metricLabel(metric), grid.Rows, grid.Cols)
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			z := grid.At(row, col)
			if col > 0 {
				b.WriteString("  ")
			}
			b.WriteString(fmt.Sprintf("%6s", matrixCell(z, metric)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func matrixCell(z *engine.ZoneStats, metric string) string {
	if z.Empty() {
		return "-"
	}
	switch metric {
	case "fg_pct":
		return fmt.Sprintf("%.1f", z.FieldGoalPct.Value*100)
	case "ppp":
		return fmt.Sprintf("%.2f", z.PPP.Value)
	default:
		return fmt.Sprintf("%.2f", z.PPS.Value)
	}
}

func metricLabel(metric string) string {
	switch metric {
	case "fg_pct":
		return "Field goal %"
	case "ppp":
		return "Points per possession"
	default:
		return "Points per shot"
	}
}
