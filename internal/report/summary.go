package report

import (
	"fmt"
	"strings"

	"github.com/fastbreak/courtvision/internal/engine"
)

// Summary renders the quick plain-text digest of one game analysis.
func Summary(a *engine.GameAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "GAME ANALYSIS SUMMARY\n")
	fmt.Fprintf(&b, "%s vs %s\n", a.OurTeam, a.OpponentTeam)
	fmt.Fprintf(&b, "Final Score: %d - %d\n\n", a.OurEfficiency.Points, a.OpponentEfficiency.Points)

	fmt.Fprintf(&b, "EFFICIENCY METRICS:\n")
	fmt.Fprintf(&b, "  Points Per Possession: %s (Opponent: %s)\n", a.OurEfficiency.PPP, a.OpponentEfficiency.PPP)
	fmt.Fprintf(&b, "  Points Per Shot: %s (Opponent: %s)\n", a.OurEfficiency.PPS, a.OpponentEfficiency.PPS)
	fmt.Fprintf(&b, "  Effective FG%%: %s (Opponent: %s)\n",
		pct(a.OurEfficiency.EffectiveFGPct), pct(a.OpponentEfficiency.EffectiveFGPct))

	if t := a.Turnovers; t != nil {
		fmt.Fprintf(&b, "\nTURNOVERS:\n")
		fmt.Fprintf(&b, "  Turnovers: %d (Rate: %s)\n", t.Turnovers, pct(t.TurnoverRate))
		fmt.Fprintf(&b, "  Assist-to-Turnover: %s\n", t.AssistToTurnover)
		fmt.Fprintf(&b, "  Potential Points Lost: %.1f\n", t.PotentialPointsLost)
	}

	if r := a.Rebounding; r != nil {
		fmt.Fprintf(&b, "\nREBOUNDING:\n")
		fmt.Fprintf(&b, "  Rebound Margin: %+d\n", r.ReboundMargin)
		fmt.Fprintf(&b, "  Offensive Rebound%%: %s vs %s\n",
			pct(r.Us.OffensiveReboundPct), pct(r.Opponent.OffensiveReboundPct))
	}

	if s := a.ShotMix; s != nil {
		fmt.Fprintf(&b, "\nSHOT OPTIMIZATION:\n")
		fmt.Fprintf(&b, "  2PT Expected Value: %s\n", s.TwoPointEV)
		fmt.Fprintf(&b, "  3PT Expected Value: %s\n", s.ThreePointEV)
		fmt.Fprintf(&b, "  Recommendation: %s\n", strings.ReplaceAll(string(s.Recommendation), "_", " "))
	}

	if len(a.Warnings) > 0 {
		fmt.Fprintf(&b, "\nDATA QUALITY:\n")
		for _, w := range a.Warnings {
			fmt.Fprintf(&b, "  [%s] %s\n", w.Code, w.Message)
		}
	}

	return b.String()
}
