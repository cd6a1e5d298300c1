// Package report renders a GameAnalysis for human consumption: a markdown
// coaching-report prompt for presentation tools, a plain-text quick summary,
// and zone statistics as CSV and text matrices. Rendering never recomputes a
// metric; it only formats what the engine produced, including the N/A and INF
// sentinel states.
package report

import (
	"fmt"
	"strings"

	"github.com/fastbreak/courtvision/internal/engine"
)

// CoachPrompt builds the full markdown coaching report for one game. The
// output is structured text meant to be pasted into a presentation generator.
func CoachPrompt(a *engine.GameAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Basketball Game Analysis Report: %s vs %s\n\n", a.OurTeam, a.OpponentTeam)

	writeOverview(&b, a)
	writeExecutiveSummary(&b, a)
	writeEfficiencySection(&b, a)
	writeTurnoverSection(&b, a)
	writeReboundingSection(&b, a)
	writeShotMixSection(&b, a)
	writePlayerSection(&b, a)
	writeActionItems(&b, a)
	writeWarnings(&b, a)

	return b.String()
}

func writeOverview(b *strings.Builder, a *engine.GameAnalysis) {
	fmt.Fprintf(b, "## Game Overview\n")
	fmt.Fprintf(b, "**Final Score:** %s %d - %d %s\n",
		a.OurTeam, a.OurEfficiency.Points, a.OpponentEfficiency.Points, a.OpponentTeam)
	fmt.Fprintf(b, "**Total Possessions:** %.0f vs %.0f\n\n---\n\n",
		a.OurPossessions.Possessions, a.OpponentPossessions.Possessions)
}

func writeExecutiveSummary(b *strings.Builder, a *engine.GameAnalysis) {
	our, opp := a.OurEfficiency, a.OpponentEfficiency

	fmt.Fprintf(b, "## 1. Executive Summary\n\n### Key Performance Metrics\n\n")

	fmt.Fprintf(b, "**Points Per Possession (PPP)**\n")
	fmt.Fprintf(b, "- %s: %s\n- %s: %s\n", a.OurTeam, our.PPP, a.OpponentTeam, opp.PPP)
	writeGapLine(b, a, our.PPP, opp.PPP)

	fmt.Fprintf(b, "\n**Points Per Shot (PPS)**\n")
	fmt.Fprintf(b, "- %s: %s\n- %s: %s\n", a.OurTeam, our.PPS, a.OpponentTeam, opp.PPS)
	writeGapLine(b, a, our.PPS, opp.PPS)

	fmt.Fprintf(b, "\n**Shooting Efficiency**\n")
	fmt.Fprintf(b, "- Effective Field Goal%%: %s vs %s\n", pct(our.EffectiveFGPct), pct(opp.EffectiveFGPct))
	fmt.Fprintf(b, "- True Shooting%%: %s vs %s\n", pct(our.TrueShootingPct), pct(opp.TrueShootingPct))

	fmt.Fprintf(b, "\n### Win/Loss Factors\n\n%s\n\n---\n\n", winLossFactors(a))
}

// writeGapLine renders the metric gap and which side it favors, when both
// sides have a defined value.
func writeGapLine(b *strings.Builder, a *engine.GameAnalysis, ours, theirs engine.Ratio) {
	if !ours.Defined() || !theirs.Defined() {
		return
	}
	gap := ours.Value - theirs.Value
	fmt.Fprintf(b, "- **Difference:** %+.3f (Advantage: %s)\n", gap, favored(a, gap))
}

func favored(a *engine.GameAnalysis, gap float64) string {
	if gap >= 0 {
		return a.OurTeam
	}
	return a.OpponentTeam
}

func winLossFactors(a *engine.GameAnalysis) string {
	our, opp := a.OurEfficiency, a.OpponentEfficiency
	var factors []string

	mark := func(good bool) string {
		if good {
			return "✓"
		}
		return "✗"
	}

	if our.PPP.Defined() && opp.PPP.Defined() {
		gap := our.PPP.Value - opp.PPP.Value
		factors = append(factors, fmt.Sprintf("%s Points Per Possession gap: %+.3f", mark(gap > 0), gap))
	}
	if a.Turnovers != nil && a.Turnovers.TurnoverRate.Defined() {
		factors = append(factors, fmt.Sprintf("%s Turnover rate: %.1f%% of possessions",
			mark(a.Turnovers.TurnoverRate.Value < 0.15), a.Turnovers.TurnoverRate.Value*100))
	}
	if a.Rebounding != nil {
		margin := a.Rebounding.ReboundMargin
		factors = append(factors, fmt.Sprintf("%s Rebounding battle: %+d", mark(margin > 0), margin))
	}
	if our.EffectiveFGPct.Defined() && opp.EffectiveFGPct.Defined() {
		gap := (our.EffectiveFGPct.Value - opp.EffectiveFGPct.Value) * 100
		factors = append(factors, fmt.Sprintf("%s Shooting efficiency gap (eFG%%): %+.1f%%", mark(gap > 0), gap))
	}

	lines := make([]string, len(factors))
	for i, f := range factors {
		lines[i] = "- " + f
	}
	return strings.Join(lines, "\n")
}

func writeEfficiencySection(b *strings.Builder, a *engine.GameAnalysis) {
	our, opp := a.OurEfficiency, a.OpponentEfficiency

	fmt.Fprintf(b, "## 2. Efficiency Analysis\n\n### Offensive Breakdown\n\n")
	fmt.Fprintf(b, "- 2PT Shooting%%: %s (PPS %s)\n", pct(our.TwoPointPct), our.TwoPointPPS)
	fmt.Fprintf(b, "- 3PT Shooting%%: %s (PPS %s)\n", pct(our.ThreePointPct), our.ThreePointPPS)
	fmt.Fprintf(b, "- Effective FG%%: %s\n- True Shooting%%: %s\n", pct(our.EffectiveFGPct), pct(our.TrueShootingPct))

	fmt.Fprintf(b, "\n### Comparison with Opponent\n\n")
	fmt.Fprintf(b, "| Metric | %s | %s |\n|--------|-------|-------|\n", a.OurTeam, a.OpponentTeam)
	fmt.Fprintf(b, "| Points Per Possession | %s | %s |\n", our.PPP, opp.PPP)
	fmt.Fprintf(b, "| Points Per Shot | %s | %s |\n", our.PPS, opp.PPS)
	fmt.Fprintf(b, "| Effective FG%% | %s | %s |\n", pct(our.EffectiveFGPct), pct(opp.EffectiveFGPct))
	fmt.Fprintf(b, "| True Shooting%% | %s | %s |\n", pct(our.TrueShootingPct), pct(opp.TrueShootingPct))
	fmt.Fprintf(b, "\n---\n\n")
}

func writeTurnoverSection(b *strings.Builder, a *engine.GameAnalysis) {
	t := a.Turnovers
	if t == nil {
		return
	}

	fmt.Fprintf(b, "## 3. Turnover Analysis & Reduction Strategy\n\n")
	fmt.Fprintf(b, "- Turnovers: %d (rate %s of possessions)\n", t.Turnovers, pct(t.TurnoverRate))
	fmt.Fprintf(b, "- Assist-to-Turnover Ratio: %s\n", t.AssistToTurnover)
	fmt.Fprintf(b, "- Potential Points Lost: %.1f\n", t.PotentialPointsLost)

	if len(t.Players) > 0 {
		fmt.Fprintf(b, "\n### Top Turnover Contributors\n\n")
		for i, p := range t.Players {
			if i == 5 {
				break
			}
			fmt.Fprintf(b, "%d. **%s (#%s)**: %d TOs (%s per 36 min, AST/TO: %s)\n",
				i+1, p.Player, p.Number, p.Turnovers, p.TurnoversPer36, p.AssistToTurnover)
		}
	}
	writeRecommendations(b, "Turnover Reduction Recommendations", t.Recommendations)
	fmt.Fprintf(b, "\n---\n\n")
}

func writeReboundingSection(b *strings.Builder, a *engine.GameAnalysis) {
	r := a.Rebounding
	if r == nil {
		return
	}

	fmt.Fprintf(b, "## 4. Rebounding Analysis & Opponent Assessment\n\n")
	fmt.Fprintf(b, "- Rebound Margin: %+d\n", r.ReboundMargin)
	fmt.Fprintf(b, "- %s: ORB %d (%s), DRB %d (%s)\n", r.Us.Team,
		r.Us.OffensiveRebounds, pct(r.Us.OffensiveReboundPct),
		r.Us.DefensiveRebounds, pct(r.Us.DefensiveReboundPct))
	fmt.Fprintf(b, "- %s: ORB %d (%s), DRB %d (%s)\n", r.Opponent.Team,
		r.Opponent.OffensiveRebounds, pct(r.Opponent.OffensiveReboundPct),
		r.Opponent.DefensiveRebounds, pct(r.Opponent.DefensiveReboundPct))
	if r.SecondChancePoints.Defined() {
		fmt.Fprintf(b, "- Estimated Second-Chance Points: %.1f\n", r.SecondChancePoints.Value)
	}

	if len(r.Control) > 0 {
		fmt.Fprintf(b, "\n### Glass Control\n\n")
		for _, c := range r.Control {
			fmt.Fprintf(b, "- %s: %s (gap %.1f)\n", strings.ReplaceAll(c.Category, "_", " "), c.Leader, c.Gap)
		}
	}

	if len(r.TopRebounders) > 0 {
		fmt.Fprintf(b, "\n### Top Rebounders\n\n")
		for i, p := range r.TopRebounders {
			if i == 5 {
				break
			}
			fmt.Fprintf(b, "%d. **%s (#%s)**: %d REB (%s per 36 min) - ORB: %d, DRB: %d\n",
				i+1, p.Player, p.Number, p.TotalRebounds, p.ReboundsPer36, p.OffensiveRebounds, p.DefensiveRebounds)
		}
	}
	writeRecommendations(b, "Rebounding Recommendations", r.Recommendations)
	fmt.Fprintf(b, "\n---\n\n")
}

func writeShotMixSection(b *strings.Builder, a *engine.GameAnalysis) {
	s := a.ShotMix
	if s == nil {
		return
	}

	fmt.Fprintf(b, "## 5. Shot Selection Optimization\n\n")
	fmt.Fprintf(b, "- 2PT Attempts: %s of shot diet, Expected Value %s points per shot\n", pct(s.TwoPointRate), s.TwoPointEV)
	fmt.Fprintf(b, "- 3PT Attempts: %s of shot diet, Expected Value %s points per shot\n", pct(s.ThreePointRate), s.ThreePointEV)
	fmt.Fprintf(b, "- **Optimal Strategy:** %s\n", strings.ReplaceAll(string(s.Recommendation), "_", " "))
	fmt.Fprintf(b, "  - *Reason:* %s\n", s.Reason)
	writeRecommendations(b, "Shot Selection Recommendations", s.Recommendations)
	fmt.Fprintf(b, "\n---\n\n")
}

func writePlayerSection(b *strings.Builder, a *engine.GameAnalysis) {
	if len(a.Players) == 0 {
		return
	}

	fmt.Fprintf(b, "## 6. Player Performance Highlights\n\n")
	fmt.Fprintf(b, "| Player | # | MIN | PTS | FGM/FGA | FG%% | PPS |\n")
	fmt.Fprintf(b, "|--------|---|-----|-----|---------|-----|-----|\n")
	for i, p := range a.Players {
		if i == 8 {
			break
		}
		fmt.Fprintf(b, "| %s | %s | %.1f | %d | %d/%d | %s | %s |\n",
			p.Player, p.Number, p.MinutesPlayed, p.Points,
			p.FieldGoalsMade, p.FieldGoalsAttempted, pct(p.FieldGoalPct), p.PPS)
	}
	fmt.Fprintf(b, "\n---\n\n")
}

func writeActionItems(b *strings.Builder, a *engine.GameAnalysis) {
	var items []string
	if a.Turnovers != nil {
		items = append(items, tagged("TURNOVERS", a.Turnovers.Recommendations)...)
	}
	if a.Rebounding != nil {
		items = append(items, tagged("REBOUNDING", a.Rebounding.Recommendations)...)
	}
	if a.ShotMix != nil {
		items = append(items, tagged("SHOT SELECTION", a.ShotMix.Recommendations)...)
	}

	fmt.Fprintf(b, "## 7. Action Items & Next Steps\n\n")
	if len(items) == 0 {
		fmt.Fprintf(b, "- Performance is within acceptable ranges across all tracked metrics.\n")
		return
	}
	for i, item := range items {
		if i == 15 {
			break
		}
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func tagged(tag string, recs []string) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = fmt.Sprintf("**[%s]** %s", tag, r)
	}
	return out
}

func writeWarnings(b *strings.Builder, a *engine.GameAnalysis) {
	if len(a.Warnings) == 0 {
		return
	}
	fmt.Fprintf(b, "\n---\n\n## Data Quality Notes\n\n")
	for _, w := range a.Warnings {
		fmt.Fprintf(b, "- [%s] %s\n", w.Code, w.Message)
	}
}

func writeRecommendations(b *strings.Builder, title string, recs []string) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, rec := range recs {
		fmt.Fprintf(b, "- **%s**\n", rec)
	}
}

// pct renders a fraction-valued ratio as a percentage, preserving the
// sentinel states.
func pct(r engine.Ratio) string {
	if !r.Defined() {
		return r.String()
	}
	return fmt.Sprintf("%.1f%%", r.Value*100)
}
