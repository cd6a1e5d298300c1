package engine

import (
	"fmt"
	"math"
)

// ShotRecommendation is the optimizer's verdict on the 2PT/3PT attempt mix.
type ShotRecommendation string

const (
	RecommendMoreThrees ShotRecommendation = "increase_three_point_attempts"
	RecommendMoreTwos   ShotRecommendation = "focus_two_point_shots"
	RecommendBalanced   ShotRecommendation = "balanced_mix"
	RecommendNoData     ShotRecommendation = "insufficient_data"
)

// ShotMixReport compares the expected value of 2PT and 3PT attempts and
// recommends a mix. A shot type with zero attempts has no computable EV and is
// excluded from the comparison rather than treated as EV = 0.
type ShotMixReport struct {
	Team string `json:"team"`

	TwoPointEV   Ratio `json:"two_point_ev"`
	ThreePointEV Ratio `json:"three_point_ev"`

	TwoPointRate   Ratio `json:"two_point_rate"`
	ThreePointRate Ratio `json:"three_point_rate"`

	Recommendation  ShotRecommendation `json:"recommendation"`
	Reason          string             `json:"reason"`
	Recommendations []string           `json:"recommendations,omitempty"`
}

// OptimizeShotMix computes EV(2PT) = 2PT% x 2 and EV(3PT) = 3PT% x 3 and
// recommends the higher-value shot type. When the EV gap is below the
// indifference threshold the report says balanced rather than implying a
// precision the data does not support.
func OptimizeShotMix(row *TeamBoxRow, indifferenceThreshold float64) *ShotMixReport {
	report := &ShotMixReport{
		Team:         row.Team,
		TwoPointEV:   scaleRatio(AttemptsRatio(float64(row.TwoPointersMade), float64(row.TwoPointersAttempted)), 2),
		ThreePointEV: scaleRatio(AttemptsRatio(float64(row.ThreePointersMade), float64(row.ThreePointersAttempted)), 3),
	}

	if row.FieldGoalsAttempted.Valid {
		fga := float64(row.FieldGoalsAttempted.Int32)
		report.TwoPointRate = AttemptsRatio(float64(row.TwoPointersAttempted), fga)
		report.ThreePointRate = AttemptsRatio(float64(row.ThreePointersAttempted), fga)
	} else {
		report.TwoPointRate = UndefinedRatio()
		report.ThreePointRate = UndefinedRatio()
	}

	report.Recommendation, report.Reason = recommendMix(report.TwoPointEV, report.ThreePointEV, indifferenceThreshold)
	report.Recommendations = shotMixRecommendations(row, report)

	return report
}

func recommendMix(twoEV, threeEV Ratio, threshold float64) (ShotRecommendation, string) {
	switch {
	case !twoEV.Defined() && !threeEV.Defined():
		return RecommendNoData, "no field-goal attempts recorded for either shot type"
	case !threeEV.Defined():
		return RecommendMoreTwos, fmt.Sprintf("only 2PT attempts recorded (EV %.2f); no 3PT sample to compare", twoEV.Value)
	case !twoEV.Defined():
		return RecommendMoreThrees, fmt.Sprintf("only 3PT attempts recorded (EV %.2f); no 2PT sample to compare", threeEV.Value)
	}

	gap := threeEV.Value - twoEV.Value
	if math.Abs(gap) < threshold {
		return RecommendBalanced, fmt.Sprintf("balanced mix, no strong preference: EV gap %.2f is below the %.2f threshold", math.Abs(gap), threshold)
	}
	if gap > 0 {
		return RecommendMoreThrees, fmt.Sprintf("3PT expected value (%.2f) > 2PT expected value (%.2f)", threeEV.Value, twoEV.Value)
	}
	return RecommendMoreTwos, fmt.Sprintf("2PT expected value (%.2f) > 3PT expected value (%.2f)", twoEV.Value, threeEV.Value)
}

func shotMixRecommendations(row *TeamBoxRow, report *ShotMixReport) []string {
	var recs []string

	threePct := AttemptsRatio(float64(row.ThreePointersMade), float64(row.ThreePointersAttempted))
	twoPct := AttemptsRatio(float64(row.TwoPointersMade), float64(row.TwoPointersAttempted))

	if threePct.Defined() && report.ThreePointRate.Defined() &&
		threePct.Value < 0.30 && report.ThreePointRate.Value > 0.50 {
		recs = append(recs, "3-point shooting is inefficient (<30%) but high volume (>50% of attempts). Reduce 3PT attempts or improve shooters.")
	}
	if twoPct.Defined() && twoPct.Value < 0.40 {
		recs = append(recs, "2-point shooting below 40%. Focus on shot selection and quality looks.")
	}

	return recs
}
