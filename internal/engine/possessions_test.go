package engine

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatePossessionsStandardFormula(t *testing.T) {
	row := &TeamBoxRow{
		Team:                "Harker",
		FieldGoalsAttempted: n32(60),
		OffensiveRebounds:   n32(10),
		Turnovers:           n32(12),
		FreeThrowsAttempted: n32(10),
	}

	est, err := EstimatePossessions(row)
	require.NoError(t, err)

	// 60 - 10 + 12 + 0.44*10
	assert.InDelta(t, 66.4, est.Possessions, 1e-9)
	assert.False(t, est.Approximate)
	assert.Empty(t, est.Warnings)
}

func TestEstimatePossessionsWithoutFreeThrows(t *testing.T) {
	row := &TeamBoxRow{
		Team:                "Harker",
		Points:              70,
		FieldGoalsAttempted: n32(60),
		OffensiveRebounds:   n32(10),
		Turnovers:           n32(12),
	}

	est, err := EstimatePossessions(row)
	require.NoError(t, err)

	assert.InDelta(t, 62, est.Possessions, 1e-9)
	assert.True(t, est.Approximate)
	require.Len(t, est.Warnings, 1)
	assert.Equal(t, WarnFTAUnavailable, est.Warnings[0].Code)

	// PPP over the approximate estimate: 70/62.
	ppp := NewRatio(float64(row.Points), est.Possessions)
	assert.InDelta(t, 1.129, ppp.Value, 0.001)
}

func TestEstimatePossessionsClampsToOne(t *testing.T) {
	row := &TeamBoxRow{
		Team:                "Harker",
		FieldGoalsAttempted: n32(5),
		OffensiveRebounds:   n32(10),
		Turnovers:           n32(2),
	}

	est, err := EstimatePossessions(row)
	require.NoError(t, err)

	assert.Equal(t, 1.0, est.Possessions)

	var codes []WarningCode
	for _, w := range est.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, WarnPossessionsClamped)
}

func TestEstimatePossessionsMissingMandatoryFields(t *testing.T) {
	cases := []struct {
		name  string
		row   *TeamBoxRow
		field string
	}{
		{
			name:  "no field goal attempts",
			row:   &TeamBoxRow{Team: "Harker", OffensiveRebounds: n32(10), Turnovers: n32(12)},
			field: "field_goals_attempted",
		},
		{
			name:  "no offensive rebounds",
			row:   &TeamBoxRow{Team: "Harker", FieldGoalsAttempted: n32(60), Turnovers: n32(12)},
			field: "offensive_rebounds",
		},
		{
			name:  "no turnovers",
			row:   &TeamBoxRow{Team: "Harker", FieldGoalsAttempted: n32(60), OffensiveRebounds: n32(10)},
			field: "turnovers",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EstimatePossessions(tc.row)
			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tc.field, missing.Field)
			assert.Equal(t, "Harker", missing.Team)
		})
	}
}

func TestEstimatePossessionsNeverBelowOne(t *testing.T) {
	// Clamp property: any row with the mandatory fields present yields >= 1.
	rows := []*TeamBoxRow{
		{Team: "a", FieldGoalsAttempted: n32(0), OffensiveRebounds: n32(0), Turnovers: n32(0)},
		{Team: "b", FieldGoalsAttempted: n32(1), OffensiveRebounds: n32(40), Turnovers: n32(0)},
		{Team: "c", FieldGoalsAttempted: n32(80), OffensiveRebounds: n32(5), Turnovers: n32(20), FreeThrowsAttempted: sql.NullInt32{}},
	}
	for _, row := range rows {
		est, err := EstimatePossessions(row)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, est.Possessions, 1.0, "team %s", row.Team)
	}
}
