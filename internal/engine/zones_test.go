package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleShots() []ShotEvent {
	return []ShotEvent{
		{Player: "J. Alvarez", Team: "Harker", ShotType: "3PT Jump Shot", Result: ShotResultMade, X: 68, Y: 25},
		{Player: "J. Alvarez", Team: "Harker", ShotType: "3PT Jump Shot", Result: ShotResultMissed, X: 70, Y: 8},
		{Player: "M. Chen", Team: "Harker", ShotType: "Layup", Result: ShotResultMade, X: 91, Y: 26},
		{Player: "M. Chen", Team: "Harker", ShotType: "Layup", Result: ShotResultMade, X: 92, Y: 24},
		{Player: "D. Okafor", Team: "Harker", ShotType: "Jump Shot", Result: ShotResultMissed, X: 78, Y: 40},
	}
}

func TestAggregateZonesConservation(t *testing.T) {
	grid := AggregateZones(sampleShots(), DefaultConfig())

	require.Len(t, grid.Zones, DefaultGridRows*DefaultGridCols)
	assert.Equal(t, 5, grid.TotalShots)

	var shots, makes, misses, points int
	for _, zone := range grid.Zones {
		shots += zone.Shots
		makes += zone.Makes
		misses += zone.Misses
		points += zone.Points
	}
	assert.Equal(t, 5, shots)
	assert.Equal(t, 3, makes)
	assert.Equal(t, 2, misses)
	// One made three plus two made layups.
	assert.Equal(t, 7, points)
}

func TestAggregateZonesBoundaryLandsInLastZone(t *testing.T) {
	// A coordinate exactly on the far edge belongs to the final zone for any
	// grid shape, never one past it.
	for _, dims := range [][2]int{{5, 5}, {3, 4}, {10, 10}, {1, 1}} {
		cfg := DefaultConfig()
		cfg.GridRows, cfg.GridCols = dims[0], dims[1]

		grid := AggregateZones([]ShotEvent{
			{Team: "Harker", ShotType: "Layup", Result: ShotResultMade, X: cfg.CourtWidth, Y: cfg.CourtLength},
		}, cfg)

		last := grid.At(cfg.GridRows-1, cfg.GridCols-1)
		assert.Equal(t, 1, last.Shots, "grid %dx%d", dims[0], dims[1])
		assert.Empty(t, grid.Warnings, "edge coordinates are in range for grid %dx%d", dims[0], dims[1])
	}
}

func TestAggregateZonesOutOfRangeClampsWithWarning(t *testing.T) {
	grid := AggregateZones([]ShotEvent{
		{Team: "Harker", ShotType: "Jump Shot", Result: ShotResultMissed, X: 120, Y: -3},
	}, DefaultConfig())

	assert.Equal(t, 1, grid.At(0, DefaultGridCols-1).Shots)
	require.Len(t, grid.Warnings, 1)
	assert.Equal(t, WarnCoordinateClamped, grid.Warnings[0].Code)
}

func TestAggregateZonesOrderIndependent(t *testing.T) {
	shots := sampleShots()
	reversed := make([]ShotEvent, len(shots))
	for i, s := range shots {
		reversed[len(shots)-1-i] = s
	}

	assert.Equal(t, AggregateZones(shots, DefaultConfig()), AggregateZones(reversed, DefaultConfig()))
}

func TestAggregateZonesEmptyZonesStayUndefined(t *testing.T) {
	grid := AggregateZones(sampleShots(), DefaultConfig())

	var empty int
	for _, zone := range grid.Zones {
		if !zone.Empty() {
			continue
		}
		empty++
		assert.True(t, zone.PPS.Undefined)
		assert.True(t, zone.PPP.Undefined)
		assert.True(t, zone.FieldGoalPct.Undefined)
		assert.Equal(t, "N/A", zone.FieldGoalPct.String())
	}
	assert.Positive(t, empty)
}

func TestAggregateZonesPerZoneRates(t *testing.T) {
	cfg := DefaultConfig()
	grid := AggregateZones(sampleShots(), cfg)

	// Both layups land in the same cell: x in [75.2, 94), y in [20, 30).
	zone := grid.At(2, 4)
	require.Equal(t, 2, zone.Shots)
	assert.Equal(t, 2, zone.Makes)
	assert.InDelta(t, 2.0, zone.PPS.Value, 1e-9)
	// Shot-chart PPP treats each attempt as its own possession.
	assert.Equal(t, zone.PPS, zone.PPP)
	assert.InDelta(t, 1.0, zone.FieldGoalPct.Value, 1e-9)
}

func TestIsThreePoint(t *testing.T) {
	assert.True(t, IsThreePoint("3PT Jump Shot"))
	assert.True(t, IsThreePoint("corner 3pt"))
	assert.False(t, IsThreePoint("Layup"))
	assert.False(t, IsThreePoint("Mid-range Jump Shot"))
}
