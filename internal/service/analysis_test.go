package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreak/courtvision/internal/store"
)

const teamBoxCSV = `Team,PTS,FGM,FGA,2PM,2PA,3PM,3PA,FTM,FTA,OREB,DREB,AST,TO
Harker,70,29,60,23,40,6,20,6,9,10,20,15,12
Aptos,65,26,58,20,43,6,15,7,10,15,25,11,10
`

const playerStatsCSV = `Player,MIN,PTS,FGM,FGA,REB,AST,TO
M. Chen,28:30,18,7,14,12,4,2
J. Ortiz,24:00,11,4,11,5,6,3
`

const shotLogCSV = `Team,Shot Type,Result,X,Y
Harker,Layup,Made,91,24
Harker,3PT Jump Shot,Missed,70,8
`

type fakeBroadcaster struct {
	records []*store.AnalysisRecord
}

func (f *fakeBroadcaster) BroadcastAnalysis(rec *store.AnalysisRecord) {
	f.records = append(f.records, rec)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestAnalyzeUploadFullPipeline(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	svc := NewAnalysisService(nil, quietLogger()).WithBroadcaster(broadcaster)

	rec, analysis, err := svc.AnalyzeUpload(context.Background(), AnalysisRequest{
		OurTeam:      "Harker",
		OpponentTeam: "Aptos",
		TeamBox:      strings.NewReader(teamBoxCSV),
		PlayerStats:  strings.NewReader(playerStatsCSV),
		Shots:        strings.NewReader(shotLogCSV),
	})
	require.NoError(t, err)

	assert.Equal(t, "Harker", rec.OurTeam)
	assert.Equal(t, "Aptos", rec.OpponentTeam)
	assert.Equal(t, 70, rec.OurPoints)
	assert.NotEmpty(t, rec.AnalysisID)

	require.NotNil(t, analysis.ZoneGrid)
	assert.Equal(t, 2, analysis.ZoneGrid.TotalShots)
	require.Len(t, analysis.Players, 2)

	// The completed record reached the live feed.
	require.Len(t, broadcaster.records, 1)
	assert.Equal(t, rec.AnalysisID, broadcaster.records[0].AnalysisID)
}

func TestAnalyzeUploadBoxScoreOnly(t *testing.T) {
	svc := NewAnalysisService(nil, quietLogger())

	rec, analysis, err := svc.AnalyzeUpload(context.Background(), AnalysisRequest{
		OurTeam:      "Harker",
		OpponentTeam: "Aptos",
		TeamBox:      strings.NewReader(teamBoxCSV),
	})
	require.NoError(t, err)

	assert.Nil(t, analysis.ZoneGrid)
	assert.Empty(t, analysis.Players)
	assert.NotEmpty(t, rec.ShotMixVerdict)
}

func TestAnalyzeUploadRequiresBoxScore(t *testing.T) {
	svc := NewAnalysisService(nil, quietLogger())

	_, _, err := svc.AnalyzeUpload(context.Background(), AnalysisRequest{
		OurTeam: "Harker",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "team box score")
}

func TestAnalyzeUploadUnknownTeam(t *testing.T) {
	svc := NewAnalysisService(nil, quietLogger())

	_, _, err := svc.AnalyzeUpload(context.Background(), AnalysisRequest{
		OurTeam:      "Nowhere Prep",
		OpponentTeam: "Aptos",
		TeamBox:      strings.NewReader(teamBoxCSV),
	})
	require.Error(t, err)
}
