package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreak/courtvision/internal/service"
)

const teamBoxCSV = `Team,PTS,FGM,FGA,3PM,3PA,FTM,FTA,OREB,DREB,AST,TO
Harker,70,29,60,6,20,6,9,10,20,15,12
Aptos,65,26,58,6,15,7,10,15,25,11,10
`

func testServer(t *testing.T) *Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := service.NewAnalysisService(nil, logger)
	return NewServer("0", svc, nil, nil, logger)
}

func multipartUpload(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile(name, name+".csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestCreateAnalysis(t *testing.T) {
	srv := testServer(t)

	body, contentType := multipartUpload(t,
		map[string]string{"our_team": "Harker", "opponent_team": "Aptos"},
		map[string]string{"team_box": teamBoxCSV},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Analysis struct {
			AnalysisID string `json:"analysis_id"`
			OurTeam    string `json:"our_team"`
			OurPoints  int    `json:"our_points"`
		} `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Analysis.AnalysisID)
	assert.Equal(t, "Harker", resp.Analysis.OurTeam)
	assert.Equal(t, 70, resp.Analysis.OurPoints)
}

func TestCreateAnalysisMissingBoxScore(t *testing.T) {
	srv := testServer(t)

	body, contentType := multipartUpload(t,
		map[string]string{"our_team": "Harker"},
		nil,
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateAnalysisUnknownTeam(t *testing.T) {
	srv := testServer(t)

	body, contentType := multipartUpload(t,
		map[string]string{"our_team": "Nowhere Prep", "opponent_team": "Aptos"},
		map[string]string{"team_box": teamBoxCSV},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestGetAnalysisNotFound(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/does-not-exist", nil)
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHealthCheck(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"healthy"`)
}
