package rest

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/fastbreak/courtvision/internal/cache"
	"github.com/fastbreak/courtvision/internal/service"
	"github.com/fastbreak/courtvision/internal/store"
)

// Uploads are small CSV exports; anything bigger is a wrong file.
const maxUploadBytes = 8 << 20

// Handler contains dependencies for HTTP handlers
type Handler struct {
	analysisService *service.AnalysisService
	db              *store.Database
	cache           *cache.RedisCache
}

// NewHandler creates a new handler
func NewHandler(analysisService *service.AnalysisService, db *store.Database, redisCache *cache.RedisCache) *Handler {
	return &Handler{
		analysisService: analysisService,
		db:              db,
		cache:           redisCache,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	checks := map[string]string{}

	if h.db != nil {
		if err := h.db.HealthCheck(); err != nil {
			status = "degraded"
			checks["database"] = err.Error()
		} else {
			checks["database"] = "ok"
		}
	}
	if h.cache != nil {
		if err := h.cache.HealthCheck(r.Context()); err != nil {
			status = "degraded"
			checks["cache"] = err.Error()
		} else {
			checks["cache"] = "ok"
		}
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]interface{}{
		"status":  status,
		"service": "courtvision",
		"version": "1.0.0",
		"checks":  checks,
	})
}

// CreateAnalysis ingests one game's CSV exports and runs the full analysis.
// Multipart fields: team_box (required), player_stats, shots; form values
// our_team and opponent_team select the box-score rows.
func (h *Handler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart upload", err)
		return
	}

	req := service.AnalysisRequest{
		OurTeam:      r.FormValue("our_team"),
		OpponentTeam: r.FormValue("opponent_team"),
	}

	teamBox, err := formFile(r, "team_box")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing team_box file", err)
		return
	}
	defer teamBox.Close()
	req.TeamBox = teamBox

	if playerStats, err := formFile(r, "player_stats"); err == nil {
		defer playerStats.Close()
		req.PlayerStats = playerStats
	}
	if shots, err := formFile(r, "shots"); err == nil {
		defer shots.Close()
		req.Shots = shots
	}

	rec, analysis, err := h.analysisService.AnalyzeUpload(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Analysis failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"analysis": rec,
		"warnings": analysis.Warnings,
	})
}

// ListAnalyses returns the most recent analyses
func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	limit := 20 // default
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	recs, err := h.analysisService.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch analyses", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"analyses": recs,
		"count":    len(recs),
	})
}

// GetAnalysis returns a stored analysis with its full derived payload
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	analysisID := vars["analysisID"]

	rec, err := h.analysisService.GetAnalysis(r.Context(), analysisID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Analysis not found", err)
		return
	}

	analysis, err := rec.DecodePayload()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to decode analysis", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"analysis": rec,
		"detail":   analysis,
	})
}

// GetZoneStats returns the court-zone shooting grid for an analysis
func (h *Handler) GetZoneStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	analysisID := vars["analysisID"]

	zones, err := h.analysisService.GetZoneStats(r.Context(), analysisID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Zone stats not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"analysis_id": analysisID,
		"zones":       zones,
		"count":       len(zones),
	})
}

// GetReport renders the coaching report for an analysis as Markdown
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	analysisID := vars["analysisID"]

	reportText, err := h.analysisService.GetReport(r.Context(), analysisID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, "Analysis not found", err)
		} else {
			respondError(w, http.StatusInternalServerError, "Failed to render report", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(reportText))
}

func formFile(r *http.Request, field string) (multipart.File, error) {
	f, _, err := r.FormFile(field)
	return f, err
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
