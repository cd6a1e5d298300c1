// Package service orchestrates the analysis pipeline: CSV ingest, metric
// derivation, persistence, caching and event fan-out.
package service

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/fastbreak/courtvision/internal/cache"
	"github.com/fastbreak/courtvision/internal/engine"
	"github.com/fastbreak/courtvision/internal/ingest/csvload"
	"github.com/fastbreak/courtvision/internal/publisher"
	"github.com/fastbreak/courtvision/internal/report"
	"github.com/fastbreak/courtvision/internal/store"
	"github.com/fastbreak/courtvision/internal/store/repository"
)

// Broadcaster pushes completed analyses to live subscribers.
type Broadcaster interface {
	BroadcastAnalysis(rec *store.AnalysisRecord)
}

// AnalysisRequest carries one game's CSV exports. TeamBox is required;
// PlayerStats and Shots are optional and simply narrow the analysis when
// absent.
type AnalysisRequest struct {
	OurTeam      string
	OpponentTeam string
	TeamBox      io.Reader
	PlayerStats  io.Reader
	Shots        io.Reader
}

// AnalysisService runs game analyses end to end. The repository, cache,
// publisher and broadcaster are each optional so the same service backs both
// the API server and the offline CLI.
type AnalysisService struct {
	engine      *engine.Engine
	repo        *repository.AnalysesRepository
	cache       *cache.RedisCache
	publisher   *publisher.RedisStreamPublisher
	broadcaster Broadcaster
	logger      *logrus.Logger
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(eng *engine.Engine, logger *logrus.Logger) *AnalysisService {
	if eng == nil {
		eng = engine.New(engine.DefaultConfig())
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &AnalysisService{
		engine: eng,
		logger: logger,
	}
}

// WithRepository attaches persistence.
func (s *AnalysisService) WithRepository(repo *repository.AnalysesRepository) *AnalysisService {
	s.repo = repo
	return s
}

// WithCache attaches the read-through cache.
func (s *AnalysisService) WithCache(c *cache.RedisCache) *AnalysisService {
	s.cache = c
	return s
}

// WithPublisher attaches the stream publisher.
func (s *AnalysisService) WithPublisher(p *publisher.RedisStreamPublisher) *AnalysisService {
	s.publisher = p
	return s
}

// WithBroadcaster attaches the WebSocket fan-out.
func (s *AnalysisService) WithBroadcaster(b Broadcaster) *AnalysisService {
	s.broadcaster = b
	return s
}

// AnalyzeUpload ingests one game's CSV exports, derives the full analysis,
// and stores, caches and publishes the result. Persistence failures abort;
// cache and event failures are logged and the analysis still succeeds.
func (s *AnalysisService) AnalyzeUpload(ctx context.Context, req AnalysisRequest) (*store.AnalysisRecord, *engine.GameAnalysis, error) {
	if req.TeamBox == nil {
		return nil, nil, fmt.Errorf("team box score export is required")
	}

	boxRows, err := csvload.LoadTeamBox(req.TeamBox)
	if err != nil {
		return nil, nil, fmt.Errorf("loading team box score: %w", err)
	}

	ourBox, oppBox, err := csvload.MatchTeamRows(boxRows, req.OurTeam, req.OpponentTeam)
	if err != nil {
		return nil, nil, err
	}

	input := engine.GameInput{
		OurBox:      ourBox,
		OpponentBox: oppBox,
	}

	if req.PlayerStats != nil {
		if input.Players, err = csvload.LoadPlayerStats(req.PlayerStats); err != nil {
			return nil, nil, fmt.Errorf("loading player stats: %w", err)
		}
	}
	if req.Shots != nil {
		if input.Shots, err = csvload.LoadShotLog(req.Shots); err != nil {
			return nil, nil, fmt.Errorf("loading shot log: %w", err)
		}
	}

	analysis, err := s.engine.AnalyzeGame(input)
	if err != nil {
		return nil, nil, err
	}

	rec, zones, err := store.NewAnalysisRecord(analysis)
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"analysis_id": rec.AnalysisID,
		"our_team":    rec.OurTeam,
		"opponent":    rec.OpponentTeam,
		"warnings":    rec.WarningCount,
	}).Info("Game analysis completed")

	if s.repo != nil {
		if err := s.repo.SaveAnalysis(ctx, rec, zones); err != nil {
			return nil, nil, fmt.Errorf("saving analysis: %w", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.CacheAnalysis(ctx, rec); err != nil {
			s.logger.WithError(err).Warn("Failed to cache analysis")
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishAnalysisCompleted(ctx, rec); err != nil {
			s.logger.WithError(err).Warn("Failed to publish analysis event")
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastAnalysis(rec)
	}

	return rec, analysis, nil
}

// GetAnalysis returns one stored analysis, cache first.
func (s *AnalysisService) GetAnalysis(ctx context.Context, analysisID string) (*store.AnalysisRecord, error) {
	if s.cache != nil {
		rec, err := s.cache.GetAnalysis(ctx, analysisID)
		if err != nil {
			s.logger.WithError(err).Warn("Analysis cache lookup failed")
		} else if rec != nil {
			return rec, nil
		}
	}

	if s.repo == nil {
		return nil, fmt.Errorf("analysis %s not found", analysisID)
	}

	rec, err := s.repo.GetAnalysis(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheAnalysis(ctx, rec); err != nil {
			s.logger.WithError(err).Warn("Failed to backfill analysis cache")
		}
	}
	return rec, nil
}

// ListRecent returns the most recent analyses, newest first.
func (s *AnalysisService) ListRecent(ctx context.Context, limit int) ([]*store.AnalysisRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListRecent(ctx, limit)
}

// GetZoneStats returns the persisted zone grid rows for one analysis.
func (s *AnalysisService) GetZoneStats(ctx context.Context, analysisID string) ([]*store.ZoneStatRecord, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("analysis %s not found", analysisID)
	}
	return s.repo.GetZoneStats(ctx, analysisID)
}

// GetReport renders the coaching report for one stored analysis.
func (s *AnalysisService) GetReport(ctx context.Context, analysisID string) (string, error) {
	rec, err := s.GetAnalysis(ctx, analysisID)
	if err != nil {
		return "", err
	}

	analysis, err := rec.DecodePayload()
	if err != nil {
		return "", fmt.Errorf("decoding analysis %s payload: %w", analysisID, err)
	}
	return report.CoachPrompt(analysis), nil
}
