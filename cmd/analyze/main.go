// Command analyze runs the full game analysis offline from CSV exports and
// writes the coaching artifacts to disk. No database or Redis required.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fastbreak/courtvision/internal/engine"
	"github.com/fastbreak/courtvision/internal/ingest/csvload"
	"github.com/fastbreak/courtvision/internal/report"
	"github.com/fastbreak/courtvision/internal/store"
	"github.com/fastbreak/courtvision/internal/store/repository"
)

const (
	appName    = "courtvision-analyze"
	appVersion = "1.0.0"
)

func main() {
	log.Printf("=== %s v%s ===", appName, appVersion)

	var (
		boxPath     = flag.String("box", "", "Team box score CSV (required)")
		playersPath = flag.String("players", "", "Player stats CSV")
		shotsPath   = flag.String("shots", "", "Shot log CSV")
		ourTeam     = flag.String("team", "", "Our team name as it appears in the export")
		opponent    = flag.String("opponent", "", "Opponent team name")
		gridRows    = flag.Int("rows", engine.DefaultGridRows, "Zone grid rows")
		gridCols    = flag.Int("cols", engine.DefaultGridCols, "Zone grid columns")
		outDir      = flag.String("out", ".", "Output directory for report artifacts")
		matrix      = flag.String("matrix", "pps", "Zone matrix metric to print (pps, ppp, fg_pct)")
		dsn         = flag.String("dsn", os.Getenv("DATABASE_DSN"), "Optional Postgres DSN; persists the analysis when set")
	)

	flag.Parse()

	if *boxPath == "" {
		log.Fatalf("Specify --box with the team box score export")
	}

	boxRows, err := csvload.LoadTeamBoxFile(*boxPath)
	if err != nil {
		log.Fatalf("load box score: %v", err)
	}

	ourBox, oppBox, err := csvload.MatchTeamRows(boxRows, *ourTeam, *opponent)
	if err != nil {
		log.Fatalf("match teams: %v", err)
	}

	input := engine.GameInput{
		OurBox:      ourBox,
		OpponentBox: oppBox,
	}

	if *playersPath != "" {
		if input.Players, err = csvload.LoadPlayerStatsFile(*playersPath); err != nil {
			log.Fatalf("load player stats: %v", err)
		}
	}
	if *shotsPath != "" {
		if input.Shots, err = csvload.LoadShotLogFile(*shotsPath); err != nil {
			log.Fatalf("load shot log: %v", err)
		}
	}

	cfg := engine.DefaultConfig()
	cfg.GridRows = *gridRows
	cfg.GridCols = *gridCols

	analysis, err := engine.New(cfg).AnalyzeGame(input)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	summary := report.Summary(analysis)
	fmt.Println(summary)

	if analysis.ZoneGrid != nil {
		fmt.Println(report.ZoneMatrix(analysis.ZoneGrid, *matrix))
	}

	if err := writeArtifacts(*outDir, analysis, summary); err != nil {
		log.Fatalf("write artifacts: %v", err)
	}

	if *dsn != "" {
		if err := persistAnalysis(*dsn, analysis); err != nil {
			log.Fatalf("persist analysis: %v", err)
		}
		log.Printf("✓ Analysis persisted")
	}

	if n := len(analysis.Warnings); n > 0 {
		log.Printf("⚠ %d data quality warning(s); see the summary for details", n)
	}
	log.Printf("✓ Analysis complete, artifacts written to %s", *outDir)
}

func persistAnalysis(dsn string, analysis *engine.GameAnalysis) error {
	db, err := store.NewDatabase(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return err
	}

	rec, zones, err := store.NewAnalysisRecord(analysis)
	if err != nil {
		return err
	}
	return repository.NewAnalysesRepository(db).SaveAnalysis(context.Background(), rec, zones)
}

func writeArtifacts(dir string, analysis *engine.GameAnalysis, summary string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	prompt := report.CoachPrompt(analysis)
	if err := os.WriteFile(filepath.Join(dir, "coach_report_prompt.txt"), []byte(prompt), 0o644); err != nil {
		return fmt.Errorf("writing coach prompt: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "game_summary.txt"), []byte(summary), 0o644); err != nil {
		return fmt.Errorf("writing game summary: %w", err)
	}

	if analysis.ZoneGrid != nil {
		f, err := os.Create(filepath.Join(dir, "zone_statistics.csv"))
		if err != nil {
			return fmt.Errorf("creating zone CSV: %w", err)
		}
		defer f.Close()
		if err := report.WriteZoneCSV(f, analysis.ZoneGrid); err != nil {
			return fmt.Errorf("writing zone CSV: %w", err)
		}
	}
	return nil
}
