package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database wraps the PostgreSQL connection used for analysis persistence.
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase opens and verifies a database connection.
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries.
func (db *Database) DB() *sql.DB {
	return db.conn
}

type migration struct {
	version string
	sql     string
}

// The schema ships with the binary; there is no external migrations
// directory to locate at runtime.
var migrations = []migration{
	{
		version: "001_create_game_analyses.sql",
		sql: `
			CREATE TABLE IF NOT EXISTS game_analyses (
				analysis_id UUID PRIMARY KEY,
				our_team VARCHAR(128) NOT NULL,
				opponent_team VARCHAR(128) NOT NULL,
				our_points INT NOT NULL,
				opponent_points INT NOT NULL,
				our_possessions DOUBLE PRECISION NOT NULL,
				our_ppp DOUBLE PRECISION,
				turnover_rate DOUBLE PRECISION,
				rebound_margin INT NOT NULL,
				shot_mix_recommendation VARCHAR(64) NOT NULL,
				warning_count INT NOT NULL DEFAULT 0,
				payload JSONB NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_game_analyses_created_at
				ON game_analyses (created_at DESC);
			CREATE INDEX IF NOT EXISTS idx_game_analyses_teams
				ON game_analyses (our_team, opponent_team);
		`,
	},
	{
		version: "002_create_zone_stats.sql",
		sql: `
			CREATE TABLE IF NOT EXISTS zone_stats (
				id BIGSERIAL PRIMARY KEY,
				analysis_id UUID NOT NULL REFERENCES game_analyses(analysis_id) ON DELETE CASCADE,
				zone_row INT NOT NULL,
				zone_col INT NOT NULL,
				shots INT NOT NULL,
				makes INT NOT NULL,
				misses INT NOT NULL,
				points INT NOT NULL,
				pps DOUBLE PRECISION,
				ppp DOUBLE PRECISION,
				field_goal_pct DOUBLE PRECISION,
				UNIQUE (analysis_id, zone_row, zone_col)
			);
			CREATE INDEX IF NOT EXISTS idx_zone_stats_analysis
				ON zone_stats (analysis_id);
		`,
	},
}

// RunMigrations applies every pending schema migration in order.
func (db *Database) RunMigrations() error {
	if err := db.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		if err := db.runMigration(m); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", m.version, err)
		}
	}
	return nil
}

func (db *Database) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.conn.Exec(query)
	return err
}

func (db *Database) runMigration(m migration) error {
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", m.version).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.sql); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", m.version); err != nil {
		return err
	}
	return tx.Commit()
}

// HealthCheck performs a health check on the database.
func (db *Database) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}
