// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists completed pipeline run summaries in SQLite.
// The store is an append-only audit trail: the pipeline writes a row after
// each run and never reads one back mid-run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/litpipe/pkg/types"
)

const dbFile = "litpipe.db"

// Run is one recorded pipeline execution.
type Run struct {
	ID                 string    `json:"id"`
	Keywords           string    `json:"keywords"`
	ChainStatus        string    `json:"chain_status"`
	Stage              string    `json:"stage"`
	Message            string    `json:"message"`
	TotalPapers        int       `json:"total_papers"`
	MainResearchMethod string    `json:"main_research_method"`
	ReportPath         string    `json:"report_path"`
	PlotCount          int       `json:"plot_count"`
	CreatedAt          time.Time `json:"created_at"`
}

// Store manages the run history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at dir/litpipe.db and
// creates the schema when missing.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			keywords TEXT NOT NULL,
			chain_status TEXT NOT NULL,
			stage TEXT NOT NULL,
			message TEXT,
			total_papers INTEGER NOT NULL DEFAULT 0,
			main_research_method TEXT,
			report_path TEXT,
			plot_count INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one completed pipeline result and returns the run id.
func (s *Store) Record(ctx context.Context, keywords string, result types.PipelineResult) (string, error) {
	run := Run{
		ID:          uuid.NewString(),
		Keywords:    keywords,
		ChainStatus: string(result.ChainStatus),
		Stage:       string(result.Stage),
		Message:     result.Message,
		CreatedAt:   time.Now().UTC(),
	}
	if sum := result.Summary; sum != nil {
		run.TotalPapers = sum.TotalPapers
		run.MainResearchMethod = sum.MainResearchMethod
		run.ReportPath = sum.ReportPath
		run.PlotCount = len(sum.PlotPaths)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, keywords, chain_status, stage, message,
			total_papers, main_research_method, report_path, plot_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Keywords, run.ChainStatus, run.Stage, run.Message,
		run.TotalPapers, run.MainResearchMethod, run.ReportPath, run.PlotCount,
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return run.ID, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, keywords, chain_status, stage, message,
			total_papers, main_research_method, report_path, plot_count, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Keywords, &run.ChainStatus, &run.Stage,
			&run.Message, &run.TotalPapers, &run.MainResearchMethod,
			&run.ReportPath, &run.PlotCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(createdAt))
		if err != nil {
			return nil, fmt.Errorf("parsing created_at for run %s: %w", run.ID, err)
		}
		run.CreatedAt = t
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
