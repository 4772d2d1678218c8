// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the pipeline over HTTP. The contract mirrors the
// stage envelopes: every /research response is a PipelineResult with HTTP
// 200, and failures before the pipeline starts are tagged request, params
// or server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/litpipe/internal/history"
	"github.com/pdiddy/litpipe/internal/pipeline"
	"github.com/pdiddy/litpipe/pkg/types"
)

// RunPipeline executes one research run for cfg and keywords.
type RunPipeline func(ctx context.Context, cfg types.PipelineConfig, keywords string) types.PipelineResult

// RunStore is the history surface the server needs. A nil store disables
// run recording.
type RunStore interface {
	Record(ctx context.Context, keywords string, result types.PipelineResult) (string, error)
	Recent(ctx context.Context, limit int) ([]history.Run, error)
}

// Server wires the HTTP boundary.
type Server struct {
	engine *gin.Engine
	run    RunPipeline
	store  RunStore
	base   types.PipelineConfig
}

// Option adjusts Server construction.
type Option func(*Server)

// WithRunPipeline substitutes the pipeline execution, used by tests.
func WithRunPipeline(run RunPipeline) Option {
	return func(s *Server) { s.run = run }
}

// WithStore attaches a run history store.
func WithStore(store RunStore) Option {
	return func(s *Server) { s.store = store }
}

// New builds the server. base supplies the settings a request does not
// carry: plot/report directories, HTTP timeouts and render format.
func New(base types.PipelineConfig, opts ...Option) *Server {
	s := &Server{
		base: base,
		run: func(ctx context.Context, cfg types.PipelineConfig, keywords string) types.PipelineResult {
			return pipeline.Build(cfg).Run(ctx, keywords)
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.CustomRecovery(func(c *gin.Context, err any) {
		slog.Error("handler panicked", "error", err)
		c.JSON(http.StatusOK, types.PipelineResult{
			ChainStatus: types.ChainFailed,
			Stage:       types.StageServer,
			Message:     fmt.Sprintf("server processing failed: %v", err),
		})
	}))

	engine.POST("/research", s.handleResearch)
	engine.GET("/healthz", s.handleHealthz)
	engine.GET("/runs", s.handleRuns)
	s.engine = engine
	return s
}

// Handler returns the http.Handler for serving or tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	slog.Info("listening", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) handleResearch(c *gin.Context) {
	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, types.PipelineResult{
			ChainStatus: types.ChainFailed,
			Stage:       types.StageRequest,
			Message:     fmt.Sprintf("empty or malformed request body: %v", err),
		})
		return
	}

	req.EnsureDefaults()
	if msgs := req.Validate(); len(msgs) > 0 {
		c.JSON(http.StatusOK, types.PipelineResult{
			ChainStatus: types.ChainFailed,
			Stage:       types.StageParams,
			Message:     strings.Join(msgs, "; "),
		})
		return
	}

	cfg := req.PipelineConfig(s.base)
	slog.Info("research request accepted", "keywords", req.Keywords, "max_papers", cfg.Literature.MaxPapers)

	result := s.run(c.Request.Context(), cfg, req.Keywords)

	if s.store != nil {
		if _, err := s.store.Record(c.Request.Context(), req.Keywords, result); err != nil {
			slog.Error("recording run failed", "error", err)
		}
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRuns(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []history.Run{}})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := s.store.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
