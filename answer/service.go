// Package answer is the orchestrator: it reads the AI answer from a SERP via
// the locator, runs the JSON recovery pipeline over it, and records every
// attempt in the capture log. The pipeline:
//
//	locator → jsonclean.Extract → capture
//
// Usage:
//
//	svc, err := answer.New(cfg, logger)
//	defer svc.Close()
//	svc.RegisterMCP(mcpServer)
//	svc.RegisterHTTP(router)
//	doc := svc.ExtractText(ctx, rawText)
package answer

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"

	"github.com/hazyhaar/serpjson/capture"
	"github.com/hazyhaar/serpjson/jsonclean"
	"github.com/hazyhaar/serpjson/locator"
)

// Source labels for capture rows.
const (
	sourceText   = "text"
	sourceHTML   = "html"
	sourceManual = "manual"
)

// Service wires locator, recovery pipeline, and capture log.
type Service struct {
	cleaner *jsonclean.Cleaner
	locator *locator.Locator
	store   *capture.Store
	logger  *slog.Logger
	config  *Config
}

// New creates a Service. Opens the capture database.
func New(cfg *Config, logger *slog.Logger) (*Service, error) {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	st, err := capture.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	cleaner := jsonclean.New(jsonclean.Options{
		Placeholders: cfg.Clean.Placeholders,
		RequiredKeys: cfg.Clean.RequiredKeys,
		Logger:       logger,
	})

	return &Service{
		cleaner: cleaner,
		locator: locator.New(cfg.Selectors, logger),
		store:   st,
		logger:  logger,
		config:  cfg,
	}, nil
}

// Close closes the capture database.
func (s *Service) Close() error {
	return s.store.Close()
}

// ExtractText runs the recovery pipeline over caller-supplied text.
func (s *Service) ExtractText(ctx context.Context, text string) string {
	return s.extract(ctx, text, sourceManual)
}

// ExtractResponse runs the pipeline over a located answer. When the DOM
// reported no textContent but HTML was captured, text is recovered from the
// HTML first.
func (s *Service) ExtractResponse(ctx context.Context, resp locator.Response) string {
	text, source := resp.Text, sourceText
	if text == "" && resp.HTML != "" {
		text = locator.TextFromHTML(resp.HTML)
		source = sourceHTML
	}
	return s.extract(ctx, text, source)
}

// ExtractFromPage locates the answer on a live page and runs the pipeline.
// A nil or unreachable page yields "".
func (s *Service) ExtractFromPage(ctx context.Context, page *rod.Page) string {
	return s.ExtractResponse(ctx, s.locator.Locate(page))
}

// OpenSession opens a browsing session on the configured SERP URL.
func (s *Service) OpenSession(ctx context.Context) (*locator.Session, error) {
	return locator.OpenSession(ctx, s.config.SearchURL, s.config.Browser, s.config.Selectors, s.logger)
}

// Recent returns the most recent extraction attempts.
func (s *Service) Recent(ctx context.Context, limit int) ([]*capture.Attempt, error) {
	return s.store.Recent(ctx, limit)
}

// Counts returns aggregate attempt statistics.
func (s *Service) Counts(ctx context.Context) (*capture.Stats, error) {
	return s.store.Counts(ctx)
}

func (s *Service) extract(ctx context.Context, text, source string) string {
	start := time.Now()
	out, err := s.cleaner.ExtractReason(text)

	a := &capture.Attempt{
		Source:     source,
		RawLen:     len(text),
		DurationUs: time.Since(start).Microseconds(),
	}
	if err != nil {
		a.Outcome = capture.OutcomeRejected
		a.Reason = err.Error()
		s.logger.Info("answer: extraction rejected", "source", source, "raw_len", len(text), "reason", err)
	} else {
		a.Outcome = capture.OutcomeAccepted
		a.ResultJSON = out
		s.logger.Info("answer: extraction accepted", "source", source, "size", len(out))
	}

	if rerr := s.store.Record(ctx, a); rerr != nil {
		s.logger.Warn("answer: capture record failed", "error", rerr)
	}
	return out
}
