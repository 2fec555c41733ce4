package locator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/hazyhaar/serpjson/locator/internal/browser"
)

// BrowserConfig configures the Chrome instance a Session runs in.
type BrowserConfig struct {
	// RemoteURL attaches to an external Chrome; empty launches a local one.
	RemoteURL string `yaml:"remote_url"`

	// Headful disables headless mode for debugging.
	Headful bool `yaml:"headful"`

	// NavTimeout bounds navigation and page-load waits. Default: 30s.
	NavTimeout time.Duration `yaml:"nav_timeout"`
}

func (c *BrowserConfig) defaults() {
	if c.NavTimeout <= 0 {
		c.NavTimeout = 30 * time.Second
	}
}

// Session drives one stealth SERP tab: navigate, ask, read the answer panel.
type Session struct {
	page    *rod.Page
	loc     *Locator
	manager *browser.Manager
	cfg     BrowserConfig
	logger  *slog.Logger
}

// OpenSession launches (or attaches to) Chrome, opens a stealth tab on
// searchURL, and waits for the page to load.
func OpenSession(ctx context.Context, searchURL string, bc BrowserConfig, sel Selectors, logger *slog.Logger) (*Session, error) {
	bc.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	mgr := browser.NewManager(browser.Config{
		RemoteURL: bc.RemoteURL,
		Headful:   bc.Headful,
		Logger:    logger,
	})
	b, err := mgr.Start()
	if err != nil {
		return nil, err
	}

	page, err := stealth.Page(b)
	if err != nil {
		mgr.Close()
		return nil, fmt.Errorf("locator: create tab: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, bc.NavTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(searchURL); err != nil {
		page.Close()
		mgr.Close()
		return nil, fmt.Errorf("locator: navigate %s: %w", searchURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		logger.Warn("locator: wait load timeout", "url", searchURL, "error", err)
	}

	return &Session{
		page:    page,
		loc:     New(sel, logger),
		manager: mgr,
		cfg:     bc,
		logger:  logger,
	}, nil
}

// Page exposes the underlying tab for callers that locate on their own.
func (s *Session) Page() *rod.Page {
	return s.page
}

// Ask types a query into the answer panel's ask box and submits it.
func (s *Session) Ask(ctx context.Context, query string) error {
	el, err := s.findFirst(ctx, s.loc.sel.AskBox)
	if err != nil {
		return fmt.Errorf("locator: ask box: %w", err)
	}
	if err := el.Input(query); err != nil {
		return fmt.Errorf("locator: type query: %w", err)
	}
	if err := el.Type(input.Enter); err != nil {
		return fmt.Errorf("locator: submit query: %w", err)
	}
	return nil
}

// NewSearch clicks the reset button so the next Ask starts a fresh answer.
func (s *Session) NewSearch(ctx context.Context) error {
	el, err := s.findFirst(ctx, s.loc.sel.NewSearch)
	if err != nil {
		return fmt.Errorf("locator: new search button: %w", err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("locator: click new search: %w", err)
	}
	return nil
}

// Answer reads the current answer panel. Empty Response when none is present.
func (s *Session) Answer() Response {
	return s.loc.Locate(s.page)
}

// AwaitAnswer polls the answer panel until it yields content, ctx expires,
// or the poll interval has elapsed maxWait.
func (s *Session) AwaitAnswer(ctx context.Context, poll, maxWait time.Duration) Response {
	if poll <= 0 {
		poll = time.Second
	}
	deadline := time.Now().Add(maxWait)
	for {
		if r := s.loc.Locate(s.page); !r.Empty() {
			return r
		}
		if time.Now().After(deadline) || ctx.Err() != nil {
			return Response{}
		}
		select {
		case <-ctx.Done():
			return Response{}
		case <-time.After(poll):
		}
	}
}

// Close closes the tab and shuts down the browser.
func (s *Session) Close() error {
	if s.page != nil {
		s.page.Close()
	}
	return s.manager.Close()
}

// findFirst returns the first element matched by any of the selectors.
func (s *Session) findFirst(ctx context.Context, selectors []string) (*rod.Element, error) {
	page := s.page.Context(ctx)
	for _, sel := range selectors {
		els, err := page.Elements(sel)
		if err != nil || len(els) == 0 {
			continue
		}
		return els[0], nil
	}
	return nil, fmt.Errorf("no element for selectors %v", selectors)
}
