// Command serpjsond recovers structured JSON answers from SERP AI panels.
//
// Usage:
//
//	serpjsond -config serpjson.yaml        # HTTP daemon with config file
//	serpjsond -db serpjson.db              # HTTP daemon with defaults
//	serpjsond -extract '<raw text>'        # one-shot: clean text and exit
//	serpjsond -stdin                       # one-shot: clean stdin and exit
//	serpjsond -ask 'question'              # drive a browser, extract the answer
//	serpjsond -attempts 20                 # show recent attempts and exit
//	serpjsond -stats                       # show stats and exit
//	serpjsond -mcp                         # serve MCP tools over stdio
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/serpjson/answer"
)

func main() {
	configPath := flag.String("config", "", "path to serpjson.yaml config file")
	dbPath := flag.String("db", "", "path to SQLite capture database")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	extractText := flag.String("extract", "", "raw answer text to clean (exit after result)")
	fromStdin := flag.Bool("stdin", false, "read raw answer text from stdin (exit after result)")
	ask := flag.String("ask", "", "open a browser session, ask the question, extract the answer")
	attempts := flag.Int("attempts", 0, "show N recent attempts and exit")
	showStats := flag.Bool("stats", false, "show stats and exit")
	mcpStdio := flag.Bool("mcp", false, "serve MCP tools over stdio")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, options{
		configPath: *configPath,
		dbPath:     *dbPath,
		addr:       *addr,
		extract:    *extractText,
		stdin:      *fromStdin,
		ask:        *ask,
		attempts:   *attempts,
		stats:      *showStats,
		mcp:        *mcpStdio,
	}); err != nil {
		logger.Error("serpjsond: fatal", "error", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	dbPath     string
	addr       string
	extract    string
	stdin      bool
	ask        string
	attempts   int
	stats      bool
	mcp        bool
}

func run(ctx context.Context, logger *slog.Logger, opts options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	svc, err := answer.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer svc.Close()

	// One-shot: clean supplied text.
	if opts.extract != "" {
		fmt.Println(svc.ExtractText(ctx, opts.extract))
		return nil
	}
	if opts.stdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		fmt.Println(svc.ExtractText(ctx, string(data)))
		return nil
	}

	// One-shot: drive a browser session.
	if opts.ask != "" {
		return runAsk(ctx, svc, opts.ask)
	}

	// One-shot: inspection.
	if opts.attempts > 0 {
		list, err := svc.Recent(ctx, opts.attempts)
		if err != nil {
			return fmt.Errorf("attempts: %w", err)
		}
		return printJSON(list)
	}
	if opts.stats {
		stats, err := svc.Counts(ctx)
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		return printJSON(stats)
	}

	// MCP stdio mode.
	if opts.mcp {
		srv := mcp.NewServer(&mcp.Implementation{
			Name:    "serpjson",
			Version: "1.0.0",
		}, nil)
		svc.RegisterMCP(srv)
		logger.Info("serpjsond: MCP stdio serving")
		return srv.Run(ctx, &mcp.StdioTransport{})
	}

	// Daemon mode: HTTP API.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	svc.RegisterHTTP(r)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("serpjsond: listening", "addr", cfg.HTTPAddr, "db", cfg.DBPath)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("serpjsond: server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("serpjsond: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("serpjsond: shutdown", "error", err)
	}
	return nil
}

// runAsk opens a live SERP session, submits the question, waits for the AI
// answer to settle, and prints the recovered JSON.
func runAsk(ctx context.Context, svc *answer.Service, question string) error {
	sess, err := svc.OpenSession(ctx)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer sess.Close()

	if err := sess.Ask(ctx, question); err != nil {
		return fmt.Errorf("ask: %w", err)
	}

	resp := sess.AwaitAnswer(ctx, 2*time.Second, 90*time.Second)
	if resp.Empty() {
		return fmt.Errorf("no answer appeared before the wait expired")
	}

	out := svc.ExtractResponse(ctx, resp)
	if out == "" {
		return fmt.Errorf("answer did not yield a valid document")
	}
	fmt.Println(out)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func resolveConfig(opts options) (*answer.Config, error) {
	var cfg *answer.Config
	if opts.configPath != "" {
		var err error
		cfg, err = answer.LoadConfigFile(opts.configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = &answer.Config{}
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}
	if opts.addr != "" {
		cfg.HTTPAddr = opts.addr
	}
	return cfg, nil
}
