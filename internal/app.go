// Package internal provides the main application initialization and
// runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/daybook/internal/journal"
	"github.com/starford/daybook/internal/journalservice"
	"github.com/starford/daybook/internal/mcpserver"
	"github.com/starford/daybook/internal/reminders"
	"github.com/starford/daybook/internal/search"
	"github.com/starford/daybook/internal/sse"
	"github.com/starford/daybook/internal/storage"
	"github.com/starford/daybook/internal/web"
)

// newLogger builds the structured JSON logger and installs it as default.
func newLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// buildFetchers constructs one fetcher per enabled source.
func buildFetchers(cfg *Config) []reminders.Fetcher {
	var googleTokens reminders.TokenStore = reminders.EnvTokenStore{}
	if cfg.Google.TokenFile != "" {
		googleTokens = &reminders.GoogleTokenStore{
			Path:         cfg.Google.TokenFile,
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
		}
	}

	var out []reminders.Fetcher
	for _, sc := range cfg.Sources {
		if !sc.Enabled {
			continue
		}
		switch reminders.Source(sc.Name) {
		case reminders.SourceGitHub:
			out = append(out, &reminders.GitHubFetcher{Tokens: reminders.EnvTokenStore{}, Bound: sc.Timeout})
		case reminders.SourceGitLab:
			out = append(out, &reminders.GitLabFetcher{Tokens: reminders.EnvTokenStore{}, Bound: sc.Timeout})
		case reminders.SourceGoogleTasks:
			out = append(out, &reminders.GoogleTasksFetcher{Tokens: googleTokens, Bound: sc.Timeout})
		case reminders.SourceApple:
			out = append(out, &reminders.AppleFetcher{Bound: sc.Timeout})
		}
	}
	return out
}

// buildSynthesizer wires the storage-level journal components.
func buildSynthesizer(cfg *Config, logger *slog.Logger) (storage.Provider, *journal.Synthesizer, error) {
	if err := os.MkdirAll(cfg.Journal.Path, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create journal dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Journal.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}

	agg := reminders.NewAggregator(logger, buildFetchers(cfg)...)
	synth := journal.NewSynthesizer(store, agg, journal.SynthConfig{
		TemplatePath:      cfg.Journal.Template,
		MonthTemplatePath: cfg.Journal.MonthTemplate,
		YearTemplatePath:  cfg.Journal.YearTemplate,
		LookbackDays:      cfg.Journal.LookbackDays,
	}, logger)
	return store, synth, nil
}

// RunInit scaffolds a fresh journal directory.
func RunInit(_ context.Context, cfg *Config) error {
	logger := newLogger(cfg)
	if err := os.MkdirAll(cfg.Journal.Path, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	if err := journal.Scaffold(store); err != nil {
		return err
	}
	logger.Info("journal initialized", slog.String("path", cfg.Journal.Path))
	return nil
}

// RunNew creates (or reports) the entry for a date. dateArg empty means
// today; sourceNames override the configured reminder sources.
func RunNew(ctx context.Context, cfg *Config, dateArg string, sourceNames []string) error {
	logger := newLogger(cfg)

	date := time.Now()
	if dateArg != "" {
		parsed, err := time.Parse("2006-01-02", dateArg)
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", dateArg)
		}
		date = parsed
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	sources := cfg.EnabledSources()
	if len(sourceNames) > 0 {
		sources = sources[:0]
		for _, name := range sourceNames {
			src, err := reminders.ParseSource(name)
			if err != nil {
				return err
			}
			sources = append(sources, src)
		}
	}

	_, synth, err := buildSynthesizer(cfg, logger)
	if err != nil {
		return err
	}

	entry, err := synth.CreateEntry(ctx, date, sources)
	if err != nil {
		return err
	}
	if entry.Created {
		fmt.Printf("created %s\n", entry.Path)
	} else {
		fmt.Printf("exists %s\n", entry.Path)
	}
	return nil
}

// RunMCP serves the journal tools over MCP stdio transport.
func RunMCP(_ context.Context, cfg *Config) error {
	// stdout carries the MCP transport, so logs go to stderr here.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	store, synth, err := buildSynthesizer(cfg, logger)
	if err != nil {
		return err
	}
	db, err := search.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init search index: %w", err)
	}
	defer db.Close()

	if err := search.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	svc := journalservice.NewService(store, db, synth)
	return mcpserver.New(svc, cfg.EnabledSources()).ServeStdio()
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	logger := newLogger(cfg)

	logger.Info("configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("journal_path", cfg.Journal.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, synth, err := buildSynthesizer(cfg, logger)
	if err != nil {
		return err
	}
	if err := journal.Scaffold(store); err != nil {
		return err
	}

	db, err := search.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init search index: %w", err)
	}
	defer db.Close()

	// Run initial sync.
	if err := search.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	// Build service and router.
	svc := journalservice.NewService(store, db, synth)
	webRouter := web.NewRouter(svc, cfg.EnabledSources(), cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/", webRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start file watcher with SSE callback.
	g.Go(func() error {
		err := search.Watch(gCtx, db, store, cfg.Journal.Path, logger, func(kind, path string) {
			broker.PublishEntryEvent(kind, path)
		})
		if err != nil {
			logger.Warn("file watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("context cancelled, initiating shutdown")
		}

		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped successfully")
	return nil
}
