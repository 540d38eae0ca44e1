package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/khrees2412/resumatch/internal/analyzer"
	"github.com/khrees2412/resumatch/internal/auth"
	"github.com/khrees2412/resumatch/internal/catalog"
	"github.com/khrees2412/resumatch/internal/config"
	"github.com/khrees2412/resumatch/internal/database"
	"github.com/khrees2412/resumatch/internal/fetch"
)

// App is the dependency container for the CLI application
type App struct {
	DB         *sql.DB
	Store      *database.Store
	Config     *config.Config
	Catalog    *catalog.Catalog
	Logger     *slog.Logger
	HTTPClient *http.Client
	Fetcher    *fetch.Fetcher
	Auth       *auth.Service
	Analyzer   *analyzer.Analyzer
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context) (*App, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// Initialize config
	cfg, err := config.Initialize()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return New(ctx, cfg, os.Stderr)
}

// New wires an App from an already loaded config. Logs go to logOut.
func New(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	logger := NewLogger(logOut, cfg.LogLevel)
	slog.SetDefault(logger)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	hasher, err := auth.NewHasher(auth.Params{
		Memory:  cfg.ArgonMemory,
		Time:    cfg.ArgonTime,
		Threads: cfg.ArgonThreads,
	})
	if err != nil {
		return nil, err
	}

	// Open database with proper pragmas
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Create HTTP client with timeout
	httpClient := &http.Client{
		Timeout: cfg.FetchTimeout,
	}

	store := database.NewStore(db)
	logger.DebugContext(ctx, "app initialized",
		slog.String("db", cfg.DBPath),
		slog.Int("roles", len(cat.Roles)))

	return &App{
		DB:         db,
		Store:      store,
		Config:     cfg,
		Catalog:    cat,
		Logger:     logger,
		HTTPClient: httpClient,
		Fetcher:    fetch.New(httpClient, cfg.FetchTimeout, cfg.UseBrowser, logger),
		Auth:       auth.NewService(store, hasher),
		Analyzer:   analyzer.New(store, cat, logger),
	}, nil
}

// Close closes all resources
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// NewLogger returns a text logger writing to w at the named level
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
