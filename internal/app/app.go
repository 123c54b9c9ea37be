package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"ArticleLibrary/internal/config"
	"ArticleLibrary/internal/infrastructure/parser"
	"ArticleLibrary/internal/infrastructure/storage"
	"ArticleLibrary/internal/logging"
	"ArticleLibrary/internal/metrics"
	"ArticleLibrary/internal/ports"
	"ArticleLibrary/internal/source"
	"ArticleLibrary/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	store   storage.Store
	source  ports.ArticleSource
	worker  *usecase.Worker
	metrics *metrics.Recorder
	out     io.Writer
}

// New opens the configured store and builds the worker around it.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	registry := source.NewRegistry(parser.YAMLDecoder{}, parser.HTMLDecoder{})
	src := parser.NewBatchSource(registry, cfg.Inputs, nil, baseLogger.With("component", "source"))

	rec := metrics.NewRecorder()
	worker := usecase.NewWorker(store,
		usecase.WithLocation(cfg.Library.Location()),
		usecase.WithLocale(cfg.Library.Language()),
		usecase.WithLogger(baseLogger.With("component", "worker")),
		usecase.WithMetrics(rec),
	)

	return &Application{
		cfg:     cfg,
		logger:  baseLogger,
		store:   store,
		source:  src,
		worker:  worker,
		metrics: rec,
		out:     os.Stdout,
	}, nil
}

// Run imports every configured input once and prints the catalog.
func (a *Application) Run(ctx context.Context) error {
	candidates, err := a.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load inputs: %w", err)
	}

	if err := a.worker.AddNewArticles(ctx, candidates); err != nil {
		return fmt.Errorf("add articles: %w", err)
	}

	catalog, err := a.worker.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("render catalog: %w", err)
	}
	if _, err := io.WriteString(a.out, catalog); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}

	return a.metrics.Flush(a.cfg.Metrics.Textfile)
}

// Close releases the store connection.
func (a *Application) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
