package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/text/language"

	"ArticleLibrary/internal/domain"
	"ArticleLibrary/internal/metrics"
	"ArticleLibrary/internal/ports"
)

// Worker prepares article batches and writes them to the library store.
type Worker struct {
	store    ports.ArticleStore
	now      func() time.Time
	location *time.Location
	locale   language.Tag
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// Option customizes a Worker.
type Option func(*Worker)

// WithClock replaces the wall clock used to backfill missing dates.
func WithClock(now func() time.Time) Option {
	return func(w *Worker) {
		if now != nil {
			w.now = now
		}
	}
}

// WithLocation sets the location whose calendar day is used for backfilled dates.
func WithLocation(loc *time.Location) Option {
	return func(w *Worker) {
		if loc != nil {
			w.location = loc
		}
	}
}

// WithLocale sets the collation language for the catalog listing.
func WithLocale(tag language.Tag) Option {
	return func(w *Worker) {
		w.locale = tag
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(w *Worker) {
		w.metrics = rec
	}
}

// NewWorker wires the store; defaults are the system clock, UTC and Russian collation.
func NewWorker(store ports.ArticleStore, opts ...Option) *Worker {
	w := &Worker{
		store:    store,
		now:      time.Now,
		location: time.UTC,
		locale:   language.Russian,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// PrepareArticles drops invalid articles, backfills missing dates with today
// and keeps the first article of every title. Survivors keep their input order.
func (w *Worker) PrepareArticles(candidates []domain.Article) []domain.Article {
	today := domain.Date(w.now(), w.location)
	seen := make(map[string]struct{}, len(candidates))
	prepared := make([]domain.Article, 0, len(candidates))

	for i, article := range candidates {
		if !article.Valid() {
			w.debug("drop invalid article", "index", i, "title", article.Title)
			w.metrics.Rejected(metrics.ReasonInvalid)
			continue
		}
		if _, dup := seen[article.Title]; dup {
			w.debug("drop duplicate article", "index", i, "title", article.Title)
			w.metrics.Rejected(metrics.ReasonDuplicate)
			continue
		}
		seen[article.Title] = struct{}{}

		if !article.HasDate() {
			article = article.WithCreationDate(today)
		}
		prepared = append(prepared, article)
	}

	return prepared
}

// AddNewArticles prepares the batch, persists one group per creation year and
// refreshes the catalog once if anything was stored.
func (w *Worker) AddNewArticles(ctx context.Context, candidates []domain.Article) error {
	w.metrics.Received(len(candidates))

	prepared := w.PrepareArticles(candidates)
	w.info("batch prepared", "candidates", len(candidates), "survivors", len(prepared))
	if len(prepared) == 0 {
		return nil
	}

	groups, years := groupByYear(prepared)
	for _, year := range years {
		group := groups[year]
		if err := w.store.Persist(ctx, year, group); err != nil {
			return fmt.Errorf("persist year %d: %w", year, err)
		}
		w.metrics.Persisted(year, len(group))
		w.debug("year group persisted", "year", year, "count", len(group))
	}

	if err := w.store.RefreshIndex(ctx); err != nil {
		return fmt.Errorf("refresh index: %w", err)
	}
	w.metrics.Refreshed()

	return nil
}

// Catalog lists every known title in collation order.
func (w *Worker) Catalog(ctx context.Context) (string, error) {
	titles, err := w.store.ListTitles(ctx)
	if err != nil {
		return "", fmt.Errorf("list titles: %w", err)
	}
	return formatCatalog(sortTitles(titles, w.locale)), nil
}

func groupByYear(articles []domain.Article) (map[int][]domain.Article, []int) {
	groups := make(map[int][]domain.Article)
	var years []int
	for _, article := range articles {
		year := article.Year()
		if _, ok := groups[year]; !ok {
			years = append(years, year)
		}
		groups[year] = append(groups[year], article)
	}
	sort.Ints(years)
	return groups, years
}

func (w *Worker) debug(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Debug(msg, args...)
	}
}

func (w *Worker) info(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Info(msg, args...)
	}
}
