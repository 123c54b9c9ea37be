package ports

import (
	"context"

	"ArticleLibrary/internal/domain"
)

// ArticleSource produces a batch of candidate articles.
type ArticleSource interface {
	Load(ctx context.Context) ([]domain.Article, error)
}

// ArticleStore keeps year-partitioned article groups and a derived title catalog.
type ArticleStore interface {
	// Persist stores or overwrites the group for the given year.
	Persist(ctx context.Context, year int, articles []domain.Article) error
	// RefreshIndex rebuilds the title catalog from all stored groups.
	RefreshIndex(ctx context.Context) error
	// ListTitles returns catalog titles as of the last refresh, in no particular order.
	ListTitles(ctx context.Context) ([]string, error)
}
