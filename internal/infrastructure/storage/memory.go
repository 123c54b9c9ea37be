package storage

import (
	"context"
	"sync"

	"ArticleLibrary/internal/domain"
	"ArticleLibrary/internal/ports"
)

// MemoryStore keeps year groups and the catalog in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	years   map[int][]domain.Article
	catalog []string
}

var _ ports.ArticleStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{years: map[int][]domain.Article{}}
}

// Persist replaces the year's group with a copy of articles.
func (m *MemoryStore) Persist(ctx context.Context, year int, articles []domain.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	group := make([]domain.Article, len(articles))
	copy(group, articles)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.years == nil {
		m.years = map[int][]domain.Article{}
	}
	m.years[year] = group
	return nil
}

// RefreshIndex rebuilds the catalog from the distinct titles of all groups.
func (m *MemoryStore) RefreshIndex(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	seen := map[string]struct{}{}
	catalog := make([]string, 0, len(m.catalog))
	for _, group := range m.years {
		for _, article := range group {
			if _, ok := seen[article.Title]; ok {
				continue
			}
			seen[article.Title] = struct{}{}
			catalog = append(catalog, article.Title)
		}
	}
	m.catalog = catalog
	return nil
}

// ListTitles returns a copy of the catalog.
func (m *MemoryStore) ListTitles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	titles := make([]string, len(m.catalog))
	copy(titles, m.catalog)
	return titles, nil
}

// Year returns a copy of the stored group for year.
func (m *MemoryStore) Year(year int) []domain.Article {
	m.mu.RLock()
	defer m.mu.RUnlock()
	group := make([]domain.Article, len(m.years[year]))
	copy(group, m.years[year])
	return group
}
