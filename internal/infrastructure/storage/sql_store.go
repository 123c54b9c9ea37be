package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"ArticleLibrary/internal/domain"
	"ArticleLibrary/internal/ports"
)

const (
	articlesTable = "articles"
	catalogTable  = "catalog"
	// insertChunk keeps each INSERT well under the SQLite and Postgres bind limits.
	insertChunk = 500
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS articles (
		year       INTEGER NOT NULL,
		position   INTEGER NOT NULL,
		title      TEXT NOT NULL,
		body       TEXT NOT NULL,
		author     TEXT NOT NULL,
		created_on TEXT NOT NULL,
		PRIMARY KEY (year, position)
	)`,
	`CREATE TABLE IF NOT EXISTS catalog (
		title TEXT PRIMARY KEY
	)`,
}

// SQLStore persists year groups in a relational database. Queries are built
// with squirrel so the same code serves SQLite and Postgres placeholders.
type SQLStore struct {
	db *sql.DB
	qb sq.StatementBuilderType
}

var _ ports.ArticleStore = (*SQLStore)(nil)

// NewSQLStore wraps an open handle. Call EnsureSchema before first use.
func NewSQLStore(db *sql.DB, placeholder sq.PlaceholderFormat) *SQLStore {
	return &SQLStore{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// EnsureSchema creates the tables when they are missing.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Close closes the database handle.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Persist replaces every row of year with articles inside one transaction.
func (s *SQLStore) Persist(ctx context.Context, year int, articles []domain.Article) (err error) {
	if s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args, err := s.deleteYear(year).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete year %d: %w", year, err)
	}

	for start := 0; start < len(articles); start += insertChunk {
		end := min(start+insertChunk, len(articles))
		query, args, err = s.insertGroup(year, start, articles[start:end]).ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert year %d: %w", year, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RefreshIndex rebuilds the catalog table from the distinct stored titles.
func (s *SQLStore) RefreshIndex(ctx context.Context) (err error) {
	if s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args, err := s.qb.Delete(catalogTable).ToSql()
	if err != nil {
		return fmt.Errorf("build catalog delete: %w", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}

	query, args, err = s.rebuildCatalog().ToSql()
	if err != nil {
		return fmt.Errorf("build catalog insert: %w", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("fill catalog: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListTitles reads the catalog table.
func (s *SQLStore) ListTitles(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query, args, err := s.qb.Select("title").From(catalogTable).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return titles, nil
}

// Year loads the stored group for year in its persisted order.
func (s *SQLStore) Year(ctx context.Context, year int) ([]domain.Article, error) {
	query, args, err := s.qb.
		Select("title", "body", "author", "created_on").
		From(articlesTable).
		Where(sq.Eq{"year": year}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query year %d: %w", year, err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var (
			article domain.Article
			created string
		)
		if err := rows.Scan(&article.Title, &article.Body, &article.Author, &created); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		article.CreationDate, err = time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_on %q: %w", created, err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return articles, nil
}

func (s *SQLStore) deleteYear(year int) sq.DeleteBuilder {
	return s.qb.Delete(articlesTable).Where(sq.Eq{"year": year})
}

// insertGroup numbers positions from offset. created_on keeps the zone offset.
func (s *SQLStore) insertGroup(year, offset int, articles []domain.Article) sq.InsertBuilder {
	insert := s.qb.Insert(articlesTable).
		Columns("year", "position", "title", "body", "author", "created_on")
	for i, article := range articles {
		insert = insert.Values(year, offset+i, article.Title, article.Body, article.Author,
			article.CreationDate.Format(time.RFC3339))
	}
	return insert
}

func (s *SQLStore) rebuildCatalog() sq.InsertBuilder {
	return s.qb.Insert(catalogTable).
		Columns("title").
		Select(sq.Select("title").Distinct().From(articlesTable))
}
