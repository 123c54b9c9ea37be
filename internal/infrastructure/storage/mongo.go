package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ArticleLibrary/internal/domain"
	"ArticleLibrary/internal/ports"
)

const (
	mongoArticles = "articles"
	mongoCatalog  = "catalog"
)

// MongoStore keeps each article as a document tagged with its year.
type MongoStore struct {
	client   *mongo.Client
	articles *mongo.Collection
	catalog  *mongo.Collection
}

var _ ports.ArticleStore = (*MongoStore)(nil)

type articleDocument struct {
	Year      int       `bson:"year"`
	Position  int       `bson:"position"`
	Title     string    `bson:"title"`
	Body      string    `bson:"body"`
	Author    string    `bson:"author"`
	CreatedOn time.Time `bson:"created_on"`
}

type catalogDocument struct {
	Title string `bson:"title"`
}

// OpenMongo connects, pings and ensures the year/position index.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = "library"
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	store := &MongoStore{
		client:   client,
		articles: db.Collection(mongoArticles),
		catalog:  db.Collection(mongoCatalog),
	}

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "year", Value: 1}, {Key: "position", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := store.articles.Indexes().CreateOne(connectCtx, index); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}

	return store, nil
}

// Close disconnects the client.
func (m *MongoStore) Close() error {
	if m == nil || m.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// Persist replaces the year's documents with articles.
func (m *MongoStore) Persist(ctx context.Context, year int, articles []domain.Article) error {
	if _, err := m.articles.DeleteMany(ctx, bson.M{"year": year}); err != nil {
		return fmt.Errorf("delete year %d: %w", year, err)
	}
	if len(articles) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(articles))
	for i, article := range articles {
		docs = append(docs, toDocument(year, i, article))
	}
	if _, err := m.articles.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert year %d: %w", year, err)
	}
	return nil
}

// RefreshIndex rebuilds the catalog collection from distinct article titles.
func (m *MongoStore) RefreshIndex(ctx context.Context) error {
	values, err := m.articles.Distinct(ctx, "title", bson.D{})
	if err != nil {
		return fmt.Errorf("distinct titles: %w", err)
	}

	if _, err := m.catalog.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	docs := catalogDocuments(values)
	if len(docs) == 0 {
		return nil
	}
	if _, err := m.catalog.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("fill catalog: %w", err)
	}
	return nil
}

// ListTitles reads the catalog collection.
func (m *MongoStore) ListTitles(ctx context.Context) ([]string, error) {
	cursor, err := m.catalog.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find catalog: %w", err)
	}
	defer cursor.Close(ctx)

	var titles []string
	for cursor.Next(ctx) {
		var doc catalogDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode title: %w", err)
		}
		titles = append(titles, doc.Title)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return titles, nil
}

// Year loads the stored group for year in its persisted order.
func (m *MongoStore) Year(ctx context.Context, year int) ([]domain.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := m.articles.Find(ctx, bson.M{"year": year}, opts)
	if err != nil {
		return nil, fmt.Errorf("find year %d: %w", year, err)
	}
	defer cursor.Close(ctx)

	var articles []domain.Article
	for cursor.Next(ctx) {
		var doc articleDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, fromDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return articles, nil
}

func toDocument(year, position int, article domain.Article) articleDocument {
	return articleDocument{
		Year:      year,
		Position:  position,
		Title:     article.Title,
		Body:      article.Body,
		Author:    article.Author,
		CreatedOn: article.CreationDate.UTC(),
	}
}

func fromDocument(doc articleDocument) domain.Article {
	return domain.NewArticle(doc.Title, doc.Body, doc.Author, doc.CreatedOn)
}

func catalogDocuments(values []interface{}) []interface{} {
	docs := make([]interface{}, 0, len(values))
	for _, v := range values {
		title, ok := v.(string)
		if !ok {
			continue
		}
		docs = append(docs, catalogDocument{Title: title})
	}
	return docs
}
