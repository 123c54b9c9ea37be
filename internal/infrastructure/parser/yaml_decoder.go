package parser

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ArticleLibrary/internal/domain"
	"ArticleLibrary/internal/source"
)

const dateLayout = "2006-01-02"

// YAMLDecoder reads batches shaped as `articles: [{title, body, author, created}]`.
type YAMLDecoder struct{}

var _ source.Decoder = YAMLDecoder{}

type yamlBatch struct {
	Articles []yamlArticle `yaml:"articles"`
}

type yamlArticle struct {
	Title   string `yaml:"title"`
	Body    string `yaml:"body"`
	Author  string `yaml:"author"`
	Created string `yaml:"created"`
}

// Format identifies the decoder inside the registry.
func (YAMLDecoder) Format() string {
	return "yaml"
}

// Decode parses the whole document; an empty document is an empty batch.
func (YAMLDecoder) Decode(r io.Reader) ([]domain.Article, error) {
	var batch yamlBatch
	if err := yaml.NewDecoder(r).Decode(&batch); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode yaml batch: %w", err)
	}

	articles := make([]domain.Article, 0, len(batch.Articles))
	for i, item := range batch.Articles {
		created, err := parseDate(item.Created)
		if err != nil {
			return nil, fmt.Errorf("article %d: %w", i, err)
		}
		articles = append(articles, domain.NewArticle(item.Title, item.Body, item.Author, created))
	}

	return articles, nil
}

// parseDate returns the zero time for an empty value.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return parsed, nil
}
