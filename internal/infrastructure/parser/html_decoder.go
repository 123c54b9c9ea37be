package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ArticleLibrary/internal/domain"
	"ArticleLibrary/internal/source"
)

// HTMLDecoder extracts one candidate per <article> element of a page.
type HTMLDecoder struct{}

var _ source.Decoder = HTMLDecoder{}

// Format identifies the decoder inside the registry.
func (HTMLDecoder) Format() string {
	return "html"
}

// Decode reads .title, .author, .body and time[datetime] from every <article>.
func (HTMLDecoder) Decode(r io.Reader) ([]domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var (
		articles []domain.Article
		parseErr error
	)
	doc.Find("article").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		article, err := parseArticle(sel)
		if err != nil {
			parseErr = fmt.Errorf("article %d: %w", i, err)
			return false
		}
		articles = append(articles, article)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return articles, nil
}

func parseArticle(sel *goquery.Selection) (domain.Article, error) {
	title := collapse(sel.Find(".title").First().Text())
	author := collapse(sel.Find(".author").First().Text())
	body := collapse(sel.Find(".body").First().Text())

	datetime, _ := sel.Find("time[datetime]").First().Attr("datetime")
	if len(datetime) > len(dateLayout) {
		datetime = datetime[:len(dateLayout)]
	}
	created, err := parseDate(datetime)
	if err != nil {
		return domain.Article{}, err
	}

	return domain.NewArticle(title, body, author, created), nil
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
