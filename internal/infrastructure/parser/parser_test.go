package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ArticleLibrary/internal/config"
	"ArticleLibrary/internal/source"
)

const yamlBatchDoc = `
articles:
  - title: Название1
    body: Контент1
    author: Автор1
    created: 2024-04-15
  - title: Название2
    body: Контент2
    author: Автор2
`

const htmlBatchDoc = `
<html><body>
  <article>
    <h2 class="title">  Почему важны
      soft skills? </h2>
    <span class="author">Автор3</span>
    <time datetime="2023-11-08T10:00:00Z">8 Nov 2023</time>
    <div class="body"><p>Первый абзац.</p> <p>Второй.</p></div>
  </article>
  <article>
    <h2 class="title">Без даты</h2>
    <span class="author">Автор4</span>
    <div class="body">Текст</div>
  </article>
</body></html>`

func TestYAMLDecoderDecode(t *testing.T) {
	t.Parallel()

	articles, err := YAMLDecoder{}.Decode(strings.NewReader(yamlBatchDoc))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Название1" || first.Body != "Контент1" || first.Author != "Автор1" {
		t.Fatalf("unexpected first article: %+v", first)
	}
	if !first.CreationDate.Equal(time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", first.CreationDate)
	}
	if articles[1].HasDate() {
		t.Fatalf("expected absent date, got %v", articles[1].CreationDate)
	}
}

func TestYAMLDecoderEmptyDocument(t *testing.T) {
	t.Parallel()

	articles, err := YAMLDecoder{}.Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected no articles, got %d", len(articles))
	}
}

func TestYAMLDecoderRejectsBadDate(t *testing.T) {
	t.Parallel()

	doc := "articles:\n  - title: a\n    created: 15.04.2024\n"
	_, err := YAMLDecoder{}.Decode(strings.NewReader(doc))
	if err == nil || !strings.Contains(err.Error(), "article 0") {
		t.Fatalf("expected error naming article 0, got %v", err)
	}
}

func TestHTMLDecoderDecode(t *testing.T) {
	t.Parallel()

	articles, err := HTMLDecoder{}.Decode(strings.NewReader(htmlBatchDoc))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Почему важны soft skills?" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.Body != "Первый абзац. Второй." {
		t.Fatalf("unexpected body: %q", first.Body)
	}
	if first.Author != "Автор3" {
		t.Fatalf("unexpected author: %q", first.Author)
	}
	if first.CreationDate.Format(dateLayout) != "2023-11-08" {
		t.Fatalf("unexpected date: %v", first.CreationDate)
	}
	if articles[1].HasDate() {
		t.Fatalf("expected absent date, got %v", articles[1].CreationDate)
	}
}

func TestBatchSourceLoad(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed.html" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(htmlBatchDoc))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte(yamlBatchDoc), 0o600); err != nil {
		t.Fatalf("write batch: %v", err)
	}

	reg := source.NewRegistry(YAMLDecoder{}, HTMLDecoder{})
	src := NewBatchSource(reg, []config.InputConfig{
		{Path: path, Format: "yaml"},
		{Path: server.URL + "/feed.html", Format: "html"},
	}, server.Client(), nil)

	articles, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(articles) != 4 {
		t.Fatalf("expected 4 articles, got %d", len(articles))
	}
	if articles[0].Title != "Название1" || articles[3].Title != "Без даты" {
		t.Fatalf("inputs not concatenated in order: %+v", articles)
	}
}

func TestBatchSourceErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	reg := source.NewRegistry(YAMLDecoder{}, HTMLDecoder{})
	tests := []struct {
		name    string
		input   config.InputConfig
		wantErr string
	}{
		{name: "unknown format", input: config.InputConfig{Path: "x.csv", Format: "csv"}, wantErr: "not registered"},
		{name: "missing file", input: config.InputConfig{Path: filepath.Join(t.TempDir(), "nope.yaml"), Format: "yaml"}, wantErr: "open file"},
		{name: "remote status", input: config.InputConfig{Path: server.URL + "/missing", Format: "html"}, wantErr: "404"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			src := NewBatchSource(reg, []config.InputConfig{tt.input}, server.Client(), nil)
			_, err := src.Load(context.Background())
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
