package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"ArticleLibrary/internal/config"
	"ArticleLibrary/internal/domain"
	"ArticleLibrary/internal/ports"
	"ArticleLibrary/internal/source"
)

// BatchSource implements ArticleSource over the configured inputs.
type BatchSource struct {
	registry *source.Registry
	inputs   []config.InputConfig
	client   *http.Client
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*BatchSource)(nil)

// NewBatchSource wires the decoder registry with config-defined inputs.
// A nil client gets a 20 second timeout.
func NewBatchSource(reg *source.Registry, inputs []config.InputConfig, client *http.Client, log *slog.Logger) *BatchSource {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &BatchSource{
		registry: reg,
		inputs:   inputs,
		client:   client,
		logger:   log,
	}
}

// Load decodes every input in order and concatenates the candidates.
func (s *BatchSource) Load(ctx context.Context) ([]domain.Article, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("decoder registry is not configured")
	}

	var aggregated []domain.Article
	for _, input := range s.inputs {
		decoder, err := s.registry.Resolve(input.Format)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", input.Path, err)
		}

		articles, err := s.decode(ctx, input.Path, decoder)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", input.Path, err)
		}

		s.debug("input decoded", "path", input.Path, "format", input.Format, "count", len(articles))
		aggregated = append(aggregated, articles...)
	}

	return aggregated, nil
}

func (s *BatchSource) decode(ctx context.Context, path string, decoder source.Decoder) ([]domain.Article, error) {
	rc, err := s.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return decoder.Decode(rc)
}

func (s *BatchSource) open(ctx context.Context, path string) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ArticleLibrary/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("remote returned %s", resp.Status)
	}

	return resp.Body, nil
}

func (s *BatchSource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
