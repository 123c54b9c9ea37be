package config

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")

	cfg := Load()

	if cfg.Storage.Driver != "memory" {
		t.Fatalf("expected memory driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Library.Language() != language.Russian {
		t.Fatalf("expected ru collation, got %s", cfg.Library.Language())
	}
	if cfg.Library.Location().String() != "UTC" {
		t.Fatalf("expected UTC, got %s", cfg.Library.Location())
	}
	if len(cfg.Inputs) != 0 {
		t.Fatalf("expected no inputs, got %d", len(cfg.Inputs))
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: info
library:
  locale: en
  timezone: UTC
storage:
  driver: sqlite
  dsn: /var/lib/library.db
inputs:
  - path: batch.yaml
    format: yaml
  - path: https://example.org/feed.html
    format: html
`)
	t.Setenv(configPathEnv, path)
	t.Setenv(storageDSNEnv, "/tmp/override.db")
	t.Setenv(metricsTextfileEnv, "/tmp/library.prom")

	cfg := Load()

	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected level: %s", cfg.Logging.Level)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.DSN != "/tmp/override.db" {
		t.Fatalf("unexpected storage: %+v", cfg.Storage)
	}
	if cfg.Metrics.Textfile != "/tmp/library.prom" {
		t.Fatalf("unexpected textfile: %s", cfg.Metrics.Textfile)
	}
	if cfg.Library.Language() != language.English {
		t.Fatalf("unexpected language: %s", cfg.Library.Language())
	}
	if len(cfg.Inputs) != 2 || cfg.Inputs[1].Format != "html" {
		t.Fatalf("unexpected inputs: %+v", cfg.Inputs)
	}
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	path := writeConfig(t, `
library:
  locale: "!!not a tag"
  timezone: Mars/Olympus
`)
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Library.Language() != language.Russian {
		t.Fatalf("expected ru fallback, got %s", cfg.Library.Language())
	}
	if cfg.Library.Location().String() != "UTC" {
		t.Fatalf("expected UTC fallback, got %s", cfg.Library.Location())
	}
}

func TestLoadIgnoresUnparseableFile(t *testing.T) {
	path := writeConfig(t, "storage: [unterminated")
	t.Setenv(configPathEnv, path)

	cfg := Load()
	if cfg.Storage.Driver != "memory" {
		t.Fatalf("expected defaults, got %+v", cfg.Storage)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("storage:\n  driver: mongo\n  dsn: mongodb://localhost:27017\n  database: library\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.Storage.Database != "library" {
		t.Fatalf("unexpected database: %s", cfg.Storage.Database)
	}
	if _, err := Parse([]byte("inputs: {")); err == nil {
		t.Fatal("expected parse error")
	}
}
