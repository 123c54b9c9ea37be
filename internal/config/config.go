package config

import (
	"log"
	"os"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"
	defaultLocale   = "ru"
	defaultLevel    = "debug"
	defaultDriver   = "memory"

	configPathEnv      = "ARTICLE_LIBRARY_CONFIG"
	storageDriverEnv   = "ARTICLE_LIBRARY_STORAGE_DRIVER"
	storageDSNEnv      = "ARTICLE_LIBRARY_STORAGE_DSN"
	localeEnv          = "ARTICLE_LIBRARY_LOCALE"
	logLevelEnv        = "ARTICLE_LIBRARY_LOG_LEVEL"
	metricsTextfileEnv = "ARTICLE_LIBRARY_METRICS_TEXTFILE"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Library LibraryConfig `yaml:"library"`
	Storage StorageConfig `yaml:"storage"`
	Metrics MetricsConfig `yaml:"metrics"`
	Inputs  []InputConfig `yaml:"inputs"`
}

// LoggingConfig sets the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LibraryConfig controls catalog collation and date backfill.
type LibraryConfig struct {
	Locale   string         `yaml:"locale"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
	language language.Tag   `yaml:"-"`
}

// Location resolves the timezone string to a time.Location.
func (l LibraryConfig) Location() *time.Location {
	if l.location != nil {
		return l.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// Language resolves the locale string to a language tag.
func (l LibraryConfig) Language() language.Tag {
	if l.language != language.Und {
		return l.language
	}
	return language.MustParse(defaultLocale)
}

// StorageConfig selects the article store backend.
type StorageConfig struct {
	// Driver is one of memory, sqlite, postgres, mongo.
	Driver string `yaml:"driver"`
	// DSN is a file path for sqlite and a connection URI otherwise.
	DSN string `yaml:"dsn"`
	// Database names the MongoDB database.
	Database string `yaml:"database"`
}

// MetricsConfig points to the node exporter textfile, if any.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// InputConfig is one candidate batch to import.
type InputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			fileCfg, err := Parse(raw)
			if err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindLibrary()

	return cfg
}

// Parse decodes a YAML document without applying defaults.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(storageDriverEnv); v != "" {
		c.Storage.Driver = v
	}

	if v := os.Getenv(storageDSNEnv); v != "" {
		c.Storage.DSN = v
	}

	if v := os.Getenv(localeEnv); v != "" {
		c.Library.Locale = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(metricsTextfileEnv); v != "" {
		c.Metrics.Textfile = v
	}
}

func (c *Config) bindLibrary() {
	tz := c.Library.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Library.location = loc

	locale := c.Library.Locale
	if locale == "" {
		locale = defaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		log.Printf("config: unknown locale %s, reverting to %s", locale, defaultLocale)
		tag = language.MustParse(defaultLocale)
	}
	c.Library.language = tag
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Library.Locale != "" {
		base.Library.Locale = override.Library.Locale
	}
	if override.Library.Timezone != "" {
		base.Library.Timezone = override.Library.Timezone
	}

	if override.Storage.Driver != "" {
		base.Storage = override.Storage
	}

	if override.Metrics.Textfile != "" {
		base.Metrics.Textfile = override.Metrics.Textfile
	}

	if len(override.Inputs) > 0 {
		base.Inputs = override.Inputs
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: defaultLevel},
		Library: LibraryConfig{Locale: defaultLocale, Timezone: defaultTimezone},
		Storage: StorageConfig{Driver: defaultDriver},
	}
}
