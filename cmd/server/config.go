package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hazyhaar/anunturi/pkg/article"
	"github.com/hazyhaar/anunturi/pkg/dict"
	"gopkg.in/yaml.v3"
)

type config struct {
	Addr           string           `yaml:"addr"`
	CatalogsDir    string           `yaml:"catalogs_dir"`
	DefaultCatalog string           `yaml:"default_catalog"`
	DBPath         string           `yaml:"db_path"`
	SeedFile       string           `yaml:"seed_file"`
	Workers        int              `yaml:"workers"`
	CacheTTL       time.Duration    `yaml:"cache_ttl"`
	LogLevel       string           `yaml:"log_level"`
	TLSCert        string           `yaml:"tls_cert"`
	TLSKey         string           `yaml:"tls_key"`
	DevTLS         bool             `yaml:"dev_tls"`
	Filters        *article.Options `yaml:"filters"`
}

func defaultConfig() config {
	return config{
		Addr:           ":8430",
		CatalogsDir:    "catalogs",
		DefaultCatalog: dict.DefaultCatalogID,
		DBPath:         "anunturi.db",
		Workers:        4,
		CacheTTL:       dict.DefaultCacheTTL,
		LogLevel:       "info",
	}
}

// loadConfig reads the YAML config at path over the defaults. A missing file
// is not an error.
func loadConfig(path string) (config, bool, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, false, nil
		}
		return cfg, false, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, true, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return cfg, true, nil
}

// filterOptions returns the configured selectors, or the built-in ones.
func (c config) filterOptions() article.Options {
	if c.Filters == nil {
		return article.DefaultOptions()
	}
	return c.Filters.WithAll()
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

// mustSetup loads the config and builds the logger, exiting on failure.
func mustSetup(path string) (config, *slog.Logger) {
	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, found, err := loadConfig(path)
	if err != nil {
		bootstrap.Error("load config", "error", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		bootstrap.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if !found {
		logger.Info("no config file, using defaults", "path", path)
	}
	return cfg, logger
}

func loadRegistry(cfg config, logger *slog.Logger) (*dict.Registry, error) {
	reg := dict.NewRegistry(cfg.CatalogsDir,
		dict.WithDefault(cfg.DefaultCatalog),
		dict.WithCacheTTL(cfg.CacheTTL),
	)
	if err := reg.Load(); err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	logger.Info("catalogs loaded", "count", reg.CatalogCount(), "terms", reg.TotalTerms(), "default", reg.Default().ID())
	return reg, nil
}

func mustLoadRegistry(cfg config, logger *slog.Logger) *dict.Registry {
	reg, err := loadRegistry(cfg, logger)
	if err != nil {
		logger.Error("failed to load catalogs", "error", err)
		os.Exit(1)
	}
	return reg
}
