// CLAUDE:SUMMARY CLI subcommand that loads seed articles (YAML file or built-in mock set) into the SQLite store.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hazyhaar/anunturi/pkg/article"
)

func cmdSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	file := fs.String("file", "", "YAML seed file (default: seed_file from config, else the built-in articles)")
	fs.Parse(args)

	cfg, logger := mustSetup(*cfgPath)

	if err := runSeed(cfg, *file, logger, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

// runSeed seeds the article store and reports its size to w.
func runSeed(cfg config, file string, logger *slog.Logger, w io.Writer) error {
	store, err := openSeededStore(cfg, file, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Count()
	if err != nil {
		return fmt.Errorf("count articles: %w", err)
	}
	fmt.Fprintf(w, "%s: %d articles\n", cfg.DBPath, n)
	return nil
}

// openSeededStore opens the article database and inserts the seed articles
// that are not there yet. file overrides cfg.SeedFile; with neither, the
// built-in articles are used.
func openSeededStore(cfg config, file string, logger *slog.Logger) (*article.Store, error) {
	if file == "" {
		file = cfg.SeedFile
	}
	articles := article.MockArticles()
	if file != "" {
		var err error
		articles, err = article.LoadSeed(file)
		if err != nil {
			return nil, err
		}
	}

	store, err := article.OpenStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	added, err := store.Seed(articles)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("seed %s: %w", cfg.DBPath, err)
	}
	logger.Info("article store ready", "path", cfg.DBPath, "seeded", added, "source", seedSource(file))
	return store, nil
}

func seedSource(file string) string {
	if file == "" {
		return "built-in"
	}
	return file
}
