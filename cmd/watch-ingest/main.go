// Command watch-ingest watches a directory for dropped product export
// workbooks and parses each one as it arrives, logging a summary. It is
// a local alternative to the HTTP upload endpoint for bulk testing of
// export files.
// Usage: go run cmd/watch-ingest/main.go -dir ./exports
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jonesrussell/product-curator/internal/filter"
	"github.com/jonesrussell/product-curator/internal/importer"
	"github.com/jonesrussell/product-curator/internal/logger"
)

// settleDelay gives the writing process time to finish before the file
// is opened. Exports are written in one pass, so a short delay is
// enough.
const settleDelay = 500 * time.Millisecond

func main() {
	dir := flag.String("dir", ".", "Directory to watch for .xlsx exports")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log, err := logger.NewLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(*dir, log); err != nil {
		log.Error("Watcher failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(dir string, log logger.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	log.Info("Watching for exports", logger.String("dir", dir))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), importer.Extension) {
				continue
			}
			time.Sleep(settleDelay)
			ingest(event.Name, log)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", logger.Error(err))
		}
	}
}

func ingest(path string, log logger.Logger) {
	info, err := os.Stat(path)
	if err != nil {
		log.Warn("Cannot stat export", logger.String("path", path), logger.Error(err))
		return
	}
	if err := importer.ValidateFile(path, info.Size()); err != nil {
		log.Warn("Rejected export", logger.String("path", path), logger.Error(err))
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn("Cannot open export", logger.String("path", path), logger.Error(err))
		return
	}
	defer f.Close()

	start := time.Now()
	products, err := importer.Parse(f, func(percent int) {
		log.Debug("Parse progress",
			logger.String("path", path),
			logger.Int("percent", percent),
		)
	})
	if err != nil {
		log.Warn("Failed to parse export", logger.String("path", path), logger.Error(err))
		return
	}

	stats := filter.ComputeStats(products)
	ranges, _ := filter.DeriveDefaults(products)

	log.Info("Export ingested",
		logger.String("path", path),
		logger.Int("product_count", stats.Total),
		logger.Int("high_rating", stats.HighRating),
		logger.Int("high_sales", stats.HighSales),
		logger.Float64("max_price", ranges.Price.Max),
		logger.Duration("duration", time.Since(start)),
	)
}
