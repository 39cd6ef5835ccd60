// Command mdsinit prepares the metadata store for writes: it connects to
// MongoDB and declares every collection index. It is the schema-setup step
// a deployment runs once before any recording tool, and it is safe to rerun.
//
// Flags:
//
//	-check  connect read-only and report the index state without declaring anything
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb"
	"github.com/gitter-badger/metadatastore/internal/app"
	"github.com/gitter-badger/metadatastore/internal/config"
)

func main() {
	check := flag.Bool("check", false, "report the index state without declaring anything")
	flag.Parse()

	cfg, logger, err := app.Setup()
	if err != nil {
		log.Fatalf("setup: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *check {
		if err := runCheck(ctx, cfg.Mongo, logger); err != nil {
			logger.Error("index check failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	db, err := mongodb.Open(ctx, cfg.Mongo)
	if err != nil {
		logger.Error("initialize schema", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close(ctx)

	for coll, names := range mongodb.ExpectedIndexes() {
		logger.Info("indexes declared",
			slog.String("collection", coll),
			slog.Any("indexes", names),
		)
	}
}

// runCheck connects without declaring anything and compares the indexes
// present on each collection against the declared contract.
func runCheck(ctx context.Context, cfg config.MongoConfig, logger *slog.Logger) error {
	db, err := mongodb.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	var missing int
	for coll, names := range mongodb.ExpectedIndexes() {
		specs, err := db.Collection(coll).Indexes().ListSpecifications(ctx)
		if err != nil {
			return fmt.Errorf("list indexes on %s: %w", coll, err)
		}

		present := make(map[string]bool, len(specs))
		for _, spec := range specs {
			present[spec.Name] = true
		}

		for _, name := range names {
			if present[name] {
				logger.Info("index present",
					slog.String("collection", coll),
					slog.String("index", name),
				)
			} else {
				missing++
				logger.Warn("index missing",
					slog.String("collection", coll),
					slog.String("index", name),
				)
			}
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d expected indexes missing; rerun without -check to declare them", missing)
	}
	return nil
}
