package app

import (
	"log/slog"

	"github.com/gitter-badger/metadatastore/internal/config"
)

// Setup loads configuration, initializes the default logger, and logs
// startup information. Every binary calls it before touching storage.
func Setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	return cfg, logger, nil
}
