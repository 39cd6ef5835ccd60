package recording

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gitter-badger/metadatastore/internal/domain"
)

// CreateBeamlineConfig attaches a configuration snapshot to a run: it builds
// a validated snapshot and persists it.
func (s *Service) CreateBeamlineConfig(ctx context.Context, params domain.BeamlineConfigParams) (*domain.BeamlineConfig, error) {
	c, err := domain.NewBeamlineConfig(params)
	if err != nil {
		return nil, err
	}

	id, err := s.configs.Insert(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("insert beamline config: %w", err)
	}

	s.log.DebugContext(ctx, "beamline config recorded",
		slog.String("config_id", id.Hex()),
		slog.String("header_id", c.HeaderID.Hex()),
	)

	return c, nil
}
