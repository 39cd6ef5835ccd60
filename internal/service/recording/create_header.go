package recording

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gitter-badger/metadatastore/internal/domain"
)

// CreateHeader opens a run: it builds a validated header and persists it.
// Validation failures surface before any storage call; a duplicate scan_id
// surfaces the storage constraint error from the insert.
func (s *Service) CreateHeader(ctx context.Context, params domain.HeaderParams) (*domain.Header, error) {
	h, err := domain.NewHeader(params)
	if err != nil {
		return nil, err
	}

	id, err := s.headers.Insert(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("insert header: %w", err)
	}

	s.log.DebugContext(ctx, "run header recorded",
		slog.String("header_id", id.Hex()),
		slog.Any("scan_id", h.ScanID),
		slog.String("owner", h.Owner),
	)

	return h, nil
}
