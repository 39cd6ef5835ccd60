package recording

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gitter-badger/metadatastore/internal/domain"
)

// CreateEvent records one data point: it builds a validated event and
// persists it. The data payload is stored exactly as provided.
func (s *Service) CreateEvent(ctx context.Context, params domain.EventParams) (*domain.Event, error) {
	e, err := domain.NewEvent(params)
	if err != nil {
		return nil, err
	}

	id, err := s.events.Insert(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	s.log.DebugContext(ctx, "event recorded",
		slog.String("event_id", id.Hex()),
		slog.String("descriptor_id", e.EventDescriptorID.Hex()),
		slog.Int64("seq_no", e.SeqNo),
	)

	return e, nil
}
