package recording

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gitter-badger/metadatastore/internal/domain"
)

// CreateEventDescriptor declares an event stream under a run: it builds a
// validated descriptor and persists it.
func (s *Service) CreateEventDescriptor(ctx context.Context, params domain.EventDescriptorParams) (*domain.EventDescriptor, error) {
	d, err := domain.NewEventDescriptor(params)
	if err != nil {
		return nil, err
	}

	id, err := s.descriptors.Insert(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("insert event descriptor: %w", err)
	}

	s.log.DebugContext(ctx, "event descriptor recorded",
		slog.String("descriptor_id", id.Hex()),
		slog.String("header_id", d.HeaderID.Hex()),
		slog.String("name", d.DescriptorName),
	)

	return d, nil
}
