// Package recording is the convenience layer data-acquisition code calls to
// persist run metadata: each operation constructs a validated record and
// saves it in one step, returning the record with its storage id filled in.
package recording

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gitter-badger/metadatastore/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type headerRepo interface {
	Insert(ctx context.Context, h *domain.Header, opts ...*options.InsertOneOptions) (primitive.ObjectID, error)
}

type descriptorRepo interface {
	Insert(ctx context.Context, d *domain.EventDescriptor, opts ...*options.InsertOneOptions) (primitive.ObjectID, error)
}

type eventRepo interface {
	Insert(ctx context.Context, e *domain.Event, opts ...*options.InsertOneOptions) (primitive.ObjectID, error)
}

type beamlineConfigRepo interface {
	Insert(ctx context.Context, c *domain.BeamlineConfig, opts ...*options.InsertOneOptions) (primitive.ObjectID, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the run recording operations.
type Service struct {
	log         *slog.Logger
	headers     headerRepo
	descriptors descriptorRepo
	events      eventRepo
	configs     beamlineConfigRepo
}

// NewService creates a new Recording service.
func NewService(
	log *slog.Logger,
	headers headerRepo,
	descriptors descriptorRepo,
	events eventRepo,
	configs beamlineConfigRepo,
) *Service {
	return &Service{
		log:         log.With("service", "recording"),
		headers:     headers,
		descriptors: descriptors,
		events:      events,
		configs:     configs,
	}
}
