// Package header implements the run header repository on the header
// collection. Headers are append-only; scan_id uniqueness is enforced by the
// collection's unique index, never by application logic.
package header

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb"
	"github.com/gitter-badger/metadatastore/internal/domain"
)

// Repo provides run header persistence backed by the header collection.
type Repo struct {
	coll *mongo.Collection
}

// New creates a new header repository.
func New(db *mongodb.DB) *Repo {
	return &Repo{coll: db.Collection(mongodb.CollectionHeader)}
}

// Collection exposes the underlying collection for ad-hoc access alongside
// the typed operations.
func (r *Repo) Collection() *mongo.Collection { return r.coll }

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert validates the header, composes its canonical document, and inserts
// it into the header collection. Write options are passed through to the
// driver. The storage-generated id is written back to h.ID and returned. An
// invalid record never reaches the driver.
func (r *Repo) Insert(ctx context.Context, h *domain.Header, opts ...*options.InsertOneOptions) (primitive.ObjectID, error) {
	if err := h.Validate(); err != nil {
		return primitive.NilObjectID, err
	}

	res, err := r.coll.InsertOne(ctx, composeDocument(h), opts...)
	if err != nil {
		return primitive.NilObjectID, mapError(err, "header")
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("header: unexpected inserted id type %T", res.InsertedID)
	}
	h.ID = id

	return id, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID fetches a header by its storage id.
func (r *Repo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Header, error) {
	var doc headerDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		return nil, mapError(err, "header")
	}
	return doc.toDomain(), nil
}

// ---------------------------------------------------------------------------
// Document mapping
// ---------------------------------------------------------------------------

// composeDocument produces the canonical field-ordered document. The order
// is part of the wire contract. Optional scalars compose to null; containers
// compose to empty values, never null.
func composeDocument(h *domain.Header) bson.D {
	return bson.D{
		{Key: "start_time", Value: h.StartTime},
		{Key: "end_time", Value: h.EndTime},
		{Key: "owner", Value: h.Owner},
		{Key: "scan_id", Value: h.ScanID},
		{Key: "status", Value: h.Status},
		{Key: "beamline_id", Value: h.BeamlineID},
		{Key: "header_versions", Value: nonNilSlice(h.HeaderVersions)},
		{Key: "custom", Value: nonNilMap(h.Custom)},
		{Key: "tags", Value: nonNilSlice(h.Tags)},
	}
}

// headerDoc is the stored shape of a run header.
type headerDoc struct {
	ID             primitive.ObjectID `bson:"_id"`
	StartTime      time.Time          `bson:"start_time"`
	EndTime        *time.Time         `bson:"end_time"`
	Owner          string             `bson:"owner"`
	ScanID         any                `bson:"scan_id"`
	Status         string             `bson:"status"`
	BeamlineID     *string            `bson:"beamline_id"`
	HeaderVersions []string           `bson:"header_versions"`
	Custom         map[string]any     `bson:"custom"`
	Tags           []string           `bson:"tags"`
}

func (d headerDoc) toDomain() *domain.Header {
	return &domain.Header{
		ID:             d.ID,
		StartTime:      d.StartTime,
		EndTime:        d.EndTime,
		Owner:          d.Owner,
		ScanID:         d.ScanID,
		Status:         d.Status,
		BeamlineID:     d.BeamlineID,
		HeaderVersions: d.HeaderVersions,
		Custom:         d.Custom,
		Tags:           d.Tags,
	}
}

func nonNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts driver errors into domain errors. The driver error stays
// in the chain next to the sentinel. context.Canceled passes through.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	// caller cancellation passes through as-is
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", entity, err)
	}

	// unique index violation -> domain.ErrDuplicateKey
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w: %w", entity, domain.ErrDuplicateKey, err)
	}

	// mongo.ErrNoDocuments -> domain.ErrNotFound
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", entity, domain.ErrNotFound)
	}

	// unreachable or unresponsive server -> domain.ErrStorageUnavailable
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%s: %w: %w", entity, domain.ErrStorageUnavailable, err)
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s: %w", entity, err)
}
