// Package beamlineconfig implements the beamline configuration repository on
// the beamline_config collection.
package beamlineconfig

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb"
	"github.com/gitter-badger/metadatastore/internal/domain"
)

// Repo provides beamline configuration persistence backed by the
// beamline_config collection.
type Repo struct {
	coll *mongo.Collection
}

// New creates a new beamline configuration repository.
func New(db *mongodb.DB) *Repo {
	return &Repo{coll: db.Collection(mongodb.CollectionBeamlineConfig)}
}

// Collection exposes the underlying collection for ad-hoc access.
func (r *Repo) Collection() *mongo.Collection { return r.coll }

// Insert validates the snapshot, composes its canonical document, and inserts
// it. Write options are passed through to the driver. The storage-generated
// id is written back to c.ID and returned.
func (r *Repo) Insert(ctx context.Context, c *domain.BeamlineConfig, opts ...*options.InsertOneOptions) (primitive.ObjectID, error) {
	if err := c.Validate(); err != nil {
		return primitive.NilObjectID, err
	}

	res, err := r.coll.InsertOne(ctx, composeDocument(c), opts...)
	if err != nil {
		return primitive.NilObjectID, mapError(err, "beamline_config")
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("beamline_config: unexpected inserted id type %T", res.InsertedID)
	}
	c.ID = id

	return id, nil
}

// GetByID fetches a snapshot by its storage id.
func (r *Repo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.BeamlineConfig, error) {
	var doc beamlineConfigDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		return nil, mapError(err, "beamline_config")
	}
	return doc.toDomain(), nil
}

// composeDocument produces the canonical field-ordered document.
func composeDocument(c *domain.BeamlineConfig) bson.D {
	return bson.D{
		{Key: "header_id", Value: c.HeaderID},
		{Key: "config_params", Value: nonNilMap(c.ConfigParams)},
	}
}

// beamlineConfigDoc is the stored shape of a configuration snapshot.
type beamlineConfigDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	HeaderID     primitive.ObjectID `bson:"header_id"`
	ConfigParams map[string]any     `bson:"config_params"`
}

func (d beamlineConfigDoc) toDomain() *domain.BeamlineConfig {
	return &domain.BeamlineConfig{
		ID:           d.ID,
		HeaderID:     d.HeaderID,
		ConfigParams: d.ConfigParams,
	}
}

func nonNilMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// mapError converts driver errors into domain errors. The driver error stays
// in the chain next to the sentinel. context.Canceled passes through.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", entity, err)
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w: %w", entity, domain.ErrDuplicateKey, err)
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", entity, domain.ErrNotFound)
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%s: %w: %w", entity, domain.ErrStorageUnavailable, err)
	}

	return fmt.Errorf("%s: %w", entity, err)
}
