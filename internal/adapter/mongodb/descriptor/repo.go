// Package descriptor implements the event descriptor repository on the
// event_type_descriptor collection.
package descriptor

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

// Repo provides event descriptor persistence backed by the
// event_type_descriptor collection.
type Repo struct {
	coll *mongo.Collection
}

// New creates a new event descriptor repository.
func New(db *mongodb.DB) *Repo {
	return &Repo{coll: db.Collection(mongodb.CollectionEventDescriptor)}
}

// Collection exposes the underlying collection for ad-hoc access.
func (r *Repo) Collection() *mongo.Collection { return r.coll }

// Insert validates the descriptor, composes its canonical document, and
// inserts it. Write options are passed through to the driver. The
// storage-generated id is written back to d.ID and returned.
func (r *Repo) Insert(ctx context.Context, d *domain.EventDescriptor, opts ...*options.InsertOneOptions) (primitive.ObjectID, error) {
	if err := d.Validate(); err != nil {
		return primitive.NilObjectID, err
	}

	res, err := r.coll.InsertOne(ctx, composeDocument(d), opts...)
	if err != nil {
		return primitive.NilObjectID, mapError(err, "event_type_descriptor")
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("event_type_descriptor: unexpected inserted id type %T", res.InsertedID)
	}
	d.ID = id

	return id, nil
}

// GetByID fetches a descriptor by its storage id.
func (r *Repo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.EventDescriptor, error) {
	var doc descriptorDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		return nil, mapError(err, "event_type_descriptor")
	}
	return doc.toDomain(), nil
}

// composeDocument produces the canonical field-ordered document.
func composeDocument(d *domain.EventDescriptor) bson.D {
	return bson.D{
		{Key: "header_id", Value: d.HeaderID},
		{Key: "event_type_id", Value: d.EventTypeID},
		{Key: "descriptor_name", Value: d.DescriptorName},
		{Key: "tag", Value: d.Tag},
		{Key: "type_descriptor", Value: nonNilMap(d.TypeDescriptor)},
	}
}

// descriptorDoc is the stored shape of an event descriptor.
type descriptorDoc struct {
	ID             primitive.ObjectID `bson:"_id"`
	HeaderID       primitive.ObjectID `bson:"header_id"`
	EventTypeID    int64              `bson:"event_type_id"`
	DescriptorName string             `bson:"descriptor_name"`
	Tag            *string            `bson:"tag"`
	TypeDescriptor map[string]any     `bson:"type_descriptor"`
}

func (d descriptorDoc) toDomain() *domain.EventDescriptor {
	return &domain.EventDescriptor{
		ID:             d.ID,
		HeaderID:       d.HeaderID,
		EventTypeID:    d.EventTypeID,
		DescriptorName: d.DescriptorName,
		Tag:            d.Tag,
		TypeDescriptor: d.TypeDescriptor,
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
