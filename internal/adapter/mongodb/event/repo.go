// Package event implements the event repository on the event collection.
// Events are the highest-volume record type; the repository stays insert
// plus id-lookup only.
package event

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

// Repo provides event persistence backed by the event collection.
type Repo struct {
	coll *mongo.Collection
}

// New creates a new event repository.
func New(db *mongodb.DB) *Repo {
	return &Repo{coll: db.Collection(mongodb.CollectionEvent)}
}

// Collection exposes the underlying collection for ad-hoc access.
func (r *Repo) Collection() *mongo.Collection { return r.coll }

// Insert validates the event, composes its canonical document, and inserts
// it. Write options are passed through to the driver. The storage-generated
// id is written back to e.ID and returned.
func (r *Repo) Insert(ctx context.Context, e *domain.Event, opts ...*options.InsertOneOptions) (primitive.ObjectID, error) {
	if err := e.Validate(); err != nil {
		return primitive.NilObjectID, err
	}

	res, err := r.coll.InsertOne(ctx, composeDocument(e), opts...)
	if err != nil {
		return primitive.NilObjectID, mapError(err, "event")
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("event: unexpected inserted id type %T", res.InsertedID)
	}
	e.ID = id

	return id, nil
}

// GetByID fetches an event by its storage id.
func (r *Repo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Event, error) {
	var doc eventDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		return nil, mapError(err, "event")
	}
	return doc.toDomain(), nil
}

// composeDocument produces the canonical field-ordered document. The data
// payload is stored exactly as provided.
func composeDocument(e *domain.Event) bson.D {
	return bson.D{
		{Key: "header_id", Value: e.HeaderID},
		{Key: "event_descriptor_id", Value: e.EventDescriptorID},
		{Key: "seq_no", Value: e.SeqNo},
		{Key: "owner", Value: e.Owner},
		{Key: "description", Value: e.Description},
		{Key: "data", Value: nonNilMap(e.Data)},
	}
}

// eventDoc is the stored shape of an event.
type eventDoc struct {
	ID                primitive.ObjectID `bson:"_id"`
	HeaderID          primitive.ObjectID `bson:"header_id"`
	EventDescriptorID primitive.ObjectID `bson:"event_descriptor_id"`
	SeqNo             int64              `bson:"seq_no"`
	Owner             string             `bson:"owner"`
	Description       *string            `bson:"description"`
	Data              map[string]any     `bson:"data"`
}

func (d eventDoc) toDomain() *domain.Event {
	return &domain.Event{
		ID:                d.ID,
		HeaderID:          d.HeaderID,
		EventDescriptorID: d.EventDescriptorID,
		SeqNo:             d.SeqNo,
		Owner:             d.Owner,
		Description:       d.Description,
		Data:              d.Data,
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
