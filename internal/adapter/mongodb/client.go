package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/gitter-badger/metadatastore/internal/config"
)

// DB bundles the connected client with the database handle the repositories
// write to.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB from MongoConfig and pings the server for fail-fast
// validation, both bounded by cfg.ConnectTimeout. It declares nothing; most
// callers want Open. Connect exists for inspection tools that must not write.
func Connect(ctx context.Context, cfg config.MongoConfig) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{client: client, db: client.Database(cfg.Database)}, nil
}

// Open connects to MongoDB and declares the collection indexes before
// returning, so a handle obtained here never accepts a write into an
// unindexed collection.
func Open(ctx context.Context, cfg config.MongoConfig) (*DB, error) {
	db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Close(context.Background())
		return nil, err
	}

	return db, nil
}

// Database returns the underlying database handle.
func (d *DB) Database() *mongo.Database { return d.db }

// Collection returns a collection handle by name. Escape hatch for ad-hoc
// access next to the typed repositories.
func (d *DB) Collection(name string) *mongo.Collection { return d.db.Collection(name) }

// Ping verifies the primary is reachable.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close disconnects the client. In-flight operations are aborted once ctx
// expires.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
