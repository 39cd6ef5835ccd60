package mongodb

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names are fixed by the wire contract; readers in other
// languages address the same names.
const (
	CollectionHeader          = "header"
	CollectionEventDescriptor = "event_type_descriptor"
	CollectionEvent           = "event"
	CollectionBeamlineConfig  = "beamline_config"
)

// collectionIndexes maps each collection to its secondary indexes. Key order
// inside a model matters: compound indexes compare fields in declaration
// order.
var collectionIndexes = map[string][]mongo.IndexModel{
	CollectionHeader: {
		{
			Keys:    bson.D{{Key: "scan_id", Value: -1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "owner", Value: -1}, {Key: "start_time", Value: -1}},
		},
	},
	CollectionEventDescriptor: {
		{
			Keys: bson.D{{Key: "header_id", Value: -1}, {Key: "descriptor_name", Value: -1}},
		},
	},
	CollectionEvent: {
		// The whole data document is an index key here, compared by BSON
		// structure. Inherited behavior; other engines cannot express it.
		{
			Keys: bson.D{{Key: "event_descriptor_id", Value: -1}, {Key: "header_id", Value: 1}, {Key: "data", Value: -1}},
		},
	},
	CollectionBeamlineConfig: {
		{
			Keys: bson.D{{Key: "header_id", Value: -1}},
		},
	},
}

// EnsureIndexes declares every collection index. CreateMany is idempotent
// for identical definitions, so repeated runs are safe. It runs once at an
// initialization phase before any write; the save paths never declare
// indexes.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	for coll, models := range collectionIndexes {
		if _, err := d.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// ExpectedIndexes reports the index names this layer declares, keyed by
// collection. The names are derived from the same models EnsureIndexes
// creates, so inspection tools compare against the real contract.
func ExpectedIndexes() map[string][]string {
	out := make(map[string][]string, len(collectionIndexes))
	for coll, models := range collectionIndexes {
		names := make([]string, 0, len(models))
		for _, m := range models {
			names = append(names, indexName(m.Keys.(bson.D)))
		}
		out[coll] = names
	}
	return out
}

// indexName reproduces the driver's default name for a keys document:
// key and direction pairs joined by underscores.
func indexName(keys bson.D) string {
	parts := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		parts = append(parts, k.Key, fmt.Sprint(k.Value))
	}
	return strings.Join(parts, "_")
}
