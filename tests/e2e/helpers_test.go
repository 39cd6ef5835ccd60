//go:build e2e

package e2e_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb"
	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb/beamlineconfig"
	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb/descriptor"
	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb/event"
	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb/header"
	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb/testhelper"
	"github.com/gitter-badger/metadatastore/internal/service/recording"
)

// ---------------------------------------------------------------------------
// testStack wires the full recording path the binaries use, backed by a real
// MongoDB container (shared via testhelper).
// ---------------------------------------------------------------------------

type testStack struct {
	DB          *mongodb.DB
	Headers     *header.Repo
	Descriptors *descriptor.Repo
	Events      *event.Repo
	Configs     *beamlineconfig.Repo
	Recording   *recording.Service
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func setupStack(t *testing.T) *testStack {
	t.Helper()

	db := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	headers := header.New(db)
	descriptors := descriptor.New(db)
	events := event.New(db)
	configs := beamlineconfig.New(db)

	return &testStack{
		DB:          db,
		Headers:     headers,
		Descriptors: descriptors,
		Events:      events,
		Configs:     configs,
		Recording:   recording.NewService(logger, headers, descriptors, events, configs),
	}
}

// rawDoc fetches one document by _id straight through the driver, bypassing
// the typed repositories, so assertions see exactly what is on the wire.
func (ts *testStack) rawDoc(t *testing.T, coll string, id primitive.ObjectID) bson.M {
	t.Helper()

	var doc bson.M
	err := ts.DB.Collection(coll).FindOne(context.Background(), bson.M{"_id": id}).Decode(&doc)
	require.NoError(t, err, "fetch %s/%s", coll, id.Hex())
	return doc
}

// count returns the number of documents matching filter in coll.
func (ts *testStack) count(t *testing.T, coll string, filter bson.M) int64 {
	t.Helper()

	n, err := ts.DB.Collection(coll).CountDocuments(context.Background(), filter)
	require.NoError(t, err, "count %s", coll)
	return n
}
