//go:build e2e

package e2e_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb"
	"github.com/gitter-badger/metadatastore/internal/domain"
)

// TestE2E_RunLifecycle records a complete run through the recording service
// and verifies each document at the raw BSON level: a header opened with
// defaults, an event descriptor under it, one event, and a beamline
// configuration snapshot.
func TestE2E_RunLifecycle(t *testing.T) {
	ts := setupStack(t)
	ctx := context.Background()

	start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	h, err := ts.Recording.CreateHeader(ctx, domain.HeaderParams{
		StartTime: start,
		Owner:     "alice",
		ScanID:    int64(42),
	})
	require.NoError(t, err)
	require.False(t, h.ID.IsZero())

	// Defaults fill in what the caller omitted.
	assert.Equal(t, domain.StatusInProgress, h.Status)
	assert.Empty(t, h.Tags)
	assert.Empty(t, h.Custom)

	rawHeader := ts.rawDoc(t, mongodb.CollectionHeader, h.ID)
	assert.Equal(t, primitive.NewDateTimeFromTime(start), rawHeader["start_time"])
	assert.Nil(t, rawHeader["end_time"])
	assert.Equal(t, "alice", rawHeader["owner"])
	assert.Equal(t, int64(42), rawHeader["scan_id"])
	assert.Equal(t, "In Progress", rawHeader["status"])
	assert.Nil(t, rawHeader["beamline_id"])
	assert.Equal(t, bson.A{}, rawHeader["header_versions"])
	assert.Equal(t, bson.M{}, rawHeader["custom"])
	assert.Equal(t, bson.A{}, rawHeader["tags"])

	d, err := ts.Recording.CreateEventDescriptor(ctx, domain.EventDescriptorParams{
		HeaderID:       h.ID,
		EventTypeID:    1,
		DescriptorName: "primary",
		TypeDescriptor: map[string]any{"x": map[string]any{"dtype": "number"}},
	})
	require.NoError(t, err)
	require.False(t, d.ID.IsZero())

	rawDescriptor := ts.rawDoc(t, mongodb.CollectionEventDescriptor, d.ID)
	assert.Equal(t, h.ID, rawDescriptor["header_id"])
	assert.Equal(t, int64(1), rawDescriptor["event_type_id"])
	assert.Equal(t, "primary", rawDescriptor["descriptor_name"])
	assert.Nil(t, rawDescriptor["tag"])

	e, err := ts.Recording.CreateEvent(ctx, domain.EventParams{
		HeaderID:          h.ID,
		EventDescriptorID: d.ID,
		SeqNo:             0,
		Owner:             "alice",
		Data:              map[string]any{"x": 1.0},
	})
	require.NoError(t, err)
	require.False(t, e.ID.IsZero())

	rawEvent := ts.rawDoc(t, mongodb.CollectionEvent, e.ID)
	assert.Equal(t, h.ID, rawEvent["header_id"])
	assert.Equal(t, d.ID, rawEvent["event_descriptor_id"])
	assert.Equal(t, int64(0), rawEvent["seq_no"])

	data, ok := rawEvent["data"].(bson.M)
	require.True(t, ok, "expected data document")
	assert.Equal(t, 1.0, data["x"])

	c, err := ts.Recording.CreateBeamlineConfig(ctx, domain.BeamlineConfigParams{
		HeaderID:     h.ID,
		ConfigParams: map[string]any{"undulator_gap": 6.2, "mono_energy": "8.9keV"},
	})
	require.NoError(t, err)

	got, err := ts.Configs.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, h.ID, got.HeaderID)
	assert.Equal(t, 6.2, got.ConfigParams["undulator_gap"])
	assert.Equal(t, "8.9keV", got.ConfigParams["mono_energy"])
}

// TestE2E_DuplicateScanID verifies the unique scan_id index rejects a second
// header for the same scan and that nothing is written for the loser.
func TestE2E_DuplicateScanID(t *testing.T) {
	ts := setupStack(t)
	ctx := context.Background()

	_, err := ts.Recording.CreateHeader(ctx, domain.HeaderParams{
		StartTime: time.Now().UTC(),
		Owner:     "alice",
		ScanID:    int64(42),
	})
	require.NoError(t, err)

	_, err = ts.Recording.CreateHeader(ctx, domain.HeaderParams{
		StartTime: time.Now().UTC(),
		Owner:     "bob",
		ScanID:    int64(42),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	assert.Zero(t, ts.count(t, mongodb.CollectionHeader, bson.M{"owner": "bob"}))
}

// TestE2E_InvalidHeaderWritesNothing verifies a validation failure surfaces
// through the full stack and leaves the collection empty.
func TestE2E_InvalidHeaderWritesNothing(t *testing.T) {
	ts := setupStack(t)
	ctx := context.Background()

	_, err := ts.Recording.CreateHeader(ctx, domain.HeaderParams{
		Owner:  "alice",
		ScanID: int64(1),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Zero(t, ts.count(t, mongodb.CollectionHeader, bson.M{}))
}

// TestE2E_IndexContract verifies a freshly opened database already carries
// every declared index, before any record has been written.
func TestE2E_IndexContract(t *testing.T) {
	ts := setupStack(t)
	ctx := context.Background()

	for coll, names := range mongodb.ExpectedIndexes() {
		specs, err := ts.DB.Collection(coll).Indexes().ListSpecifications(ctx)
		require.NoError(t, err, "list indexes on %s", coll)

		present := make(map[string]bool, len(specs))
		for _, spec := range specs {
			present[spec.Name] = true
		}
		for _, name := range names {
			assert.True(t, present[name], "collection %s missing index %s", coll, name)
		}
	}
}
