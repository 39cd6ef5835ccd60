// Command mdsimport records a complete run from a JSON bundle: one header,
// the event descriptors captured under it, their events, and any beamline
// configuration snapshots. When the bundle carries no scan id, a random one
// is generated so the header stays uniquely addressable.
//
// Flags:
//
//	-file     path to the run bundle JSON (required)
//	-dry-run  validate the bundle without writing
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb"
	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb/beamlineconfig"
	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb/descriptor"
	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb/event"
	"github.com/gitter-badger/metadatastore/internal/adapter/mongodb/header"
	"github.com/gitter-badger/metadatastore/internal/app"
	"github.com/gitter-badger/metadatastore/internal/domain"
	"github.com/gitter-badger/metadatastore/internal/service/recording"
)

func main() {
	file := flag.String("file", "", "path to the run bundle JSON (required)")
	dryRun := flag.Bool("dry-run", false, "validate the bundle without writing")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: mdsimport -file=run.json [-dry-run]")
		os.Exit(1)
	}

	cfg, logger, err := app.Setup()
	if err != nil {
		log.Fatalf("setup: %v", err)
	}

	bundle, err := readBundle(*file)
	if err != nil {
		logger.Error("read bundle",
			slog.String("error", err.Error()),
			slog.String("file", *file),
		)
		os.Exit(1)
	}

	if bundle.Header.ScanID == nil {
		bundle.Header.ScanID = uuid.NewString()
		logger.Info("scan id generated", slog.Any("scan_id", bundle.Header.ScanID))
	}

	if *dryRun {
		if err := validateBundle(bundle); err != nil {
			logger.Error("bundle invalid", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("bundle valid, nothing written",
			slog.Int("beamline_configs", len(bundle.BeamlineConfigs)),
			slog.Int("descriptors", len(bundle.Descriptors)),
			slog.Int("events", bundle.eventCount()),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := mongodb.Open(ctx, cfg.Mongo)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close(ctx)

	svc := recording.NewService(logger,
		header.New(db),
		descriptor.New(db),
		event.New(db),
		beamlineconfig.New(db),
	)

	if err := recordBundle(ctx, svc, bundle, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runBundle is the JSON document mdsimport consumes. Events nest under the
// descriptor that defines them because their storage ids do not exist until
// the descriptor is recorded.
type runBundle struct {
	Header          bundleHeader       `json:"header"`
	BeamlineConfigs []bundleConfig     `json:"beamline_configs"`
	Descriptors     []bundleDescriptor `json:"descriptors"`
}

type bundleHeader struct {
	StartTime      time.Time      `json:"start_time"`
	EndTime        *time.Time     `json:"end_time"`
	Owner          string         `json:"owner"`
	ScanID         any            `json:"scan_id"`
	Status         string         `json:"status"`
	BeamlineID     *string        `json:"beamline_id"`
	HeaderVersions []string       `json:"header_versions"`
	Custom         map[string]any `json:"custom"`
	Tags           []string       `json:"tags"`
}

type bundleConfig struct {
	ConfigParams map[string]any `json:"config_params"`
}

type bundleDescriptor struct {
	EventTypeID    int64          `json:"event_type_id"`
	DescriptorName string         `json:"descriptor_name"`
	Tag            *string        `json:"tag"`
	TypeDescriptor map[string]any `json:"type_descriptor"`
	Events         []bundleEvent  `json:"events"`
}

type bundleEvent struct {
	SeqNo       int64          `json:"seq_no"`
	Owner       string         `json:"owner"`
	Description *string        `json:"description"`
	Data        map[string]any `json:"data"`
}

func (b *runBundle) eventCount() int {
	var n int
	for _, d := range b.Descriptors {
		n += len(d.Events)
	}
	return n
}

func (b *runBundle) headerParams() domain.HeaderParams {
	return domain.HeaderParams{
		StartTime:      b.Header.StartTime,
		EndTime:        b.Header.EndTime,
		Owner:          b.Header.Owner,
		ScanID:         b.Header.ScanID,
		Status:         b.Header.Status,
		BeamlineID:     b.Header.BeamlineID,
		HeaderVersions: b.Header.HeaderVersions,
		Custom:         b.Header.Custom,
		Tags:           b.Header.Tags,
	}
}

func readBundle(path string) (*runBundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var bundle runBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &bundle, nil
}

// validateBundle runs every record through its domain constructor without
// touching storage. References are filled with placeholder ids; they are
// logical and never checked against the database anyway.
func validateBundle(b *runBundle) error {
	if _, err := domain.NewHeader(b.headerParams()); err != nil {
		return fmt.Errorf("header: %w", err)
	}

	ref := primitive.NewObjectID()
	for i, bc := range b.BeamlineConfigs {
		_, err := domain.NewBeamlineConfig(domain.BeamlineConfigParams{
			HeaderID:     ref,
			ConfigParams: bc.ConfigParams,
		})
		if err != nil {
			return fmt.Errorf("beamline config %d: %w", i, err)
		}
	}

	for _, bd := range b.Descriptors {
		_, err := domain.NewEventDescriptor(domain.EventDescriptorParams{
			HeaderID:       ref,
			EventTypeID:    bd.EventTypeID,
			DescriptorName: bd.DescriptorName,
			Tag:            bd.Tag,
			TypeDescriptor: bd.TypeDescriptor,
		})
		if err != nil {
			return fmt.Errorf("descriptor %q: %w", bd.DescriptorName, err)
		}

		for _, be := range bd.Events {
			_, err := domain.NewEvent(domain.EventParams{
				HeaderID:          ref,
				EventDescriptorID: ref,
				SeqNo:             be.SeqNo,
				Owner:             be.Owner,
				Description:       be.Description,
				Data:              be.Data,
			})
			if err != nil {
				return fmt.Errorf("event seq %d of %q: %w", be.SeqNo, bd.DescriptorName, err)
			}
		}
	}
	return nil
}

// recordBundle persists the bundle top-down: header first, then everything
// that references it. A failure stops the import; records already written
// stay, and rerunning with the same scan id is rejected by the unique index.
func recordBundle(ctx context.Context, svc *recording.Service, b *runBundle, logger *slog.Logger) error {
	h, err := svc.CreateHeader(ctx, b.headerParams())
	if err != nil {
		return fmt.Errorf("record header: %w", err)
	}

	var configs, descriptors, events int
	for i, bc := range b.BeamlineConfigs {
		_, err := svc.CreateBeamlineConfig(ctx, domain.BeamlineConfigParams{
			HeaderID:     h.ID,
			ConfigParams: bc.ConfigParams,
		})
		if err != nil {
			return fmt.Errorf("record beamline config %d: %w", i, err)
		}
		configs++
	}

	for _, bd := range b.Descriptors {
		d, err := svc.CreateEventDescriptor(ctx, domain.EventDescriptorParams{
			HeaderID:       h.ID,
			EventTypeID:    bd.EventTypeID,
			DescriptorName: bd.DescriptorName,
			Tag:            bd.Tag,
			TypeDescriptor: bd.TypeDescriptor,
		})
		if err != nil {
			return fmt.Errorf("record descriptor %q: %w", bd.DescriptorName, err)
		}
		descriptors++

		for _, be := range bd.Events {
			_, err := svc.CreateEvent(ctx, domain.EventParams{
				HeaderID:          h.ID,
				EventDescriptorID: d.ID,
				SeqNo:             be.SeqNo,
				Owner:             be.Owner,
				Description:       be.Description,
				Data:              be.Data,
			})
			if err != nil {
				return fmt.Errorf("record event seq %d of %q: %w", be.SeqNo, bd.DescriptorName, err)
			}
			events++
		}
	}

	logger.Info("run recorded",
		slog.String("header_id", h.ID.Hex()),
		slog.Any("scan_id", h.ScanID),
		slog.Int("beamline_configs", configs),
		slog.Int("descriptors", descriptors),
		slog.Int("events", events),
	)
	return nil
}
