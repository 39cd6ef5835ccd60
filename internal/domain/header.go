package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Run status values written by the recording tools. The status field itself
// is free-form; callers may store anything.
const (
	StatusInProgress = "In Progress"
	StatusComplete   = "Complete"
)

// Header is the top-level record of a single experiment run. Every other
// record type points back to one through its header_id.
type Header struct {
	ID             primitive.ObjectID
	StartTime      time.Time
	EndTime        *time.Time
	Owner          string
	ScanID         any
	Status         string
	BeamlineID     *string
	HeaderVersions []string
	Custom         map[string]any
	Tags           []string
}

// HeaderParams carries caller-supplied fields for NewHeader. Zero values for
// Owner, Status, HeaderVersions, Custom, and Tags select the defaults.
type HeaderParams struct {
	StartTime      time.Time
	EndTime        *time.Time
	Owner          string
	ScanID         any
	Status         string
	BeamlineID     *string
	HeaderVersions []string
	Custom         map[string]any
	Tags           []string
}

// NewHeader builds a validated run header. Defaults: Owner is the current
// process user resolved at call time, Status is StatusInProgress, and the
// container fields are fresh empty instances. Construction performs no I/O.
func NewHeader(p HeaderParams) (*Header, error) {
	h := &Header{
		StartTime:      p.StartTime,
		EndTime:        p.EndTime,
		Owner:          p.Owner,
		ScanID:         p.ScanID,
		Status:         p.Status,
		BeamlineID:     p.BeamlineID,
		HeaderVersions: defaultSlice(p.HeaderVersions),
		Custom:         defaultMap(p.Custom),
		Tags:           defaultSlice(p.Tags),
	}
	if h.Owner == "" {
		h.Owner = CurrentUser()
	}
	if h.Status == "" {
		h.Status = StatusInProgress
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Validate checks the header invariants. Repositories call it before any
// storage operation; scan_id uniqueness is left to the unique index.
func (h *Header) Validate() error {
	var errs []FieldError

	if fe := validateStartTime("start_time", h.StartTime); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateEndTime("end_time", h.EndTime, h.StartTime); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateRequiredString("owner", h.Owner); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateScalar("scan_id", h.ScanID); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateRequiredString("status", h.Status); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateOptionalString("beamline_id", h.BeamlineID); fe != nil {
		errs = append(errs, *fe)
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
