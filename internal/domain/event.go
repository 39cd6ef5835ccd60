package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is one measurement point in a run: a data payload tied to the
// descriptor that declares its shape. seq_no orders events informally;
// neither ordering nor uniqueness is enforced.
type Event struct {
	ID                primitive.ObjectID
	HeaderID          primitive.ObjectID
	EventDescriptorID primitive.ObjectID
	SeqNo             int64
	Owner             string
	Description       *string
	Data              map[string]any
}

// EventParams carries caller-supplied fields for NewEvent. An empty Owner
// selects the current process user; a nil Data selects a fresh empty map.
type EventParams struct {
	HeaderID          primitive.ObjectID
	EventDescriptorID primitive.ObjectID
	SeqNo             int64
	Owner             string
	Description       *string
	Data              map[string]any
}

// NewEvent builds a validated event. Both references are logical; their
// targets are never checked for existence.
func NewEvent(p EventParams) (*Event, error) {
	e := &Event{
		HeaderID:          p.HeaderID,
		EventDescriptorID: p.EventDescriptorID,
		SeqNo:             p.SeqNo,
		Owner:             p.Owner,
		Description:       p.Description,
		Data:              defaultMap(p.Data),
	}
	if e.Owner == "" {
		e.Owner = CurrentUser()
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the event invariants.
func (e *Event) Validate() error {
	var errs []FieldError

	if fe := validateRef("header_id", e.HeaderID); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateRef("event_descriptor_id", e.EventDescriptorID); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateNonNegativeInt("seq_no", e.SeqNo); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateRequiredString("owner", e.Owner); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateOptionalString("description", e.Description); fe != nil {
		errs = append(errs, *fe)
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
