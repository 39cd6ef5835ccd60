package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventDescriptor names an event stream within a run and declares the shape
// of its payloads: which keys each event's data carries and how they are
// typed.
type EventDescriptor struct {
	ID             primitive.ObjectID
	HeaderID       primitive.ObjectID
	EventTypeID    int64
	DescriptorName string
	Tag            *string
	TypeDescriptor map[string]any
}

// EventDescriptorParams carries caller-supplied fields for
// NewEventDescriptor. A nil TypeDescriptor selects a fresh empty map.
type EventDescriptorParams struct {
	HeaderID       primitive.ObjectID
	EventTypeID    int64
	DescriptorName string
	Tag            *string
	TypeDescriptor map[string]any
}

// NewEventDescriptor builds a validated event descriptor. HeaderID is a
// logical reference; its target is never checked for existence.
func NewEventDescriptor(p EventDescriptorParams) (*EventDescriptor, error) {
	d := &EventDescriptor{
		HeaderID:       p.HeaderID,
		EventTypeID:    p.EventTypeID,
		DescriptorName: p.DescriptorName,
		Tag:            p.Tag,
		TypeDescriptor: defaultMap(p.TypeDescriptor),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks the descriptor invariants.
func (d *EventDescriptor) Validate() error {
	var errs []FieldError

	if fe := validateRef("header_id", d.HeaderID); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateRequiredString("descriptor_name", d.DescriptorName); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateOptionalString("tag", d.Tag); fe != nil {
		errs = append(errs, *fe)
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
