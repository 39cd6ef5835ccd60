package domain

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewEventDescriptor(t *testing.T) {
	t.Parallel()

	headerID := primitive.NewObjectID()
	d, err := NewEventDescriptor(EventDescriptorParams{
		HeaderID:       headerID,
		EventTypeID:    1,
		DescriptorName: "primary",
	})
	if err != nil {
		t.Fatalf("NewEventDescriptor: %v", err)
	}

	if d.HeaderID != headerID {
		t.Errorf("HeaderID = %v, want %v", d.HeaderID, headerID)
	}
	if d.Tag != nil {
		t.Errorf("Tag = %v, want nil", d.Tag)
	}
	if d.TypeDescriptor == nil || len(d.TypeDescriptor) != 0 {
		t.Errorf("TypeDescriptor = %v, want empty non-nil map", d.TypeDescriptor)
	}
}

func TestNewEventDescriptor_Invalid(t *testing.T) {
	t.Parallel()

	headerID := primitive.NewObjectID()
	emptyTag := ""

	tests := []struct {
		name   string
		params EventDescriptorParams
		field  string
	}{
		{
			name:   "missing header reference",
			params: EventDescriptorParams{EventTypeID: 1, DescriptorName: "primary"},
			field:  "header_id",
		},
		{
			name:   "empty descriptor name",
			params: EventDescriptorParams{HeaderID: headerID, EventTypeID: 1},
			field:  "descriptor_name",
		},
		{
			name:   "empty tag set",
			params: EventDescriptorParams{HeaderID: headerID, EventTypeID: 1, DescriptorName: "primary", Tag: &emptyTag},
			field:  "tag",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewEventDescriptor(tt.params)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %v is not *ValidationError", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("field %q missing from %+v", tt.field, verr.Errors)
			}
		})
	}
}

func TestNewEventDescriptor_TypeDescriptorKept(t *testing.T) {
	t.Parallel()

	d, err := NewEventDescriptor(EventDescriptorParams{
		HeaderID:       primitive.NewObjectID(),
		EventTypeID:    2,
		DescriptorName: "baseline",
		TypeDescriptor: map[string]any{"temperature": "float", "position": "float"},
	})
	if err != nil {
		t.Fatalf("NewEventDescriptor: %v", err)
	}
	if len(d.TypeDescriptor) != 2 {
		t.Errorf("TypeDescriptor = %v, want 2 keys kept", d.TypeDescriptor)
	}
}
