package domain

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewEvent_Defaults(t *testing.T) {
	t.Parallel()

	e, err := NewEvent(EventParams{
		HeaderID:          primitive.NewObjectID(),
		EventDescriptorID: primitive.NewObjectID(),
		SeqNo:             0,
	})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}

	if want := CurrentUser(); e.Owner != want {
		t.Errorf("Owner = %q, want current process user %q", e.Owner, want)
	}
	if e.Description != nil {
		t.Errorf("Description = %v, want nil", e.Description)
	}
	if e.Data == nil || len(e.Data) != 0 {
		t.Errorf("Data = %v, want empty non-nil map", e.Data)
	}
	if e.SeqNo != 0 {
		t.Errorf("SeqNo = %d, want 0 accepted", e.SeqNo)
	}
}

func TestNewEvent_Invalid(t *testing.T) {
	t.Parallel()

	headerID := primitive.NewObjectID()
	descriptorID := primitive.NewObjectID()

	tests := []struct {
		name   string
		params EventParams
		field  string
	}{
		{
			name:   "missing header reference",
			params: EventParams{EventDescriptorID: descriptorID},
			field:  "header_id",
		},
		{
			name:   "missing descriptor reference",
			params: EventParams{HeaderID: headerID},
			field:  "event_descriptor_id",
		},
		{
			name:   "negative seq_no",
			params: EventParams{HeaderID: headerID, EventDescriptorID: descriptorID, SeqNo: -1},
			field:  "seq_no",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewEvent(tt.params)
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

func TestNewEvent_DataKeptByReference(t *testing.T) {
	t.Parallel()

	data := map[string]any{"x": 1.0}
	e, err := NewEvent(EventParams{
		HeaderID:          primitive.NewObjectID(),
		EventDescriptorID: primitive.NewObjectID(),
		SeqNo:             3,
		Data:              data,
	})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	if e.Data["x"] != 1.0 {
		t.Errorf("Data = %v, want x=1.0 kept", e.Data)
	}
}
