package domain

import (
	"testing"
	"time"
)

func TestValidateScalar(t *testing.T) {
	t.Parallel()

	accepted := []any{"s", int(1), int8(1), int16(1), int32(1), int64(1),
		uint(1), uint8(1), uint16(1), uint32(1), uint64(1),
		float32(1.5), float64(1.5), true, false}
	for _, v := range accepted {
		if fe := validateScalar("scan_id", v); fe != nil {
			t.Errorf("validateScalar(%T) = %v, want nil", v, fe)
		}
	}

	rejected := []any{nil, map[string]any{}, []string{"a"}, []int{1}, struct{ X int }{1}, &struct{}{}}
	for _, v := range rejected {
		if fe := validateScalar("scan_id", v); fe == nil {
			t.Errorf("validateScalar(%T) = nil, want failure", v)
		}
	}
}

func TestValidateEndTime(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	after := start.Add(time.Hour)
	before := start.Add(-time.Hour)
	zero := time.Time{}

	if fe := validateEndTime("end_time", nil, start); fe != nil {
		t.Errorf("nil end time rejected: %v", fe)
	}
	if fe := validateEndTime("end_time", &after, start); fe != nil {
		t.Errorf("end after start rejected: %v", fe)
	}
	if fe := validateEndTime("end_time", &start, start); fe != nil {
		t.Errorf("end equal to start rejected: %v", fe)
	}
	if fe := validateEndTime("end_time", &before, start); fe == nil {
		t.Error("end before start accepted")
	}
	if fe := validateEndTime("end_time", &zero, start); fe == nil {
		t.Error("zero end time accepted")
	}
}

func TestDefaultContainers(t *testing.T) {
	t.Parallel()

	m := defaultMap(nil)
	if m == nil {
		t.Fatal("defaultMap(nil) returned nil")
	}
	m2 := defaultMap(nil)
	m["k"] = 1
	if len(m2) != 0 {
		t.Error("defaultMap returns a shared instance")
	}

	given := map[string]any{"k": 1}
	if got := defaultMap(given); len(got) != 1 {
		t.Errorf("defaultMap(non-nil) = %v, want value kept", got)
	}

	s := defaultSlice(nil)
	if s == nil || len(s) != 0 {
		t.Fatalf("defaultSlice(nil) = %v, want empty non-nil", s)
	}
}

func TestCurrentUser_NeverEmpty(t *testing.T) {
	t.Parallel()

	if got := CurrentUser(); got == "" {
		t.Fatal("CurrentUser() returned empty string")
	}
}
