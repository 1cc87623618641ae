package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"tabs and newlines", "\t\n", true},
		{"non-empty", "hello", false},
		{"padded value", "  hello  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEmpty(tt.input); got != tt.expected {
				t.Errorf("IsEmpty(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid date", "2025-06-02", true},
		{"leap day", "2024-02-29", true},
		{"invalid leap day", "2025-02-29", false},
		{"wrong format", "02-06-2025", false},
		{"with time", "2025-06-02T10:00:00Z", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := IsValidDate(tt.input); ok != tt.expected {
				t.Errorf("IsValidDate(%q) ok = %v, want %v", tt.input, ok, tt.expected)
			}
		})
	}
}

func TestIsInSlice(t *testing.T) {
	kinds := []string{"paid", "unpaid", "sick"}

	if !IsInSlice("paid", kinds) {
		t.Error("IsInSlice should find an existing value")
	}
	if IsInSlice("vacation", kinds) {
		t.Error("IsInSlice should not find a missing value")
	}
	if IsInSlice("paid", nil) {
		t.Error("IsInSlice on nil slice should be false")
	}
}

func TestIsValidHour(t *testing.T) {
	tests := []struct {
		hour     int
		expected bool
	}{
		{0, true},
		{9, true},
		{23, true},
		{-1, false},
		{24, false},
	}

	for _, tt := range tests {
		if got := IsValidHour(tt.hour); got != tt.expected {
			t.Errorf("IsValidHour(%d) = %v, want %v", tt.hour, got, tt.expected)
		}
	}
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{
		{Field: "kind", Message: "kind is required"},
		{Field: "days", Message: "days must be a positive integer"},
	}

	want := "kind: kind is required; days: days must be a positive integer"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "kind", Message: "kind is required"},
		{Field: "days", Message: "days must be a positive integer"},
	}

	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() has %d entries, want 2", len(m))
	}
	if m["kind"] != "kind is required" {
		t.Errorf("ToMap()[kind] = %q", m["kind"])
	}
}
