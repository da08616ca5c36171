package models

import "testing"

func TestNewID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if !IsValidID(id) {
			t.Fatalf("NewID() = %q, not a valid 24-char hex id", id)
		}
		if seen[id] {
			t.Fatalf("NewID() produced duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "valid lowercase", id: "507f1f77bcf86cd799439011", want: true},
		{name: "valid uppercase", id: "507F1F77BCF86CD799439011", want: true},
		{name: "too short", id: "507f1f77bcf86cd79943901", want: false},
		{name: "too long", id: "507f1f77bcf86cd7994390111", want: false},
		{name: "non-hex characters", id: "507f1f77bcf86cd79943901z", want: false},
		{name: "empty", id: "", want: false},
		{name: "whitespace padded", id: " 507f1f77bcf86cd79943901", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidID(tt.id); got != tt.want {
				t.Errorf("IsValidID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
