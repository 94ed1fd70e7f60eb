package pattern

import (
	"errors"
	"strings"
	"testing"
)

func TestNewSet(t *testing.T) {
	tests := []struct {
		name     string
		patterns []Pattern
		wantErr  error
	}{
		{"empty set", nil, ErrEmptySet},
		{
			"empty pattern",
			[]Pattern{{Bytes: []byte("ok")}, {Bytes: nil}},
			ErrEmptyPattern,
		},
		{
			"too long",
			[]Pattern{{Bytes: []byte(strings.Repeat("a", MaxLength+1))}},
			ErrTooLong,
		},
		{
			"valid",
			[]Pattern{{Bytes: []byte("MALWARE")}, {Bytes: []byte("EVIL")}, {Bytes: []byte("BAD")}},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewSet(tt.patterns)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewSet() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSet() unexpected error: %v", err)
			}
			if set.Len() != len(tt.patterns) {
				t.Errorf("Len() = %d, want %d", set.Len(), len(tt.patterns))
			}
		})
	}
}

func TestSetStats(t *testing.T) {
	set, err := NewSet([]Pattern{
		{Bytes: []byte("BAD")},
		{Bytes: []byte("EVIL")},
		{Bytes: []byte("MALWARE")},
	})
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}

	if got := set.MinLength(); got != 3 {
		t.Errorf("MinLength() = %d, want 3", got)
	}
	want := float64(3+4+7) / 3
	if got := set.AvgLength(); got != want {
		t.Errorf("AvgLength() = %v, want %v", got, want)
	}
}

func TestSetAssignsStableIDs(t *testing.T) {
	set, err := NewSet([]Pattern{
		{Bytes: []byte("he")},
		{Bytes: []byte("she")},
		{Bytes: []byte("his")},
		{Bytes: []byte("hers")},
	})
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}

	for i := 0; i < set.Len(); i++ {
		if got := set.Get(i).ID; got != i {
			t.Errorf("Get(%d).ID = %d, want %d", i, got, i)
		}
	}
}

func TestSetCopiesBytes(t *testing.T) {
	src := []byte("mutable")
	set, err := NewSet([]Pattern{{Bytes: src}})
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}

	src[0] = 'X'
	if string(set.Get(0).Bytes) != "mutable" {
		t.Errorf("Set retained a reference to caller's slice, got %q", set.Get(0).Bytes)
	}
}
