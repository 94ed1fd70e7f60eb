// Package pattern provides the immutable literal pattern set that feeds
// every matching engine in this module.
//
// A Pattern is a single content clause extracted from a rule (see the
// rules package); a Set is the ordered, immutable collection of patterns
// that an engine is built against. Sets cache the statistics
// (MinLength, AvgLength) every engine's preprocessing step needs, so that
// statistic is computed exactly once regardless of how many engines are
// built against the same Set.
package pattern

import (
	"errors"
	"fmt"
)

// MaxLength is the implementation-defined ceiling on a single pattern's
// byte length. Patterns longer than this are refused at Set construction
// time (a Configuration error per the error handling design: refused at
// preprocess time, reported to the caller).
const MaxLength = 4096

// Sentinel errors returned by NewSet.
var (
	// ErrEmptySet indicates a pattern set was constructed with zero
	// patterns. A Set must contain at least one pattern before any
	// engine may be built on it.
	ErrEmptySet = errors.New("pattern: set must contain at least one pattern")

	// ErrEmptyPattern indicates a pattern with zero bytes was supplied.
	// Every pattern must have length >= 1.
	ErrEmptyPattern = errors.New("pattern: pattern must have length >= 1")

	// ErrTooLong indicates a pattern exceeds MaxLength.
	ErrTooLong = errors.New("pattern: pattern exceeds maximum length")
)

// Pattern is an immutable byte sequence with a stable id within its Set,
// plus metadata opaque to every matching engine.
//
// Bytes is never mutated after construction; Set copies the caller's
// slice on ingestion so a Pattern can be held and compared safely for
// the lifetime of a scan session.
type Pattern struct {
	// Bytes is the literal content to search for.
	Bytes []byte

	// ID is this pattern's stable index within its owning Set.
	ID int

	// Nocase marks the pattern as case-insensitive for ASCII letters.
	Nocase bool

	// SID and Msg are opaque rule metadata threaded through from the
	// rules collaborator for display purposes; the core never inspects
	// them.
	SID string
	Msg string
}

// Length returns the number of bytes in the pattern.
func (p Pattern) Length() int {
	return len(p.Bytes)
}

// String returns a debug representation of the pattern.
func (p Pattern) String() string {
	return fmt.Sprintf("pattern{id=%d, %q, nocase=%v}", p.ID, p.Bytes, p.Nocase)
}

// Set is an ordered, immutable collection of Patterns with cached
// derived statistics. A Set owns its pattern byte storage exclusively;
// engines built against a Set reference patterns by id only and never
// hold their own copy of the bytes.
//
// Invariant: MinLength() >= 1 and Len() >= 1 for any successfully
// constructed Set.
type Set struct {
	patterns  []Pattern
	minLength int
	sumLength int
}

// NewSet builds an immutable Set from the given patterns, assigning each
// a stable id equal to its position in the slice (any caller-provided ID
// field is overwritten). Returns ErrEmptySet if patterns is empty,
// ErrEmptyPattern if any pattern has zero bytes, and ErrTooLong if any
// pattern exceeds MaxLength.
//
// Pattern bytes are copied into the Set's own storage; the caller's
// slices may be freely reused or mutated after NewSet returns.
func NewSet(patterns []Pattern) (*Set, error) {
	if len(patterns) == 0 {
		return nil, ErrEmptySet
	}

	out := make([]Pattern, len(patterns))
	minLength := MaxLength + 1
	sumLength := 0

	for i, p := range patterns {
		if len(p.Bytes) == 0 {
			return nil, fmt.Errorf("%w: index %d", ErrEmptyPattern, i)
		}
		if len(p.Bytes) > MaxLength {
			return nil, fmt.Errorf("%w: index %d has length %d", ErrTooLong, i, len(p.Bytes))
		}

		b := make([]byte, len(p.Bytes))
		copy(b, p.Bytes)

		out[i] = Pattern{
			Bytes:  b,
			ID:     i,
			Nocase: p.Nocase,
			SID:    p.SID,
			Msg:    p.Msg,
		}

		if len(b) < minLength {
			minLength = len(b)
		}
		sumLength += len(b)
	}

	return &Set{
		patterns:  out,
		minLength: minLength,
		sumLength: sumLength,
	}, nil
}

// Len returns the number of patterns in the set.
func (s *Set) Len() int {
	return len(s.patterns)
}

// Get returns the pattern at index i. Panics if i is out of range.
func (s *Set) Get(i int) Pattern {
	return s.patterns[i]
}

// All returns the patterns in insertion (id) order. The returned slice
// must not be mutated by the caller.
func (s *Set) All() []Pattern {
	return s.patterns
}

// MinLength returns the length of the shortest pattern in the set.
func (s *Set) MinLength() int {
	return s.minLength
}

// AvgLength returns the arithmetic mean pattern length.
func (s *Set) AvgLength() float64 {
	return float64(s.sumLength) / float64(len(s.patterns))
}
