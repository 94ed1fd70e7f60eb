// Package sh implements the Set-Horspool multi-pattern matching
// engine: a single Horspool-style shift table sized to the shortest
// pattern in the set, paired with per-last-byte candidate buckets so
// the verification step only walks patterns that could plausibly match
// at the current window instead of every pattern in the set.
package sh

import (
	"context"
	"errors"

	"github.com/coregx/coregex-scan/analytics"
	"github.com/coregx/coregex-scan/engine"
	"github.com/coregx/coregex-scan/internal/conv"
	"github.com/coregx/coregex-scan/internal/cpufeature"
	"github.com/coregx/coregex-scan/pattern"
)

// ErrEmptySet is returned by Preprocess when given a nil or empty
// pattern set.
var ErrEmptySet = errors.New("sh: pattern set must not be empty")

// Tables is a built Set-Horspool preprocessing result, ready to scan
// text. ShiftTable and Bucket are both keyed by a single byte value.
type Tables struct {
	set       *pattern.Set
	minLength int

	shiftTable [256]int32
	bucket     [256][]int32
}

// Preprocess builds the shift table and last-byte buckets from set.
// Returns ErrEmptySet if set is nil or empty.
func Preprocess(set *pattern.Set) (*Tables, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrEmptySet
	}

	t := &Tables{
		set:       set,
		minLength: set.MinLength(),
	}
	m := t.minLength

	for i := range t.shiftTable {
		t.shiftTable[i] = int32(m)
	}

	for _, p := range set.All() {
		for i := 0; i < m-1; i++ {
			ch := p.Bytes[i]
			shift := int32(m - 1 - i)
			if shift < t.shiftTable[ch] {
				t.shiftTable[ch] = shift
			}
			if p.Nocase && isAlpha(ch) {
				alt := flipCase(ch)
				if shift < t.shiftTable[alt] {
					t.shiftTable[alt] = shift
				}
			}
		}

		key := p.Bytes[m-1]
		t.bucket[key] = append(t.bucket[key], conv.IntToInt32(p.ID))
		if p.Nocase && isAlpha(key) {
			alt := flipCase(key)
			t.bucket[alt] = append(t.bucket[alt], conv.IntToInt32(p.ID))
		}
	}

	return t, nil
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func flipCase(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func compareChar(a, b byte, nocase bool) bool {
	if !nocase {
		return a == b
	}
	return lower(a) == lower(b)
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// Scan runs the Set-Horspool search over text, reporting every
// occurrence of every pattern. On a match the window advances by 1,
// not by the table's shift distance, so overlapping occurrences of the
// same pattern (or of one pattern nested in another) are all reported;
// this is a deliberate departure from single-match Horspool, required
// by this engine's "every occurrence" contract.
func (t *Tables) Scan(ctx context.Context, text []byte, stats *analytics.Analytics) []engine.Match {
	stats.Algorithm = "set-horspool"
	stats.SIMDAvailable = cpufeature.AVX2
	var matches []engine.Match

	n := len(text)
	m := t.minLength
	if n < m {
		stats.BytesScanned += uint64(n)
		return matches
	}

	pos := 0
	checked := 0
	for pos+m <= n {
		if checked%4096 == 0 {
			select {
			case <-ctx.Done():
				stats.BytesScanned += uint64(n)
				return matches
			default:
			}
		}
		checked++
		stats.Windows++

		windowEnd := pos + m - 1
		lastByte := text[windowEnd]
		shift := t.shiftTable[lastByte]

		foundMatch := false
		for _, pid := range t.bucket[lastByte] {
			p := t.set.Get(int(pid))
			pl := p.Length()
			if pos+pl > n {
				continue
			}

			matched := true
			for j := pl - 1; j >= 0; j-- {
				stats.Comparisons++
				if !compareChar(text[pos+j], p.Bytes[j], p.Nocase) {
					matched = false
					break
				}
			}
			if matched {
				matches = append(matches, engine.Match{PatternID: int(pid), Start: pos, End: pos + pl})
				stats.Matches++
				foundMatch = true
			}
		}

		stats.Shifts++
		stats.SumShift += uint64(shift)
		if foundMatch {
			pos++
		} else {
			pos += int(shift)
		}
	}

	stats.BytesScanned += uint64(n)
	return matches
}

// HeapBytes returns the approximate heap footprint of the shift table
// and candidate buckets.
func (t *Tables) HeapBytes() int {
	total := len(t.shiftTable) * 4
	for _, b := range t.bucket {
		total += len(b) * 4
	}
	return total
}

// MinLength returns the window length (the shortest pattern length in
// the set) used to size the shift table.
func (t *Tables) MinLength() int {
	return t.minLength
}
