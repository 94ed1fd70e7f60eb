// Package bm implements Boyer-Moore matching, iterated once per
// pattern: each pattern gets its own bad-character, border, and
// good-suffix tables, and the engine runs one independent Boyer-Moore
// scan per pattern over the same text.
//
// This is the only engine in this module whose per-scan cost scales
// with the number of patterns rather than amortizing preprocessing
// across the whole set, matching the historical source this package
// was modeled on; it exists as the baseline the other three engines
// are measured against.
package bm

import (
	"context"
	"errors"

	"github.com/coregx/coregex-scan/analytics"
	"github.com/coregx/coregex-scan/engine"
	"github.com/coregx/coregex-scan/pattern"
)

// ErrEmptySet is returned by Preprocess when given a nil or empty
// pattern set.
var ErrEmptySet = errors.New("bm: pattern set must not be empty")

const notInPattern = -1

// patternTables holds one pattern's bad-character and good-suffix
// tables; the border array is only used while building goodSuffix and
// is not kept.
type patternTables struct {
	pattern    []byte
	nocase     bool
	id         int
	badChar    [256]int
	goodSuffix []int
}

// Tables is a built Boyer-Moore preprocessing result: one set of
// tables per pattern in the set.
type Tables struct {
	set   *pattern.Set
	byPat []patternTables
}

// Preprocess builds bad-character, border, and good-suffix tables for
// every pattern in set. Returns ErrEmptySet if set is nil or empty.
func Preprocess(set *pattern.Set) (*Tables, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrEmptySet
	}

	t := &Tables{
		set:   set,
		byPat: make([]patternTables, set.Len()),
	}

	for i, p := range set.All() {
		pt := patternTables{
			pattern: p.Bytes,
			nocase:  p.Nocase,
			id:      p.ID,
		}
		buildBadChar(&pt)
		pt.goodSuffix = buildGoodSuffix(p.Bytes)
		t.byPat[i] = pt
	}

	return t, nil
}

// buildBadChar fills badChar[c] with the rightmost index of c in the
// pattern, or notInPattern if c never occurs. Nocase patterns record
// both case variants of every letter at the same index.
func buildBadChar(pt *patternTables) {
	for c := range pt.badChar {
		pt.badChar[c] = notInPattern
	}
	for i, c := range pt.pattern {
		pt.badChar[c] = i
		if pt.nocase && isAlpha(c) {
			pt.badChar[flipCase(c)] = i
		}
	}
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

func equalByte(a, b byte, nocase bool) bool {
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

// buildGoodSuffix implements the standard two-phase strong
// good-suffix preprocessing (Lecroq/Charras construction): a border
// array is computed right to left, and every position that never
// found a matching border falls back to the widest border of the
// whole pattern. goodSuffix[i] is the shift to apply when a mismatch
// occurs at pattern index i-1 (so goodSuffix[0] is the shift to apply
// after a full match).
func buildGoodSuffix(p []byte) []int {
	m := len(p)
	goodSuffix := make([]int, m+1)
	border := make([]int, m+1)

	i, j := m, m+1
	border[i] = j
	for i > 0 {
		for j <= m && p[i-1] != p[j-1] {
			if goodSuffix[j] == 0 {
				goodSuffix[j] = j - i
			}
			j = border[j]
		}
		i--
		j--
		border[i] = j
	}

	j = border[0]
	for i := 0; i <= m; i++ {
		if goodSuffix[i] == 0 {
			goodSuffix[i] = j
		}
		if i == j {
			j = border[j]
		}
	}
	return goodSuffix
}

// Scan runs one Boyer-Moore pass per pattern over text, reporting
// every occurrence of every pattern. After a match the window still
// advances by only 1, the safe minimum, rather than by the
// good-suffix shift for a full match: this engine's good-suffix table
// is not extended with the periodicity needed to skip safely past an
// already-reported match without risking missing an overlapping one,
// so Scan always continues rather than stopping at the first
// occurrence per pattern.
func (t *Tables) Scan(ctx context.Context, text []byte, stats *analytics.Analytics) []engine.Match {
	stats.Algorithm = "boyer-moore"
	var matches []engine.Match
	n := len(text)

	checked := 0
	for pi := range t.byPat {
		pt := &t.byPat[pi]
		m := len(pt.pattern)
		if m == 0 || m > n {
			continue
		}

		s := 0
		for s <= n-m {
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

			j := m - 1
			for j >= 0 {
				stats.Comparisons++
				if !equalByte(text[s+j], pt.pattern[j], pt.nocase) {
					break
				}
				j--
			}

			if j < 0 {
				matches = append(matches, engine.Match{PatternID: pt.id, Start: s, End: s + m})
				stats.Matches++
				stats.Shifts++
				stats.SumShift++
				s++
				continue
			}

			badCharShift := j - pt.badChar[text[s+j]]
			shift := badCharShift
			if gs := pt.goodSuffix[j+1]; gs > shift {
				shift = gs
			}
			if shift < 1 {
				shift = 1
			}
			stats.Shifts++
			stats.SumShift += uint64(shift)
			s += shift
		}
	}

	stats.BytesScanned += uint64(n)
	return matches
}

// HeapBytes returns the approximate heap footprint of every pattern's
// tables combined.
func (t *Tables) HeapBytes() int {
	total := 0
	for _, pt := range t.byPat {
		total += 256*4 + len(pt.goodSuffix)*4
	}
	return total
}
