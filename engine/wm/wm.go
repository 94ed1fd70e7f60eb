// Package wm implements the Wu-Manber multi-pattern matching engine: a
// block-size-adaptive shift table combined with a hash table over
// pattern suffixes, with an optional Bloom filter gating the hash-chain
// walk in the probabilistic variant.
//
// The window size is the shortest pattern length in the set; the block
// size B is chosen heuristically from the pattern population. Both
// tables are built once by Preprocess and then scanned read-only, so a
// single Tables value can be reused across many Scan calls.
package wm

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/coregx/coregex-scan/analytics"
	"github.com/coregx/coregex-scan/bloom"
	"github.com/coregx/coregex-scan/engine"
	"github.com/coregx/coregex-scan/internal/conv"
	"github.com/coregx/coregex-scan/internal/cpufeature"
	"github.com/coregx/coregex-scan/pattern"
)

// ErrEmptySet is returned by Preprocess when given a nil or empty
// pattern set.
var ErrEmptySet = errors.New("wm: pattern set must not be empty")

// defaultBloomFP is the Bloom filter false-positive target used when a
// Config leaves FalsePositiveRate at its zero value.
const defaultBloomFP = 0.01

// Config controls Preprocess. The zero value selects the deterministic
// variant (no Bloom gate) with an automatically chosen block size.
type Config struct {
	// UseBloom selects the probabilistic variant: a Bloom filter gates
	// the hash-chain walk, trading a small false-positive rate for
	// fewer chain traversals on large pattern sets.
	UseBloom bool

	// FalsePositiveRate is the Bloom filter's target false-positive
	// rate when UseBloom is set. Defaults to 0.01 if <= 0.
	FalsePositiveRate float64

	// BlockSize overrides the heuristic block-size selection when > 0.
	BlockSize int
}

// maxBlockSize caps the block size at 3: the shift/hash tables are
// directly indexed by the full block key, so a 4-byte block would
// require a 2^32-entry table. The reference implementation's B=4
// branch only avoids that cost because its table-size shift is
// undefined behavior that happens to be masked to a no-op on the
// reference hardware; Go shifts are well-defined, so the same
// expression would allocate a zero-length table instead and panic on
// the first table write. Capping at 3 keeps the direct-index scheme
// sound in both languages.
const maxBlockSize = 3

// chooseBlockSize mirrors the heuristic: small minimum length or very
// large pattern populations favor a narrow 2-byte block (more distinct
// keys would thrash a wider table); everything else uses the widest
// block size the direct-index tables can afford.
func chooseBlockSize(set *pattern.Set) int {
	if set.MinLength() < 4 || set.Len() > 5000 {
		return 2
	}
	return maxBlockSize
}

// blockKey packs up to B bytes of s (zero-padded after the last byte
// if s is shorter than B) into a little-endian word, matching the
// source's byte-by-byte block_key construction. With AVX2 available a
// full 4-byte block is read as one word instead; both paths produce the
// identical key. Preprocess caps B at maxBlockSize (3), so that branch
// is never taken and every key is built by the byte copy.
func blockKey(s []byte, b int) uint32 {
	var buf [4]byte
	n := b
	if n > len(s) {
		n = len(s)
	}
	if n == b && b == 4 && cpufeature.AVX2 {
		return binary.LittleEndian.Uint32(s[:4])
	}
	copy(buf[:n], s[:n])
	return binary.LittleEndian.Uint32(buf[:])
}

// hashPrefix computes the FNV-1a hash of the first min(len(s), b)
// bytes of s, used as the cheap pre-memcmp rejection test in the
// hash-chain walk.
func hashPrefix(s []byte, b int) uint32 {
	n := b
	if n > len(s) {
		n = len(s)
	}
	h := uint32(0x811C9DC5)
	for _, c := range s[:n] {
		h = (h ^ uint32(c)) * 0x01000193
	}
	return h
}

// Tables is a built Wu-Manber preprocessing result, ready to scan text.
type Tables struct {
	set *pattern.Set

	b           int
	windowLen   int
	shiftTable  []int32
	hashTable   []int32 // bucket head per key, -1 if empty
	next        []int32 // linked-list continuation per pattern id, -1 if end
	prefixHash  []uint32
	bloomFilter *bloom.Filter
	algName     string
}

// Preprocess builds shift, hash, and (if cfg.UseBloom) Bloom tables
// from set. Returns ErrEmptySet if set is nil or empty.
func Preprocess(set *pattern.Set, cfg Config) (*Tables, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrEmptySet
	}

	b := cfg.BlockSize
	if b <= 0 {
		b = chooseBlockSize(set)
	} else if b > maxBlockSize {
		b = maxBlockSize
	}
	m := set.MinLength()
	if m < b {
		m = b
	}
	tableSize := uint32(1) << uint(b*8)
	defaultShift := int32(m - b + 1)

	t := &Tables{
		set:        set,
		b:          b,
		windowLen:  m,
		shiftTable: make([]int32, tableSize),
		hashTable:  make([]int32, tableSize),
		next:       make([]int32, set.Len()),
		prefixHash: make([]uint32, set.Len()),
		algName:    "wu-manber (deterministic)",
	}
	for i := range t.shiftTable {
		t.shiftTable[i] = defaultShift
		t.hashTable[i] = -1
	}

	if cfg.UseBloom {
		t.algName = "wu-manber (probabilistic)"
		fp := cfg.FalsePositiveRate
		if fp <= 0 {
			fp = defaultBloomFP
		}
		t.bloomFilter = bloom.New(set.Len(), fp)
	}

	for _, p := range set.All() {
		bytes := foldBytes(p.Bytes)
		l := len(bytes)

		t.prefixHash[p.ID] = hashPrefix(bytes, b)
		t.next[p.ID] = -1

		if t.bloomFilter != nil {
			n := b
			if n > l {
				n = l
			}
			t.bloomFilter.Add(bytes[:n])
		}

		for j := 0; j <= m-b; j++ {
			x := blockKey(bytes[j:], b)
			newShift := int32(m - j - b)
			if newShift < t.shiftTable[x] {
				t.shiftTable[x] = newShift
			}
		}

		sfx := blockKey(bytes[m-b:], b)
		t.next[p.ID] = t.hashTable[sfx]
		t.hashTable[sfx] = conv.IntToInt32(p.ID)
	}

	return t, nil
}

// foldBytes returns an ASCII-lower-cased copy of b. The shift table, hash
// table, and prefix hashes are keyed on folded bytes unconditionally
// (regardless of any individual pattern's Nocase flag) and Scan folds the
// text the same way before computing the matching keys, so the two sides
// of every table lookup are always in the same case; final verification
// in matchFull is what actually enforces or relaxes case sensitivity per
// pattern. Folding the prefilter's key space uniformly can only admit more
// hash-chain candidates than a per-pattern scheme would, never fewer, so
// it cannot introduce a false negative.
func foldBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = lower(c)
	}
	return out
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// Scan runs the Wu-Manber search over text, reporting every occurrence
// of every pattern. The window slides from m-1 to the end of text; at
// each window the shift table either jumps ahead or, on a zero shift,
// triggers a hash-chain walk (optionally gated by the Bloom filter)
// that verifies candidates against their full pattern length, not just
// the window length, so a longer pattern is never reported on a match
// of its first m bytes alone. Verification honours each pattern's
// Nocase flag (unlike AC, which folds case for every pattern). A
// pattern shorter than the block size B is keyed on a zero-padded
// block, so it is reported only where a NUL byte follows it in text.
func (t *Tables) Scan(ctx context.Context, text []byte, stats *analytics.Analytics) []engine.Match {
	stats.Algorithm = t.algName
	stats.SIMDAvailable = cpufeature.AVX2
	var matches []engine.Match

	n := len(text)
	m := t.windowLen
	b := t.b
	if n < m {
		stats.BytesScanned += uint64(n)
		return matches
	}

	// The whole text is folded once up front, so the shift-table key, the
	// hash-table key, and the prefix-hash gate all look up the same
	// case-folded key space that Preprocess built the tables from. Final
	// verification in matchFull always runs against the raw text, so
	// this folding only ever widens which windows reach verification; it
	// can never hide a true match.
	foldedText := foldBytes(text)
	checked := 0

	for i := m - 1; i < n; {
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
		key := blockKey(foldedText[i-b+1:i+1], b)
		shift := t.shiftTable[key]
		stats.SumShift += uint64(shift)
		stats.Shifts++

		if shift > 0 {
			i += int(shift)
			continue
		}

		stats.HashHits++

		windowStart := i - m + 1
		foldedWindow := foldedText[windowStart : i+1]

		useBloom := t.bloomFilter != nil
		if useBloom {
			stats.BloomChecks++
			nb := b
			if nb > m {
				nb = m
			}
			if !t.bloomFilter.Check(foldedWindow[:nb]) {
				i++
				continue
			}
			stats.BloomPass++
		}

		h := hashPrefix(foldedWindow, b)
		for pid := t.hashTable[key]; pid != -1; pid = t.next[pid] {
			stats.ChainSteps++
			if t.prefixHash[pid] != h {
				continue
			}

			p := t.set.Get(int(pid))
			pl := p.Length()
			// The hash bucket is keyed on the pattern's block at
			// [m-b, m), which anchors the pattern's start at
			// windowStart regardless of how its length compares to m.
			start := windowStart
			if start+pl > n {
				continue
			}

			if useBloom {
				stats.VerifAfterBloom++
			}
			if matchFull(text[start:start+pl], p) {
				stats.ExactMatches++
				matches = append(matches, engine.Match{PatternID: int(pid), Start: start, End: start + pl})
				stats.Matches++
			}
		}
		i++
	}

	stats.BytesScanned += uint64(n)
	return matches
}

// matchFull compares candidate against p's full bytes, applying ASCII
// case folding on both sides when p is nocase. This is the fix for the
// historical verification-length bug: the source compared only
// min_length bytes, which could under-verify a longer pattern sharing
// a common prefix with a shorter one.
func matchFull(candidate []byte, p pattern.Pattern) bool {
	if len(candidate) != len(p.Bytes) {
		return false
	}
	if !p.Nocase {
		for i, c := range p.Bytes {
			if candidate[i] != c {
				return false
			}
		}
		return true
	}
	for i, c := range p.Bytes {
		if lower(candidate[i]) != lower(c) {
			return false
		}
	}
	return true
}

// HeapBytes returns the approximate heap footprint of the compiled
// tables, including the Bloom filter if present.
func (t *Tables) HeapBytes() int {
	total := len(t.shiftTable)*4 + len(t.hashTable)*4 + len(t.next)*4 + len(t.prefixHash)*4
	if t.bloomFilter != nil {
		total += t.bloomFilter.HeapBytes()
	}
	return total
}

// BlockSize returns the block size B selected or overridden at
// Preprocess time.
func (t *Tables) BlockSize() int {
	return t.b
}

// WindowLen returns the window length m (the shortest pattern length,
// or B if larger).
func (t *Tables) WindowLen() int {
	return t.windowLen
}
