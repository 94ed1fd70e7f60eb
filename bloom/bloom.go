// Package bloom implements a double-hashed Bloom filter used by the
// Wu-Manber engine's optional probabilistic prefix gate.
//
// The filter never produces false negatives: Check returns false only for
// values that were genuinely never Added. Its false-positive rate is
// governed by the m/k sizing chosen in New from the classical formulas
//
//	m = ceil(-n*ln(p) / (ln 2)^2)
//	k = ceil((m/n)*ln 2)
//
// Hashing uses double hashing over two seeded FNV-1a variants
// (seeds 0x811C9DC5 and 0x01000193), matching the construction this
// package was ported from bit for bit: bit i is (h1 + i*h2) mod m for
// i in [0, k).
package bloom

import "math"

// fnv1aSeed1 and fnv1aSeed2 are the two FNV-1a seeds used to derive the
// pair of independent hashes driving double hashing. These specific
// constants (the canonical FNV offset basis and prime) are load-bearing:
// changing them changes which bits Check/Add touch for a given input.
const (
	fnv1aSeed1 uint32 = 0x811C9DC5
	fnv1aSeed2 uint32 = 0x01000193
	fnv1aPrime uint32 = 0x01000193 // FNV-1a prime; also reused as the second seed
)

func fnv1a(data []byte, seed uint32) uint32 {
	h := seed
	for _, b := range data {
		h = (h ^ uint32(b)) * fnv1aPrime
	}
	return h
}

// Filter is a fixed-size Bloom filter over byte sequences. The zero value
// is not usable; construct with New.
type Filter struct {
	bits     []byte
	size     uint32 // m, in bits
	numHash  uint32 // k
	inserted uint64 // count of Add calls, for diagnostics only
}

// New constructs a Filter sized for n expected elements at target
// false-positive rate p. Both n and p must be positive; New panics
// otherwise since a misconfigured filter is a programming error, not a
// recoverable runtime condition.
func New(n int, p float64) *Filter {
	if n <= 0 {
		panic("bloom: n must be positive")
	}
	if p <= 0 || p >= 1 {
		panic("bloom: p must be in (0, 1)")
	}

	nf := float64(n)
	m := math.Ceil(-nf * math.Log(p) / (math.Ln2 * math.Ln2))
	k := math.Ceil((m / nf) * math.Ln2)

	if m < 8 {
		m = 8
	}
	if k < 1 {
		k = 1
	}

	size := uint32(m)
	return &Filter{
		bits:    make([]byte, (size+7)/8),
		size:    size,
		numHash: uint32(k),
	}
}

// Add inserts b into the filter. Adding the same value twice is a no-op
// beyond the redundant bit sets.
func (f *Filter) Add(b []byte) {
	h1 := fnv1a(b, fnv1aSeed1)
	h2 := fnv1a(b, fnv1aSeed2)

	for i := uint32(0); i < f.numHash; i++ {
		idx := (h1 + i*h2) % f.size
		f.bits[idx>>3] |= 1 << (idx & 7)
	}
	f.inserted++
}

// Check reports whether b may have been added to the filter. A false
// result guarantees b was never added. A true result means b was
// probably added, within the false-positive rate New was configured
// with.
func (f *Filter) Check(b []byte) bool {
	h1 := fnv1a(b, fnv1aSeed1)
	h2 := fnv1a(b, fnv1aSeed2)

	for i := uint32(0); i < f.numHash; i++ {
		idx := (h1 + i*h2) % f.size
		if f.bits[idx>>3]&(1<<(idx&7)) == 0 {
			return false
		}
	}
	return true
}

// Size returns m, the number of bits in the filter's bit array.
func (f *Filter) Size() uint32 {
	return f.size
}

// NumHashes returns k, the number of hash functions used per Add/Check.
func (f *Filter) NumHashes() uint32 {
	return f.numHash
}

// HeapBytes returns the number of bytes of heap memory used by the
// filter's backing bit array, for profiling and memory budgeting
// alongside each engine's compiled tables.
func (f *Filter) HeapBytes() int {
	return len(f.bits)
}
