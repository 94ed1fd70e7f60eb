package scan

import "fmt"

// Algorithm is a closed enum selecting which matching engine a
// Dispatcher builds. Adding a new matching engine means adding a new
// constant here and a new case in Build's switch; there is no engine
// interface to implement beyond engine.Scanner.
type Algorithm int

const (
	// AC selects the Aho-Corasick engine.
	AC Algorithm = iota

	// WMDet selects the Wu-Manber engine in its deterministic variant
	// (hash-chain verification only, no Bloom gate).
	WMDet

	// WMProb selects the Wu-Manber engine in its probabilistic variant
	// (a Bloom filter gates the hash-chain walk).
	WMProb

	// SH selects the Set-Horspool engine.
	SH

	// BM selects the iterated Boyer-Moore engine.
	BM
)

// AllAlgorithms returns every Algorithm value, in declaration order.
// Used by tests to assert the Build switch has a case for each one.
func AllAlgorithms() []Algorithm {
	return []Algorithm{AC, WMDet, WMProb, SH, BM}
}

// String returns the algorithm's display name.
func (a Algorithm) String() string {
	switch a {
	case AC:
		return "aho-corasick"
	case WMDet:
		return "wu-manber (deterministic)"
	case WMProb:
		return "wu-manber (probabilistic)"
	case SH:
		return "set-horspool"
	case BM:
		return "boyer-moore"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Selector returns the single-character CLI flag value that selects
// this algorithm (a|d|p|h|b).
func (a Algorithm) Selector() byte {
	switch a {
	case AC:
		return 'a'
	case WMDet:
		return 'd'
	case WMProb:
		return 'p'
	case SH:
		return 'h'
	case BM:
		return 'b'
	default:
		return '?'
	}
}

// ParseSelector maps a CLI selector character back to an Algorithm.
// Returns an error wrapping ErrUnknownAlgorithm if selector is none of
// a|d|p|h|b.
func ParseSelector(selector byte) (Algorithm, error) {
	for _, a := range AllAlgorithms() {
		if a.Selector() == selector {
			return a, nil
		}
	}
	return 0, &Error{Kind: ErrUnknownAlgorithm, Message: fmt.Sprintf("unknown algorithm selector %q", selector)}
}
