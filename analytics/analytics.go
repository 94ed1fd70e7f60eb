// Package analytics provides the per-run counter bundle every matching
// engine is handed by mutable reference during a scan, plus the
// throughput computation and pretty-printer that turn those counters
// into the system's observable output.
//
// An Analytics value is created once per scan, passed into exactly one
// engine's Scan call, and owned end to end by the dispatcher: no
// process-wide counters, no globals. This replaces the historical
// design's totalComparisons/g_wm_global_stats-style globals with a
// value threaded explicitly through the call graph.
package analytics

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// minElapsed is the floor applied to elapsed time before computing
// throughput. It prevents division by a near-zero duration from
// inflating throughput figures on trivial inputs while preserving the
// correct order of magnitude for genuinely fast scans.
const minElapsed = time.Millisecond

// Analytics is the mutable counter bundle for a single scan. All fields
// are exported because every engine increments them directly at the
// documented sites in its Scan method; Analytics itself has no
// synchronization and must not be shared across goroutines.
type Analytics struct {
	// Algorithm names the engine that produced these counters, e.g.
	// "aho-corasick" or "wu-manber (probabilistic)".
	Algorithm string

	// Common counters; each engine increments the ones that apply to it.
	Windows      uint64 // windows/positions examined (every engine)
	Comparisons  uint64 // byte-level comparisons performed (SH, BM)
	Transitions  uint64 // automaton state transitions followed (AC)
	FailSteps    uint64 // failure-link traversals; AC's completed goto function follows none at scan time, so no engine increments this
	Shifts       uint64 // shift operations performed (WM, SH, BM)
	Matches      uint64 // total matches reported (every engine)

	// Wu-Manber specific counters.
	SumShift        uint64 // sum of all shift distances (for avg shift)
	HashHits        uint64 // times a non-empty hash bucket was consulted
	ChainSteps      uint64 // linked-list traversal steps within buckets
	ExactMatches    uint64 // verified matches after chain traversal
	BloomChecks     uint64 // Bloom filter Check() calls
	BloomPass       uint64 // Bloom Check() calls that returned true
	VerifAfterBloom uint64 // full verifications attempted after a Bloom pass

	// BytesScanned is the length of the buffer handed to Scan.
	BytesScanned uint64

	// Elapsed is the wall-clock time spent in Scan only (not
	// preprocessing), measured with a monotonic clock.
	Elapsed time.Duration

	// SIMDAvailable reports whether AVX2 was detected on this CPU. The
	// WM and SH engines set it in Scan; AC and BM leave it false.
	// Informational only; scan correctness never depends on it.
	SIMDAvailable bool
}

// Throughput returns the scan's throughput in MiB/s, applying the 1ms
// floor to Elapsed before dividing. Returns 0 if BytesScanned is 0.
func (a *Analytics) Throughput() float64 {
	if a.BytesScanned == 0 {
		return 0
	}
	elapsed := a.Elapsed
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	mib := float64(a.BytesScanned) / (1024 * 1024)
	return mib / elapsed.Seconds()
}

// AvgShift returns the mean shift distance across all windows examined,
// or 0 if no windows were examined.
func (a *Analytics) AvgShift() float64 {
	if a.Windows == 0 {
		return 0
	}
	return float64(a.SumShift) / float64(a.Windows)
}

// BloomPassRate returns the fraction of Bloom checks that passed
// (returned true), or 0 if no checks were made.
func (a *Analytics) BloomPassRate() float64 {
	if a.BloomChecks == 0 {
		return 0
	}
	return float64(a.BloomPass) / float64(a.BloomChecks)
}

// field is one row of the formatted report: a label and the value to
// print, emitted only when nonzero.
type field struct {
	label string
	value uint64
}

// Format writes a human-readable analytics report to w, emitting only
// the counters that are nonzero for this run, matching the source's
// per-field "if (s->x) printf(...)" behavior translated into a single
// filtered pass over an ordered field list.
func (a *Analytics) Format(w io.Writer) {
	fmt.Fprintf(w, "\n[Performance Analytics: %s]\n", nonEmpty(a.Algorithm, "unknown"))

	rows := []field{
		{"Windows examined", a.Windows},
		{"Comparisons", a.Comparisons},
		{"State transitions", a.Transitions},
		{"Fail-link traversals", a.FailSteps},
		{"Shifts", a.Shifts},
		{"Matches (total)", a.Matches},
		{"Hash table hits", a.HashHits},
		{"Chain traversal steps", a.ChainSteps},
		{"Exact matches", a.ExactMatches},
		{"Bloom checks", a.BloomChecks},
		{"Bloom positive checks", a.BloomPass},
		{"Verified post-Bloom", a.VerifAfterBloom},
	}
	for _, r := range rows {
		if r.value != 0 {
			fmt.Fprintf(w, "  %-24s: %d\n", r.label, r.value)
		}
	}

	if a.Windows > 0 {
		fmt.Fprintf(w, "\n  Average shift length    : %.2f\n", a.AvgShift())
		if a.HashHits > 0 {
			fmt.Fprintf(w, "  Avg chain steps / hit   : %.2f\n", float64(a.ChainSteps)/float64(a.HashHits))
		}
		if a.BloomChecks > 0 {
			fmt.Fprintf(w, "  Bloom pass rate         : %.2f%%\n", a.BloomPassRate()*100)
		}
	}

	fmt.Fprintf(w, "\n  Elapsed time            : %s\n", a.Elapsed)
	fmt.Fprintf(w, "  Throughput              : %.2f MiB/s\n", a.Throughput())
	fmt.Fprintf(w, "  SIMD available          : %v\n", a.SIMDAvailable)
}

// String returns Format's output as a string.
func (a *Analytics) String() string {
	var b strings.Builder
	a.Format(&b)
	return b.String()
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
