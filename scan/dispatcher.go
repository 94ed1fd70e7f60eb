// Package scan ties a chosen matching engine to a pattern set behind a
// single uniform interface. A Dispatcher owns exactly one compiled
// engine for the lifetime it was built for; switching algorithms means
// building a new Dispatcher, not reconfiguring an existing one.
//
// There is no engine inheritance or interface hierarchy here: Build is
// a flat switch over the closed Algorithm enum, and every engine
// package (ac, wm, sh, bm) is otherwise unaware of this package's
// existence, avoiding the import cycle a shared base type would force.
package scan

import (
	"context"
	"time"

	"github.com/coregx/coregex-scan/analytics"
	"github.com/coregx/coregex-scan/engine"
	"github.com/coregx/coregex-scan/engine/ac"
	"github.com/coregx/coregex-scan/engine/bm"
	"github.com/coregx/coregex-scan/engine/sh"
	"github.com/coregx/coregex-scan/engine/wm"
	"github.com/coregx/coregex-scan/pattern"
)

// Match is a single reported pattern occurrence. It is an alias for
// engine.Match so callers never need to import the engine package
// themselves.
type Match = engine.Match

// ScanResult is the outcome of one Dispatcher.Scan call.
type ScanResult struct {
	Matches []Match
	Stats   *analytics.Analytics
}

// Dispatcher wraps one compiled engine, selected and built once by
// Build, and scanned any number of times by Scan.
type Dispatcher struct {
	alg    Algorithm
	engine engine.Scanner
}

// Build compiles set into the engine alg selects, using cfg for the
// algorithms that take configuration (WMDet and WMProb). Returns
// an *Error wrapping ErrEmptyPatternSet if set is nil or empty,
// ErrPreprocess if the underlying engine's preprocessing step fails,
// or ErrUnknownAlgorithm if alg is outside the closed enum.
func Build(alg Algorithm, set *pattern.Set, cfg Config) (*Dispatcher, error) {
	if set == nil || set.Len() == 0 {
		return nil, &Error{Kind: ErrEmptyPatternSet, Message: "pattern set must not be empty"}
	}

	var eng engine.Scanner
	var err error

	switch alg {
	case AC:
		eng, err = ac.Build(set)
	case WMDet:
		eng, err = wm.Preprocess(set, wm.Config{BlockSize: cfg.WMBlockSize})
	case WMProb:
		eng, err = wm.Preprocess(set, wm.Config{
			UseBloom:          true,
			FalsePositiveRate: cfg.WMBloomFPRate,
			BlockSize:         cfg.WMBlockSize,
		})
	case SH:
		eng, err = sh.Preprocess(set)
	case BM:
		eng, err = bm.Preprocess(set)
	default:
		return nil, &Error{Kind: ErrUnknownAlgorithm, Message: alg.String()}
	}

	if err != nil {
		return nil, &Error{Kind: ErrPreprocess, Message: "engine preprocessing failed", Cause: err}
	}

	return &Dispatcher{alg: alg, engine: eng}, nil
}

// Scan runs the compiled engine over text, reporting every occurrence
// of every pattern along with the run's analytics. Elapsed is measured
// around the engine's Scan call only, excluding Build.
func (d *Dispatcher) Scan(ctx context.Context, text []byte) ScanResult {
	stats := &analytics.Analytics{Algorithm: d.alg.String()}

	start := time.Now()
	matches := d.engine.Scan(ctx, text, stats)
	stats.Elapsed = time.Since(start)

	return ScanResult{Matches: matches, Stats: stats}
}

// Algorithm returns the algorithm this Dispatcher was built with.
func (d *Dispatcher) Algorithm() Algorithm {
	return d.alg
}

// HeapBytes returns the approximate heap footprint of the compiled
// engine's tables.
func (d *Dispatcher) HeapBytes() int {
	return d.engine.HeapBytes()
}
