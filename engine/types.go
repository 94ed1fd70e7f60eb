// Package engine defines the types shared by every matching engine
// implementation (ac, wm, sh, bm) and by the scan package's dispatcher,
// kept separate from both so neither side of that relationship needs to
// import the other.
package engine

import (
	"context"

	"github.com/coregx/coregex-scan/analytics"
)

// Match is a single reported occurrence of a pattern in a scanned
// buffer. Start and End are byte offsets into the scanned buffer with
// End exclusive, so text[Start:End] is the matched bytes.
type Match struct {
	PatternID int
	Start     int
	End       int
}

// Scanner is implemented by every compiled engine (the result of each
// package's Build/Preprocess step). Scan reports every occurrence of
// every pattern in text, incrementing stats at the sites documented in
// each engine's package doc, and cannot fail on any valid input: all
// error paths live in preprocessing, not here.
type Scanner interface {
	Scan(ctx context.Context, text []byte, stats *analytics.Analytics) []Match
	HeapBytes() int
}
