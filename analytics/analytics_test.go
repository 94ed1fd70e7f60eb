package analytics

import (
	"strings"
	"testing"
	"time"
)

func TestThroughputFloor(t *testing.T) {
	a := &Analytics{BytesScanned: 1024 * 1024, Elapsed: 10 * time.Microsecond}
	// Elapsed below the 1ms floor should be clamped, not divided as-is.
	got := a.Throughput()
	want := 1.0 / minElapsed.Seconds()
	if got != want {
		t.Errorf("Throughput() = %v, want %v", got, want)
	}
}

func TestThroughputZeroBytes(t *testing.T) {
	a := &Analytics{}
	if got := a.Throughput(); got != 0 {
		t.Errorf("Throughput() = %v, want 0", got)
	}
}

func TestAvgShift(t *testing.T) {
	a := &Analytics{Windows: 4, SumShift: 12}
	if got := a.AvgShift(); got != 3 {
		t.Errorf("AvgShift() = %v, want 3", got)
	}
}

func TestBloomPassRate(t *testing.T) {
	a := &Analytics{BloomChecks: 10, BloomPass: 3}
	if got := a.BloomPassRate(); got != 0.3 {
		t.Errorf("BloomPassRate() = %v, want 0.3", got)
	}
}

func TestFormatOmitsZeroFields(t *testing.T) {
	a := &Analytics{Algorithm: "test", Matches: 5, Elapsed: time.Second, BytesScanned: 100}
	out := a.String()

	if !strings.Contains(out, "Matches (total)") {
		t.Errorf("expected nonzero Matches to be printed, got:\n%s", out)
	}
	if strings.Contains(out, "Comparisons") {
		t.Errorf("expected zero-valued Comparisons to be omitted, got:\n%s", out)
	}
}
