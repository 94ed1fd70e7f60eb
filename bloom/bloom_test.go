package bloom

import (
	"fmt"
	"testing"
)

func TestNoFalseNegatives(t *testing.T) {
	f := New(1000, 0.01)

	added := make([][]byte, 0, 1000)
	for i := 0; i < 1000; i++ {
		v := []byte(fmt.Sprintf("item-%d", i))
		f.Add(v)
		added = append(added, v)
	}

	for _, v := range added {
		if !f.Check(v) {
			t.Fatalf("Check(%q) = false after Add(%q); Bloom filters must never have false negatives", v, v)
		}
	}
}

func TestFalsePositiveRateIsBounded(t *testing.T) {
	const n = 2000
	const p = 0.01

	f := New(n, p)
	for i := 0; i < n; i++ {
		f.Add([]byte(fmt.Sprintf("present-%d", i)))
	}

	falsePositives := 0
	trials := 10000
	for i := 0; i < trials; i++ {
		v := []byte(fmt.Sprintf("absent-%d", i))
		if f.Check(v) {
			falsePositives++
		}
	}

	rate := float64(falsePositives) / float64(trials)
	// Generous margin: classical sizing targets p, but variance near the
	// boundary means we only assert it stays within a small multiple.
	if rate > p*5 {
		t.Errorf("observed false-positive rate %.4f exceeds 5x target %.4f", rate, p)
	}
}

func TestCheckUnknownValue(t *testing.T) {
	f := New(10, 0.01)
	f.Add([]byte("known"))

	// False positives are allowed in general, but with one element in a
	// 96-bit, 7-hash filter this particular never-added value misses.
	if f.Size() == 0 {
		t.Fatal("Size() returned 0")
	}
	if f.Check([]byte("unknown")) {
		t.Errorf("Check(%q) = true, want false for a value never added", "unknown")
	}
}

func TestHeapBytes(t *testing.T) {
	f := New(100, 0.01)
	if f.HeapBytes() <= 0 {
		t.Errorf("HeapBytes() = %d, want > 0", f.HeapBytes())
	}
}

func TestNewPanicsOnInvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		n    int
		p    float64
	}{
		{"zero n", 0, 0.01},
		{"negative n", -1, 0.01},
		{"zero p", 10, 0},
		{"p >= 1", 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("New(%d, %v) did not panic", tt.n, tt.p)
				}
			}()
			New(tt.n, tt.p)
		})
	}
}
