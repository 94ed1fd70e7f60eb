package bm

import (
	"bytes"
	"context"
	"testing"

	"github.com/coregx/coregex-scan/analytics"
	"github.com/coregx/coregex-scan/pattern"
)

func benchCorpus() []byte {
	var buf bytes.Buffer
	chunks := []string{
		"normal traffic payload segment ", "nothing to see here ",
		"MALWARE signature fragment ", "background noise bytes ",
		"EVIL beacon attempt ", "more filler content here ",
		"TROJAN dropper stage ", "ROOTKIT persistence check ",
	}
	for buf.Len() < 1024*1024 {
		for _, c := range chunks {
			buf.WriteString(c)
		}
	}
	return buf.Bytes()
}

var benchText = benchCorpus()

func benchSet(b *testing.B, words ...string) *pattern.Set {
	b.Helper()
	pats := make([]pattern.Pattern, len(words))
	for i, w := range words {
		pats[i] = pattern.Pattern{Bytes: []byte(w)}
	}
	set, err := pattern.NewSet(pats)
	if err != nil {
		b.Fatalf("pattern.NewSet() error: %v", err)
	}
	return set
}

// BenchmarkScan_SmallSet is the baseline the other three engines are
// measured against: BM's per-pattern iterated scan cost scales with pattern
// count, unlike AC/WM/SH's single combined pass.
func BenchmarkScan_SmallSet(b *testing.B) {
	set := benchSet(b, "MALWARE", "EVIL", "TROJAN", "ROOTKIT")
	tbl, err := Preprocess(set)
	if err != nil {
		b.Fatalf("Preprocess() error: %v", err)
	}

	b.SetBytes(int64(len(benchText)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tbl.Scan(context.Background(), benchText, &analytics.Analytics{})
	}
}
