package wm

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

func BenchmarkScan_Deterministic(b *testing.B) {
	set := benchSet(b, "MALWARE", "EVIL", "TROJAN", "ROOTKIT")
	tbl, err := Preprocess(set, Config{})
	if err != nil {
		b.Fatalf("Preprocess() error: %v", err)
	}

	b.SetBytes(int64(len(benchText)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tbl.Scan(context.Background(), benchText, &analytics.Analytics{})
	}
}

func BenchmarkScan_Probabilistic(b *testing.B) {
	set := benchSet(b, "MALWARE", "EVIL", "TROJAN", "ROOTKIT")
	tbl, err := Preprocess(set, Config{UseBloom: true, FalsePositiveRate: 0.01})
	if err != nil {
		b.Fatalf("Preprocess() error: %v", err)
	}

	b.SetBytes(int64(len(benchText)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tbl.Scan(context.Background(), benchText, &analytics.Analytics{})
	}
}

func BenchmarkScan_LargePatternSet(b *testing.B) {
	words := make([]string, 2000)
	for i := range words {
		words[i] = randomWord(i)
	}
	set := benchSet(b, words...)

	tbl, err := Preprocess(set, Config{})
	if err != nil {
		b.Fatalf("Preprocess() error: %v", err)
	}

	b.SetBytes(int64(len(benchText)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tbl.Scan(context.Background(), benchText, &analytics.Analytics{})
	}
}

// randomWord deterministically derives an 8-byte printable string from i so
// the large-pattern-set benchmark is reproducible without importing math/rand.
func randomWord(i int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	buf := make([]byte, 8)
	x := uint32(i*2654435761 + 1)
	for j := range buf {
		x = x*1103515245 + 12345
		buf[j] = alphabet[(x>>16)%uint32(len(alphabet))]
	}
	return string(buf)
}
