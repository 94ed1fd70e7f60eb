package scan

import "testing"

func TestSelectorsAreUnique(t *testing.T) {
	seen := map[byte]Algorithm{}
	for _, alg := range AllAlgorithms() {
		s := alg.Selector()
		if other, ok := seen[s]; ok {
			t.Errorf("selector %q used by both %v and %v", s, alg, other)
		}
		seen[s] = alg
	}
}

func TestStringNamesAreDistinct(t *testing.T) {
	seen := map[string]Algorithm{}
	for _, alg := range AllAlgorithms() {
		s := alg.String()
		if other, ok := seen[s]; ok {
			t.Errorf("name %q used by both %v and %v", s, alg, other)
		}
		seen[s] = alg
	}
}
