// Package ac implements the Aho-Corasick multi-pattern matching engine:
// a keyword trie completed into a full goto automaton via BFS-computed
// failure links, with output sets propagated down those links so every
// state's output set already contains everything its failure chain
// would contribute.
//
// States are addressed by int32 index into a flat arena rather than by
// pointer, so the automaton serializes trivially and has no lifetime
// aliasing across failure-link traversal — the representation the Build
// step of this engine was modeled on.
//
// Known limitation: every pattern is matched case-insensitively. Bytes
// are lower-cased (ASCII only) both when a pattern is inserted and when
// text is scanned, so the automaton is inherently nocase-for-all. A
// rule layer that needs a genuinely case-sensitive literal must route it
// to a different engine; AC here cannot mix case sensitivity within one
// automaton.
package ac

import (
	"context"
	"errors"

	"github.com/coregx/coregex-scan/analytics"
	"github.com/coregx/coregex-scan/engine"
	"github.com/coregx/coregex-scan/internal/conv"
	"github.com/coregx/coregex-scan/pattern"
)

// ErrEmptySet is returned by Build when given a nil or empty pattern set.
var ErrEmptySet = errors.New("ac: pattern set must not be empty")

const noChild int32 = -1

// rootState is the automaton's entry state. Its index is fixed at 0 and
// its failure link always points to itself.
const rootState int32 = 0

// state is one node in the automaton's arena. Trans is a complete goto
// function after Build returns: every byte maps to a defined state, so
// scanning never needs to branch on an undefined transition.
type state struct {
	trans  [256]int32
	fail   int32
	output []int32 // pattern ids terminating at or folded into this state
}

// Automaton is a built Aho-Corasick automaton ready to scan text.
type Automaton struct {
	states []state
	set    *pattern.Set
}

// Build constructs an Automaton from set. Every state's transition table
// is total and every output set is closed under failure links once Build
// returns; the returned Automaton has no further error path (scan cannot
// fail on any input).
func Build(set *pattern.Set) (*Automaton, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrEmptySet
	}

	a := &Automaton{
		states: make([]state, 1, set.Len()*4+1),
		set:    set,
	}
	a.states[0] = newState()
	a.states[0].fail = rootState

	for _, p := range set.All() {
		a.insert(p)
	}
	a.buildGotoAndFailureLinks()
	return a, nil
}

func newState() state {
	s := state{}
	for c := range s.trans {
		s.trans[c] = noChild
	}
	return s
}

// insert walks (creating as needed) the trie path for p's lower-cased
// bytes and records p's id in the terminal state's output set.
func (a *Automaton) insert(p pattern.Pattern) {
	cur := rootState
	for _, raw := range p.Bytes {
		c := lower(raw)
		next := a.states[cur].trans[c]
		if next == noChild {
			a.states = append(a.states, newState())
			next = conv.IntToInt32(len(a.states) - 1)
			a.states[cur].trans[c] = next
		}
		cur = next
	}
	a.states[cur].output = append(a.states[cur].output, conv.IntToInt32(p.ID))
}

// buildGotoAndFailureLinks performs the BFS completion pass: every trie
// edge gets a failure link, every missing root-level edge becomes a
// self-loop, and every other missing edge is filled in from the parent's
// failure state's (already complete) goto row, producing a total
// transition function.
func (a *Automaton) buildGotoAndFailureLinks() {
	queue := make([]int32, 0, len(a.states))

	for c := 0; c < 256; c++ {
		child := a.states[rootState].trans[c]
		if child == noChild {
			a.states[rootState].trans[c] = rootState
			continue
		}
		a.states[child].fail = rootState
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]

		for c := 0; c < 256; c++ {
			s := a.states[r].trans[c]
			if s == noChild {
				// No trie edge: borrow the goto value from this state's
				// failure state, which (by BFS order) is already total.
				a.states[r].trans[c] = a.states[a.states[r].fail].trans[c]
				continue
			}

			failState := a.states[a.states[r].fail].trans[c]
			a.states[s].fail = failState
			a.states[s].output = append(a.states[s].output, a.states[failState].output...)
			queue = append(queue, s)
		}
	}
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// Scan runs the automaton over text, reporting every occurrence of every
// pattern at every offset. Scan cannot fail: after Build, every
// transition is defined, so the inner loop is a direct table lookup with
// no undefined-transition branch.
func (a *Automaton) Scan(ctx context.Context, text []byte, stats *analytics.Analytics) []engine.Match {
	var matches []engine.Match
	s := rootState

	for i, raw := range text {
		if i%4096 == 0 {
			select {
			case <-ctx.Done():
				return matches
			default:
			}
		}

		c := lower(raw)
		s = a.states[s].trans[c]
		stats.Transitions++
		stats.Windows++

		for _, pid := range a.states[s].output {
			p := a.set.Get(int(pid))
			start := i - p.Length() + 1
			matches = append(matches, engine.Match{
				PatternID: int(pid),
				Start:     start,
				End:       i + 1,
			})
			stats.Matches++
		}
	}

	stats.BytesScanned += uint64(len(text))
	return matches
}

// HeapBytes returns the approximate heap footprint of the compiled
// automaton's state arena, for the dispatcher's memory-footprint report.
func (a *Automaton) HeapBytes() int {
	const perState = 256*4 + 4 // trans ([256]int32) + fail (int32)
	total := len(a.states) * perState
	for _, st := range a.states {
		total += len(st.output) * 4
	}
	return total
}

// StateCount returns the number of states in the built automaton,
// primarily useful for tests and diagnostics.
func (a *Automaton) StateCount() int {
	return len(a.states)
}

// Output returns the output set (pattern ids) of state q, for testing
// the output(q) >= output(fail(q)) invariant directly against the
// automaton's own internal state.
func (a *Automaton) Output(q int32) []int32 {
	return a.states[q].output
}

// Fail returns the failure link of state q.
func (a *Automaton) Fail(q int32) int32 {
	return a.states[q].fail
}
