// Package cpufeature centralizes the runtime CPU feature detection
// consulted by engine/wm and engine/sh.
//
// This follows the same pattern the regex engine this module was built
// from uses in its simd package: a package-level variable populated once
// at init from golang.org/x/sys/cpu. engine/wm and engine/sh copy AVX2
// into the analytics SIMDAvailable field; engine/wm's blockKey also
// checks it, on a 4-byte branch that the block-size cap of 3 keeps
// from being taken.
package cpufeature

import "golang.org/x/sys/cpu"

// AVX2 reports whether the current CPU supports AVX2. engine/wm and
// engine/sh report it as analytics.Analytics.SIMDAvailable.
var AVX2 = cpu.X86.HasAVX2

// SSSE3 reports whether the current CPU supports SSSE3.
var SSSE3 = cpu.X86.HasSSSE3

// Available reports whether either AVX2 or SSSE3 is present. The
// engines do not call it; they read AVX2 directly.
func Available() bool {
	return AVX2 || SSSE3
}
