package scan

// Config controls Build, covering the knobs specific to the Wu-Manber
// engine (the block size for both variants, the Bloom rate for the
// probabilistic one); the other three engines take no configuration.
type Config struct {
	// WMBloomFPRate is the target false-positive rate for the Bloom
	// filter used by the WMProb algorithm. Ignored by every other
	// algorithm. Defaults to 0.01 if <= 0.
	WMBloomFPRate float64

	// WMBlockSize overrides the Wu-Manber block-size heuristic when >
	// 0. Ignored by every other algorithm.
	WMBlockSize int
}

// DefaultConfig returns a Config with the default Bloom false-positive
// rate and automatic block-size selection.
func DefaultConfig() Config {
	return Config{
		WMBloomFPRate: 0.01,
		WMBlockSize:   0,
	}
}
