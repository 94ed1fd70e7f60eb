// Command coregex-scan loads Snort-style content patterns from a rules
// file, compiles them into one of four interchangeable matching
// engines, and scans every payload file under a corpus directory,
// reporting every match and the run's analytics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/coregx/coregex-scan/corpus"
	"github.com/coregx/coregex-scan/pattern"
	"github.com/coregx/coregex-scan/rules"
	"github.com/coregx/coregex-scan/scan"
)

// Exit codes.
const (
	exitOK              = 0
	exitRuleLoadFailure = 1
	exitCorpusFailure   = 2
	exitBadSelector     = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("coregex-scan", flag.ContinueOnError)
	selector := fs.String("a", "d", "algorithm selector: d (Wu-Manber det), p (Wu-Manber prob), a (Aho-Corasick), h (Set-Horspool), b (Boyer-Moore)")
	rulesPath := fs.String("rules", "", "path to a Snort-style .rules file (required)")
	corpusDir := fs.String("corpus", "", "path to a directory of payload files (required)")
	bloomFP := fs.Float64("wm-bloom-fp", 0.01, "Bloom filter false-positive rate for the probabilistic Wu-Manber variant")
	blockSize := fs.Int("wm-block-size", 0, "override the Wu-Manber block size heuristic (0 selects automatically)")
	quiet := fs.Bool("q", false, "suppress per-file analytics output, printing only matches")

	if err := fs.Parse(args); err != nil {
		return exitBadSelector
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *rulesPath == "" || *corpusDir == "" {
		fmt.Fprintln(os.Stderr, "usage: coregex-scan -rules <file> -corpus <dir> [-a d|p|a|h|b]")
		fs.PrintDefaults()
		return exitBadSelector
	}

	if len(*selector) != 1 {
		logger.Error("algorithm selector must be a single character", "selector", *selector)
		return exitBadSelector
	}
	alg, err := scan.ParseSelector((*selector)[0])
	if err != nil {
		logger.Error("invalid algorithm selector", "selector", *selector, "error", err)
		return exitBadSelector
	}

	patterns, err := rules.ParseFile(*rulesPath)
	if err != nil {
		logger.Error("failed to load rules", "path", *rulesPath, "error", err)
		return exitRuleLoadFailure
	}
	if len(patterns) == 0 {
		logger.Error("rules file contained no content patterns", "path", *rulesPath)
		return exitRuleLoadFailure
	}

	set, err := pattern.NewSet(patterns)
	if err != nil {
		logger.Error("invalid pattern set", "error", err)
		return exitRuleLoadFailure
	}

	cfg := scan.DefaultConfig()
	cfg.WMBloomFPRate = *bloomFP
	cfg.WMBlockSize = *blockSize

	dispatcher, err := scan.Build(alg, set, cfg)
	if err != nil {
		logger.Error("failed to build matching engine", "algorithm", alg, "error", err)
		return exitRuleLoadFailure
	}
	logger.Info("loaded patterns", "count", set.Len(), "algorithm", alg.String())
	logger.Info("compiled engine tables", "heap_bytes", dispatcher.HeapBytes())

	ctx := context.Background()
	totalMatches := 0

	err = corpus.Walk(*corpusDir, func(f corpus.File) error {
		result := dispatcher.Scan(ctx, f.Content)
		totalMatches += len(result.Matches)

		fmt.Printf("\n=== %s (%s) ===\n", f.Path, alg.String())
		for _, m := range result.Matches {
			p := set.Get(m.PatternID)
			fmt.Printf("  [%d:%d] sid=%s msg=%q pattern=%q\n", m.Start, m.End, p.SID, p.Msg, p.Bytes)
		}
		if !*quiet {
			result.Stats.Format(os.Stdout)
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to scan corpus", "dir", *corpusDir, "error", err)
		return exitCorpusFailure
	}

	logger.Info("scan complete", "total_matches", totalMatches)
	return exitOK
}
