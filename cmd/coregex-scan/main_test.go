package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestRunHappyPath(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "local.rules")
	writeFile(t, rulesPath, `alert tcp any any -> any any (content:"BAD"; sid:1;)`+"\n")

	corpusDir := filepath.Join(dir, "corpus")
	writeFile(t, filepath.Join(corpusDir, "sample.bin"), "THIS FILE IS BAD NEWS")

	code := run([]string{"-rules", rulesPath, "-corpus", corpusDir, "-a", "a", "-q"})
	if code != exitOK {
		t.Fatalf("run() exit code = %d, want %d", code, exitOK)
	}
}

func TestRunMissingFlags(t *testing.T) {
	code := run([]string{})
	if code != exitBadSelector {
		t.Fatalf("run() exit code = %d, want %d", code, exitBadSelector)
	}
}

func TestRunBadSelector(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "local.rules")
	writeFile(t, rulesPath, `alert tcp any any -> any any (content:"BAD"; sid:1;)`+"\n")
	corpusDir := filepath.Join(dir, "corpus")
	writeFile(t, filepath.Join(corpusDir, "sample.bin"), "x")

	code := run([]string{"-rules", rulesPath, "-corpus", corpusDir, "-a", "z"})
	if code != exitBadSelector {
		t.Fatalf("run() exit code = %d, want %d", code, exitBadSelector)
	}
}

func TestRunMissingRulesFile(t *testing.T) {
	dir := t.TempDir()
	corpusDir := filepath.Join(dir, "corpus")
	writeFile(t, filepath.Join(corpusDir, "sample.bin"), "x")

	code := run([]string{"-rules", filepath.Join(dir, "nonexistent.rules"), "-corpus", corpusDir})
	if code != exitRuleLoadFailure {
		t.Fatalf("run() exit code = %d, want %d", code, exitRuleLoadFailure)
	}
}

func TestRunMissingCorpusDir(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "local.rules")
	writeFile(t, rulesPath, `alert tcp any any -> any any (content:"BAD"; sid:1;)`+"\n")

	code := run([]string{"-rules", rulesPath, "-corpus", filepath.Join(dir, "nonexistent")})
	if code != exitCorpusFailure {
		t.Fatalf("run() exit code = %d, want %d", code, exitCorpusFailure)
	}
}
