// Package corpus walks a directory of captured payload files and hands
// each one's full contents, single-threaded and one at a time, to a
// caller-supplied scan function.
//
// Payload files are treated as opaque byte blobs regardless of
// extension: this module has no packet dissection, so a ".pcap" file
// is scanned exactly like a plain ".txt" one. There is no concurrency
// across files; directories are walked and files read in the order
// filepath.WalkDir visits them.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// File pairs a payload file's path with its full contents.
type File struct {
	Path    string
	Content []byte
}

// Walk reads every regular file under root (recursively) and invokes
// fn once per file, in lexical order, passing the file's path and full
// contents. Walk stops and returns fn's error the first time it
// returns one.
func Walk(root string, fn func(File) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("corpus: walking %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("corpus: reading %s: %w", path, err)
		}

		return fn(File{Path: path, Content: content})
	})
}

// ReadAll reads every regular file under root (recursively) into
// memory up front and returns them sorted by path. Prefer Walk for
// large corpora; ReadAll is for callers (tests, small corpora) that
// want the whole set at once.
func ReadAll(root string) ([]File, error) {
	var files []File
	err := Walk(root, func(f File) error {
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
