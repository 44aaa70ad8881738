package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// aggregateOptions controls traversal behavior for a single path.
type aggregateOptions struct {
	Recursive   bool
	Dereference bool     // count targets of symlinks pointing at regular files
	Excludes    []string // glob patterns matched against base names
	IgnoreFile  string   // optional gitignore-style exclusion file
}

// aggregate computes the total size and file count under path. For a regular
// file the result is its own length; for a directory it is the sum over
// direct children, or over the whole subtree in recursive mode. Entries that
// fail to stat or list are skipped and counted in Skipped rather than
// aborting the aggregation.
func aggregate(path string, opts aggregateOptions) (SizeResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SizeResult{}, fmt.Errorf("path does not exist: %s", path)
		}
		return SizeResult{}, fmt.Errorf("cannot access %s: %w", path, err)
	}

	if !info.IsDir() {
		return SizeResult{TotalBytes: uint64(info.Size()), FileCount: 1}, nil
	}

	matcher, err := loadIgnoreFile(opts.IgnoreFile, path)
	if err != nil {
		return SizeResult{}, err
	}

	if opts.Recursive {
		return walkTree(path, opts, matcher)
	}
	return listDir(path, opts, matcher)
}

// listDir sums regular files that are direct children of dir. Subdirectories
// are neither descended nor counted.
func listDir(dir string, opts aggregateOptions, matcher gitignore.IgnoreMatcher) (SizeResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return SizeResult{}, fmt.Errorf("cannot access directory %s: %w", dir, err)
	}

	var res SizeResult
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		skip, err := excludeEntry(entry.Name(), false, full, opts, matcher)
		if err != nil {
			return SizeResult{}, err
		}
		if skip {
			continue
		}
		size, counted, failed := entrySize(full, entry, opts.Dereference)
		if failed {
			res.Skipped++
			continue
		}
		if counted {
			res.TotalBytes += uint64(size)
			res.FileCount++
		}
	}
	return res, nil
}

// walkTree depth-first walks root, summing every regular file at any depth.
// Per-entry errors degrade the result instead of stopping the walk. Symlinked
// directories are not followed, so the walk cannot cycle.
func walkTree(root string, opts aggregateOptions, matcher gitignore.IgnoreMatcher) (SizeResult, error) {
	var res SizeResult
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("cannot access directory %s: %w", root, err)
			}
			res.Skipped++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		isDir := d.IsDir()
		skip, err := excludeEntry(d.Name(), isDir, path, opts, matcher)
		if err != nil {
			return err
		}
		if skip {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}
		if isDir {
			return nil
		}

		size, counted, failed := entrySize(path, d, opts.Dereference)
		if failed {
			res.Skipped++
			return nil
		}
		if counted {
			res.TotalBytes += uint64(size)
			res.FileCount++
		}
		return nil
	})
	if err != nil {
		return SizeResult{}, err
	}
	return res, nil
}

// entrySize resolves the byte size of a directory entry. Symlinks are counted
// by target size only when dereferencing is on and the target is a regular
// file; other irregular entries (sockets, devices, symlinked directories) are
// never counted. failed reports an access error on the entry itself.
func entrySize(path string, d fs.DirEntry, deref bool) (size int64, counted, failed bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		if !deref {
			return 0, false, false
		}
		info, err := os.Stat(path)
		if err != nil {
			return 0, false, true
		}
		if !info.Mode().IsRegular() {
			return 0, false, false
		}
		return info.Size(), true, false
	}
	if !d.Type().IsRegular() {
		return 0, false, false
	}
	info, err := d.Info()
	if err != nil {
		return 0, false, true
	}
	return info.Size(), true, false
}

// excludeEntry reports whether an entry is left out of the count based on the
// -e glob patterns and the optional ignore file.
func excludeEntry(name string, isDir bool, path string, opts aggregateOptions, matcher gitignore.IgnoreMatcher) (bool, error) {
	for _, pattern := range opts.Excludes {
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	if matcher != nil && matcher.Match(path, isDir) {
		return true, nil
	}
	return false, nil
}

// loadIgnoreFile builds a matcher from a gitignore-style file, anchored at the
// directory being aggregated.
func loadIgnoreFile(path, base string) (gitignore.IgnoreMatcher, error) {
	if path == "" {
		return nil, nil
	}
	matcher, err := gitignore.NewGitIgnore(path, base)
	if err != nil {
		return nil, fmt.Errorf("cannot read ignore file %s: %w", path, err)
	}
	return matcher, nil
}

// parsePatterns splits a comma-separated string of patterns into a slice.
func parsePatterns(patterns string) []string {
	if patterns == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
