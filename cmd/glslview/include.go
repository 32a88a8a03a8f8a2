package main

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var includeRe = regexp.MustCompile(`(?im)^#pragma\s+use\s+"([^"]+)"\s*$`)

// loadSource reads a shader source file, recursively resolving
// `#pragma use "file"` includes. Included files are concatenated ahead
// of the file that includes them. The returned list holds every file
// involved, for watching; the root file is last.
func loadSource(filename string) (string, []string, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return "", nil, err
	}
	files, err := resolveIncludes(abs, nil)
	if err != nil {
		return "", nil, err
	}
	parts := make([]string, 0, len(files))
	for _, f := range files {
		buf, err := os.ReadFile(f)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, string(buf))
	}
	return strings.Join(parts, "\n\n"), files, nil
}

// resolveIncludes walks the include graph depth-first. A file already in
// the resolved list is skipped, which both deduplicates shared includes
// and stops include cycles.
func resolveIncludes(filename string, resolved []string) ([]string, error) {
	for _, f := range resolved {
		if f == filename {
			return resolved, nil
		}
	}
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	// Reserve this file's spot before recursing so cycles through it
	// terminate, but append it after its includes below.
	guard := append(resolved, filename)
	for _, m := range includeRe.FindAllStringSubmatch(string(buf), -1) {
		included := m[1]
		if !filepath.IsAbs(included) {
			included = filepath.Join(filepath.Dir(filename), included)
		} else {
			included = filepath.Clean(included)
		}
		guard, err = resolveIncludes(included, guard)
		if err != nil {
			return nil, err
		}
	}
	// Move this file from its guard position to the end.
	out := make([]string, 0, len(guard))
	for _, f := range guard {
		if f != filename {
			out = append(out, f)
		}
	}
	return append(out, filename), nil
}
