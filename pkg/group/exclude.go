package group

import (
	"path/filepath"
	"strings"
)

// Filter returns files that match none of patterns, preserving order.
// Patterns support:
//   - basename globs: *.tmp, *.log
//   - directory prefixes: .git/, node_modules/
//   - path globs: build/*
//   - any-depth globs: **/testdata/*
func Filter(files []string, patterns []string) []string {
	if len(patterns) == 0 {
		return files
	}

	kept := make([]string, 0, len(files))
	for _, f := range files {
		if !excluded(f, patterns) {
			kept = append(kept, f)
		}
	}
	return kept
}

func excluded(path string, patterns []string) bool {
	normalizedPath := filepath.ToSlash(filepath.Clean(path))
	baseName := filepath.Base(path)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		normalizedPattern := filepath.ToSlash(pattern)

		// Directory pattern: any path inside that directory
		if strings.HasSuffix(normalizedPattern, "/") {
			dir := strings.TrimSuffix(normalizedPattern, "/")
			if strings.HasPrefix(normalizedPath, dir+"/") ||
				strings.Contains(normalizedPath, "/"+dir+"/") {
				return true
			}
			continue
		}

		if suffix, ok := strings.CutPrefix(normalizedPattern, "**/"); ok {
			if matchGlob(baseName, suffix) || matchTail(normalizedPath, suffix) {
				return true
			}
			continue
		}

		if strings.Contains(normalizedPattern, "/") {
			if matchGlob(normalizedPath, normalizedPattern) || matchTail(normalizedPath, normalizedPattern) {
				return true
			}
			continue
		}

		if matchGlob(baseName, normalizedPattern) {
			return true
		}
	}

	return false
}

// matchGlob performs glob matching, treating malformed patterns as no match
func matchGlob(name, pattern string) bool {
	matched, _ := filepath.Match(pattern, name)
	return matched
}

// matchTail reports whether the trailing path components match pattern,
// comparing as many components as the pattern has
func matchTail(path, pattern string) bool {
	n := strings.Count(pattern, "/") + 1
	parts := strings.Split(path, "/")
	if len(parts) < n {
		return false
	}
	return matchGlob(strings.Join(parts[len(parts)-n:], "/"), pattern)
}
