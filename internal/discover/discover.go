// Package discover expands input glob patterns into the list of stylesheet
// sources to compile.
package discover

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultGitIgnore is the ignore file consulted when none is configured.
const DefaultGitIgnore = ".gitignore"

// Stats tracks discovery results.
type Stats struct {
	FilesDiscovered int // Total files matched by the patterns
	FilesSkipped    int // Files skipped as editor artifacts or gitignored
	FilesSelected   int // Files returned for compilation
}

// Files expands patterns (doublestar syntax, e.g. "src/**/*.css.tmpl") to
// a de-duplicated list of regular files with forward-slash separators, in
// pattern order.
//
// Relative matches are filtered through the ignore file at gitignorePath.
// An empty gitignorePath means DefaultGitIgnore, and a missing file
// disables the filter.
func Files(patterns []string, gitignorePath string) ([]string, Stats, error) {
	gi := loadGitIgnore(gitignorePath)

	var files []string
	seen := make(map[string]bool)
	stats := Stats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			match = filepath.ToSlash(match)
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}

			seen[match] = true
			stats.FilesDiscovered++

			if ShouldSkip(match, gi) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesSelected++
		}
	}

	return files, stats, nil
}

// loadGitIgnore compiles the ignore file, or returns nil when it cannot be read.
func loadGitIgnore(path string) *ignore.GitIgnore {
	if path == "" {
		path = DefaultGitIgnore
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		// no ignore file is fine
		return nil
	}
	return gi
}

// ShouldSkip determines if a file should be excluded from compilation.
//
// Two-layer filtering:
// 1. Pattern check (fast): Skip editor swap and backup files
// 2. Gitignore check: Skip gitignored files (only for relative paths)
func ShouldSkip(path string, gi *ignore.GitIgnore) bool {
	if IsEditorArtifact(path) {
		return true
	}

	// Absolute paths (like /tmp/...) should not be affected by project gitignore
	if gi != nil && !filepath.IsAbs(path) && gi.MatchesPath(path) {
		return true
	}

	return false
}

// IsEditorArtifact reports swap, backup and lock files left behind by editors.
func IsEditorArtifact(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, "~") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx")
}
