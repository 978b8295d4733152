// Package docset expands and filters the wire document paths named on a
// command line, using doublestar glob semantics.
package docset

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob metacharacters that can be escaped with backslash in patterns.
const globEscapable = `*?[]{}\`

// Config configures a Selector.
type Config struct {
	// Excludes are glob patterns matched against expanded paths. A path
	// matching any exclude is dropped. Optional.
	Excludes []string

	// IncludeHidden controls whether hidden files are selected. Hidden
	// files have path segments starting with '.'.
	// Default: false (hidden files are skipped).
	IncludeHidden bool
}

// Errors returned by Selector operations.
var (
	// ErrNoPatterns is returned when no document patterns are provided.
	ErrNoPatterns = errors.New("at least one document pattern is required")

	// ErrInvalidPattern is returned when a pattern cannot be compiled.
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

// PatternError wraps pattern-related errors with context.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return "pattern " + e.Pattern + ": " + e.Err.Error()
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Selector expands document patterns against the filesystem and filters the
// results.
//
// The Selector is safe for concurrent use after creation.
type Selector struct {
	excludes      []string
	includeHidden bool
}

// New creates a new Selector from the given configuration.
//
// Exclude patterns are normalized to handle Windows-style backslash
// separators and validated up front, so Expand cannot fail on them later.
func New(cfg Config) (*Selector, error) {
	excludes := make([]string, 0, len(cfg.Excludes))
	for _, raw := range cfg.Excludes {
		normalized := NormalizePattern(raw)
		if !doublestar.ValidatePattern(normalized) {
			return nil, &PatternError{Pattern: raw, Err: ErrInvalidPattern}
		}
		excludes = append(excludes, normalized)
	}

	return &Selector{
		excludes:      excludes,
		includeHidden: cfg.IncludeHidden,
	}, nil
}

// Expand resolves the given patterns into a sorted, de-duplicated path list.
//
// Each pattern is a doublestar glob evaluated against the filesystem. A plain
// path without glob metacharacters is kept even when it does not exist, so
// the document loader can report it missing. Expanded paths matching an
// exclude pattern or containing a hidden segment are dropped.
func (s *Selector) Expand(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	seen := map[string]struct{}{}
	var paths []string
	for _, raw := range patterns {
		normalized := NormalizePattern(raw)
		if !doublestar.ValidatePattern(normalized) {
			return nil, &PatternError{Pattern: raw, Err: ErrInvalidPattern}
		}

		matches, err := doublestar.FilepathGlob(normalized)
		if err != nil {
			return nil, &PatternError{Pattern: raw, Err: err}
		}
		if len(matches) == 0 && !strings.ContainsAny(normalized, "*?[{") {
			matches = []string{filepath.FromSlash(normalized)}
		}

		for _, m := range matches {
			if !s.keep(m) {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// ExcludePatterns returns the normalized exclude patterns.
func (s *Selector) ExcludePatterns() []string {
	patterns := make([]string, len(s.excludes))
	copy(patterns, s.excludes)
	return patterns
}

// keep reports whether a path survives the exclude and hidden filters.
// Matching runs on the slash form so patterns behave the same on Windows.
func (s *Selector) keep(path string) bool {
	slashed := filepath.ToSlash(path)

	if !s.includeHidden && IsHidden(slashed) {
		return false
	}

	for _, exc := range s.excludes {
		if matchPattern(exc, slashed) {
			return false
		}
	}
	return true
}

// matchPattern matches a path against a doublestar pattern.
func matchPattern(pattern, path string) bool {
	matched, err := doublestar.Match(pattern, path)
	if err != nil {
		// Pattern was validated at construction time, so this shouldn't happen
		return false
	}
	return matched
}

// NormalizePattern converts a user-provided glob pattern to canonical form.
//
// Normalization rules:
//   - Unescaped backslashes converted to forward slashes (Windows compat)
//   - Escaped backslashes and glob metacharacters preserved (\*, \?, \[, etc.)
//   - Leading slash, trailing slash, and // sequences preserved
//
// This allows Windows users to write patterns like "docs\2026\**\*.json"
// while preserving escape semantics for literal matching.
func NormalizePattern(pattern string) string {
	if pattern == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(pattern))

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\\' && i+1 < len(runes) {
			next := runes[i+1]
			// Check if this is an escape sequence for a glob metacharacter
			if strings.ContainsRune(globEscapable, next) {
				// Preserve the escape sequence
				result.WriteRune('\\')
				result.WriteRune(next)
				i++ // Skip the next character
				continue
			}
			// Unescaped backslash - convert to forward slash
			result.WriteRune('/')
			continue
		}

		if r == '\\' {
			// Trailing backslash - convert to forward slash
			result.WriteRune('/')
			continue
		}

		result.WriteRune(r)
	}

	return result.String()
}

// IsHidden returns true if any path segment starts with a dot.
//
// Hidden segments follow Unix convention where files/directories starting
// with '.' are considered hidden. The path is expected in slash form.
func IsHidden(path string) bool {
	if path == "" {
		return false
	}

	segments := strings.Split(path, "/")
	for _, seg := range segments {
		if seg != "" && seg != "." && seg != ".." && strings.HasPrefix(seg, ".") {
			return true
		}
	}

	return false
}
