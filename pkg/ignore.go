package dirdigest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreMatcher holds the regular expressions of paths excluded from a walk.
// A nil *IgnoreMatcher ignores nothing.
type IgnoreMatcher struct {
	ignorePath string
	patterns   []*regexp.Regexp
}

// NewIgnoreMatcher compiles patterns into a matcher
func NewIgnoreMatcher(patterns ...string) (*IgnoreMatcher, error) {
	im := &IgnoreMatcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		if err := im.AddPattern(p); err != nil {
			return nil, err
		}
	}
	return im, nil
}

// LoadIgnoreFile reads one regular expression per line from ignorePath.
// Empty lines and lines starting with # are skipped.
func LoadIgnoreFile(ignorePath string) (*IgnoreMatcher, error) {
	file, err := os.Open(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer file.Close()

	im := &IgnoreMatcher{ignorePath: ignorePath}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}

		pattern, err := regexp.Compile(line)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern at line %d: %s - %w", lineNum, line, err)
		}
		im.patterns = append(im.patterns, pattern)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ignore file: %w", err)
	}

	VerboseLog(2, "loaded %d ignore patterns from %s", len(im.patterns), ignorePath)
	return im, nil
}

// AddPattern adds a new ignore pattern
func (im *IgnoreMatcher) AddPattern(patternStr string) error {
	pattern, err := regexp.Compile(patternStr)
	if err != nil {
		return fmt.Errorf("invalid regex pattern: %s - %w", patternStr, err)
	}

	im.patterns = append(im.patterns, pattern)
	return nil
}

// ShouldIgnore reports whether a slash-separated relative path matches any pattern.
// Directories are tested with a trailing slash so "build/" style patterns prune them.
func (im *IgnoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if im == nil || len(im.patterns) == 0 {
		return false
	}

	normalisedPath := filepath.ToSlash(relativePath)
	if isDir {
		normalisedPath += "/"
	}

	for _, pattern := range im.patterns {
		if pattern.MatchString(normalisedPath) {
			return true
		}
	}
	return false
}

// HasPatterns returns true if there are any ignore patterns loaded
func (im *IgnoreMatcher) HasPatterns() bool {
	return im != nil && len(im.patterns) > 0
}

// Patterns returns the source text of every pattern
func (im *IgnoreMatcher) Patterns() []string {
	if im == nil {
		return nil
	}
	out := make([]string, len(im.patterns))
	for i, p := range im.patterns {
		out[i] = p.String()
	}
	return out
}

// GetIgnoreFilePath returns the path the patterns were loaded from, if any
func (im *IgnoreMatcher) GetIgnoreFilePath() string {
	if im == nil {
		return ""
	}
	return im.ignorePath
}
