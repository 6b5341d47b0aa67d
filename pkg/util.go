package dirdigest

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// ParseHumanSize parses human-readable size strings (e.g., "2MiB", "512k", "1G")
func ParseHumanSize(sizeStr string) (int, error) {
	sizeStr = strings.TrimSpace(sizeStr)
	if sizeStr == "" {
		return 0, fmt.Errorf("empty size string")
	}

	size, err := humanize.ParseBytes(sizeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", sizeStr, err)
	}
	if size == 0 {
		return 0, fmt.Errorf("size must be positive: %s", sizeStr)
	}
	if size > math.MaxInt32 {
		return 0, fmt.Errorf("size too large: %s", sizeStr)
	}

	return int(size), nil
}

// justify pads every path to width and appends gap spaces before the digest
func justify(entries []Entry, width, gap int) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		padding := width - utf8.RuneCountInString(e.Path)
		if padding < 0 {
			padding = 0
		}
		lines = append(lines, e.Path+strings.Repeat(" ", padding+gap)+e.Digest)
	}
	return lines
}

// longestPath returns the length in characters of the longest path across all entry sets
func longestPath(sets ...[]Entry) int {
	longest := 0
	for _, entries := range sets {
		for _, e := range entries {
			if n := utf8.RuneCountInString(e.Path); n > longest {
				longest = n
			}
		}
	}
	return longest
}
