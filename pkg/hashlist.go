package dirdigest

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Entry is one file of a hash list: its path relative to the tree root and the hex
// digest of its content
type Entry struct {
	Path   string
	Digest string
}

// Listing is what a comparison needs from the other side
type Listing interface {
	Entries() []Entry
	Label() string
}

// HashList is an ordered list of entries plus an optional origin label. The label is
// used in headers only and never takes part in comparisons.
type HashList struct {
	label     string
	algorithm string
	minGap    int
	entries   []Entry
}

// NewHashList creates an empty hash list tagged with label
func NewHashList(label string) *HashList {
	return &HashList{
		label:  label,
		minGap: DefaultMinGap,
	}
}

// Add appends an entry
func (hl *HashList) Add(path, digest string) {
	hl.entries = append(hl.entries, Entry{Path: path, Digest: digest})
}

// Entries returns a copy of the entries in insertion order
func (hl *HashList) Entries() []Entry {
	out := make([]Entry, len(hl.entries))
	copy(out, hl.entries)
	return out
}

// Len returns the number of entries
func (hl *HashList) Len() int {
	return len(hl.entries)
}

// Label returns the origin label, empty when unknown
func (hl *HashList) Label() string {
	return hl.label
}

// SetLabel sets the origin label
func (hl *HashList) SetLabel(label string) {
	hl.label = label
}

// Algorithm returns the name of the algorithm the digests were made with, if known
func (hl *HashList) Algorithm() string {
	return hl.algorithm
}

// SetAlgorithm records the algorithm name written in the file header
func (hl *HashList) SetAlgorithm(name string) {
	hl.algorithm = name
}

// SetMinGap sets the minimum number of spaces between the path column and the digest
func (hl *HashList) SetMinGap(gap int) {
	if gap < 1 {
		gap = 1
	}
	hl.minGap = gap
}

// Lines renders the entries in their current order as a two-column table: every path
// padded to the longest path, then the gap, then the digest.
func (hl *HashList) Lines() []string {
	return justify(hl.entries, longestPath(hl.entries), hl.minGap)
}

// Equals reports whether both lists hold the same multiset of (path, digest) pairs.
// Neither list is reordered.
func (hl *HashList) Equals(other Listing) bool {
	left := newSortedView(hl.entries, LeftContext).Entries()
	right := newSortedView(other.Entries(), RightContext).Entries()

	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

// Diff returns a unified diff, without context lines, between the sorted renderings of
// both lists. Both sides share one column width so only changed entries show up; the
// result is empty exactly when Equals is true.
func (hl *HashList) Diff(other Listing) (string, error) {
	left := newSortedView(hl.entries, LeftContext).Entries()
	right := newSortedView(other.Entries(), RightContext).Entries()
	width := longestPath(left, right)

	diff := difflib.UnifiedDiff{
		A:        withNewlines(justify(left, width, hl.minGap)),
		B:        withNewlines(justify(right, width, hl.minGap)),
		FromFile: displayLabel(hl.label),
		ToFile:   displayLabel(other.Label()),
		Context:  0,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to diff hash lists: %w", err)
	}
	return text, nil
}

// Compare returns IdenticalMessage when both lists are equal, otherwise a header naming
// the other list followed by the diff.
func (hl *HashList) Compare(other Listing) (string, error) {
	if hl.Equals(other) {
		return IdenticalMessage, nil
	}

	diff, err := hl.Diff(other)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(DifferentHeader, displayLabel(other.Label())) + diff, nil
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}

func displayLabel(label string) string {
	if strings.TrimSpace(label) == "" {
		return "<unknown>"
	}
	return label
}
