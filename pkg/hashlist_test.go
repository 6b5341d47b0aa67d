package dirdigest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestList(label string, pairs ...string) *HashList {
	hl := NewHashList(label)
	for i := 0; i+1 < len(pairs); i += 2 {
		hl.Add(pairs[i], pairs[i+1])
	}
	return hl
}

func TestHashListLines(t *testing.T) {
	hl := newTestList("root", "b.txt", "22", "a", "11", "sub/long.txt", "33")

	assert.Equal(t, []string{
		"b.txt            22",
		"a                11",
		"sub/long.txt     33",
	}, hl.Lines(), "lines keep insertion order, padded to the longest path plus the gap")

	hl.SetMinGap(1)
	assert.Equal(t, "a            11", hl.Lines()[1])

	hl.SetMinGap(0)
	assert.Equal(t, "a            11", hl.Lines()[1], "gap never drops below one space")

	assert.Empty(t, NewHashList("").Lines())
}

func TestHashListAccessors(t *testing.T) {
	hl := newTestList("root", "a", "1")
	assert.Equal(t, "root", hl.Label())
	assert.Equal(t, 1, hl.Len())

	hl.SetLabel("other")
	hl.SetAlgorithm("sha1")
	assert.Equal(t, "other", hl.Label())
	assert.Equal(t, "sha1", hl.Algorithm())

	entries := hl.Entries()
	entries[0].Digest = "changed"
	assert.Equal(t, "1", hl.Entries()[0].Digest, "Entries returns a copy")
}

func TestHashListEquals(t *testing.T) {
	base := newTestList("one", "a", "1", "b", "2", "c/d", "3")

	tests := []struct {
		name  string
		other *HashList
		equal bool
	}{
		{"same order", newTestList("x", "a", "1", "b", "2", "c/d", "3"), true},
		{"reordered", newTestList("y", "c/d", "3", "a", "1", "b", "2"), true},
		{"label ignored", newTestList("", "b", "2", "c/d", "3", "a", "1"), true},
		{"changed digest", newTestList("one", "a", "1", "b", "9", "c/d", "3"), false},
		{"missing entry", newTestList("one", "a", "1", "b", "2"), false},
		{"extra entry", newTestList("one", "a", "1", "b", "2", "c/d", "3", "e", "4"), false},
		{"duplicate vs distinct", newTestList("one", "a", "1", "a", "1", "c/d", "3"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.other.Entries()
			assert.Equal(t, tt.equal, base.Equals(tt.other))
			assert.Equal(t, tt.equal, tt.other.Equals(base), "equality is symmetric")
			assert.Equal(t, before, tt.other.Entries(), "Equals must not reorder")
		})
	}

	assert.True(t, base.Equals(base))
	assert.Equal(t, []Entry{{"a", "1"}, {"b", "2"}, {"c/d", "3"}}, base.Entries())
}

func TestHashListEqualsMultiset(t *testing.T) {
	left := newTestList("", "a", "1", "a", "2", "a", "1")
	right := newTestList("", "a", "2", "a", "1", "a", "1")
	assert.True(t, left.Equals(right))

	right = newTestList("", "a", "2", "a", "2", "a", "1")
	assert.False(t, left.Equals(right))
}

func TestHashListDiff(t *testing.T) {
	left := newTestList("dir1", "a.txt", "111", "b.txt", "222", "c.txt", "333")

	t.Run("self", func(t *testing.T) {
		diff, err := left.Diff(left)
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("reordered with a different width", func(t *testing.T) {
		right := newTestList("dir2", "c.txt", "333", "b.txt", "222", "a.txt", "111")
		diff, err := left.Diff(right)
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("changed entry", func(t *testing.T) {
		right := newTestList("dir2", "a.txt", "111", "b.txt", "999", "c.txt", "333")
		diff, err := left.Diff(right)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(diff, "--- dir1\n+++ dir2\n"), diff)
		assert.Contains(t, diff, "-b.txt     222\n")
		assert.Contains(t, diff, "+b.txt     999\n")
		assert.NotContains(t, diff, "a.txt")
		assert.NotContains(t, diff, "c.txt")
	})

	t.Run("longer path on one side only", func(t *testing.T) {
		right := newTestList("dir2", "a.txt", "111", "b.txt", "222", "c.txt", "333", "sub/new.txt", "444")
		diff, err := left.Diff(right)
		require.NoError(t, err)

		assert.Contains(t, diff, "+sub/new.txt     444\n")
		assert.NotContains(t, diff, "-a.txt", "shared column width keeps unchanged lines out of the diff")
	})

	t.Run("unknown labels", func(t *testing.T) {
		right := newTestList("", "a.txt", "000")
		diff, err := NewHashList("").Diff(right)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(diff, "--- <unknown>\n+++ <unknown>\n"), diff)
	})
}

func TestHashListCompare(t *testing.T) {
	left := newTestList("dir1", "a.txt", "111", "b.txt", "222")

	report, err := left.Compare(newTestList("dir2", "b.txt", "222", "a.txt", "111"))
	require.NoError(t, err)
	assert.Equal(t, IdenticalMessage, report)

	report, err = left.Compare(newTestList("dir2", "a.txt", "111"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report, "The hash lists differ! Differences with dir2:\n--- dir1\n+++ dir2\n"), report)
	assert.Contains(t, report, "-b.txt     222\n")
}

func TestSortedView(t *testing.T) {
	entries := []Entry{{"b", "2"}, {"a", "9"}, {"a", "1"}, {"a", "1"}}
	sv := newSortedView(entries, LeftContext)

	assert.Equal(t, 4, sv.Length())
	assert.Equal(t, []Entry{{"a", "1"}, {"a", "1"}, {"a", "9"}, {"b", "2"}}, sv.Entries())
	assert.Equal(t, []Entry{{"b", "2"}, {"a", "9"}, {"a", "1"}, {"a", "1"}}, entries, "source slice untouched")

	var visited int
	sv.ForEach(func(entry Entry, context string) bool {
		assert.Equal(t, LeftContext, context)
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}
