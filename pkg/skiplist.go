package dirdigest

import (
	"strings"

	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// Context labels for entries held in a sortedView
const (
	LeftContext  = "left"
	RightContext = "right"
)

// viewItem is an entry plus its insertion sequence, which keeps duplicate
// (path, digest) pairs distinct so the view behaves as a multiset
type viewItem struct {
	Entry
	seq int
}

type entryKey struct {
	Path   string
	Digest string
	Seq    int
}

// sortedView is the canonical ordering of a hash list: entries sorted by path, then by
// digest. It holds pointers into a private copy of the entries, never the caller's slice.
type sortedView struct {
	items    []viewItem
	skiplist *zcsl.ZeroCopySkiplist[viewItem, entryKey, string]
}

// newSortedView builds a sorted view of entries tagged with context
func newSortedView(entries []Entry, context string) *sortedView {
	getKeyFromItem := func(item *viewItem) entryKey {
		return entryKey{Path: item.Path, Digest: item.Digest, Seq: item.seq}
	}

	getItemSize := func(item *viewItem) int {
		return len(item.Path) + len(item.Digest)
	}

	cmpKey := func(a, b entryKey) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		if c := strings.Compare(a.Digest, b.Digest); c != 0 {
			return c
		}
		return a.Seq - b.Seq
	}

	sv := &sortedView{
		items: make([]viewItem, len(entries)),
		skiplist: zcsl.MakeZeroCopySkiplist[viewItem, entryKey, string](
			skiplistMaxLevels,
			getKeyFromItem,
			getItemSize,
			cmpKey,
		),
	}

	for i, e := range entries {
		sv.items[i] = viewItem{Entry: e, seq: i}
		sv.skiplist.Insert(&sv.items[i], context)
	}

	return sv
}

// ForEach iterates through all entries in sorted order until callback returns false
func (sv *sortedView) ForEach(callback func(entry Entry, context string) bool) {
	for current := sv.skiplist.First(); current != nil; current = current.Next() {
		if !callback(current.Item().Entry, current.Context()) {
			break
		}
	}
}

// Entries returns the sorted entries
func (sv *sortedView) Entries() []Entry {
	out := make([]Entry, 0, sv.Length())
	sv.ForEach(func(entry Entry, context string) bool {
		out = append(out, entry)
		return true
	})
	return out
}

// Length returns the number of entries in the view
func (sv *sortedView) Length() int {
	return sv.skiplist.Length()
}
