package dirdigest

import (
	"sort"
)

// DuplicateGroup represents a group of files with the same digest
type DuplicateGroup struct {
	Digest string   `json:"digest"`
	Files  []string `json:"files"`
	Count  int      `json:"count"`
}

// Duplicates returns the groups of entries sharing a digest, sorted by digest. Files
// inside a group are sorted by path; digests held by a single entry are left out.
func (hl *HashList) Duplicates() []DuplicateGroup {
	defer VerboseEnter()()

	duplicates := make(map[string][]string)

	// The sorted view yields paths in order, so each group comes out sorted
	newSortedView(hl.entries, LeftContext).ForEach(func(entry Entry, context string) bool {
		duplicates[entry.Digest] = append(duplicates[entry.Digest], entry.Path)
		return true
	})

	var result []DuplicateGroup
	for digest, files := range duplicates {
		if len(files) > 1 {
			result = append(result, DuplicateGroup{
				Digest: digest,
				Files:  files,
				Count:  len(files),
			})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Digest < result[j].Digest
	})

	VerboseLog(2, "found %d duplicate groups among %d entries", len(result), len(hl.entries))
	return result
}
