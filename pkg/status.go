package dirdigest

// FileStatus represents the status of a file between two hash lists
type FileStatus int

const (
	StatusUnchanged FileStatus = iota
	StatusModified
	StatusAdded
	StatusDeleted
)

// String returns the one-letter marker used in summaries
func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "M"
	case StatusAdded:
		return "A"
	case StatusDeleted:
		return "D"
	default:
		return " "
	}
}

// StatusResult lists the paths that differ between two hash lists
type StatusResult struct {
	Modified []string `json:"modified"`
	Added    []string `json:"added"`
	Deleted  []string `json:"deleted"`
}

// HasChanges returns true if any path differs
func (r *StatusResult) HasChanges() bool {
	return r.TotalChanges() > 0
}

// TotalChanges returns the number of differing paths
func (r *StatusResult) TotalChanges() int {
	return len(r.Modified) + len(r.Added) + len(r.Deleted)
}

// Changes classifies every path of hl and other: Added paths exist only in other,
// Deleted paths only in hl, Modified paths in both with different digests.
func (hl *HashList) Changes(other Listing) *StatusResult {
	result := &StatusResult{
		Modified: make([]string, 0),
		Added:    make([]string, 0),
		Deleted:  make([]string, 0),
	}

	left := newSortedView(hl.entries, LeftContext)
	right := newSortedView(other.Entries(), RightContext)

	mergeStatus(left, right, func(status FileStatus, path string) {
		if IsDebugEnabled("compare") {
			VerboseLog(3, "Changes: %s %s", status, path)
		}
		switch status {
		case StatusModified:
			result.Modified = append(result.Modified, path)
		case StatusAdded:
			result.Added = append(result.Added, path)
		case StatusDeleted:
			result.Deleted = append(result.Deleted, path)
		}
	})

	return result
}

// mergeStatus walks two sorted views in step, the way a sorted merge does, and reports
// one status per distinct path. Repeated paths inside one view are folded into one
// group; a path is modified when the digest sets of both groups differ.
func mergeStatus(left, right *sortedView, callback func(status FileStatus, path string)) {
	leftEntries := left.Entries()
	rightEntries := right.Entries()
	i, j := 0, 0

	for i < len(leftEntries) || j < len(rightEntries) {
		switch {
		case j >= len(rightEntries) || (i < len(leftEntries) && leftEntries[i].Path < rightEntries[j].Path):
			path := leftEntries[i].Path
			i = skipPath(leftEntries, i)
			callback(StatusDeleted, path)

		case i >= len(leftEntries) || rightEntries[j].Path < leftEntries[i].Path:
			path := rightEntries[j].Path
			j = skipPath(rightEntries, j)
			callback(StatusAdded, path)

		default:
			path := leftEntries[i].Path
			ni, nj := skipPath(leftEntries, i), skipPath(rightEntries, j)
			if sameDigests(leftEntries[i:ni], rightEntries[j:nj]) {
				callback(StatusUnchanged, path)
			} else {
				callback(StatusModified, path)
			}
			i, j = ni, nj
		}
	}
}

// skipPath returns the index of the first entry after start with a different path
func skipPath(entries []Entry, start int) int {
	end := start + 1
	for end < len(entries) && entries[end].Path == entries[start].Path {
		end++
	}
	return end
}

func sameDigests(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if a[k].Digest != b[k].Digest {
			return false
		}
	}
	return true
}
