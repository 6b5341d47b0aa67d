// Package dirdigest computes content fingerprints of directory trees and compares them.
//
// # Core API
//
// A Directory walks a tree in a deterministic order (names sorted at every level, files of
// a directory before its subdirectories) and produces either one aggregate digest or a
// per-file HashList:
//
//	dir, err := dirdigest.NewDirectory("/path/to/dir", dirdigest.DefaultScanOptions())
//	if err != nil {
//		return err
//	}
//	list, err := dir.HashList(ctx)
//	sum, err := dir.Digest(ctx)
//
// # Comparing
//
// HashList comparison is content based and ignores insertion order:
//
//	if left.Equals(right) {
//		fmt.Println(dirdigest.IdenticalMessage)
//	}
//	report, err := left.Compare(right)
//
// # Persisting
//
// Hash lists round-trip through a plain text format, one "path digest" pair per line
// with "#" comment lines:
//
//	err := list.WriteFile("tree.md5")
//	loaded, err := dirdigest.LoadHashList("tree.md5")
//
// # Configuration
//
// Defaults come from an ini file, see LoadConfig. Verbose output:
//
//	dirdigest.SetDebugFlags("scan,hash")
//	dirdigest.SetVerboseLevel(2)
package dirdigest
