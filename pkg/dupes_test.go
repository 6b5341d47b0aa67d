package dirdigest

import (
	"context"
	"testing"
)

func TestHashListDuplicates(t *testing.T) {
	hl := newTestList("",
		"z.txt", "aaa",
		"b.txt", "bbb",
		"a.txt", "aaa",
		"c.txt", "ccc",
		"sub/b.txt", "bbb",
		"sub/a.txt", "aaa",
	)

	groups := hl.Duplicates()
	if len(groups) != 2 {
		t.Fatalf("Expected 2 duplicate groups, got %d: %+v", len(groups), groups)
	}

	expected := []DuplicateGroup{
		{Digest: "aaa", Files: []string{"a.txt", "sub/a.txt", "z.txt"}, Count: 3},
		{Digest: "bbb", Files: []string{"b.txt", "sub/b.txt"}, Count: 2},
	}
	for i, want := range expected {
		got := groups[i]
		if got.Digest != want.Digest || got.Count != want.Count {
			t.Errorf("group %d = %+v, expected %+v", i, got, want)
			continue
		}
		for j := range want.Files {
			if got.Files[j] != want.Files[j] {
				t.Errorf("group %d file %d = %s, expected %s", i, j, got.Files[j], want.Files[j])
			}
		}
	}
}

func TestHashListDuplicatesNone(t *testing.T) {
	if groups := NewHashList("").Duplicates(); len(groups) != 0 {
		t.Errorf("Expected no duplicates in an empty list, got %d", len(groups))
	}
	if groups := newTestList("", "a", "1", "b", "2").Duplicates(); len(groups) != 0 {
		t.Errorf("Expected no duplicates among distinct digests, got %d", len(groups))
	}
}

func TestDirectoryDuplicates(t *testing.T) {
	root := createTree(t, map[string]string{"a.txt": "hi", "copy/a.txt": "hi", "other": "x"})

	hl, err := mustDirectory(t, root, DefaultScanOptions()).HashList(context.Background())
	if err != nil {
		t.Fatalf("HashList failed: %v", err)
	}

	groups := hl.Duplicates()
	if len(groups) != 1 || groups[0].Digest != md5Hi || groups[0].Count != 2 {
		t.Errorf("Expected one group of two files with digest %s, got %+v", md5Hi, groups)
	}
}
