package dirdigest

import (
	"testing"
)

func TestParseHumanSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"2MiB", 2 << 20, false},
		{"64KiB", 64 << 10, false},
		{"1kB", 1000, false},
		{"4096", 4096, false},
		{"0", 0, true},
		{"", 0, true},
		{"lots", 0, true},
		{"8GiB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHumanSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHumanSize(%q) = %d, expected an error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHumanSize(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseHumanSize(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJustify(t *testing.T) {
	entries := []Entry{
		{Path: "a", Digest: "11"},
		{Path: "sub/bbb", Digest: "22"},
		{Path: "é", Digest: "33"},
	}

	width := longestPath(entries)
	if width != 7 {
		t.Fatalf("longestPath = %d, expected 7", width)
	}

	got := justify(entries, width, 2)
	expected := []string{
		"a        11",
		"sub/bbb  22",
		"é        33",
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, got[i], expected[i])
		}
	}
}

func TestLongestPathAcrossSets(t *testing.T) {
	left := []Entry{{Path: "ab"}}
	right := []Entry{{Path: "abcd"}}

	if got := longestPath(left, right); got != 4 {
		t.Errorf("longestPath = %d, expected 4", got)
	}
	if got := longestPath(); got != 0 {
		t.Errorf("longestPath of nothing = %d, expected 0", got)
	}
}
