package dirdigest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	md5Hi = "49f68a5c8493ec2c0bf489821c21fc3b"
	md5X  = "9dd4e461268c8034f5c8564e155c67a6"
)

func createTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func mustDirectory(t *testing.T, root string, opts ScanOptions) *Directory {
	t.Helper()
	d, err := NewDirectory(root, opts)
	require.NoError(t, err)
	return d
}

func entryPaths(hl *HashList) []string {
	var paths []string
	for _, e := range hl.Entries() {
		paths = append(paths, e.Path)
	}
	return paths
}

func TestHashListHiddenFiles(t *testing.T) {
	root := createTree(t, map[string]string{"a.txt": "hi", ".hidden": "x"})
	ctx := context.Background()

	hl, err := mustDirectory(t, root, DefaultScanOptions()).HashList(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Path: "a.txt", Digest: md5Hi}}, hl.Entries())
	assert.Equal(t, root, hl.Label())
	assert.Equal(t, "md5", hl.Algorithm())

	opts := DefaultScanOptions()
	opts.IncludeHidden = true
	hl, err = mustDirectory(t, root, opts).HashList(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Path: ".hidden", Digest: md5X},
		{Path: "a.txt", Digest: md5Hi},
	}, hl.Entries())
}

func TestHashListWalkOrder(t *testing.T) {
	root := createTree(t, map[string]string{
		"zzz.txt":          "1",
		"b.txt":            "2",
		"a.txt":            "3",
		"sub/z.txt":        "4",
		"sub/inner/q.txt":  "5",
		"c/x.txt":          "6",
		"sub/a/first.txt":  "7",
		"sub/inner/.dotty": "8",
	})

	hl, err := mustDirectory(t, root, DefaultScanOptions()).HashList(context.Background())
	require.NoError(t, err)

	// Files of a directory come before its subdirectories, each group sorted by name
	assert.Equal(t, []string{
		"a.txt",
		"b.txt",
		"zzz.txt",
		"c/x.txt",
		"sub/z.txt",
		"sub/a/first.txt",
		"sub/inner/q.txt",
	}, entryPaths(hl))
}

func TestHashListDeterministic(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"q", "b", "x/y", "x/a", "m/n/o", "e", "x/z/w"} {
		files[name] = "content of " + name
	}
	root := createTree(t, files)
	d := mustDirectory(t, root, DefaultScanOptions())

	first, err := d.HashList(context.Background())
	require.NoError(t, err)
	second, err := d.HashList(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Lines(), second.Lines())
	assert.True(t, first.Equals(second))
}

func TestHashListParallelMatchesSequential(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 40; i++ {
		files[filepath.Join("d", string(rune('a'+i%26))+string(rune('a'+i/26)))] = string(rune('0' + i%10))
	}
	root := createTree(t, files)

	sequential := DefaultScanOptions()
	sequential.Workers = 1
	parallel := DefaultScanOptions()
	parallel.Workers = 8

	seq, err := mustDirectory(t, root, sequential).HashList(context.Background())
	require.NoError(t, err)
	par, err := mustDirectory(t, root, parallel).HashList(context.Background())
	require.NoError(t, err)

	assert.Equal(t, seq.Entries(), par.Entries())
}

func TestDigestSingleFile(t *testing.T) {
	root := createTree(t, map[string]string{"only.txt": "hi", ".hidden": "x"})

	digest, err := mustDirectory(t, root, DefaultScanOptions()).Digest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, md5Hi, digest)

	hl, err := mustDirectory(t, root, DefaultScanOptions()).HashList(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, hl.Len())
	assert.Equal(t, digest, hl.Entries()[0].Digest)
}

func TestDigestStreamsInWalkOrder(t *testing.T) {
	root := createTree(t, map[string]string{"b": "second", "a": "first", "sub/c": "third"})

	for _, name := range HashAlgorithmNames() {
		t.Run(name, func(t *testing.T) {
			opts := DefaultScanOptions()
			opts.Algorithm = name
			d := mustDirectory(t, root, opts)

			digest, err := d.Digest(context.Background())
			require.NoError(t, err)
			assert.Equal(t, HashStringToHexString("firstsecondthird", d.Algorithm()), digest)
		})
	}
}

func TestDigestEmptyTree(t *testing.T) {
	digest, err := mustDirectory(t, t.TempDir(), DefaultScanOptions()).Digest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", digest)

	hl, err := mustDirectory(t, t.TempDir(), DefaultScanOptions()).HashList(context.Background())
	require.NoError(t, err)
	assert.Zero(t, hl.Len())
}

func TestHiddenDirectories(t *testing.T) {
	root := createTree(t, map[string]string{"a.txt": "hi", ".git/config": "x", ".git/.keep": ""})

	hl, err := mustDirectory(t, root, DefaultScanOptions()).HashList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", ".git/config"}, entryPaths(hl))

	opts := DefaultScanOptions()
	opts.SkipHiddenDirs = true
	opts.IncludeHidden = true
	hl, err = mustDirectory(t, root, opts).HashList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, entryPaths(hl))
}

func TestIgnorePatterns(t *testing.T) {
	root := createTree(t, map[string]string{
		"keep.txt":      "1",
		"drop.tmp":      "2",
		"build/out.bin": "3",
		"src/build.go":  "4",
	})

	ignore, err := NewIgnoreMatcher(`\.tmp$`, `^build/$`)
	require.NoError(t, err)
	opts := DefaultScanOptions()
	opts.Ignore = ignore

	hl, err := mustDirectory(t, root, opts).HashList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt", "src/build.go"}, entryPaths(hl))
}

func TestSymlinks(t *testing.T) {
	root := createTree(t, map[string]string{"a.txt": "hi", "dir/b.txt": "x"})
	require.NoError(t, os.Symlink("a.txt", filepath.Join(root, "link.txt")))
	require.NoError(t, os.Symlink("dir", filepath.Join(root, "linkdir")))

	hl, err := mustDirectory(t, root, DefaultScanOptions()).HashList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Path: "a.txt", Digest: md5Hi},
		{Path: "link.txt", Digest: md5Hi},
		{Path: "dir/b.txt", Digest: md5X},
	}, hl.Entries(), "file symlinks are hashed, directory symlinks are not followed")
}

func TestUnreadableFileFails(t *testing.T) {
	root := createTree(t, map[string]string{"a.txt": "hi"})
	require.NoError(t, os.Symlink("missing-target", filepath.Join(root, "dangling")))

	for _, workers := range []int{1, 4} {
		opts := DefaultScanOptions()
		opts.Workers = workers
		d := mustDirectory(t, root, opts)

		hl, err := d.HashList(context.Background())
		assert.ErrorIs(t, err, ErrIO)
		assert.Nil(t, hl, "no partial list")

		digest, err := d.Digest(context.Background())
		assert.ErrorIs(t, err, ErrIO)
		assert.Empty(t, digest)
	}
}

func TestNewDirectoryErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := NewDirectory(file, DefaultScanOptions())
	assert.ErrorIs(t, err, ErrNotADirectory)

	_, err = NewDirectory(filepath.Join(t.TempDir(), "missing"), DefaultScanOptions())
	assert.ErrorIs(t, err, ErrNotADirectory)

	opts := DefaultScanOptions()
	opts.Algorithm = "crc32"
	_, err = NewDirectory(t.TempDir(), opts)
	assert.Error(t, err)
}

func TestNewDirectoryDefaults(t *testing.T) {
	d, err := NewDirectory(".", ScanOptions{})
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(d.Root))
	assert.Equal(t, "md5", d.Algorithm().Name)
}

func TestHashListCancelled(t *testing.T) {
	root := createTree(t, map[string]string{"a.txt": "hi"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mustDirectory(t, root, DefaultScanOptions()).HashList(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
