package dirdigest

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// scannedPath represents a file found during filesystem scanning
type scannedPath struct {
	AbsPath string
	RelPath string // slash separated, relative to Directory.Root
}

// scanLevel is one directory of the walk with its included files in sorted order
type scanLevel struct {
	AbsDir string
	RelDir string
	Files  []*scannedPath
}

// scanTree walks d.Root top-down. For every directory, visit receives the sorted included
// files before the walk descends into the sorted subdirectories, so the emission order
// never depends on the raw order the filesystem lists entries in.
func (d *Directory) scanTree(ctx context.Context, visit func(level *scanLevel) error) error {
	defer VerboseEnter()()
	return d.scanDirRecursive(ctx, d.Root, ".", visit)
}

func (d *Directory) scanDirRecursive(ctx context.Context, absDir, relDir string, visit func(level *scanLevel) error) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("scan interrupted: %w", ctx.Err())
	default:
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return fmt.Errorf("%w: failed to read directory %s: %w", ErrIO, absDir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	level := &scanLevel{AbsDir: absDir, RelDir: relDir}
	var subdirs []string

	for _, entry := range entries {
		name := entry.Name()
		absPath := filepath.Join(absDir, name)
		relPath := name
		if relDir != "." {
			relPath = path.Join(relDir, name)
		}

		isDir, isFile := d.classify(entry, absPath)
		switch {
		case isDir:
			if d.opts.SkipHiddenDirs && strings.HasPrefix(name, hiddenPrefix) {
				if IsDebugEnabled("scan") {
					VerboseLog(3, "scanDirRecursive: skipping hidden directory %s", relPath)
				}
				continue
			}
			if d.opts.Ignore.ShouldIgnore(relPath, true) {
				VerboseLog(2, "ignoring directory %s", relPath)
				continue
			}
			subdirs = append(subdirs, name)

		case isFile:
			if !d.opts.IncludeHidden && strings.HasPrefix(name, hiddenPrefix) {
				if IsDebugEnabled("scan") {
					VerboseLog(3, "scanDirRecursive: skipping hidden file %s", relPath)
				}
				continue
			}
			if d.opts.Ignore.ShouldIgnore(relPath, false) {
				VerboseLog(2, "ignoring file %s", relPath)
				continue
			}
			level.Files = append(level.Files, &scannedPath{AbsPath: absPath, RelPath: relPath})

		default:
			if IsDebugEnabled("scan") {
				VerboseLog(3, "scanDirRecursive: skipping %s (%s)", relPath, entry.Type())
			}
		}
	}

	if err := visit(level); err != nil {
		return err
	}

	for _, name := range subdirs {
		childRel := name
		if relDir != "." {
			childRel = path.Join(relDir, name)
		}
		if err := d.scanDirRecursive(ctx, filepath.Join(absDir, name), childRel, visit); err != nil {
			return err
		}
	}

	return nil
}

// classify decides whether an entry is descended into, hashed, or skipped.
// Directory symlinks are never followed. File symlinks are hashed through their target,
// and a dangling symlink is kept as a file so that opening it reports the failure.
func (d *Directory) classify(entry os.DirEntry, absPath string) (isDir, isFile bool) {
	mode := entry.Type()
	switch {
	case mode.IsDir():
		return true, false
	case mode.IsRegular():
		return false, true
	case mode&os.ModeSymlink != 0:
		targetInfo, err := os.Stat(absPath)
		if err != nil {
			return false, true
		}
		if targetInfo.IsDir() {
			if IsDebugEnabled("scan") {
				VerboseLog(3, "classify: not following directory symlink %s", absPath)
			}
			return false, false
		}
		return false, targetInfo.Mode().IsRegular()
	default:
		return false, false
	}
}
