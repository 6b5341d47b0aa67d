package dirdigest

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// ScanOptions controls which files a Directory includes and how they are hashed
type ScanOptions struct {
	IncludeHidden  bool           // hash files whose name starts with "."
	SkipHiddenDirs bool           // do not descend into directories whose name starts with "."
	Algorithm      string         // hash algorithm name, see GetHashAlgorithm
	Workers        int            // concurrent file hashes per directory level (per-file mode only)
	BufferSize     int            // read buffer size in bytes
	Ignore         *IgnoreMatcher // optional path exclusions
}

// DefaultScanOptions returns the options used when no configuration is present
func DefaultScanOptions() ScanOptions {
	bufferSize, _ := ParseHumanSize(DefaultHashBuffer)
	return ScanOptions{
		Algorithm:  DefaultHashAlgorithm,
		Workers:    DefaultHashWorkers,
		BufferSize: bufferSize,
	}
}

// Directory computes digests of the tree rooted at Root
type Directory struct {
	Root      string // absolute path
	opts      ScanOptions
	algorithm *HashAlgorithm
}

// NewDirectory validates root and prepares a Directory for hashing.
// It returns ErrNotADirectory if root does not exist or is not a directory.
func NewDirectory(root string, opts ScanOptions) (*Directory, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotADirectory, root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotADirectory, absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, absRoot)
	}

	if opts.Algorithm == "" {
		opts.Algorithm = DefaultHashAlgorithm
	}
	algorithm, err := GetHashAlgorithm(opts.Algorithm)
	if err != nil {
		return nil, err
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize, _ = ParseHumanSize(DefaultHashBuffer)
	}

	return &Directory{
		Root:      absRoot,
		opts:      opts,
		algorithm: algorithm,
	}, nil
}

// Algorithm returns the hash algorithm in use
func (d *Directory) Algorithm() *HashAlgorithm {
	return d.algorithm
}

// Digest streams every included file, in walk order, into one hasher and returns the
// final digest as lowercase hex. A single unreadable file fails the whole computation.
func (d *Directory) Digest(ctx context.Context) (string, error) {
	defer VerboseEnter()()

	hasher := d.algorithm.NewFunc()
	buffer := make([]byte, d.opts.BufferSize)
	var files int
	var total int64

	err := d.scanTree(ctx, func(level *scanLevel) error {
		for _, sp := range level.Files {
			logger.WithField("path", sp.RelPath).Debug("adding to aggregate digest")
			n, err := streamFile(ctx, hasher, sp.AbsPath, buffer)
			if err != nil {
				return err
			}
			files++
			total += n
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.WithFields(log.Fields{
		"root":      d.Root,
		"algorithm": d.algorithm.Name,
		"files":     files,
		"bytes":     humanize.Bytes(uint64(total)),
	}).Info("aggregate digest computed")

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// HashList hashes every included file independently and returns the entries in walk
// order, labelled with the root path. It never returns a partial list.
func (d *Directory) HashList(ctx context.Context) (*HashList, error) {
	defer VerboseEnter()()

	list := NewHashList(d.Root)
	list.SetAlgorithm(d.algorithm.Name)

	err := d.scanTree(ctx, func(level *scanLevel) error {
		digests, err := d.hashLevel(ctx, level.Files)
		if err != nil {
			return err
		}
		for i, sp := range level.Files {
			list.Add(sp.RelPath, digests[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"root":      d.Root,
		"algorithm": d.algorithm.Name,
		"files":     list.Len(),
	}).Info("hash list computed")

	return list, nil
}

// hashLevel returns one digest per file, index-aligned with files. With more than one
// worker the files are hashed concurrently; the result order is unaffected.
func (d *Directory) hashLevel(ctx context.Context, files []*scannedPath) ([]string, error) {
	digests := make([]string, len(files))

	if d.opts.Workers <= 1 || len(files) <= 1 {
		buffer := make([]byte, d.opts.BufferSize)
		for i, sp := range files {
			digest, err := d.hashOne(ctx, sp, buffer)
			if err != nil {
				return nil, err
			}
			digests[i] = digest
		}
		return digests, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Workers)
	for i, sp := range files {
		g.Go(func() error {
			digest, err := d.hashOne(gctx, sp, make([]byte, d.opts.BufferSize))
			if err != nil {
				return err
			}
			digests[i] = digest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return digests, nil
}

func (d *Directory) hashOne(ctx context.Context, sp *scannedPath, buffer []byte) (string, error) {
	hasher := d.algorithm.NewFunc()
	n, err := streamFile(ctx, hasher, sp.AbsPath, buffer)
	if err != nil {
		return "", err
	}
	digest := hex.EncodeToString(hasher.Sum(nil))
	logger.WithFields(log.Fields{"path": sp.RelPath, "bytes": n}).Debug(digest)
	return digest, nil
}
