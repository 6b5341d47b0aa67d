package dirdigest

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/sys/unix"
)

// HashAlgorithm represents a hash algorithm configuration
type HashAlgorithm struct {
	Name    string
	NewFunc func() hash.Hash
}

var hashAlgorithms = map[string]*HashAlgorithm{
	"md5":    {Name: "md5", NewFunc: md5.New},
	"sha1":   {Name: "sha1", NewFunc: sha1.New},
	"sha256": {Name: "sha256", NewFunc: sha256.New},
	"sha512": {Name: "sha512", NewFunc: sha512.New},
	"blake3": {Name: "blake3", NewFunc: func() hash.Hash { return blake3.New() }},
	"xxh3":   {Name: "xxh3", NewFunc: func() hash.Hash { return xxh3.New() }},
}

// GetHashAlgorithm returns the hash algorithm configuration for the given name
func GetHashAlgorithm(name string) (*HashAlgorithm, error) {
	algorithm, ok := hashAlgorithms[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
	return algorithm, nil
}

// HashAlgorithmNames lists the supported algorithm names in sorted order
func HashAlgorithmNames() []string {
	names := make([]string, 0, len(hashAlgorithms))
	for name := range hashAlgorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HashFile calculates the hash of a file, reading it in chunks of bufferSize bytes and
// checking ctx between chunks so a long file can be interrupted.
func HashFile(ctx context.Context, filePath string, algorithm *HashAlgorithm, bufferSize int) ([]byte, error) {
	hasher := algorithm.NewFunc()
	if _, err := streamFile(ctx, hasher, filePath, make([]byte, bufferSize)); err != nil {
		return nil, err
	}
	return hasher.Sum(nil), nil
}

// HashFileToHexString calculates the hash of a file and returns it as a hex string
func HashFileToHexString(ctx context.Context, filePath string, algorithm *HashAlgorithm, bufferSize int) (string, error) {
	hashBytes, err := HashFile(ctx, filePath, algorithm, bufferSize)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hashBytes), nil
}

// HashStringToHexString calculates the hash of a string and returns it as a hex string
func HashStringToHexString(data string, algorithm *HashAlgorithm) string {
	hasher := algorithm.NewFunc()
	io.WriteString(hasher, data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// streamFile feeds the content of filePath into w using buffer for reads and returns the
// number of bytes consumed. The file handle is released before returning, on every path.
func streamFile(ctx context.Context, w io.Writer, filePath string, buffer []byte) (int64, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to open file %s: %w", ErrIO, filePath, err)
	}
	defer file.Close()

	// Advisory only; hashing reads every byte once, front to back.
	_ = unix.Fadvise(int(file.Fd()), 0, 0, unix.FADV_SEQUENTIAL)

	var total int64
	for {
		select {
		case <-ctx.Done():
			return total, fmt.Errorf("hash of %s interrupted: %w", filePath, ctx.Err())
		default:
		}

		n, err := file.Read(buffer)
		if n > 0 {
			w.Write(buffer[:n])
			total += int64(n)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return total, fmt.Errorf("%w: failed to read from file %s: %w", ErrIO, filePath, err)
		}
	}

	if IsDebugEnabled("hash") {
		VerboseLog(3, "streamFile: %s (%d bytes)", filePath, total)
	}
	return total, nil
}
