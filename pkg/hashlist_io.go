package dirdigest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/google/vectorio"
)

// LoadHashList reads a hash list file into a new, unlabelled HashList
func LoadHashList(filePath string) (*HashList, error) {
	hl := NewHashList("")
	if err := hl.ReadFile(filePath); err != nil {
		return nil, err
	}
	return hl, nil
}

// ReadFile replaces the entries with those parsed from filePath. The label is cleared
// because the file format does not carry it. On error the list is left untouched.
func (hl *HashList) ReadFile(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, filePath, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotFound, filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%w: failed to open hash list %s: %w", ErrIO, filePath, err)
	}
	defer file.Close()

	entries, err := parseEntries(file, filePath)
	if err != nil {
		return err
	}

	hl.entries = entries
	hl.label = ""
	hl.algorithm = ""
	VerboseLog(1, "read %d entries from %s", len(entries), filePath)
	return nil
}

// Parse replaces the entries with those read from r, see ReadFile
func (hl *HashList) Parse(r io.Reader) error {
	entries, err := parseEntries(r, "<input>")
	if err != nil {
		return err
	}
	hl.entries = entries
	hl.label = ""
	hl.algorithm = ""
	return nil
}

// parseEntries reads "path digest" lines. Comment lines and blank lines are skipped;
// every other line must split on whitespace into exactly two fields.
func parseEntries(r io.Reader, name string) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []Entry
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Comments and blank lines are skipped, not malformed
		if strings.HasPrefix(line, CommentPrefix) || strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %s:%d: expected 2 fields, got %d", ErrMalformedLine, name, lineNum, len(fields))
		}
		entries = append(entries, Entry{Path: fields[0], Digest: fields[1]})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: error reading %s: %w", ErrIO, name, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, name)
	}

	return entries, nil
}

// header returns the comment line that starts a written hash list
func (hl *HashList) header() string {
	switch {
	case hl.label == "" && hl.algorithm == "":
		return CommentPrefix + " Digests\n"
	case hl.label == "":
		return fmt.Sprintf("%s %s digests\n", CommentPrefix, hl.algorithm)
	case hl.algorithm == "":
		return fmt.Sprintf("%s Digests of %s\n", CommentPrefix, hl.label)
	default:
		return fmt.Sprintf("%s %s digests of %s\n", CommentPrefix, hl.algorithm, hl.label)
	}
}

// WriteTo writes the header comment and the justified lines to w
func (hl *HashList) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64

	n, err := bw.WriteString(hl.header())
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, line := range hl.Lines() {
		n, err := bw.WriteString(line + "\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// WriteFile writes the header comment and the justified lines to filePath, replacing any
// existing content. Lines are handed to the kernel in writev batches.
func (hl *HashList) WriteFile(filePath string) error {
	defer VerboseEnter()()

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create hash list %s: %w", filePath, err)
	}
	defer file.Close()

	buffers := make([][]byte, 0, hl.Len()+1)
	buffers = append(buffers, []byte(hl.header()))
	for _, line := range hl.Lines() {
		buffers = append(buffers, []byte(line+"\n"))
	}

	if err := writevAll(file, buffers); err != nil {
		return fmt.Errorf("failed to write hash list %s: %w", filePath, err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync hash list %s: %w", filePath, err)
	}

	VerboseLog(1, "wrote %d entries to %s", hl.Len(), filePath)
	return nil
}

// writevAll writes every buffer to file in IOV_MAX sized writev calls, finishing any
// short write with a plain write.
func writevAll(file *os.File, buffers [][]byte) error {
	for offset := 0; offset < len(buffers); offset += fallbackIOVMax {
		end := offset + fallbackIOVMax
		if end > len(buffers) {
			end = len(buffers)
		}
		chunk := buffers[offset:end]

		iovecs := make([]syscall.Iovec, 0, len(chunk))
		expected := 0
		for _, b := range chunk {
			if len(b) == 0 {
				continue
			}
			iov := syscall.Iovec{Base: &b[0]}
			iov.SetLen(len(b))
			iovecs = append(iovecs, iov)
			expected += len(b)
		}
		if len(iovecs) == 0 {
			continue
		}

		nw, err := vectorio.WritevRaw(uintptr(file.Fd()), iovecs)
		if err != nil {
			return fmt.Errorf("writev failed: %w", err)
		}
		if nw < expected {
			if err := writeRemainder(file, chunk, nw); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeRemainder writes whatever a short writev left of chunk
func writeRemainder(file *os.File, chunk [][]byte, written int) error {
	for _, b := range chunk {
		if written >= len(b) {
			written -= len(b)
			continue
		}
		if _, err := file.Write(b[written:]); err != nil {
			return err
		}
		written = 0
	}
	return nil
}
