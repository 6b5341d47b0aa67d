package dirdigest

import "errors"

// Error kinds surfaced by the package. Callers match them with errors.Is; the wrapped
// error chain also keeps the underlying *fs.PathError reachable.
var (
	// ErrNotADirectory is returned when a root path is missing or is not a directory.
	ErrNotADirectory = errors.New("not a directory")

	// ErrNotFound is returned when a hash list file is missing or is not a regular file.
	ErrNotFound = errors.New("not a regular file")

	// ErrEmptyInput is returned when a hash list file has no content lines.
	ErrEmptyInput = errors.New("empty hash list")

	// ErrMalformedLine is returned when a content line does not split into a path and a digest.
	ErrMalformedLine = errors.New("malformed hash list line")

	// ErrIO is returned when a file cannot be opened or read while hashing.
	ErrIO = errors.New("i/o error")
)
