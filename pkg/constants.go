package dirdigest

// DefaultHashAlgorithm is the algorithm used when nothing else is configured
const DefaultHashAlgorithm = "md5"

// Hash list text format
const (
	CommentPrefix = "#"
	DefaultMinGap = 5 // spaces between the longest path and its digest
)

// Messages produced by comparisons
const (
	IdenticalMessage       = "The hash lists are identical."
	DifferentHeader        = "The hash lists differ! Differences with %s:\n"
	DigestsIdenticalFormat = "The digests are identical: %s\n"
	DigestsDifferentHeader = "The digests differ!\n"
)

// Walk and hashing defaults
const (
	DefaultHashWorkers = 4
	DefaultHashBuffer  = "2MiB"
	hiddenPrefix       = "."
	skiplistMaxLevels  = 16
	fallbackIOVMax     = 1024 // Linux IOV_MAX
)
