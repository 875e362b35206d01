package pathfinder

import "runtime"

// Configuration defaults.
const (
	DefaultMaxDepth       = 40
	DefaultMaxContentSize = 10 << 20 // 10 MiB
	DefaultLimit          = 20

	// MaxContentSizeMB is the largest content size limit accepted, in MB.
	MaxContentSizeMB = 1 << 20
)

// DefaultExclude lists directory patterns skipped by default, in
// .gitignore syntax.
var DefaultExclude = []string{
	".git",
	"node_modules",
	"__pycache__",
	".venv",
	".mypy_cache",
	".gradle",
	"target",
	"build",
}

// Config holds the settings of one search run. It is resolved once at
// start-up and passed to the components that need it.
type Config struct {
	// Roots are the directories to search, in order. When empty the
	// caller substitutes the host's well-known folders.
	Roots []string

	// MaxDepth bounds how many directory levels below a root are entered.
	MaxDepth int

	// MaxContentSize is the largest file, in bytes, whose content is
	// searched; 0 means unlimited. Larger files are still matched by name.
	MaxContentSize int64

	// Exclude holds .gitignore-style patterns for paths to skip.
	Exclude []string

	FollowSymlinks bool

	// Concurrency is the number of files processed in parallel.
	Concurrency int

	// Limit caps the number of results; 0 means no limit.
	Limit int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		MaxDepth:       DefaultMaxDepth,
		MaxContentSize: DefaultMaxContentSize,
		Exclude:        append([]string(nil), DefaultExclude...),
		Concurrency:    runtime.GOMAXPROCS(0),
		Limit:          DefaultLimit,
	}
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must not be negative")
	}
	if c.MaxContentSize < 0 {
		return Errorf(EINVALID, "max content size must not be negative")
	}
	if c.Concurrency < 0 {
		return Errorf(EINVALID, "concurrency must not be negative")
	}
	if c.Limit < 0 {
		return Errorf(EINVALID, "limit must not be negative")
	}
	return nil
}

// ContentSizeFromMB converts a content size limit given in MB to bytes.
// Returns EINVALID when mb is negative or above MaxContentSizeMB.
func ContentSizeFromMB(mb int64) (int64, error) {
	if mb < 0 || mb > MaxContentSizeMB {
		return 0, Errorf(EINVALID, "max content size must be between 0 and %d MB, got %d", MaxContentSizeMB, mb)
	}
	return mb << 20, nil
}
