package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pathfinder"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config pathfinder.Config
	Logger *slog.Logger

	Color    bool
	Progress bool

	DefaultRoots func() ([]string, error)
	DriveRoots   func() []string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Term           string        `arg:"" help:"Search term (see above for filters and exact matches)"`
	Paths          []string      `short:"p" sep:"none" help:"Search these directories instead of the common folders (repeatable)"`
	FilenameOnly   bool          `short:"f" name:"filename-only" help:"Match file names only, skip content"`
	Limit          int           `short:"n" default:"${limit}" help:"Maximum number of results, 0 for all"`
	MaxDepth       int           `name:"max-depth" default:"${max_depth}" help:"Directory levels entered below each root"`
	MaxSizeMB      int64         `name:"max-size-mb" default:"${max_size_mb}" help:"Largest file whose content is searched, in MB (0 for no limit)"`
	Exclude        []string      `short:"x" sep:"none" help:"Additional .gitignore-style pattern to skip (repeatable)"`
	FollowSymlinks bool          `name:"follow-symlinks" negatable:"" default:"${follow_symlinks}" help:"Follow symbolic links"`
	Workers        int           `short:"w" default:"${workers}" help:"Files processed in parallel"`
	JSON           bool          `name:"json" help:"Print one JSON object per result"`
	Info           bool          `short:"i" help:"Include size and modification time"`
	Expanded       bool          `short:"e" name:"expanded" help:"Search all drives when the first pass finds nothing"`
	Timeout        time.Duration `short:"t" help:"Stop searching after this long and print what was found"`
	NoColor        bool          `name:"no-color" help:"Disable colored output"`
	Verbose        bool          `short:"v" help:"Log walk and scan details to stderr"`
}

// config returns the run configuration with flag values applied.
func (c *CLI) config(base pathfinder.Config) (pathfinder.Config, error) {
	cfg := base
	if len(c.Paths) > 0 {
		cfg.Roots = c.Paths
	}
	cfg.Limit = c.Limit
	cfg.MaxDepth = c.MaxDepth
	size, err := pathfinder.ContentSizeFromMB(c.MaxSizeMB)
	if err != nil {
		return cfg, err
	}
	cfg.MaxContentSize = size
	cfg.Exclude = append(append([]string(nil), base.Exclude...), c.Exclude...)
	cfg.FollowSymlinks = c.FollowSymlinks
	cfg.Concurrency = c.Workers
	return cfg, cfg.Validate()
}
