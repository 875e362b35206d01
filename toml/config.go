// Package toml loads pathfinder configuration from TOML files.
package toml

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fwojciec/pathfinder"
)

// EnvConfigPath names the environment variable overriding the config path.
const EnvConfigPath = "PATHFINDER_CONFIG"

// file mirrors the config file. Pointer fields distinguish an absent key
// from a zero value.
type file struct {
	Roots            []string `toml:"roots"`
	MaxDepth         *int     `toml:"max_depth"`
	MaxContentSizeMB *int64   `toml:"max_content_size_mb"`
	Exclude          []string `toml:"exclude"`
	FollowSymlinks   *bool    `toml:"follow_symlinks"`
	Concurrency      *int     `toml:"concurrency"`
	Limit            *int     `toml:"limit"`
}

// DefaultConfigPath returns $PATHFINDER_CONFIG, or
// ~/.config/pathfinder/config.toml when unset.
func DefaultConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pathfinder", "config.toml"), nil
}

// LoadConfig reads the file at path over pathfinder.DefaultConfig. A
// missing file yields the defaults. A malformed file, unknown keys, or
// invalid values return an EINVALID error.
func LoadConfig(path string) (pathfinder.Config, error) {
	cfg := pathfinder.DefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, iofs.ErrNotExist) {
		return cfg, nil
	}

	var f file
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return cfg, pathfinder.Errorf(pathfinder.EINVALID, "parsing %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, pathfinder.Errorf(pathfinder.EINVALID, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := f.apply(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (f *file) apply(cfg *pathfinder.Config) error {
	if f.Roots != nil {
		roots := make([]string, 0, len(f.Roots))
		for _, r := range f.Roots {
			expanded, err := expandHome(r)
			if err != nil {
				return err
			}
			roots = append(roots, expanded)
		}
		cfg.Roots = roots
	}
	if f.MaxDepth != nil {
		cfg.MaxDepth = *f.MaxDepth
	}
	if f.MaxContentSizeMB != nil {
		size, err := pathfinder.ContentSizeFromMB(*f.MaxContentSizeMB)
		if err != nil {
			return pathfinder.Errorf(pathfinder.EINVALID, "max_content_size_mb: %s", pathfinder.ErrorMessage(err))
		}
		cfg.MaxContentSize = size
	}
	if f.Exclude != nil {
		cfg.Exclude = f.Exclude
	}
	if f.FollowSymlinks != nil {
		cfg.FollowSymlinks = *f.FollowSymlinks
	}
	if f.Concurrency != nil {
		cfg.Concurrency = *f.Concurrency
	}
	if f.Limit != nil {
		cfg.Limit = *f.Limit
	}
	return nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", pathfinder.Errorf(pathfinder.EINVALID, "expanding %q: %v", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
