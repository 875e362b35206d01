package fs_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/adrg/xdg"
	"github.com/fwojciec/pathfinder/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootsUnder(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("home is included as a root on windows")
	}

	t.Run("returns only existing folders in fixed order", func(t *testing.T) {
		t.Parallel()

		// Given a home with some of the well-known folders
		home := t.TempDir()
		for _, name := range []string{"Downloads", "Desktop", "OneDrive/Documents"} {
			require.NoError(t, os.MkdirAll(filepath.Join(home, filepath.FromSlash(name)), 0o755))
		}

		// When I resolve roots under it
		roots := fs.RootsUnder(home)

		// Then common folders come first, cloud folders last
		assert.Equal(t, []string{
			filepath.Join(home, "Desktop"),
			filepath.Join(home, "Downloads"),
			filepath.Join(home, "OneDrive", "Documents"),
		}, roots)
	})

	t.Run("lists folders reached through a link once", func(t *testing.T) {
		t.Parallel()

		home := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(home, "Documents"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(home, "iCloud Drive"), 0o755))
		if err := os.Symlink(filepath.Join(home, "Documents"), filepath.Join(home, "iCloud Drive", "Documents")); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		roots := fs.RootsUnder(home)

		assert.Equal(t, []string{filepath.Join(home, "Documents")}, roots)
	})

	t.Run("adds localized user folders after common folders", func(t *testing.T) {
		t.Parallel()

		home := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(home, "Documents"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(home, "Bilder"), 0o755))

		roots := fs.RootsUnder(home,
			filepath.Join(home, "Documents"),
			filepath.Join(home, "Bilder"),
			filepath.Join(home, "Musik"),
			home,
			"",
		)

		assert.Equal(t, []string{
			filepath.Join(home, "Documents"),
			filepath.Join(home, "Bilder"),
		}, roots)
	})

	t.Run("returns nothing for an empty home", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, fs.RootsUnder(t.TempDir()))
	})
}

func TestDefaultRoots_ReadsUserDirs(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("user-dirs.dirs is only read on linux")
	}

	// Given a home whose pictures folder is localized
	t.Cleanup(xdg.Reload)
	home := t.TempDir()
	configHome := filepath.Join(home, ".config")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "Bilder"), 0o755))
	writeFile(t, filepath.Join(configHome, "user-dirs.dirs"), "XDG_PICTURES_DIR=\"$HOME/Bilder\"\n")
	xdg.Reload()

	// When I resolve the default roots
	roots, err := fs.DefaultRoots()

	// Then the localized folder is included
	require.NoError(t, err)
	assert.Contains(t, roots, filepath.Join(home, "Bilder"))
}

func TestDriveRoots(t *testing.T) {
	t.Parallel()

	roots := fs.DriveRoots()

	require.NotEmpty(t, roots)
	if runtime.GOOS != "windows" {
		assert.Equal(t, "/", roots[0])
	}
}
