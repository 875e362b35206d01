package fs

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// CommonFolders are the well-known user folders searched by default,
// relative to the home directory.
var CommonFolders = []string{
	"Desktop",
	"Documents",
	"Downloads",
	"Pictures",
	"Music",
	"Videos",
	"Screenshots",
}

// CloudFolders are synced variants of the common folders.
var CloudFolders = []string{
	"OneDrive/Desktop",
	"OneDrive/Documents",
	"OneDrive/Pictures",
	"iCloud Drive/Desktop",
	"iCloud Drive/Documents",
}

// DefaultRoots returns the well-known folders of the current user that
// exist on this host, including the localized folders reported by the
// platform's user directory settings.
func DefaultRoots() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return RootsUnder(home,
		xdg.UserDirs.Desktop,
		xdg.UserDirs.Documents,
		xdg.UserDirs.Download,
		xdg.UserDirs.Pictures,
		xdg.UserDirs.Music,
		xdg.UserDirs.Videos,
	), nil
}

// RootsUnder returns the well-known folders below home that exist: the
// common folders, then userDirs, then the cloud-synced variants. Folders
// resolving to the same directory are listed once.
func RootsUnder(home string, userDirs ...string) []string {
	var candidates []string
	for _, name := range CommonFolders {
		candidates = append(candidates, filepath.Join(home, filepath.FromSlash(name)))
	}
	for _, dir := range userDirs {
		// Entries pointing at home itself are not folders of their own.
		if dir == "" || filepath.Clean(dir) == filepath.Clean(home) {
			continue
		}
		candidates = append(candidates, dir)
	}
	if runtime.GOOS == "windows" {
		candidates = append(candidates, home)
	}
	for _, name := range CloudFolders {
		candidates = append(candidates, filepath.Join(home, filepath.FromSlash(name)))
	}
	return existingDirs(candidates)
}

// DriveRoots returns the filesystem roots for a whole-machine search:
// drive letters on Windows; "/" plus mounted volumes elsewhere.
func DriveRoots() []string {
	var candidates []string
	if runtime.GOOS == "windows" {
		for letter := 'A'; letter <= 'Z'; letter++ {
			candidates = append(candidates, string(letter)+`:\`)
		}
		return existingDirs(candidates)
	}

	candidates = append(candidates, "/")
	for _, base := range []string{"/Volumes", "/mnt", "/media"} {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, e := range entries {
			candidates = append(candidates, filepath.Join(base, e.Name()))
		}
	}
	return existingDirs(candidates)
}

// existingDirs keeps the directories that exist, dropping later entries
// that resolve to an already listed directory.
func existingDirs(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		resolved, err := filepath.EvalSymlinks(p)
		if err != nil {
			resolved = p
		}
		if _, ok := seen[resolved]; ok {
			continue
		}
		seen[resolved] = struct{}{}
		out = append(out, p)
	}
	return out
}
