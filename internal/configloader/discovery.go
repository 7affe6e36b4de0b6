// Package configloader resolves the three-layer EffectiveConfig (§4.G):
// built-in defaults, the nearest gdtools.toml found by walking upward from
// the input path, and CLI flags, merged last-wins per key.
package configloader

import (
	"os"
	"path/filepath"
)

// configFileName is the project config file gdlint and gdformat look for.
const configFileName = "gdtools.toml"

// vcsRootMarkers stop the upward search once a repository root is passed.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// FindProjectConfig walks upward from startDir looking for gdtools.toml,
// stopping at a VCS root or the filesystem root. Returns an empty string,
// not an error, if none is found.
func FindProjectConfig(startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	currentDir := absDir
	for {
		path := filepath.Join(currentDir, configFileName)
		if fileExists(path) {
			return path, nil
		}

		if isVCSRoot(currentDir) {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
