// Package cache manages gi's on-disk template cache: the index of
// available templates and one file per fetched template, aged out by
// modification time.
package cache

import (
	"os"
	"path/filepath"
	"time"
)

const (
	indexFileName = "index.json"

	// DefaultMaxAge is how long cached files are trusted before a refetch.
	DefaultMaxAge = 24 * time.Hour
)

// Dir returns the cache directory, creating it if needed.
// Uses XDG_CACHE_HOME if set, otherwise ~/.cache/gi.
func Dir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}

	dir := filepath.Join(base, "gi")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// IndexPath returns the path of the cached template index.
func IndexPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, indexFileName), nil
}

// TemplatePath returns the cache path for a template. Names with slashes
// (e.g. Global/macOS) map to subdirectories, which are created on demand.
func TemplatePath(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, filepath.FromSlash(name)+".gitignore")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// IsStale reports whether path is older than maxAge or does not exist.
func IsStale(path string, maxAge time.Duration) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return time.Since(info.ModTime()) > maxAge
}

// List returns the cached template files under the cache directory,
// relative names without the .gitignore suffix, in lexical walk order.
func List() ([]string, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	var names []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if filepath.Ext(path) != ".gitignore" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		names = append(names, rel[:len(rel)-len(".gitignore")])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Clear removes every cached file, including the index.
func Clear() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	_, err = Dir() // recreate empty
	return err
}
