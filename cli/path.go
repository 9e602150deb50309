package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/calc/pkg"
)

// baseConfig is the base name of the configuration files. The YAML file
// adds ".yaml" and the JSON file adds ".json".
const baseConfig = "config"

// defaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configPath returns the absolute path to a file or directory formed by joining
// the global configuration directory path with the given path elements.
//
// If no elements are given, it is equivalent to calling [pkg.ConfigDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// cachePath is like [configPath] for the cache directory.
func cachePath(elem ...string) string {
	return filepath.Join(append([]string{pkg.CacheDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
