package cli

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/ardnew/critfail/pkg"
)

// configFile is the base name of the configuration file.
const configFile = "config.yaml"

// defaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configPath returns the path to the configuration file written by init.
func configPath() string {
	return filepath.Join(pkg.ConfigDir(), configFile)
}

// configPaths returns the configuration files to load, lowest precedence
// first: the default file, then one per directory in [pkg.PathEnv] with the
// first listed directory last.
func configPaths() []string {
	dirs := pkg.SearchPath()
	slices.Reverse(dirs)

	paths := make([]string, len(dirs))
	for i, dir := range dirs {
		paths[i] = filepath.Join(dir, configFile)
	}

	return paths
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
