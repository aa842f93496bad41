package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// Prefix returns the base prefix string used to construct the path to the
// configuration and cache directories.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with Name
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): Name, // default output from dlv
			regexp.MustCompile(`^\.+`):             "",   // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		if id == "" {
			id = Name
		}

		return id
	},
)

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		return userDir(os.UserConfigDir, ".config")
	},
)

// CacheDir returns the cache directory path used for transient files such as
// REPL history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		return userDir(os.UserCacheDir, ".cache")
	},
)

// userDir joins [Prefix] to the directory returned by base, falling back to
// home/<fallback>, then the working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(dir, fallback)
		} else {
			dir, err = os.Getwd()
			if err != nil {
				dir = "."
			}
		}
	}

	return filepath.Join(dir, Prefix())
}

// PathEnv names the environment variable listing additional configuration
// directories, separated by [os.PathListSeparator].
//
//nolint:gochecknoglobals
var PathEnv = strings.ToUpper(Name) + "_PATH"

// SearchPath returns the directories searched for configuration files: each
// existing directory listed in [PathEnv], followed by [ConfigDir].
func SearchPath() []string {
	return searchPath(os.Getenv(PathEnv), ConfigDir())
}

// searchPath returns the existing directories of list in listed order,
// followed by base. Each directory appears once, at its first position.
func searchPath(list, base string) []string {
	sep := string(os.PathListSeparator)

	extra := filepath.SplitList(list)
	for i := range extra {
		extra[i] = filepath.Clean(extra[i])
	}

	// A single pre-delimited prefix item keeps its inner order.
	munged := mung.Make(
		mung.WithSubjectItems(filepath.Clean(base)),
		mung.WithDelim(sep),
		mung.WithPrefixItems(strings.Join(extra, sep)),
		mung.WithFilter(isDir),
	)

	return slices.Collect(munged.Filtered())
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
