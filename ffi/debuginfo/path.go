package debuginfo

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"
)

// EnvLibraryPath is the environment variable listing shared object
// directories.
const EnvLibraryPath = "LD_LIBRARY_PATH"

// SearchPath returns the directories searched for shared objects: extra, then
// those listed in [EnvLibraryPath]. Directories that do not exist are
// dropped.
func SearchPath(extra ...string) []string {
	list := mung.Make(
		mung.WithSubjectItems(os.Getenv(EnvLibraryPath)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(extra...),
		mung.WithFilter(isDir),
	).String()

	var dirs []string

	for _, dir := range filepath.SplitList(list) {
		if dir != "" && isDir(dir) {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// Locate returns the path of the shared object name.
//
// A name containing a path separator is used as given. Otherwise each
// directory is tried in order, first with name itself and then, if name has
// no extension, with "lib<name>.so".
func Locate(name string, dirs []string) (string, error) {
	if strings.ContainsRune(name, filepath.Separator) {
		if isFile(name) {
			return name, nil
		}

		return "", ErrNotFound.With(slog.String("name", name))
	}

	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, "lib"+name+".so")
	}

	for _, dir := range dirs {
		for _, c := range candidates {
			if p := filepath.Join(dir, c); isFile(p) {
				return p, nil
			}
		}
	}

	return "", ErrNotFound.With(
		slog.String("name", name),
		slog.String("path", strings.Join(dirs, string(os.PathListSeparator))),
	)
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
