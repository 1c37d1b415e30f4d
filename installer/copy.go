package installer

import (
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
	"github.com/pkg/errors"
)

// Framework components that are not shipped with the bot.
var depsIgnorePatterns = []string{
	"*MaaDbgControlUnit*",
	"*MaaThriftControlUnit*",
	"*MaaRpc*",
	"*MaaHttp*",
}

// copyTree copies src into dst, merging into existing directories and keeping file
// modes and modification times. Entries whose base name matches any ignore glob are skipped.
func copyTree(src, dst string, ignore ...string) error {
	opts := cp.Options{
		OnDirExists:   func(src, dest string) cp.DirExistsAction { return cp.Merge },
		PreserveTimes: true,
		Skip: func(info os.FileInfo, src, dest string) (bool, error) {
			return matchAny(info.Name(), ignore)
		},
	}
	if err := cp.Copy(src, dst, opts); err != nil {
		return errors.Wrapf(err, "copy %s to %s", src, dst)
	}
	return nil
}

// copyFile copies one file to the file path dst, creating missing parent directories.
func copyFile(src, dst string) error {
	if err := cp.Copy(src, dst, cp.Options{PreserveTimes: true}); err != nil {
		return errors.Wrapf(err, "copy %s to %s", src, dst)
	}
	return nil
}

func matchAny(name string, patterns []string) (bool, error) {
	for _, p := range patterns {
		ok, err := filepath.Match(p, name)
		if err != nil {
			return false, errors.Wrapf(err, "bad ignore pattern %q", p)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
