package dir

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	pkgerr "github.com/pkg/errors"
)

// ErrNotDir is returned when the path exists but is not a directory.
var ErrNotDir = pkgerr.New("path must be a Dir")

// IsExists check if the given path was exists
func IsExists(path string) (exists bool, err error) {
	_, err = os.Stat(path)
	if err == nil {
		exists = true
		return
	}
	if os.IsNotExist(err) {
		err = nil
		return
	}
	err = pkgerr.Wrapf(err, "check state of path")
	return
}

// MkDirAll will create dir as using `mkdir -p`.
func MkDirAll(path string) (err error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		err = pkgerr.Wrapf(err, "path get absolute")
		return
	}

	stat, serr := os.Stat(absPath)
	if serr == nil {
		if stat.IsDir() {
			return
		}
		err = pkgerr.Wrapf(ErrNotDir, "mkdir %s", absPath)
		return
	}

	err = os.MkdirAll(absPath, 0755)
	if err != nil {
		err = pkgerr.Wrapf(err, "mkdir all %s", absPath)
	}
	return
}

// ScanExt lists the files directly under root whose name carries the
// given extension. ReadDir keeps the result sorted by file name.
func ScanExt(root, ext string) (files []string, err error) {
	fis, err := ioutil.ReadDir(root)
	if err != nil {
		err = pkgerr.Wrapf(err, "scan dir %s", root)
		return
	}
	for _, fi := range fis {
		if fi.IsDir() || !strings.HasSuffix(fi.Name(), ext) {
			continue
		}
		files = append(files, filepath.Join(root, fi.Name()))
	}
	return
}
