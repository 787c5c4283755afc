package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go-cat-finder/internal/logger"
)

// imageExtensions is the fixed set of extensions treated as candidate
// images. Matching is case-insensitive.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
	".tif":  true,
}

// IsImageFile reports whether path has a known image extension.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// walkImages visits every candidate image file under root in traversal
// order. root may also name a single file. Unreadable directory entries are
// logged and skipped; they never abort the walk.
func walkImages(root string, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.WithError(err).WithField("path", path).Warn("Skipping unreadable entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsImageFile(path) {
			return nil
		}
		if !d.Type().IsRegular() {
			// Follow file symlinks; skip sockets, devices and the like.
			if d.Type()&fs.ModeSymlink == 0 {
				return nil
			}
			info, statErr := os.Stat(path)
			if statErr != nil || !info.Mode().IsRegular() {
				return nil
			}
		}
		return fn(path)
	})
}
