package scanner

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

const timestampLayout = "2006-01-02 15:04:05"

// Timestamp source markers used in match output.
const (
	sourceMetadata = "M" // EXIF capture time
	sourceFile     = "F" // file modification time
)

// imageTimestamp returns the best available timestamp for an image along
// with its source marker: the EXIF capture time when the file carries
// decodable metadata, otherwise the file's modification time.
func imageTimestamp(path string) (time.Time, string, bool) {
	if f, err := os.Open(path); err == nil {
		x, decErr := exif.Decode(f)
		f.Close()
		if decErr == nil {
			if taken, tmErr := x.DateTime(); tmErr == nil {
				return taken, sourceMetadata, true
			}
		}
	}

	if info, err := os.Stat(path); err == nil {
		return info.ModTime(), sourceFile, true
	}
	return time.Time{}, "", false
}
