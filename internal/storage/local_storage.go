package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	apperrors "go-cat-finder/internal/errors"
)

// ImageFetcher turns an image reference (file path, URL, blob ref) into a
// decoded image. The scanner and the demo server consume candidates through
// this one interface regardless of where they live.
type ImageFetcher interface {
	FetchImage(ctx context.Context, ref string) (image.Image, error)
}

// LocalImageFetcher decodes images straight from the file system. It is the
// fetcher behind directory scans.
type LocalImageFetcher struct{}

// NewLocalImageFetcher creates a file-system image fetcher.
func NewLocalImageFetcher() ImageFetcher {
	return &LocalImageFetcher{}
}

// FetchImage opens and decodes the image at path. A file that cannot be
// opened or decoded yields a recoverable decode error: the caller counts it
// and moves on to the next candidate.
func (l *LocalImageFetcher) FetchImage(ctx context.Context, path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDecodeError(fmt.Sprintf("failed to open image %s", path), err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, apperrors.NewDecodeError(fmt.Sprintf("failed to decode image %s", path), err)
	}
	return img, nil
}
