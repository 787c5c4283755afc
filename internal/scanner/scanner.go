package scanner

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/sirupsen/logrus"

	"go-cat-finder/internal/detector"
	"go-cat-finder/internal/logger"
	"go-cat-finder/internal/storage"
)

// Detector is the narrow capability the scan driver needs from the
// detection pipeline.
type Detector interface {
	DetectImage(img image.Image) (detector.Decision, error)
}

// Summary aggregates one scan's counters. It is reported once at the end,
// never per file.
type Summary struct {
	// Total is the number of candidate images examined.
	Total int
	// Found is the number of images with a positive detection.
	Found int
	// Errors is the number of files that failed to decode or infer.
	Errors int
}

// Scanner drives the per-image pipeline over a directory tree: decode,
// build tensor, infer, decode output, report. Processing is strictly
// sequential; one image is fully handled before the next begins, and the
// shared detector is only ever invoked from this single goroutine.
type Scanner struct {
	detector       Detector
	fetcher        storage.ImageFetcher
	out            io.Writer
	showTimestamps bool
}

// New creates a scanner that prints matched paths to out, one per line.
func New(det Detector, fetcher storage.ImageFetcher, out io.Writer, showTimestamps bool) *Scanner {
	return &Scanner{
		detector:       det,
		fetcher:        fetcher,
		out:            out,
		showTimestamps: showTimestamps,
	}
}

// ScanDir walks root and runs every candidate image through the detector.
// Per-file failures are counted and logged; they never halt the scan. The
// returned error covers only the walk itself.
func (s *Scanner) ScanDir(ctx context.Context, root string) (Summary, error) {
	var summary Summary

	err := walkImages(root, func(path string) error {
		summary.Total++
		logger.WithField("path", path).Debug("Analyzing image")

		decision, err := s.checkFile(ctx, path)
		if err != nil {
			summary.Errors++
			logger.WithError(err).WithField("path", path).Warn("Skipping file")
			return nil
		}

		if decision.Present {
			summary.Found++
			logger.WithFields(logrus.Fields{
				"path":       path,
				"confidence": fmt.Sprintf("%.3f", decision.Confidence),
			}).Debug("Cat found")
			s.printMatch(path)
		} else {
			logger.WithField("path", path).Debug("No cats")
		}
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("directory walk failed: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"total":  summary.Total,
		"found":  summary.Found,
		"errors": summary.Errors,
	}).Info("Scan complete")
	return summary, nil
}

// CheckRef fetches a single image reference (file path or URL, depending on
// the fetcher) and runs it through the detector.
func (s *Scanner) CheckRef(ctx context.Context, ref string) (detector.Decision, error) {
	return s.checkFile(ctx, ref)
}

func (s *Scanner) checkFile(ctx context.Context, path string) (detector.Decision, error) {
	img, err := s.fetcher.FetchImage(ctx, path)
	if err != nil {
		return detector.Decision{}, err
	}
	// The decoded image is owned by this call alone and is garbage the
	// moment the tensor is built.
	return s.detector.DetectImage(img)
}

// printMatch writes one matched path to the primary output stream,
// optionally suffixed with a timestamp annotation.
func (s *Scanner) printMatch(path string) {
	if s.showTimestamps {
		if taken, source, ok := imageTimestamp(path); ok {
			fmt.Fprintf(s.out, "%s [%s:%s]\n", path, source, taken.Format(timestampLayout))
			return
		}
	}
	fmt.Fprintln(s.out, path)
}
