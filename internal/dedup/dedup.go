package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"go-cat-finder/internal/logger"
)

// Match is one file whose size and content checksum equal the target's.
type Match struct {
	Path     string
	Checksum string
}

// Summary aggregates one duplicate search.
type Summary struct {
	// SizeMatches is how many candidates shared the target's file size.
	SizeMatches int
	// Checked is how many checksums were actually computed.
	Checked int
	// Found is how many true duplicates were confirmed.
	Found int
}

// FileChecksum streams the file at path through SHA-256 and returns the hex
// digest.
func FileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("failed to hash file %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// FindDuplicates locates exact duplicates of target under searchDir. The
// search runs in two phases: first every candidate with the target's
// extension is bucketed by file size, then checksums are computed only for
// the bucket matching the target's size. Content hashing is the expensive
// step, so the size filter keeps it off everything that cannot possibly
// match. onMatch fires once per confirmed duplicate, in traversal order.
func FindDuplicates(target, searchDir string, onMatch func(Match)) (Summary, error) {
	var summary Summary

	info, err := os.Stat(target)
	if err != nil {
		return summary, fmt.Errorf("target file does not exist: %w", err)
	}
	if !info.Mode().IsRegular() {
		return summary, fmt.Errorf("target path is not a file: %s", target)
	}

	targetSize := info.Size()
	targetExt := strings.ToLower(filepath.Ext(target))
	targetChecksum, err := FileChecksum(target)
	if err != nil {
		return summary, err
	}

	logger.WithFields(logrus.Fields{
		"target": target,
		"size":   targetSize,
		"sha256": targetChecksum,
		"search": searchDir,
	}).Debug("Looking for duplicates")

	absTarget, err := filepath.Abs(target)
	if err != nil {
		absTarget = target
	}

	// Phase 1: bucket candidate files by size.
	logger.Debug("Phase 1: scanning directory for files")
	filesBySize := make(map[int64][]string)
	err = filepath.WalkDir(searchDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.WithError(walkErr).WithField("path", path).Warn("Skipping unreadable entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != targetExt {
			return nil
		}
		// Never report the target as its own duplicate.
		if abs, absErr := filepath.Abs(path); absErr == nil && abs == absTarget {
			return nil
		}
		entryInfo, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		size := entryInfo.Size()
		filesBySize[size] = append(filesBySize[size], path)
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("directory walk failed: %w", err)
	}

	// Phase 2: checksum only the bucket that matches the target's size.
	logger.Debug("Phase 2: checking checksums for size matches")
	sameSize := filesBySize[targetSize]
	summary.SizeMatches = len(sameSize)

	for _, path := range sameSize {
		summary.Checked++

		checksum, hashErr := FileChecksum(path)
		if hashErr != nil {
			logger.WithError(hashErr).WithField("path", path).Warn("Failed to checksum file")
			continue
		}
		if checksum == targetChecksum {
			summary.Found++
			logger.WithField("path", path).Debug("Duplicate confirmed")
			if onMatch != nil {
				onMatch(Match{Path: path, Checksum: checksum})
			}
		} else {
			logger.WithField("path", path).Debug("Same size, different checksum")
		}
	}

	logger.WithFields(logrus.Fields{
		"size_matches": summary.SizeMatches,
		"checked":      summary.Checked,
		"found":        summary.Found,
	}).Info("Duplicate search complete")
	return summary, nil
}
