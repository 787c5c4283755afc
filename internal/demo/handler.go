package demo

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-cat-finder/internal/logger"
	"go-cat-finder/internal/scanner"
	"go-cat-finder/internal/storage"
)

// Handler serves the browser demo: a grid of sample images and a
// server-sent-event stream that runs detection over them one by one.
type Handler struct {
	detector   scanner.Detector
	fetcher    storage.ImageFetcher
	samplesDir string
}

// sampleImage describes one image under the samples directory.
type sampleImage struct {
	ID       int    `json:"id"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// NewHandler wires the demo routes.
func NewHandler(det scanner.Detector, fetcher storage.ImageFetcher, samplesDir string) http.Handler {
	h := &Handler{
		detector:   det,
		fetcher:    fetcher,
		samplesDir: samplesDir,
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", h.index)
	r.GET("/health", healthCheck)
	r.GET("/image/*filepath", h.serveImage)
	r.GET("/detect", h.detect)

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// listSamples walks the samples directory and returns its images in sorted
// order so detection replays deterministically.
func (h *Handler) listSamples() []sampleImage {
	var paths []string
	filepath.Walk(h.samplesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.Mode().IsRegular() && scanner.IsImageFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	sort.Strings(paths)

	samples := make([]sampleImage, 0, len(paths))
	for i, path := range paths {
		rel, err := filepath.Rel(h.samplesDir, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		samples = append(samples, sampleImage{
			ID:       i,
			Filename: filepath.Base(path),
			Path:     rel,
		})
	}
	return samples
}

func (h *Handler) index(c *gin.Context) {
	listing, err := json.Marshal(h.listSamples())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list samples")
		return
	}
	page := strings.Replace(demoPage, "IMAGES_JSON", string(listing), 1)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// serveImage returns a sample image with caching disabled so reruns always
// show fresh thumbnails.
func (h *Handler) serveImage(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("filepath"), "/")
	full := filepath.Join(h.samplesDir, filepath.Clean("/"+rel))

	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() || !scanner.IsImageFile(full) {
		c.String(http.StatusNotFound, "not found")
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.File(full)
}

// detect streams detection over every sample as server-sent events: one
// "processing" and one "result" event per image, then a final "done" with
// the totals. Images run strictly one after another through the shared
// detector, same as a CLI scan.
func (h *Handler) detect(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	samples := h.listSamples()
	cats := 0

	for _, sample := range samples {
		c.SSEvent("message", gin.H{"type": "processing", "id": sample.ID})
		c.Writer.Flush()

		full := filepath.Join(h.samplesDir, sample.Path)
		hasCat := false
		var confidence float32

		img, err := h.fetcher.FetchImage(c.Request.Context(), full)
		if err == nil {
			if decision, detErr := h.detector.DetectImage(img); detErr == nil {
				hasCat = decision.Present
				confidence = decision.Confidence
			} else {
				logger.WithError(detErr).WithField("path", full).Warn("Detection failed")
			}
		} else {
			logger.WithError(err).WithField("path", full).Warn("Failed to load sample")
		}

		if hasCat {
			cats++
		}
		c.SSEvent("message", gin.H{
			"type":       "result",
			"id":         sample.ID,
			"has_cat":    hasCat,
			"confidence": confidence,
		})
		c.Writer.Flush()
	}

	c.SSEvent("message", gin.H{"type": "done", "total": len(samples), "cats": cats})
	c.Writer.Flush()

	logger.WithFields(logrus.Fields{
		"total": len(samples),
		"cats":  cats,
	}).Info("Demo detection pass complete")
}
