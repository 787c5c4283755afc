package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"go-cat-finder/internal/config"
	"go-cat-finder/internal/detector"
	apperrors "go-cat-finder/internal/errors"
	"go-cat-finder/internal/logger"
	"go-cat-finder/internal/scanner"
	"go-cat-finder/internal/storage"
)

func main() {
	app := &cli.App{
		Name:      "cat-finder",
		Usage:     "Scans directories for photos containing cats using a YOLO ONNX model",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "show verbose output",
			},
			&cli.BoolFlag{
				Name:    "timestamp",
				Aliases: []string{"t"},
				Usage:   "show timestamp (F for file-based, M for metadata-based)",
			},
			&cli.Float64Flag{
				Name:  "confidence",
				Usage: "confidence threshold for detection (0.0-1.0)",
				Value: 0.25,
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "path to YOLO ONNX model file",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "check a single remote image (http/https URL or azure://container/blob) instead of scanning a directory",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(apperrors.GetExitCode(err))
	}
}

func run(c *cli.Context) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	// Flags override the environment.
	if c.IsSet("confidence") {
		cfg.ConfidenceThreshold = c.Float64("confidence")
	}
	if c.IsSet("model") {
		cfg.ModelPath = c.String("model")
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
	}
	if c.Bool("timestamp") {
		cfg.ShowTimestamps = true
	}
	if c.Args().Present() {
		cfg.RootPath = c.Args().First()
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	logger.SetVerbose(cfg.Verbose)

	logger.WithField("model", cfg.ModelPath).Debug("Loading model")
	engine, err := detector.NewONNXEngine(cfg.ModelPath, cfg.ONNXLibraryPath)
	if err != nil {
		// A missing or unloadable model aborts before anything is scanned.
		return cli.Exit(err.Error(), apperrors.GetExitCode(err))
	}

	opts := detector.DefaultOptions().WithThreshold(float32(cfg.ConfidenceThreshold))
	det := detector.New(engine, opts)
	defer det.Close()

	logger.WithFields(logrus.Fields{
		"confidence": cfg.ConfidenceThreshold,
	}).Debug("Model loaded successfully")

	if ref := c.String("url"); ref != "" {
		return checkRemote(c.Context, cfg, det, ref)
	}

	logger.WithField("path", cfg.RootPath).Debug("Scanning directory")

	s := scanner.New(det, storage.NewLocalImageFetcher(), os.Stdout, cfg.ShowTimestamps)
	if _, err := s.ScanDir(c.Context, cfg.RootPath); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	// Per-file errors are already counted in the summary; a completed scan
	// exits zero even when some files failed.
	return nil
}

// checkRemote runs the detector over one remote image reference.
func checkRemote(ctx context.Context, cfg *config.Config, det *detector.CatDetector, ref string) error {
	var fetcher storage.ImageFetcher
	switch {
	case strings.HasPrefix(ref, "azure://"):
		if cfg.AzureAccountName == "" || cfg.AzureAccountKey == "" {
			return cli.Exit("azure:// references require AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY", 2)
		}
		azure, err := storage.NewAzureImageFetcher(cfg.AzureAccountName, cfg.AzureAccountKey)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fetcher = azure
		ref = strings.TrimPrefix(ref, "azure://")
	default:
		fetcher = storage.NewHTTPImageFetcher()
	}

	s := scanner.New(det, fetcher, os.Stdout, false)
	decision, err := s.CheckRef(ctx, ref)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if decision.Present {
		fmt.Println(ref)
	}
	return nil
}
