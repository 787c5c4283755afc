package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"go-cat-finder/internal/config"
	"go-cat-finder/internal/demo"
	"go-cat-finder/internal/detector"
	"go-cat-finder/internal/logger"
	"go-cat-finder/internal/storage"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.WithError(err).Error("Failed to load config")
		os.Exit(2)
	}

	logger.WithField("model", cfg.ModelPath).Info("Loading model")
	engine, err := detector.NewONNXEngine(cfg.ModelPath, cfg.ONNXLibraryPath)
	if err != nil {
		logger.WithError(err).Error("Failed to load model")
		os.Exit(1)
	}

	opts := detector.DefaultOptions().WithThreshold(float32(cfg.ConfidenceThreshold))
	det := detector.New(engine, opts)
	defer det.Close()

	handler := demo.NewHandler(det, storage.NewLocalImageFetcher(), cfg.SamplesDir)

	server := &http.Server{
		Addr:         cfg.ServerAddress(),
		Handler:      handler,
		ReadTimeout:  cfg.RequestTimeout,
		// SSE detection passes run one inference per sample; give writes
		// plenty of room.
		WriteTimeout: 10 * cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    cfg.ServerAddress(),
			"samples": cfg.SamplesDir,
		}).Info("Demo server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down demo server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}
}
