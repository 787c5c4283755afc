package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every knob the binaries share. Values come from the
// environment with sane defaults; command-line flags override them.
type Config struct {
	// Scanning
	RootPath            string
	ModelPath           string
	ConfidenceThreshold float64
	Verbose             bool
	ShowTimestamps      bool

	// ONNX Runtime shared library location (empty means the loader default)
	ONNXLibraryPath string

	// Demo server
	Host           string
	Port           string
	SamplesDir     string
	RequestTimeout time.Duration

	// Optional Azure blob source
	AzureAccountName string
	AzureAccountKey  string
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		RootPath:            getEnvOrDefault("SCAN_PATH", "."),
		ModelPath:           getEnvOrDefault("MODEL_PATH", "models/yolov8n.onnx"),
		ConfidenceThreshold: parseFloatOrDefault("CONFIDENCE_THRESHOLD", 0.25),
		Verbose:             parseBoolOrDefault("VERBOSE", false),
		ShowTimestamps:      parseBoolOrDefault("SHOW_TIMESTAMPS", false),
		ONNXLibraryPath:     os.Getenv("ONNXRUNTIME_SHARED_LIBRARY"),
		Host:                getEnvOrDefault("HOST", "0.0.0.0"),
		Port:                getEnvOrDefault("PORT", "5001"),
		SamplesDir:          getEnvOrDefault("SAMPLES_DIR", "samples"),
		RequestTimeout:      parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		AzureAccountName:    os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureAccountKey:     os.Getenv("AZURE_STORAGE_KEY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with. It is called again
// after flag overrides are applied.
func (c *Config) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold must be in [0.0, 1.0] (got %g)", c.ConfidenceThreshold)
	}
	if strings.TrimSpace(c.ModelPath) == "" {
		return fmt.Errorf("model path must not be empty")
	}
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be > 0 (got %s)", c.RequestTimeout)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}
