package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"favorite-app-service/model"
	"favorite-app-service/service"
)

type Config struct {
	ModelPath      string
	MetadataPath   string
	OnnxRuntimeLib string
	FinalStep      string
	HTTPAddr       string
	GRPCAddr       string
	ChoicesPath    string
	Precision      int
	Log            LogConfig
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Load reads an optional .env file, then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		ModelPath:      getEnv("MODEL_PATH", "favorite_app_model.onnx"),
		MetadataPath:   os.Getenv("MODEL_METADATA_PATH"),
		OnnxRuntimeLib: os.Getenv("ONNXRUNTIME_LIB"),
		FinalStep:      os.Getenv("FINAL_STEP"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8088"),
		GRPCAddr:       lookupEnv("GRPC_ADDR", ":8008"),
		ChoicesPath:    os.Getenv("CHOICES_PATH"),
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
			File:   os.Getenv("LOG_FILE"),
		},
	}
	if cfg.MetadataPath == "" {
		cfg.MetadataPath = model.MetadataPathFor(cfg.ModelPath)
	}

	precision, err := strconv.Atoi(getEnv("PROBABILITY_PRECISION", strconv.Itoa(service.DefaultPrecision)))
	if err != nil {
		return nil, fmt.Errorf("invalid PROBABILITY_PRECISION: %w", err)
	}
	cfg.Precision = precision

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Precision < 0 || c.Precision > 10 {
		return fmt.Errorf("PROBABILITY_PRECISION must be between 0 and 10, got %d", c.Precision)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.Log.Format)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// lookupEnv is getEnv except that an explicitly empty value is kept.
func lookupEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// ResolveFinalStep returns the pipeline stage probabilities are read from:
// FINAL_STEP when set, otherwise the stage named by the model metadata.
func (c *Config) ResolveFinalStep(metadataStep string) string {
	if c.FinalStep != "" {
		return c.FinalStep
	}
	if metadataStep != "" {
		return metadataStep
	}
	return model.DefaultFinalStep
}
