package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"MODEL_PATH", "MODEL_METADATA_PATH", "ONNXRUNTIME_LIB", "FINAL_STEP", "HTTP_ADDR",
	"GRPC_ADDR", "CHOICES_PATH", "PROBABILITY_PRECISION", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
}

// clearEnv unsets every key for the test and restores it afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "favorite_app_model.onnx", cfg.ModelPath)
	assert.Equal(t, "favorite_app_model.json", cfg.MetadataPath)
	assert.Empty(t, cfg.FinalStep)
	assert.Equal(t, ":8088", cfg.HTTPAddr)
	assert.Equal(t, ":8008", cfg.GRPCAddr)
	assert.Equal(t, 4, cfg.Precision)
	assert.Equal(t, LogConfig{Level: "info", Format: "json"}, cfg.Log)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODEL_PATH", "/models/app.onnx")
	t.Setenv("PROBABILITY_PRECISION", "2")
	t.Setenv("GRPC_ADDR", "")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "/models/app.json", cfg.MetadataPath)
	assert.Equal(t, 2, cfg.Precision)
	assert.Empty(t, cfg.GRPCAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MODEL_METADATA_PATH=/srv/meta.json\nHTTP_ADDR=:9000\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/meta.json", cfg.MetadataPath)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"precision not a number", "PROBABILITY_PRECISION", "four"},
		{"precision negative", "PROBABILITY_PRECISION", "-1"},
		{"precision too large", "PROBABILITY_PRECISION", "11"},
		{"log level", "LOG_LEVEL", "verbose"},
		{"log format", "LOG_FORMAT", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestResolveFinalStep(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "classifier", cfg.ResolveFinalStep("classifier"))
	assert.Equal(t, "clf", cfg.ResolveFinalStep(""))

	cfg.FinalStep = "model"
	assert.Equal(t, "model", cfg.ResolveFinalStep("classifier"))
}

func TestLoadFinalStepOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("FINAL_STEP", "svc")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "svc", cfg.ResolveFinalStep("classifier"))
}
