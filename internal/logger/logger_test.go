package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/go-service-template/internal/config"
	"github.com/deppfellow/go-service-template/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultObservabilityConfig()

	log := logger.NewLogger(cfg, &buf)
	log.Info().Int("port", 8080).Msg("Server running on port 8080")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, config.ServiceName, line["service"])
	assert.Equal(t, "development", line["environment"])
	assert.Equal(t, "Server running on port 8080", line["message"])
	assert.EqualValues(t, 8080, line["port"])
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	log := logger.NewLogger(cfg, &buf)
	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLoggerConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Format = "console"

	log := logger.NewLogger(cfg, &buf)
	log.Error().Msg("An error occurred")

	assert.Contains(t, buf.String(), "An error occurred")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestLoggerServiceDisabledWithoutLicense(t *testing.T) {
	ls, err := logger.NewLoggerService(config.DefaultObservabilityConfig())
	require.NoError(t, err)
	assert.Nil(t, ls.GetApplication())

	// Both are no-ops when New Relic is off.
	ls.Shutdown()
	var nilService *logger.LoggerService
	assert.Nil(t, nilService.GetApplication())
	nilService.Shutdown()
}
