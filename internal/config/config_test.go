package config_test

import (
	"testing"

	"github.com/deppfellow/go-service-template/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePort(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "unset", raw: "", want: config.DefaultPort},
		{name: "numeric", raw: "9000", want: 9000},
		{name: "surrounding whitespace", raw: " 9001 ", want: 9001},
		{name: "not a number", raw: "abc", want: config.DefaultPort},
		{name: "trailing garbage", raw: "9000abc", want: config.DefaultPort},
		{name: "zero", raw: "0", want: config.DefaultPort},
		{name: "negative", raw: "-1", want: config.DefaultPort},
		{name: "above range", raw: "65536", want: config.DefaultPort},
		{name: "upper bound", raw: "65535", want: 65535},
		{name: "lower bound", raw: "1", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.ResolvePort(tt.raw, config.DefaultPort))
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(config.PortEnv, "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Address())
	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "1M", cfg.Server.BodyLimit)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, config.ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.Metrics.Enabled)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadConfigPortFromEnv(t *testing.T) {
	t.Setenv(config.PortEnv, "9000")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadConfigInvalidPortFallsBack(t *testing.T) {
	t.Setenv(config.PortEnv, "abc")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
}

func TestLoadConfigPrefixedOverrides(t *testing.T) {
	t.Setenv(config.PortEnv, "")
	t.Setenv("SERVICE_PRIMARY__ENV", "production")
	t.Setenv("SERVICE_SERVER__PORT", "7000")
	t.Setenv("SERVICE_SERVER__READ_TIMEOUT", "5")
	t.Setenv("SERVICE_OBSERVABILITY__LOGGING__LEVEL", "warn")
	t.Setenv("SERVICE_OBSERVABILITY__METRICS__ENABLED", "false")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadTimeout)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
	assert.Equal(t, "warn", cfg.Observability.GetLogLevel())
	assert.False(t, cfg.Observability.Metrics.Enabled)
}

func TestLoadConfigRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("SERVICE_OBSERVABILITY__LOGGING__LEVEL", "loud")

	_, err := config.LoadConfig()
	assert.ErrorContains(t, err, "invalid logging level")
}

func TestGetLogLevelDefaultsByEnvironment(t *testing.T) {
	obs := config.DefaultObservabilityConfig()
	obs.Logging.Level = ""

	obs.Environment = "production"
	assert.Equal(t, "info", obs.GetLogLevel())

	obs.Environment = "development"
	assert.Equal(t, "debug", obs.GetLogLevel())
}

func TestBodyLimitBytes(t *testing.T) {
	limit, err := config.ServerConfig{BodyLimit: "1M"}.BodyLimitBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(1024*1024), limit)

	limit, err = config.ServerConfig{BodyLimit: "512K"}.BodyLimitBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(512*1024), limit)

	_, err = config.ServerConfig{BodyLimit: "lots"}.BodyLimitBytes()
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadBodyLimit(t *testing.T) {
	t.Setenv("SERVICE_SERVER__BODY_LIMIT", "lots")

	_, err := config.LoadConfig()
	assert.ErrorContains(t, err, "body_limit")
}
