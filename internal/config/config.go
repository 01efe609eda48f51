// Package config manages environment variables.
//
// It layers compiled-in defaults, an optional `.env` file and the process
// environment into structured Go types, then validates the result so the
// service fails fast on bad config.
//
// Keys:
//   - SERVICE_ prefixed variables, with "__" marking nesting
//     (SERVICE_SERVER__READ_TIMEOUT -> server.read_timeout).
//   - PORT, unprefixed, for the listen port.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads a `.env` file into the process environment, if one exists.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/labstack/gommon/bytes"
)

const (
	// EnvPrefix is the prefix of every namespaced environment variable.
	EnvPrefix = "SERVICE_"

	// PortEnv is the unprefixed variable that selects the listen port.
	PortEnv = "PORT"

	// DefaultPort is used when PORT is absent or invalid.
	DefaultPort = 8080

	// ServiceName tags logs, traces and metrics.
	ServiceName = "go-service-template"

	minPort = 1
	maxPort = 65535
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               int      `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	BodyLimit          string   `koanf:"body_limit" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// defaultValues are the compiled-in defaults, keyed by koanf path.
func defaultValues() map[string]interface{} {
	obs := DefaultObservabilityConfig()

	return map[string]interface{}{
		"primary.env":                 "development",
		"server.port":                 DefaultPort,
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.body_limit":           "1M",
		"server.cors_allowed_origins": []string{"*"},

		"observability.service_name":                          obs.ServiceName,
		"observability.environment":                           obs.Environment,
		"observability.logging.level":                         obs.Logging.Level,
		"observability.logging.format":                        obs.Logging.Format,
		"observability.new_relic.license_key":                 obs.NewRelic.LicenseKey,
		"observability.new_relic.app_log_forwarding_enabled":  obs.NewRelic.AppLogForwardingEnabled,
		"observability.new_relic.distributed_tracing_enabled": obs.NewRelic.DistributedTracingEnabled,
		"observability.new_relic.debug_logging":               obs.NewRelic.DebugLogging,
		"observability.metrics.enabled":                       obs.Metrics.Enabled,
		"observability.metrics.path":                          obs.Metrics.Path,
	}
}

// envKey maps SERVICE_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// LoadConfig builds the configuration from defaults and the environment,
// then validates it.
//
// Order of precedence (last wins):
//   - compiled-in defaults
//   - SERVICE_* variables (including those from `.env`)
//   - PORT, when it holds a valid port number
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load default config: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	// An invalid PORT falls back instead of failing startup.
	mainConfig.Server.Port = ResolvePort(os.Getenv(PortEnv), mainConfig.Server.Port)

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := mainConfig.Server.BodyLimitBytes(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// ResolvePort returns the port encoded in raw, or fallback when raw is empty,
// not a base-10 integer, or outside 1..65535.
//
// It does not touch the process environment.
func ResolvePort(raw string, fallback int) int {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || port < minPort || port > maxPort {
		return fallback
	}
	return port
}

// Address returns the listen address for the configured port.
func (s ServerConfig) Address() string {
	return ":" + strconv.Itoa(s.Port)
}

// BodyLimitBytes parses BodyLimit ("512K", "1M", "2MB") into a byte count.
func (s ServerConfig) BodyLimitBytes() (int64, error) {
	limit, err := bytes.Parse(s.BodyLimit)
	if err != nil {
		return 0, fmt.Errorf("invalid server.body_limit %q: %w", s.BodyLimit, err)
	}
	if limit <= 0 {
		return 0, fmt.Errorf("invalid server.body_limit %q: must be positive", s.BodyLimit)
	}
	return limit, nil
}
