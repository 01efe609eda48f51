// Package testhelpers builds isolated application instances for tests.
package testhelpers

import (
	"bytes"
	"net"
	"sync"
	"testing"

	"github.com/deppfellow/go-service-template/internal/config"
	"github.com/deppfellow/go-service-template/internal/handler"
	"github.com/deppfellow/go-service-template/internal/logger"
	"github.com/deppfellow/go-service-template/internal/router"
	"github.com/deppfellow/go-service-template/internal/server"
	"github.com/deppfellow/go-service-template/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// LogBuffer is a bytes.Buffer that is safe to write from server goroutines
// while a test reads it.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// TestConfig returns a valid config with the compiled-in defaults.
func TestConfig() *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"
	obs.Logging.Level = "debug"

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               config.DefaultPort,
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			BodyLimit:          "1M",
			CORSAllowedOrigins: []string{"*"},
		},
		Observability: obs,
	}
}

// NewTestServer returns a Server built from cfg whose logs go to the
// returned buffer. A nil cfg means TestConfig().
func NewTestServer(t *testing.T, cfg *config.Config) (*server.Server, *LogBuffer) {
	t.Helper()

	if cfg == nil {
		cfg = TestConfig()
	}

	logs := &LogBuffer{}
	log := logger.NewLogger(cfg.Observability, logs)

	s, err := server.New(cfg, &log, nil)
	require.NoError(t, err)

	return s, logs
}

// NewTestApp builds a complete application instance on a fresh Server.
func NewTestApp(t *testing.T) (*echo.Echo, *LogBuffer) {
	t.Helper()

	s, logs := NewTestServer(t, nil)
	return NewApp(t, s), logs
}

// NewApp builds an application instance on s.
func NewApp(t *testing.T, s *server.Server) *echo.Echo {
	t.Helper()

	services, err := service.NewServices(s)
	require.NoError(t, err)

	return router.NewRouter(s, handler.NewHandlers(s, services))
}

// FreePort returns a TCP port that was free a moment ago.
func FreePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	return ln.Addr().(*net.TCPAddr).Port
}

// HoldPort binds an ephemeral port on all interfaces and keeps it bound
// until the test ends.
func HoldPort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	return ln.Addr().(*net.TCPAddr).Port
}
