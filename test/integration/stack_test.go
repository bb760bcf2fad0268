//go:build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/finbits/tips-service/internal/adapters/http"
	"github.com/finbits/tips-service/internal/adapters/http/handlers"
	"github.com/finbits/tips-service/internal/adapters/storage/sqlite"
	"github.com/finbits/tips-service/internal/app"
	"github.com/finbits/tips-service/internal/platform/config"
	"github.com/finbits/tips-service/internal/ports"
)

// tipStack is the fully wired service running against a file-backed
// store, listening on an httptest server.
type tipStack struct {
	server *httptest.Server
	store  *sqlite.DB
}

// startTipStack opens the store at dbPath and serves the real router.
// The caller owns the returned stack and must Close it.
func startTipStack(dbPath string) (*tipStack, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := sqlite.New(ctx, sqlite.Config{Path: dbPath})
	if err != nil {
		return nil, fmt.Errorf("opening tip store: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry := ports.NewHealthRegistry()
	if err := registry.Register(store); err != nil {
		store.Close()
		return nil, fmt.Errorf("registering health check: %w", err)
	}

	service := app.NewTipService(app.TipServiceConfig{
		Repository: store,
		Logger:     logger,
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger: logger,
		AppConfig: &config.AppConfig{
			Name:        "tips-service",
			Version:     "test",
			Environment: "test",
		},
		StatusHandler: handlers.NewStatusHandler("Welcome to the Financial Tips API", []string{"/tips"}),
		TipHandler:    handlers.NewTipHandler(service),
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "none")),
		Timeout:       5 * time.Second,
	})

	return &tipStack{
		server: httptest.NewServer(engine),
		store:  store,
	}, nil
}

// Close stops the HTTP server and the store.
func (s *tipStack) Close() {
	s.server.Close()
	_ = s.store.Close()
}

// newTipStack starts a stack on a per-test temp database and registers
// cleanup with t.
func newTipStack(t *testing.T) *tipStack {
	t.Helper()

	stack, err := startTipStack(filepath.Join(t.TempDir(), "tips.db"))
	require.NoError(t, err)
	t.Cleanup(stack.Close)

	return stack
}
