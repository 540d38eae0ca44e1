package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/resumatch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		DBPath:       filepath.Join(t.TempDir(), "app.db"),
		LogLevel:     "debug",
		ArgonMemory:  8 * 1024,
		ArgonTime:    1,
		ArgonThreads: 1,
		FetchTimeout: time.Second,
	}
}

func TestNew(t *testing.T) {
	var logs bytes.Buffer
	a, err := New(context.Background(), testConfig(t), &logs)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	assert.NotNil(t, a.Store)
	assert.NotNil(t, a.Auth)
	assert.NotNil(t, a.Analyzer)
	assert.NotNil(t, a.Fetcher)
	assert.NotEmpty(t, a.Catalog.Roles)
	assert.Equal(t, time.Second, a.HTTPClient.Timeout)
	assert.Contains(t, logs.String(), "app initialized")

	ctx := context.Background()
	require.NoError(t, a.Auth.Signup(ctx, "alice", "password1"))
	_, err = a.Auth.Login(ctx, "alice", "password1")
	assert.NoError(t, err)
}

func TestNewBadCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg, &bytes.Buffer{})
	assert.ErrorContains(t, err, "failed to load catalog")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestContext(t *testing.T) {
	assert.Nil(t, GetAppFromContext(context.Background()))

	a := &App{}
	ctx := SetAppInContext(context.Background(), a)
	assert.Same(t, a, GetAppFromContext(ctx))
}
