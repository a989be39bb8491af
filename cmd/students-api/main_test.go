package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
)

func TestSetupLoggerLevels(t *testing.T) {
	ctx := context.Background()

	prod := setupLogger("prod", "")
	assert.False(t, prod.Enabled(ctx, slog.LevelDebug))
	assert.True(t, prod.Enabled(ctx, slog.LevelInfo))

	dev := setupLogger("dev", "")
	assert.True(t, dev.Enabled(ctx, slog.LevelDebug))

	quiet := setupLogger("dev", "warn")
	assert.False(t, quiet.Enabled(ctx, slog.LevelInfo))
}

func TestOpenStorageMemory(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: config.DriverMemory}}
	store, closer, err := openStorage(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &memory.Memory{}, store)
	assert.NoError(t, closer.Close())
}

func TestOpenStorageUnknown(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: "mongo"}}
	_, _, err := openStorage(context.Background(), cfg)
	assert.Error(t, err)
}
