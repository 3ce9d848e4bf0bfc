package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchboard/internal/config"
)

func TestOpenLogWithoutFileIsSilent(t *testing.T) {
	logger, closer, err := openLog(config.Default())
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closer.Close())
}

func TestOpenLogClosesFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "sketch.log")
	cfg.LogLevel = "debug"

	logger, closer, err := openLog(cfg)
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closer.Close())
	assert.ErrorIs(t, closer.Close(), os.ErrClosed)

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestOpenLogMissingDirectory(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "missing", "sketch.log")
	_, _, err := openLog(cfg)
	assert.Error(t, err)
}
