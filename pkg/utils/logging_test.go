package utils

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

func TestNewLoggerLevel(t *testing.T) {
    l := newLogger("warn", "")
    assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
    assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

    l = newLogger("bogus", "")
    assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNewLoggerTeesToFile(t *testing.T) {
    path := filepath.Join(t.TempDir(), "logs", "app.log")
    l := newLogger("", path)
    l.Info("trained", zap.Int("docs", 4))
    // stdout may refuse fsync when it is a pipe
    _ = l.Sync()

    b, err := os.ReadFile(path)
    require.NoError(t, err)
    assert.Contains(t, string(b), `"msg":"trained"`)
    assert.Contains(t, string(b), `"docs":4`)
}

func TestLoggerSingleton(t *testing.T) {
    assert.Same(t, Logger(), Logger())
}
