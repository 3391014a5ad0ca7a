package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_ContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, true, slog.LevelInfo)

	ctx := AppendCtx(context.Background(), slog.String("app", "dcmctl"))
	ctx = AppendCtx(ctx, slog.Group("build", slog.String("git", "abc123")))
	log.InfoContext(ctx, "converted", "tag", "(0010,0010)")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "converted", rec["msg"])
	assert.Equal(t, "dcmctl", rec["app"])
	assert.Equal(t, map[string]any{"git": "abc123"}, rec["build"])
	assert.Equal(t, "(0010,0010)", rec["tag"])
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, false, slog.LevelWarn).With("component", "stream")
	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "component=stream")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dcmctl.log")
	w := RotatingFile(path, 1, 2)
	Logger(w, false, slog.LevelInfo).Info("written")
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "msg=written")
}
