package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufLogger() (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newBufLogger()
	ctx := context.Background()

	log.Info(ctx, "hello", "k", "v")
	require.Contains(t, buf.String(), "level=INFO")
	require.Contains(t, buf.String(), "k=v")

	buf.Reset()
	log.Warn(ctx, "careful")
	require.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	log.Error(ctx, "broken")
	require.Contains(t, buf.String(), "level=ERROR")
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newBufLogger()

	child := log.With("component", "session")
	child.Info(context.Background(), "snapshot")

	require.Contains(t, buf.String(), "component=session")
}
