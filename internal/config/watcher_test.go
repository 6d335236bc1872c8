package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestWatcherBroadcast(t *testing.T) {
	w := NewWatcher("unused", nil, discardLogger())

	a := w.Subscribe()
	b := w.Subscribe()
	defer w.Unsubscribe(b)

	cfg := Default()
	w.broadcast(cfg)

	assert.Same(t, cfg, <-a)
	assert.Same(t, cfg, <-b)

	// A full listener channel is skipped rather than blocking the
	// broadcaster.
	w.broadcast(cfg)
	w.broadcast(Default())
	assert.Same(t, cfg, <-a)
	select {
	case extra := <-a:
		t.Fatalf("expected dropped snapshot, got %+v", extra)
	default:
	}

	w.Unsubscribe(a)
	_, open := <-a
	assert.False(t, open)
}

func TestWatcherReload(t *testing.T) {
	Reset()
	path := writeConfig(t, "verbose: true\n")

	w := NewWatcher(path, nil, discardLogger())
	ch := w.Subscribe()
	defer w.Unsubscribe(ch)

	w.reload()

	cfg := <-ch
	require.NotNil(t, cfg)
	assert.True(t, cfg.Verbose)
}

func TestWatcherReloadKeepsOldSnapshotOnError(t *testing.T) {
	Reset()
	path := writeConfig(t, "linting:\n  severity: loud\n")

	w := NewWatcher(path, nil, discardLogger())
	ch := w.Subscribe()
	defer w.Unsubscribe(ch)

	w.reload()

	select {
	case cfg := <-ch:
		t.Fatalf("expected no snapshot for invalid config, got %+v", cfg)
	default:
	}

	// Once the file is fixed the next reload goes through.
	require.NoError(t, os.WriteFile(path, []byte("verbose: true\n"), 0o644))
	w.reload()
	assert.True(t, (<-ch).Verbose)
}
