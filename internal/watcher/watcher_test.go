package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fabric.yaml")
	require.NoError(t, os.WriteFile(path, []byte("devices: []\n"), 0o644))

	var calls atomic.Int32
	w := New(path, func(context.Context) { calls.Add(1) }, zaptest.NewLogger(t)).
		WithDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Watch(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	t.Run("unrelated files are ignored", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
		time.Sleep(150 * time.Millisecond)
		assert.Zero(t, calls.Load())
	})

	t.Run("burst of writes is debounced", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			require.NoError(t, os.WriteFile(path, []byte("devices: [D1]\n"), 0o644))
			time.Sleep(5 * time.Millisecond)
		}
		require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
		time.Sleep(150 * time.Millisecond)
		assert.Equal(t, int32(1), calls.Load())
	})

	cancel()
	assert.True(t, errors.Is(<-errc, context.Canceled))
}

func TestWatchMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "fabric.yaml"), func(context.Context) {}, nil)
	assert.Error(t, w.Watch(context.Background()))
}
