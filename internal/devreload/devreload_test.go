package devreload

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherTriggersExitOnFileWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(target, []byte("a = 1"), 0o644))

	w, err := New([]string{dir}, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	exited := make(chan int, 1)
	go w.Run(func(code int) { exited <- code })

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte("a = 2"), 0o644))

	select {
	case code := <-exited:
		require.Equal(t, ExitCodeReload, code)
	case <-time.After(2 * time.Second):
		t.Fatal("expected exit trigger after file write")
	}
}

func TestWatcherDebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(target, []byte("a = 1"), 0o644))

	w, err := New([]string{dir}, 100*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	var exits int
	exited := make(chan int, 10)
	go w.Run(func(code int) { exited <- code })

	time.Sleep(20 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte("a = 2"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-exited:
		exits++
	case <-time.After(2 * time.Second):
		t.Fatal("expected at least one exit trigger")
	}

	select {
	case <-exited:
		t.Fatal("debounce should have coalesced rapid writes into one trigger")
	case <-time.After(150 * time.Millisecond):
	}
	require.Equal(t, 1, exits)
}
