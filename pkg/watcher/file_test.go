package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	changed chan string
}

func (n *mockNotifier) WatcherItemDidChange(path string) {
	n.changed <- path
}

func (n *mockNotifier) WatcherDidError(err error) {}

func TestFileChanged(t *testing.T) {
	dir := t.TempDir()
	secret := filepath.Join(dir, "secret.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(secret, []byte("first"), 0600))

	w, err := NewFile()
	require.NoError(t, err)
	require.NoError(t, w.Add(secret))

	n := &mockNotifier{changed: make(chan string, 100)}
	done := make(chan struct{})
	go func() {
		w.Start(n)
		close(done)
	}()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0600))
	require.NoError(t, os.WriteFile(secret, []byte("second"), 0600))

	select {
	case p := <-n.changed:
		assert.Equal(t, secret, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	w.Shutdown()
	w.Shutdown()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
