package serve

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHandler_ServesSiteWithoutCaching(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "index.html"), []byte("<h1>Home</h1>"), 0644))

	srv := &Server{OutputDir: out}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	t.Cleanup(http.DefaultClient.CloseIdleConnections)

	resp, err := http.Get(ts.URL + "/index.html")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Home")
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-cache")
}

func TestHandler_Missing404(t *testing.T) {
	srv := &Server{OutputDir: t.TempDir()}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	t.Cleanup(http.DefaultClient.CloseIdleConnections)

	resp, err := http.Get(ts.URL + "/nope.html")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWatch_DebouncedRebuild(t *testing.T) {
	content := t.TempDir()

	var rebuilds atomic.Int32
	srv := &Server{
		OutputDir:  t.TempDir(),
		WatchPaths: []string{content},
		Debounce:   50 * time.Millisecond,
		Rebuild: func(ctx context.Context) error {
			rebuilds.Add(1)
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	srv.Log = zap.NewNop()
	go func() {
		done <- srv.watch(ctx)
	}()

	// Let the watcher install itself before writing.
	time.Sleep(100 * time.Millisecond)

	// A burst of writes should collapse into one rebuild.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(content, "page.md"), []byte("# P\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return rebuilds.Load() == 1
	}, 2*time.Second, 20*time.Millisecond, "expected exactly one debounced rebuild")

	cancel()
	require.NoError(t, <-done)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "index.html"), []byte("ok"), 0644))

	srv := &Server{
		Addr:      "127.0.0.1:0",
		OutputDir: out,
		Debounce:  50 * time.Millisecond,
	}
	srv.addrCh = make(chan net.Addr, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	addr := <-srv.addrCh
	t.Cleanup(http.DefaultClient.CloseIdleConnections)
	resp, err := http.Get("http://" + addr.String() + "/index.html")
	require.NoError(t, err)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
