//go:build integration

package capture_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ninedocs/internal/capture"
	"ninedocs/internal/config"
)

const appHTML = `<!DOCTYPE html>
<html><body>
<div class="backdrop" data-testid="modal-close"
     style="position:fixed;inset:0;background:rgba(0,0,0,0.2)"
     onclick="this.remove()">click to dismiss</div>
<h1 id="grid">The Grid</h1>
<button id="toggle" onclick="document.getElementById('panel').style.display='block'">open</button>
<div id="panel" style="display:none">panel content</div>
</body></html>`

func TestRunner_CapturesAgainstLocalApp(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, appHTML)
	}))
	defer ts.Close()

	cfg := config.DefaultConfig().Capture
	cfg.AppURL = ts.URL
	cfg.Headless = true
	cfg.NavigationTimeout = "15s"
	cfg.ActionTimeout = "5s"
	cfg.SettleDelay = "100ms"
	cfg.DismissSelectors = []string{"[data-testid='modal-close']"}

	dir := t.TempDir()
	runner := capture.NewRunner(cfg, dir, nil)
	plan := &capture.Plan{Shots: []capture.Shot{
		{Name: "grid-overview-default-01", Route: "/"},
		{
			Name:  "grid-panel-open-01",
			Route: "/",
			Actions: []capture.Action{
				{Type: "click", Selector: "#toggle"},
				{Type: "wait", Selector: "#panel"},
			},
			Element: "#panel",
		},
		{
			Name:  "grid-missing-element-01",
			Route: "/",
			Actions: []capture.Action{
				{Type: "click", Selector: "#does-not-exist"},
			},
		},
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := runner.Run(ctx, plan)
	require.NoError(t, err, "per-shot failures must not fail the run")

	assert.Equal(t, 2, result.Captured)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Report.Warnings())

	for _, name := range []string{"grid-overview-default-01.png", "grid-panel-open-01.png"} {
		info, statErr := os.Stat(filepath.Join(dir, name))
		require.NoError(t, statErr, "expected %s", name)
		assert.Greater(t, info.Size(), int64(0))
	}
	_, statErr := os.Stat(filepath.Join(dir, "grid-missing-element-01.png"))
	assert.True(t, os.IsNotExist(statErr), "failed shot must not leave a file")
}
