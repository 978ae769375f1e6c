package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"ninedocs/internal/check"
	"ninedocs/internal/config"
)

// Result summarizes a capture run.
type Result struct {
	SessionID string
	Captured  int
	Failed    int
	Elapsed   time.Duration
	Report    *check.Report
}

// Runner executes a capture plan.
type Runner struct {
	cfg config.CaptureConfig
	log *zap.Logger

	// OutputDir receives the PNG files.
	OutputDir string
}

// NewRunner creates a runner writing into outputDir.
func NewRunner(cfg config.CaptureConfig, outputDir string, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log, OutputDir: outputDir}
}

// Run validates the plan, starts a browser session, and captures every
// shot in order. Per-shot failures are warnings in the result report;
// Run itself fails only when the browser cannot be started or the
// output directory cannot be created.
func (r *Runner) Run(ctx context.Context, plan *Plan) (*Result, error) {
	start := time.Now()
	report := &check.Report{}
	plan.Validate(report)
	if !report.Ok() {
		return nil, fmt.Errorf("capture plan is invalid:\n%s", report.Render(false))
	}

	if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create screenshot dir: %w", err)
	}

	session := NewSession(r.cfg, r.log)
	if err := session.Start(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			r.log.Warn("browser shutdown failed", zap.Error(err))
		}
	}()

	result := &Result{SessionID: session.ID, Report: report}
	for _, shot := range plan.Shots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.captureShot(ctx, session.Page(), shot); err != nil {
			result.Failed++
			report.AddWarning(check.CategoryCaptureFailed, "", 0, shot.Name, "shot %s: %v", shot.Name, err)
			r.log.Warn("capture failed, continuing batch",
				zap.String("shot", shot.Name),
				zap.Error(err),
			)
			continue
		}
		result.Captured++
		r.log.Info("captured", zap.String("shot", shot.Filename()))
	}

	result.Elapsed = time.Since(start)
	r.log.Info("capture run finished",
		zap.String("session", session.ID),
		zap.Int("captured", result.Captured),
		zap.Int("failed", result.Failed),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func (r *Runner) captureShot(ctx context.Context, page *rod.Page, shot Shot) error {
	navTimeout := r.cfg.GetNavigationTimeout()
	url := strings.TrimSuffix(r.cfg.AppURL, "/") + shot.Route

	if err := page.Timeout(navTimeout).Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.Timeout(navTimeout).WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}

	// A leftover menu or dialog from the previous shot leaves an
	// invisible backdrop that swallows every later pointer event, so
	// overlays are dismissed before each shot rather than after.
	r.dismissOverlays(page)

	for i, action := range shot.Actions {
		if err := r.runAction(ctx, page, action); err != nil {
			return fmt.Errorf("action %d (%s %s): %w", i+1, action.Type, action.Selector, err)
		}
	}

	if err := sleepCtx(ctx, r.cfg.GetSettleDelay()); err != nil {
		return err
	}

	data, err := r.screenshot(page, shot)
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return r.writeShot(shot, data)
}

// dismissOverlays presses Escape and clicks any visible dismiss target.
// Best effort; a shot must not fail because nothing needed closing.
func (r *Runner) dismissOverlays(page *rod.Page) {
	if err := page.Keyboard.Press(input.Escape); err != nil {
		r.log.Debug("escape press failed", zap.Error(err))
	}
	for _, selector := range r.cfg.DismissSelectors {
		has, el, err := page.Has(selector)
		if err != nil || !has {
			continue
		}
		visible, err := el.Visible()
		if err != nil || !visible {
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			r.log.Debug("overlay dismiss click failed",
				zap.String("selector", selector),
				zap.Error(err),
			)
		}
	}
}

func (r *Runner) runAction(ctx context.Context, page *rod.Page, action Action) error {
	timeout := r.cfg.GetActionTimeout()
	switch action.Type {
	case "click":
		el, err := page.Timeout(timeout).Element(action.Selector)
		if err != nil {
			return fmt.Errorf("element not found: %w", err)
		}
		return el.Click(proto.InputMouseButtonLeft, 1)
	case "hover":
		el, err := page.Timeout(timeout).Element(action.Selector)
		if err != nil {
			return fmt.Errorf("element not found: %w", err)
		}
		return el.Hover()
	case "type":
		el, err := page.Timeout(timeout).Element(action.Selector)
		if err != nil {
			return fmt.Errorf("element not found: %w", err)
		}
		return el.Input(action.Text)
	case "wait":
		if action.Selector != "" {
			_, err := page.Timeout(timeout).Element(action.Selector)
			return err
		}
		return sleepCtx(ctx, action.GetDelay())
	default:
		return fmt.Errorf("unknown action type %q", action.Type)
	}
}

func (r *Runner) screenshot(page *rod.Page, shot Shot) ([]byte, error) {
	if shot.Element != "" {
		el, err := page.Timeout(r.cfg.GetActionTimeout()).Element(shot.Element)
		if err != nil {
			return nil, fmt.Errorf("element not found: %w", err)
		}
		return el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	}
	return page.Screenshot(shot.FullPage, nil)
}

// writeShot writes the PNG via a temp file so a re-run atomically
// replaces the previous capture and never leaves a half-written image.
func (r *Runner) writeShot(shot Shot, data []byte) error {
	final := filepath.Join(r.OutputDir, shot.Filename())
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
