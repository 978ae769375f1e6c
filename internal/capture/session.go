package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ninedocs/internal/config"
)

// Session owns the browser and the single page every shot reuses.
type Session struct {
	ID        string
	StartedAt time.Time

	cfg     config.CaptureConfig
	log     *zap.Logger
	browser *rod.Browser
	page    *rod.Page
}

// NewSession creates an unstarted session.
func NewSession(cfg config.CaptureConfig, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		cfg:       cfg,
		log:       log,
	}
}

// Start launches Chrome and opens the capture page at the app URL.
func (s *Session) Start(ctx context.Context) error {
	launch := launcher.New().Headless(s.cfg.Headless)
	if s.cfg.ChromeBin != "" {
		launch = launch.Bin(s.cfg.ChromeBin)
	}
	controlURL, err := launch.Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}
	s.browser = browser

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		return fmt.Errorf("create page: %w", err)
	}
	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             s.cfg.GetViewportWidth(),
		Height:            s.cfg.GetViewportHeight(),
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		s.log.Warn("failed to set viewport", zap.Error(err))
	}
	s.page = page

	s.log.Info("capture session started",
		zap.String("session", s.ID),
		zap.String("app_url", s.cfg.AppURL),
		zap.Bool("headless", s.cfg.Headless),
	)
	return nil
}

// Page returns the shared capture page.
func (s *Session) Page() *rod.Page {
	return s.page
}

// Close shuts the page and browser down.
func (s *Session) Close() error {
	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}
	if s.browser != nil {
		err := s.browser.Close()
		s.browser = nil
		return err
	}
	return nil
}
