package config

import "time"

// CaptureConfig configures the browser screenshot tool.
type CaptureConfig struct {
	// AppURL is the base URL of the running application under capture.
	AppURL string `yaml:"app_url"`

	// ChromeBin optionally points at a Chrome/Chromium binary. Empty
	// means let the launcher find or download one.
	ChromeBin string `yaml:"chrome_bin"`

	Headless       bool `yaml:"headless"`
	ViewportWidth  int  `yaml:"viewport_width"`
	ViewportHeight int  `yaml:"viewport_height"`

	NavigationTimeout string `yaml:"navigation_timeout"`
	ActionTimeout     string `yaml:"action_timeout"`

	// SettleDelay is waited after actions so CSS transitions finish
	// before the screenshot is taken.
	SettleDelay string `yaml:"settle_delay"`

	// PlanFile is the YAML capture plan consumed by `ninedocs capture`.
	PlanFile string `yaml:"plan_file"`

	// DismissSelectors are clicked (when visible) before every shot to
	// close transient overlays. A leftover modal backdrop otherwise
	// intercepts all subsequent pointer events.
	DismissSelectors []string `yaml:"dismiss_selectors"`
}

// GetViewportWidth returns viewport width.
func (c CaptureConfig) GetViewportWidth() int {
	if c.ViewportWidth == 0 {
		return 1280
	}
	return c.ViewportWidth
}

// GetViewportHeight returns viewport height.
func (c CaptureConfig) GetViewportHeight() int {
	if c.ViewportHeight == 0 {
		return 800
	}
	return c.ViewportHeight
}

// GetNavigationTimeout returns the navigation timeout.
func (c CaptureConfig) GetNavigationTimeout() time.Duration {
	return parseDurationOr(c.NavigationTimeout, 30*time.Second)
}

// GetActionTimeout returns the per-action timeout.
func (c CaptureConfig) GetActionTimeout() time.Duration {
	return parseDurationOr(c.ActionTimeout, 10*time.Second)
}

// GetSettleDelay returns the post-action settle delay.
func (c CaptureConfig) GetSettleDelay() time.Duration {
	return parseDurationOr(c.SettleDelay, 400*time.Millisecond)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
