package config

import "time"

// ServeConfig configures the dev server and rebuild watcher.
type ServeConfig struct {
	Addr string `yaml:"addr"`

	// Debounce coalesces bursts of filesystem events into one rebuild.
	Debounce string `yaml:"debounce"`
}

// GetDebounce returns the rebuild debounce window.
func (s ServeConfig) GetDebounce() time.Duration {
	return parseDurationOr(s.Debounce, 300*time.Millisecond)
}
