package config

import "path/filepath"

// SiteConfig describes the content store and build output layout.
type SiteConfig struct {
	Title      string `yaml:"title"`
	ContentDir string `yaml:"content_dir"`
	OutputDir  string `yaml:"output_dir"`
	NavFile    string `yaml:"nav_file"`

	// ImagesDir is relative to ContentDir.
	ImagesDir string `yaml:"images_dir"`

	// ScreenshotsDir is relative to ContentDir. Image references under
	// this directory are expected to be produced by the capture tool,
	// so missing ones are reported in their own warning bucket.
	ScreenshotsDir string `yaml:"screenshots_dir"`
}

// ImagesPath returns the absolute images directory.
func (s SiteConfig) ImagesPath() string {
	return filepath.Join(s.ContentDir, filepath.FromSlash(s.ImagesDir))
}

// ScreenshotsPath returns the absolute screenshots directory.
func (s SiteConfig) ScreenshotsPath() string {
	return filepath.Join(s.ContentDir, filepath.FromSlash(s.ScreenshotsDir))
}
