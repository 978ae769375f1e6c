// Package capture drives a running instance of the application with a
// headless browser and executes a screenshot plan. Shots run
// sequentially against a single page; a failed shot is logged, recorded
// as a warning, and the batch continues.
package capture

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"ninedocs/internal/check"
)

// shotNamePattern is the `[page]-[feature]-[state]-[seq]` filename
// convention: lowercase segments, two-digit sequence, no extension.
var shotNamePattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+){2,}-[0-9]{2}$`)

// Shot describes one required screenshot.
type Shot struct {
	// Name is the output filename without extension, following
	// [page]-[feature]-[state]-[seq].
	Name string `yaml:"name"`

	// Route is appended to the app base URL.
	Route string `yaml:"route"`

	// Actions run after navigation, before the screenshot.
	Actions []Action `yaml:"actions"`

	// Element limits the screenshot to one element. Empty means the
	// viewport, or the whole page when FullPage is set.
	Element  string `yaml:"element"`
	FullPage bool   `yaml:"full_page"`

	// Alt is the alt text the docs use for this image. Carried in the
	// plan so writers and the capture tool agree in one place.
	Alt string `yaml:"alt"`
}

// Filename returns the output filename for the shot.
func (s Shot) Filename() string {
	return s.Name + ".png"
}

// Action is one interaction step.
type Action struct {
	// Type is click, hover, type, or wait.
	Type     string `yaml:"type"`
	Selector string `yaml:"selector"`

	// Text is typed for type actions.
	Text string `yaml:"text"`

	// Delay is slept for wait actions without a selector.
	Delay string `yaml:"delay"`
}

// GetDelay parses the wait delay.
func (a Action) GetDelay() time.Duration {
	d, err := time.ParseDuration(a.Delay)
	if err != nil {
		return 0
	}
	return d
}

// Plan is the full capture plan.
type Plan struct {
	Shots []Shot `yaml:"shots"`
}

// LoadPlan reads the YAML capture plan.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capture plan: %w", err)
	}
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse capture plan %s: %w", path, err)
	}
	return &plan, nil
}

// Validate checks the plan against the filename convention and for
// duplicate names. Violations are warnings; duplicates are critical
// because a later shot would silently overwrite an earlier one.
func (p *Plan) Validate(report *check.Report) {
	seen := map[string]bool{}
	for _, shot := range p.Shots {
		if shot.Name == "" {
			report.AddCritical(check.CategoryBadShotName, "", "", "shot without a name (route %q)", shot.Route)
			continue
		}
		if !shotNamePattern.MatchString(shot.Name) {
			report.AddWarning(check.CategoryBadShotName, "", 0, shot.Name,
				"shot %q does not follow [page]-[feature]-[state]-[seq]", shot.Name)
		}
		if seen[shot.Name] {
			report.AddCritical(check.CategoryBadShotName, "", shot.Name, "duplicate shot name %q", shot.Name)
		}
		seen[shot.Name] = true
	}
}
