// Package check validates documentation integrity: navigation entries,
// internal links and anchors, and image references. Findings are
// warnings unless the site structure itself is broken; a build with
// only warnings is a successful build.
package check

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrCritical is returned by commands when a run produced critical
// findings. Warnings alone never cause it.
var ErrCritical = errors.New("documentation has critical errors")

// Severity classifies a finding.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityCritical
)

func (s Severity) String() string {
	if s == SeverityCritical {
		return "critical"
	}
	return "warning"
}

// Category buckets findings for the summary breakdown.
type Category string

const (
	CategoryMissingScreenshot Category = "missing-screenshot"
	CategoryMissingImage      Category = "missing-image"
	CategoryBrokenLink        Category = "broken-link"
	CategoryBrokenAnchor      Category = "broken-anchor"
	CategoryPageNotInNav      Category = "page-not-in-nav"
	CategoryNavMissingPage    Category = "nav-missing-page"
	CategoryCaptureFailed     Category = "capture-failed"
	CategoryBadShotName       Category = "bad-shot-name"
)

// Finding is one validation result.
type Finding struct {
	Severity Severity
	Category Category

	// Page is the content-root-relative page the finding was found in,
	// empty for findings without a page context.
	Page string

	// Line is the 1-based source line, 0 when unknown.
	Line int

	// Target is the resolved resource the finding is about (a page,
	// image, or file path, with an optional #fragment). Empty when the
	// finding has no single resource. Post-build validation compares
	// targets to recognize findings that restate a markdown-level one.
	Target string

	Detail string
}

func (f Finding) String() string {
	loc := f.Page
	if f.Line > 0 {
		loc = fmt.Sprintf("%s:%d", f.Page, f.Line)
	}
	if loc == "" {
		return fmt.Sprintf("[%s] %s", f.Category, f.Detail)
	}
	return fmt.Sprintf("[%s] %s: %s", f.Category, loc, f.Detail)
}

// Report accumulates findings across validation passes.
type Report struct {
	Findings []Finding
}

// Add appends a finding.
func (r *Report) Add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// AddWarning appends a warning finding.
func (r *Report) AddWarning(cat Category, page string, line int, target, format string, args ...interface{}) {
	r.Add(Finding{
		Severity: SeverityWarning,
		Category: cat,
		Page:     page,
		Line:     line,
		Target:   target,
		Detail:   fmt.Sprintf(format, args...),
	})
}

// AddCritical appends a critical finding.
func (r *Report) AddCritical(cat Category, page, target, format string, args ...interface{}) {
	r.Add(Finding{
		Severity: SeverityCritical,
		Category: cat,
		Page:     page,
		Target:   target,
		Detail:   fmt.Sprintf(format, args...),
	})
}

// Warnings returns the number of warning findings.
func (r *Report) Warnings() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Criticals returns the number of critical findings.
func (r *Report) Criticals() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityCritical {
			n++
		}
	}
	return n
}

// Count returns the number of findings in a category.
func (r *Report) Count(cat Category) int {
	n := 0
	for _, f := range r.Findings {
		if f.Category == cat {
			n++
		}
	}
	return n
}

// Breakdown returns finding counts per category, sorted by category.
func (r *Report) Breakdown() []CategoryCount {
	counts := map[Category]int{}
	for _, f := range r.Findings {
		counts[f.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// CategoryCount pairs a category with its finding count.
type CategoryCount struct {
	Category Category
	Count    int
}

// Summary returns the one-line breakdown, e.g.
// "53 warnings: 48 missing screenshots, 5 pages not in nav, 0 critical errors".
func (r *Report) Summary() string {
	return fmt.Sprintf("%d warnings: %d missing screenshots, %d pages not in nav, %d critical errors",
		r.Warnings(),
		r.Count(CategoryMissingScreenshot),
		r.Count(CategoryPageNotInNav),
		r.Criticals(),
	)
}

var (
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

// Render formats the full report for the terminal. With styled=false
// the output is plain text, suitable for CI logs.
func (r *Report) Render(styled bool) string {
	var b strings.Builder

	for _, f := range r.Findings {
		line := f.String()
		if styled {
			if f.Severity == SeverityCritical {
				line = criticalStyle.Render(line)
			} else {
				line = warnStyle.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if len(r.Findings) > 0 {
		b.WriteByte('\n')
		for _, cc := range r.Breakdown() {
			row := fmt.Sprintf("  %-20s %d", cc.Category, cc.Count)
			if styled {
				row = dimStyle.Render(row)
			}
			b.WriteString(row)
			b.WriteByte('\n')
		}
	}

	summary := r.Summary()
	if styled {
		if r.Criticals() > 0 {
			summary = criticalStyle.Render(summary)
		} else if r.Warnings() > 0 {
			summary = warnStyle.Render(summary)
		} else {
			summary = okStyle.Render(summary)
		}
	}
	b.WriteString(summary)
	b.WriteByte('\n')
	return b.String()
}

// Ok reports whether the run had no critical findings.
func (r *Report) Ok() bool {
	return r.Criticals() == 0
}
