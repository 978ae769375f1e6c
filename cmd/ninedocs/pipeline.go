// This file contains the shared load/validate/record plumbing the
// subcommands are built from.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"ninedocs/internal/capture"
	"ninedocs/internal/check"
	"ninedocs/internal/content"
	"ninedocs/internal/ledger"
	"ninedocs/internal/nav"
)

// ledgerPath is where run history lives, next to the config.
func ledgerPath() string {
	return filepath.Join(".ninedocs", "ledger.db")
}

// loadStoreAndNav scans the content store and parses the nav manifest.
func loadStoreAndNav() (*content.Store, *nav.Tree, error) {
	store, err := content.Scan(cfg.Site.ContentDir)
	if err != nil {
		return nil, nil, err
	}
	tree, err := nav.Load(cfg.Site.NavFile)
	if err != nil {
		return nil, nil, err
	}
	return store, tree, nil
}

// runValidation runs the markdown-level validators, including capture
// plan naming when a plan file exists.
func runValidation(store *content.Store, tree *nav.Tree) *check.Report {
	report := check.Run(store, tree, check.Options{
		ContentRoot:    cfg.Site.ContentDir,
		ScreenshotsDir: cfg.Site.ScreenshotsDir,
		Logger:         logger,
	})

	if _, err := os.Stat(cfg.Capture.PlanFile); err == nil {
		plan, err := capture.LoadPlan(cfg.Capture.PlanFile)
		if err != nil {
			report.AddCritical(check.CategoryBadShotName, "", "", "capture plan: %v", err)
		} else {
			plan.Validate(report)
		}
	}
	return report
}

// finishRun prints the report, records the run in the ledger, and maps
// critical findings to the command error.
func finishRun(kind string, started time.Time, report *check.Report, extra ledger.Run) error {
	fmt.Print(report.Render(!noColor))

	run := extra
	run.Kind = kind
	run.StartedAt = started
	run.Duration = time.Since(started)
	run.Warnings = report.Warnings()
	run.Criticals = report.Criticals()
	run.MissingScreenshots = report.Count(check.CategoryMissingScreenshot)
	run.PagesNotInNav = report.Count(check.CategoryPageNotInNav)
	recordRun(run)

	if !report.Ok() {
		return check.ErrCritical
	}
	return nil
}

// recordRun is best effort; a broken ledger must not fail the build.
func recordRun(run ledger.Run) {
	store, err := ledger.Open(ledgerPath())
	if err != nil {
		logger.Warn("ledger unavailable", zap.Error(err))
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := store.Record(ctx, run); err != nil {
		logger.Warn("failed to record run", zap.Error(err))
	}
}
