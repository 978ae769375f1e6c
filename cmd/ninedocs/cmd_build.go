package main

import (
	"time"

	"github.com/spf13/cobra"

	"ninedocs/internal/ledger"
	"ninedocs/internal/site"
)

// buildCmd renders the full static site.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static documentation site",
	Long: `Renders every markdown page to HTML through the site template, copies
image assets, and post-validates the emitted HTML. Markdown-level
validation runs first, so the report covers both authoring mistakes and
anything wrong in the rendered output.

The build exits successfully even with warnings; only structural errors
(unrenderable pages, nav entries without pages) fail it.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	started := time.Now()

	store, tree, err := loadStoreAndNav()
	if err != nil {
		return err
	}

	report := runValidation(store, tree)
	if !report.Ok() {
		// No point rendering a site whose nav references missing pages.
		return finishRun("build", started, report, ledger.Run{})
	}

	builder := site.New(cfg.Site, store, tree, logger)
	buildReport, err := builder.Build(cmd.Context())
	if err != nil {
		return err
	}
	site.MergeReports(report, buildReport)

	return finishRun("build", started, report, ledger.Run{})
}
