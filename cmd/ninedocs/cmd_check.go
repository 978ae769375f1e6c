package main

import (
	"time"

	"github.com/spf13/cobra"

	"ninedocs/internal/ledger"
)

// checkCmd validates the docs without building anything.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate pages, nav entries, links, anchors, and images",
	Long: `Parses every markdown page and the navigation manifest, then verifies:

  - every nav entry references an existing page
  - every internal link resolves to a page (and anchor, when given)
  - every image reference resolves to a file on disk
  - every page is reachable from the nav
  - capture plan shot names follow [page]-[feature]-[state]-[seq]

Missing screenshots and orphan pages are warnings and exit 0; a nav
entry pointing at a missing page is a critical error and exits 1.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	started := time.Now()

	store, tree, err := loadStoreAndNav()
	if err != nil {
		return err
	}

	report := runValidation(store, tree)
	return finishRun("check", started, report, ledger.Run{})
}
