package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ninedocs/internal/ledger"
)

var historyLimit int

// historyCmd prints recent runs from the ledger.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent check, build, and capture runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := ledger.Open(ledgerPath())
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs yet")
		return nil
	}

	fmt.Printf("%-20s %-8s %9s %9s %10s %11s\n",
		"WHEN", "KIND", "WARNINGS", "CRITICAL", "NO-SHOT", "CAPTURED")
	for _, run := range runs {
		captured := "-"
		if run.Kind == "capture" {
			captured = fmt.Sprintf("%d/%d", run.Captured, run.Captured+run.Failed)
		}
		fmt.Printf("%-20s %-8s %9d %9d %10d %11s\n",
			run.StartedAt.Format(time.DateTime),
			run.Kind,
			run.Warnings,
			run.Criticals,
			run.MissingScreenshots,
			captured,
		)
	}
	return nil
}
