package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ninedocs/internal/capture"
	"ninedocs/internal/ledger"
)

var captureOnly []string

// captureCmd runs the screenshot plan against the live app.
var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture screenshots from the running application",
	Long: `Reads the capture plan and drives a headless browser against the app
at capture.app_url. Shots run one at a time: navigate, dismiss any
transient overlay, run the shot's actions, wait for animations to
settle, screenshot.

A failed shot (selector not found, timeout) is logged and skipped; the
batch continues. Re-running overwrites previous captures in place.`,
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().StringSliceVar(&captureOnly, "only", nil, "capture only the named shots")
}

func runCapture(cmd *cobra.Command, args []string) error {
	started := time.Now()

	plan, err := capture.LoadPlan(cfg.Capture.PlanFile)
	if err != nil {
		return err
	}
	if len(captureOnly) > 0 {
		plan = filterPlan(plan, captureOnly)
		if len(plan.Shots) == 0 {
			return fmt.Errorf("no shots match --only=%v", captureOnly)
		}
	}

	runner := capture.NewRunner(cfg.Capture, cfg.Site.ScreenshotsPath(), logger)
	result, err := runner.Run(cmd.Context(), plan)
	if err != nil {
		return err
	}

	fmt.Printf("captured %d/%d shots in %s\n",
		result.Captured, result.Captured+result.Failed, result.Elapsed.Round(time.Millisecond))

	return finishRun("capture", started, result.Report, ledger.Run{
		Captured: result.Captured,
		Failed:   result.Failed,
	})
}

func filterPlan(plan *capture.Plan, names []string) *capture.Plan {
	keep := map[string]bool{}
	for _, n := range names {
		keep[n] = true
	}
	out := &capture.Plan{}
	for _, shot := range plan.Shots {
		if keep[shot.Name] {
			out.Shots = append(out.Shots, shot)
		}
	}
	return out
}
