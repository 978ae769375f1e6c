package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"ninedocs/internal/content"
)

// previewCmd renders one page in the terminal for quick authoring
// feedback without a full build.
var previewCmd = &cobra.Command{
	Use:   "preview [page]",
	Short: "Render a single page in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	store, err := content.Scan(cfg.Site.ContentDir)
	if err != nil {
		return err
	}
	page, ok := store.Get(args[0])
	if !ok {
		return fmt.Errorf("page %s not found under %s", args[0], cfg.Site.ContentDir)
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	if noColor {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return err
	}

	out, err := renderer.Render(string(page.Source))
	if err != nil {
		return fmt.Errorf("render %s: %w", page.Path, err)
	}
	fmt.Print(out)
	return nil
}
