package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ninedocs/internal/config"
)

// initCmd scaffolds a docs project in the current directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ninedocs.yml and a starter docs tree",
	RunE:  runInit,
}

const starterIndex = `# 9Boxer Documentation

Welcome. Start with [Getting Started](guide/getting-started.md).
`

const starterGuide = `# Getting Started

## Opening a file

![Open dialog](../images/screenshots/start-open-dialog-default-01.png)
`

const starterNav = `- Home: index.md
- User Guide:
    - Getting Started: guide/getting-started.md
`

const starterPlan = `shots:
  - name: start-open-dialog-default-01
    route: /
    alt: The file open dialog on first launch
`

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	fresh := config.DefaultConfig()
	if err := fresh.Save(cfgPath); err != nil {
		return err
	}

	files := map[string]string{
		filepath.Join(fresh.Site.ContentDir, "index.md"):                    starterIndex,
		filepath.Join(fresh.Site.ContentDir, "guide", "getting-started.md"): starterGuide,
		fresh.Site.NavFile:     starterNav,
		fresh.Capture.PlanFile: starterPlan,
	}
	for path, body := range files {
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			return err
		}
	}

	fmt.Printf("initialized docs project: %s, %s\n", cfgPath, fresh.Site.ContentDir)
	return nil
}
