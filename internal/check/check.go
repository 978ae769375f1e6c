package check

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"ninedocs/internal/content"
	"ninedocs/internal/nav"
)

// Options configures a validation run.
type Options struct {
	// ContentRoot is the content directory on disk, used for asset
	// existence checks.
	ContentRoot string

	// ScreenshotsDir is the content-root-relative directory whose
	// missing images count as missing screenshots rather than missing
	// images. Slash-separated.
	ScreenshotsDir string

	Logger *zap.Logger
}

// Run validates the content store against the navigation manifest and
// the asset tree. It never fails; everything it finds lands in the
// returned report.
func Run(store *content.Store, tree *nav.Tree, opts Options) *Report {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	report := &Report{}

	checkNav(report, store, tree)
	for _, page := range store.Pages() {
		checkLinks(report, store, page)
		checkImages(report, page, opts)
	}

	log.Info("validation complete",
		zap.Int("pages", store.Len()),
		zap.Int("warnings", report.Warnings()),
		zap.Int("criticals", report.Criticals()),
	)
	return report
}

// checkNav verifies both directions: every manifest leaf has a page,
// and every page appears in the manifest.
func checkNav(report *Report, store *content.Store, tree *nav.Tree) {
	for _, leaf := range tree.Leaves() {
		if _, ok := store.Get(leaf.Path); !ok {
			report.AddCritical(CategoryNavMissingPage, "", leaf.Path,
				"nav entry %q references missing page %s", leaf.Title, leaf.Path)
		}
	}
	for _, path := range store.Paths() {
		if !tree.Contains(path) {
			report.AddWarning(CategoryPageNotInNav, path, 0, path, "page is not referenced by the nav manifest")
		}
	}
}

func checkLinks(report *Report, store *content.Store, page *content.Page) {
	for _, link := range page.Links {
		if link.External {
			continue
		}

		// Empty or unparseable destinations resolve to nothing at all.
		if link.Target == "" && link.Fragment == "" {
			report.AddWarning(CategoryBrokenLink, page.Path, link.Line, link.Raw,
				"link %q has no resolvable destination", link.Raw)
			continue
		}

		// Bare #fragment: anchor on this page.
		if link.Target == "" {
			if !page.HasAnchor(link.Fragment) {
				report.AddWarning(CategoryBrokenAnchor, page.Path, link.Line,
					page.Path+"#"+link.Fragment,
					"anchor #%s not found on this page", link.Fragment)
			}
			continue
		}

		if strings.HasSuffix(link.Target, ".md") {
			target, ok := store.Get(link.Target)
			if !ok {
				report.AddWarning(CategoryBrokenLink, page.Path, link.Line, link.Target,
					"link %q resolves to missing page %s", link.Raw, link.Target)
				continue
			}
			if link.Fragment != "" && !target.HasAnchor(link.Fragment) {
				report.AddWarning(CategoryBrokenAnchor, page.Path, link.Line,
					link.Target+"#"+link.Fragment,
					"anchor #%s not found on %s", link.Fragment, link.Target)
			}
			continue
		}

		// Links to non-markdown files are checked on disk.
		if !fileExists(filepath.Join(store.Root, filepath.FromSlash(link.Target))) {
			report.AddWarning(CategoryBrokenLink, page.Path, link.Line, link.Target,
				"link %q resolves to missing file %s", link.Raw, link.Target)
		}
	}
}

func checkImages(report *Report, page *content.Page, opts Options) {
	for _, img := range page.Images {
		path := filepath.Join(opts.ContentRoot, filepath.FromSlash(img.Target))
		if fileExists(path) {
			continue
		}
		if IsScreenshot(img.Target, opts.ScreenshotsDir) {
			report.AddWarning(CategoryMissingScreenshot, page.Path, 0, img.Target,
				"screenshot %s has not been captured yet", img.Target)
		} else {
			report.AddWarning(CategoryMissingImage, page.Path, 0, img.Target,
				"image %s does not exist", img.Target)
		}
	}
}

// IsScreenshot reports whether a resolved image target lives under the
// screenshots directory. Pages in subdirectories resolve the same
// reference to different prefixes, so the directory may appear at any
// depth.
func IsScreenshot(target, screenshotsDir string) bool {
	if screenshotsDir == "" {
		return false
	}
	return strings.HasPrefix(target, screenshotsDir+"/") ||
		strings.Contains(target, "/"+screenshotsDir+"/")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
