package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ninedocs/internal/check"
	"ninedocs/internal/config"
	"ninedocs/internal/content"
	"ninedocs/internal/nav"
)

// Builder renders the content store into the output directory.
type Builder struct {
	cfg   config.SiteConfig
	store *content.Store
	tree  *nav.Tree
	log   *zap.Logger
}

// New creates a builder.
func New(cfg config.SiteConfig, store *content.Store, tree *nav.Tree, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{cfg: cfg, store: store, tree: tree, log: log}
}

// Build renders every page, copies assets, and post-validates the
// emitted HTML. Validation findings land in the returned report;
// the error return is reserved for structural failures (template or
// filesystem errors).
func (b *Builder) Build(ctx context.Context) (*check.Report, error) {
	start := time.Now()

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, page := range b.store.Pages() {
		page := page
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return b.renderPage(page)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := b.copyAssets(); err != nil {
		return nil, err
	}

	report := ValidateOutput(b.cfg.OutputDir, b.cfg.ScreenshotsDir)

	b.log.Info("site built",
		zap.Int("pages", b.store.Len()),
		zap.String("output", b.cfg.OutputDir),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("warnings", report.Warnings()),
	)
	return report, nil
}

func (b *Builder) renderPage(page *content.Page) error {
	body, err := renderMarkdown(page)
	if err != nil {
		return err
	}

	prev, next := pagerRefs(b.tree, page.Path)
	title := page.Title
	if navTitle, ok := b.tree.TitleFor(page.Path); ok {
		title = navTitle
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageData{
		SiteTitle: b.cfg.Title,
		Title:     title,
		Nav:       renderNavHTML(b.tree, page.Path),
		Content:   template.HTML(body),
		Prev:      prev,
		Next:      next,
	})
	if err != nil {
		return fmt.Errorf("execute template for %s: %w", page.Path, err)
	}

	out := filepath.Join(b.cfg.OutputDir, filepath.FromSlash(HTMLPath(page.Path)))
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	b.log.Debug("rendered page", zap.String("page", page.Path))
	return nil
}

// copyAssets mirrors the images directory into the output tree.
func (b *Builder) copyAssets() error {
	src := b.cfg.ImagesPath()
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	dst := filepath.Join(b.cfg.OutputDir, filepath.FromSlash(b.cfg.ImagesDir))

	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(p, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
