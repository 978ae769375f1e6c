// Package site builds the browsable documentation site: markdown pages
// rendered to HTML through a shared template, navigation sidebar and
// prev/next links from the manifest, assets copied alongside. A
// post-build pass re-validates the emitted HTML so template bugs are
// caught the same way authoring mistakes are.
package site

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"ninedocs/internal/content"
)

// HTMLPath maps a content-relative markdown path to its output path.
func HTMLPath(mdPath string) string {
	return strings.TrimSuffix(mdPath, ".md") + ".html"
}

// renderMarkdown renders one page's markdown body to HTML. Heading ids
// use the same slugs the validator checks against, and internal .md
// links are rewritten to their .html output paths.
func renderMarkdown(page *content.Page) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&siteTransformer{}, 100),
			),
		),
		goldmark.WithRendererOptions(ghtml.WithUnsafe()),
	)

	var buf bytes.Buffer
	if err := md.Convert(page.Source, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", page.Path, err)
	}
	return buf.Bytes(), nil
}

// siteTransformer assigns heading ids and rewrites markdown links for
// site output.
type siteTransformer struct{}

func (t *siteTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			slug := content.Slugify(headingText(node, source))
			if slug != "" {
				node.SetAttribute([]byte("id"), []byte(slug))
			}
		case *ast.Link:
			node.Destination = []byte(rewriteMarkdownDest(string(node.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// rewriteMarkdownDest turns internal page links into their output
// equivalents: other.md#anchor -> other.html#anchor. External links and
// asset references pass through untouched.
func rewriteMarkdownDest(dest string) string {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return dest
	}
	if !strings.HasSuffix(u.Path, ".md") {
		return dest
	}
	out := strings.TrimSuffix(u.Path, ".md") + ".html"
	if u.Fragment != "" {
		out += "#" + u.Fragment
	}
	return out
}
