package content

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ParsePage parses one markdown file. relPath is slash-separated and
// relative to the content root; it anchors relative link resolution.
func ParsePage(relPath string, source []byte) (*Page, error) {
	md := goldmark.New(goldmark.WithExtensions(meta.Meta))
	ctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	page := &Page{
		Path:   relPath,
		Meta:   meta.Get(ctx),
		Source: source,
	}

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			txt := textOf(node, source)
			page.Headings = append(page.Headings, Heading{
				Level: node.Level,
				Text:  txt,
				Slug:  Slugify(txt),
			})
		case *ast.Link:
			link := classifyLink(relPath, string(node.Destination))
			link.Line = lineOf(source, node)
			page.Links = append(page.Links, link)
		case *ast.Image:
			raw := string(node.Destination)
			if isExternal(raw) {
				return ast.WalkContinue, nil
			}
			page.Images = append(page.Images, ImageRef{
				Raw:    raw,
				Target: resolveRel(relPath, raw),
				Alt:    textOf(node, source),
			})
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", relPath, err)
	}

	page.Title = pickTitle(page, relPath)
	return page, nil
}

func pickTitle(page *Page, relPath string) string {
	if t, ok := page.Meta["title"].(string); ok && t != "" {
		return t
	}
	for _, h := range page.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	base := path.Base(relPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// classifyLink splits a destination into target path and fragment. An
// empty or unparseable destination keeps only Raw, leaving Target and
// Fragment empty; the validator reports those as broken links.
func classifyLink(relPath, raw string) Link {
	link := Link{Raw: raw}
	u, err := url.Parse(raw)
	if err != nil {
		return link
	}
	if u.Scheme != "" || u.Host != "" {
		link.External = true
		return link
	}
	link.Fragment = u.Fragment
	if u.Path != "" {
		link.Target = resolveRel(relPath, u.Path)
	}
	return link
}

func isExternal(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" || u.Host != ""
}

// resolveRel resolves a destination written relative to the page's
// directory into a path relative to the content root.
func resolveRel(relPath, dest string) string {
	if strings.HasPrefix(dest, "/") {
		return path.Clean(strings.TrimPrefix(dest, "/"))
	}
	return path.Clean(path.Join(path.Dir(relPath), dest))
}

// textOf concatenates the literal text under a node.
func textOf(n ast.Node, source []byte) string {
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

// lineOf finds the 1-based source line of an inline node by walking up
// to its enclosing block and counting newlines before it.
func lineOf(source []byte, n ast.Node) int {
	for b := n; b != nil; b = b.Parent() {
		if b.Type() != ast.TypeBlock {
			continue
		}
		lines := b.Lines()
		if lines == nil || lines.Len() == 0 {
			continue
		}
		offset := lines.At(0).Start
		return 1 + bytes.Count(source[:offset], []byte("\n"))
	}
	return 0
}
