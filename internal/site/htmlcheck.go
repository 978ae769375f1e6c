package site

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"ninedocs/internal/check"
)

// htmlDoc is what the post-build validator keeps per emitted page.
type htmlDoc struct {
	ids   map[string]bool
	hrefs []htmlRef
	srcs  []string
}

type htmlRef struct {
	raw      string
	target   string // output-relative path, empty for same-page anchors
	fragment string
}

// ValidateOutput parses every emitted HTML file and re-verifies
// internal hrefs, fragments, and image sources against the output
// tree. It catches what markdown-level validation cannot: template
// mistakes and bad link rewrites. screenshotsDir (output-relative,
// slash-separated) routes missing screenshot files into their own
// warning bucket.
func ValidateOutput(outputDir, screenshotsDir string) *check.Report {
	report := &check.Report{}

	docs := map[string]*htmlDoc{}
	var order []string

	_ = filepath.WalkDir(outputDir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return err
		}
		rel, relErr := filepath.Rel(outputDir, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		doc, parseErr := parseHTMLFile(p, rel)
		if parseErr != nil {
			report.AddCritical(check.CategoryBrokenLink, rel, "", "emitted HTML does not parse: %v", parseErr)
			return nil
		}
		docs[rel] = doc
		order = append(order, rel)
		return nil
	})

	for _, rel := range order {
		doc := docs[rel]
		for _, ref := range doc.hrefs {
			target := doc
			targetPath := rel
			if ref.target != "" {
				var ok bool
				target, ok = docs[ref.target]
				if !ok {
					report.AddWarning(check.CategoryBrokenLink, rel, 0, ref.target,
						"emitted href %q points at missing file %s", ref.raw, ref.target)
					continue
				}
				targetPath = ref.target
			}
			if ref.fragment != "" && !target.ids[ref.fragment] {
				report.AddWarning(check.CategoryBrokenAnchor, rel, 0,
					targetPath+"#"+ref.fragment,
					"emitted href %q points at missing id #%s in %s", ref.raw, ref.fragment, targetPath)
			}
		}
		for _, src := range doc.srcs {
			if _, err := os.Stat(filepath.Join(outputDir, filepath.FromSlash(src))); err != nil {
				cat := check.CategoryMissingImage
				if check.IsScreenshot(src, screenshotsDir) {
					cat = check.CategoryMissingScreenshot
				}
				report.AddWarning(cat, rel, 0, src,
					"emitted img src %q points at a missing file", src)
			}
		}
	}

	return report
}

func parseHTMLFile(fullPath, rel string) (*htmlDoc, error) {
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return nil, err
	}

	doc := &htmlDoc{ids: map[string]bool{}}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				switch attr.Key {
				case "id":
					doc.ids[attr.Val] = true
				case "href":
					if n.Data == "a" {
						if ref, ok := classifyHref(rel, attr.Val); ok {
							doc.hrefs = append(doc.hrefs, ref)
						}
					}
				case "src":
					if n.Data == "img" {
						if target, ok := resolveOutputRel(rel, attr.Val); ok {
							doc.srcs = append(doc.srcs, target)
						}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return doc, nil
}

// classifyHref keeps only internal links worth checking.
func classifyHref(rel, raw string) (htmlRef, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return htmlRef{}, false
	}
	ref := htmlRef{raw: raw, fragment: u.Fragment}
	if u.Path != "" {
		target, ok := resolveOutputRel(rel, u.Path)
		if !ok {
			return htmlRef{}, false
		}
		ref.target = target
	}
	return ref, true
}

// MergeReports appends post-build findings to the markdown-level
// report, dropping those that restate a finding already present. A
// missing screenshot is referenced by both the page source and the
// rendered <img>, and a broken .md link reappears as a broken .html
// href, so markdown targets are also compared through the .md -> .html
// path rewrite.
func MergeReports(md, built *check.Report) {
	seen := map[string]bool{}
	for _, f := range md.Findings {
		if f.Target == "" {
			continue
		}
		key := string(f.Category) + "\x00"
		seen[key+f.Target] = true
		if mapped, ok := outputTarget(f.Target); ok {
			seen[key+mapped] = true
		}
	}
	for _, f := range built.Findings {
		if f.Target != "" && seen[string(f.Category)+"\x00"+f.Target] {
			continue
		}
		md.Add(f)
	}
}

// outputTarget maps a source-space finding target (page.md, optionally
// with a #fragment) to its output-space equivalent.
func outputTarget(target string) (string, bool) {
	base, frag, _ := strings.Cut(target, "#")
	if !strings.HasSuffix(base, ".md") {
		return "", false
	}
	out := HTMLPath(base)
	if frag != "" {
		out += "#" + frag
	}
	return out, true
}

// resolveOutputRel resolves a reference relative to the referring file
// into an output-root-relative path. References escaping the output
// root are ignored.
func resolveOutputRel(rel, dest string) (string, bool) {
	var resolved string
	if strings.HasPrefix(dest, "/") {
		resolved = path.Clean(strings.TrimPrefix(dest, "/"))
	} else {
		resolved = path.Clean(path.Join(path.Dir(rel), dest))
	}
	if resolved == ".." || strings.HasPrefix(resolved, "../") {
		return "", false
	}
	return resolved, true
}
