package site

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"ninedocs/internal/nav"
)

// pageData feeds the page template.
type pageData struct {
	SiteTitle string
	Title     string
	Nav       template.HTML
	Content   template.HTML
	Prev      *navRef
	Next      *navRef
}

// navRef is a prev/next link.
type navRef struct {
	Title string
	Href  string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - {{.SiteTitle}}</title>
<style>
body { display: flex; margin: 0; font-family: system-ui, sans-serif; color: #1c1e21; }
nav.sidebar { width: 260px; min-height: 100vh; padding: 1rem; background: #f6f7f8; border-right: 1px solid #dadde1; }
nav.sidebar ul { list-style: none; padding-left: 1rem; margin: 0.25rem 0; }
nav.sidebar a { text-decoration: none; color: inherit; }
nav.sidebar a.active { font-weight: 600; }
main { max-width: 48rem; padding: 1.5rem 2.5rem; }
main img { max-width: 100%; border: 1px solid #dadde1; }
footer.pager { display: flex; justify-content: space-between; margin-top: 3rem; border-top: 1px solid #dadde1; padding-top: 1rem; }
</style>
</head>
<body>
<nav class="sidebar">
<p><strong>{{.SiteTitle}}</strong></p>
{{.Nav}}
</nav>
<main>
{{.Content}}
<footer class="pager">
<span>{{with .Prev}}<a href="{{.Href}}">&larr; {{.Title}}</a>{{end}}</span>
<span>{{with .Next}}<a href="{{.Href}}">{{.Title}} &rarr;</a>{{end}}</span>
</footer>
</main>
</body>
</html>
`))

// relPrefix returns the ../ chain that takes a page back to the site
// root, so nav links work from any depth.
func relPrefix(pagePath string) string {
	return strings.Repeat("../", strings.Count(pagePath, "/"))
}

// renderNavHTML renders the manifest tree as nested lists. Hrefs are
// relative to the current page.
func renderNavHTML(tree *nav.Tree, activePath string) template.HTML {
	prefix := relPrefix(activePath)
	var b strings.Builder
	renderNavItems(&b, tree.Items, activePath, prefix)
	return template.HTML(b.String())
}

func renderNavItems(b *strings.Builder, items []*nav.Node, activePath, prefix string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, item := range items {
		b.WriteString("<li>")
		if item.IsLeaf() {
			class := ""
			if item.Path == activePath {
				class = ` class="active"`
			}
			fmt.Fprintf(b, `<a href="%s%s"%s>%s</a>`,
				prefix, html.EscapeString(HTMLPath(item.Path)), class, html.EscapeString(item.Title))
		} else {
			b.WriteString(html.EscapeString(item.Title))
		}
		renderNavItems(b, item.Children, activePath, prefix)
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}

// pagerRefs computes prev/next from the manifest leaf order.
func pagerRefs(tree *nav.Tree, pagePath string) (prev, next *navRef) {
	leaves := tree.Leaves()
	prefix := relPrefix(pagePath)
	for i, leaf := range leaves {
		if leaf.Path != pagePath {
			continue
		}
		if i > 0 {
			prev = &navRef{Title: leaves[i-1].Title, Href: prefix + HTMLPath(leaves[i-1].Path)}
		}
		if i < len(leaves)-1 {
			next = &navRef{Title: leaves[i+1].Title, Href: prefix + HTMLPath(leaves[i+1].Path)}
		}
		return prev, next
	}
	return nil, nil
}
