// Package content scans the documentation content store: a directory
// tree of markdown pages. Pages are parsed once with goldmark and the
// pieces the validators and the site builder need (title, headings,
// links, image references) are lifted out of the AST.
package content

// Page is a parsed markdown file.
type Page struct {
	// Path is the file path relative to the content root, slash-separated.
	Path string

	// Title comes from the front-matter title key, else the first H1,
	// else the filename.
	Title string

	Headings []Heading
	Links    []Link
	Images   []ImageRef

	// Meta holds the raw front-matter mapping.
	Meta map[string]interface{}

	// Source is the raw markdown, kept for rendering.
	Source []byte
}

// Heading is a heading with its generated anchor slug.
type Heading struct {
	Level int
	Text  string
	Slug  string
}

// Link is an outbound link found in a page.
type Link struct {
	// Raw is the destination exactly as written.
	Raw string

	// Target is the link path resolved against the page's directory,
	// relative to the content root. Empty for external and same-page
	// anchor links.
	Target string

	// Fragment is the #anchor part, without the hash.
	Fragment string

	// External is true for http(s), mailto and similar destinations.
	External bool

	// Line is the 1-based source line, 0 when unknown.
	Line int
}

// ImageRef is an image reference found in a page.
type ImageRef struct {
	Raw string

	// Target is the image path resolved relative to the content root.
	Target string

	Alt string
}

// HasAnchor reports whether the page defines the given heading slug.
func (p *Page) HasAnchor(slug string) bool {
	for _, h := range p.Headings {
		if h.Slug == slug {
			return true
		}
	}
	return false
}
