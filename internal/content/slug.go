package content

import (
	"strings"
	"unicode"
)

// Slugify converts heading text to the anchor id the site generator
// emits: lowercase, spaces become hyphens, punctuation dropped. Link
// fragments are validated against these slugs, so the algorithm here
// and in the renderer must stay in sync.
func Slugify(text string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.TrimSpace(strings.ToLower(text)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
