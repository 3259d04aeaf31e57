// Package extract turns SRU record and facet elements into domain values.
// Extraction is per element and never fails the batch: a broken record
// becomes the fallback document and a broken facet is dropped.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/overheid-search/internal/xmltree"
)

// maxTextDepth bounds the descent into wrapper elements.
const maxTextDepth = 8

// OptionalText is the one accessor used for every metadata field. It
// returns the element's own text or, for a wrapper element without text,
// the text of its first child (recursively). Missing elements yield "".
func OptionalText(n *xmltree.Node) string {
	for range maxTextDepth {
		if n == nil {
			return ""
		}
		if text := strings.TrimSpace(n.Text); text != "" {
			return text
		}
		if len(n.Children) == 0 {
			return ""
		}
		n = n.Children[0]
	}
	return ""
}

// firstText returns the first non-empty OptionalText of nodes.
func firstText(nodes ...*xmltree.Node) string {
	for _, n := range nodes {
		if text := OptionalText(n); text != "" {
			return text
		}
	}
	return ""
}

// plainText strips markup from abstracts that embed escaped HTML.
func plainText(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
