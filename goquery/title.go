// Package goquery reads document metadata with github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlwords"
)

// Ensure TitleExtractor implements htmlwords.TitleExtractor at compile time.
var _ htmlwords.TitleExtractor = (*TitleExtractor)(nil)

// TitleExtractor reads the title element of HTML documents.
type TitleExtractor struct{}

// NewTitleExtractor creates a new TitleExtractor.
func NewTitleExtractor() *TitleExtractor {
	return &TitleExtractor{}
}

// Title returns the text of the first title element with whitespace runs
// collapsed. Titles inside inline SVG are ignored.
func (e *TitleExtractor) Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	title := doc.Find("title").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return sel.ParentsFiltered("svg").Length() == 0
	}).First().Text()

	return strings.Join(strings.Fields(title), " ")
}
