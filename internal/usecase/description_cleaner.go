package usecase

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// DescriptionCleaner reduces product descriptions written as HTML to plain text
type DescriptionCleaner struct{}

// NewDescriptionCleaner creates a new description cleaner
func NewDescriptionCleaner() *DescriptionCleaner {
	return &DescriptionCleaner{}
}

// Clean strips tags, decodes entities and collapses whitespace.
// Text that fails to parse is returned with whitespace collapsed only.
func (c *DescriptionCleaner) Clean(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return collapseWhitespace(description)
	}

	doc.Find("script,noscript,style").Remove()

	// Adjacent block elements carry no whitespace between them, so text nodes
	// are joined with a space instead of using Selection.Text
	var parts []string
	collectText(doc.Selection, &parts)

	return collapseWhitespace(strings.Join(parts, " "))
}

func collectText(sel *goquery.Selection, parts *[]string) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		if goquery.NodeName(child) == "#text" {
			*parts = append(*parts, child.Text())
			return
		}
		collectText(child, parts)
	})
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}
