package usecase

import (
	"regexp"
	"strings"
)

// Row-literal patterns for the shop database dump. Each pattern recognizes a
// row by its column positions only; rows that do not fit are skipped.
const (
	sqlString         = `'((?:[^'\\]|\\.)*)'` // captured string literal, escapes kept
	sqlNonEmptyString = `'((?:[^'\\]|\\.)+)'`
	sqlSkipString     = `'(?:[^'\\]|\\.)*'`
)

var (
	// posts: ID, author, date, date_gmt, content, title, excerpt, status,
	// comment_status, ping_status, password, name, to_ping, pinged, modified,
	// modified_gmt, content_filtered, parent, guid, menu_order, post_type, ...
	productRowPattern = regexp.MustCompile(`\((\d+),\d+,` +
		sqlSkipString + `,` + sqlSkipString + `,` +
		sqlString + `,` + // content
		sqlNonEmptyString + `,` + // title
		sqlString + `,` + // excerpt
		`'(publish|draft|private)',` +
		sqlSkipString + `,` + sqlSkipString + `,` + sqlSkipString + `,` +
		sqlNonEmptyString + `,` + // name (slug)
		strings.Repeat(sqlSkipString+`,`, 5) +
		`\d+,` + sqlSkipString + `,\d+,'product',`)

	// postmeta: meta_id, post_id, meta_key, meta_value
	metaRowPattern = regexp.MustCompile(`\((\d+),(\d+),'(_price|_regular_price|_sale_price|_sku|_stock|_stock_status|_weight|_thumbnail_id|_product_image_gallery)',` +
		sqlString + `\)`)

	// terms: term_id, name, slug, term_group
	termRowPattern = regexp.MustCompile(`\((\d+),` + sqlNonEmptyString + `,` + sqlNonEmptyString + `,\d+\)`)

	// term_relationships: object_id, term_taxonomy_id, term_order
	relationshipRowPattern = regexp.MustCompile(`\((\d+),(\d+),\d+\)`)

	// posts of type attachment with an image mime type; captures ID and guid
	attachmentRowPattern = regexp.MustCompile(`\((\d+),\d+,` +
		strings.Repeat(sqlSkipString+`,`, 5) +
		`'inherit',[^)]+,'([^']+)',[^,]+,'attachment','image/[^']+',\d+\)`)
)

// taxonomyRowPattern builds the term_taxonomy pattern for one taxonomy kind:
// term_taxonomy_id, term_id, taxonomy, description, parent, count
func taxonomyRowPattern(taxonomy string) *regexp.Regexp {
	return regexp.MustCompile(`\((\d+),(\d+),'` + regexp.QuoteMeta(taxonomy) + `',` + sqlSkipString + `,(\d+),`)
}

// sqlUnescaper undoes the backslash escapes a dump applies inside string literals
var sqlUnescaper = strings.NewReplacer(
	`\\`, `\`,
	`\'`, `'`,
	`\"`, `"`,
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
)

// lineBreaks folds CRLF and bare CR into LF. Product files are CSV, and
// encoding/csv drops a CR that precedes LF even inside quoted fields.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// unescapeSQL converts a raw string literal body into plain text with LF line breaks
func unescapeSQL(s string) string {
	if strings.Contains(s, `\`) {
		s = sqlUnescaper.Replace(s)
	}
	return lineBreaks.Replace(s)
}

// truncateRunes cuts s to at most limit runes; limit <= 0 disables the cut
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
