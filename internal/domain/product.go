package domain

import (
	"fmt"
	"math"
	"strings"
)

// Separators used when list fields are flattened into a single tabular cell
const (
	CategorySeparator     = "; "
	CategoryPathSeparator = " > "
	ImageSeparator        = "|"
)

// ProductRecord represents a published product extracted from the source shop dump
type ProductRecord struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	SKU              string   `json:"sku,omitempty"`
	Price            string   `json:"price,omitempty"`
	RegularPrice     string   `json:"regularPrice,omitempty"`
	SalePrice        string   `json:"salePrice,omitempty"`
	Stock            string   `json:"stock,omitempty"`
	StockStatus      string   `json:"stockStatus,omitempty"`
	Weight           string   `json:"weight,omitempty"`
	Categories       []string `json:"categories,omitempty"` // each entry is a " > " joined path
	Description      string   `json:"description,omitempty"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	ImageURLs        []string `json:"imageUrls,omitempty"` // thumbnail first, then gallery
	OldURL           string   `json:"oldUrl"`
}

// AddCategory appends a category path unless the record already carries it
func (p *ProductRecord) AddCategory(path string) {
	if path == "" {
		return
	}
	for _, existing := range p.Categories {
		if existing == path {
			return
		}
	}
	p.Categories = append(p.Categories, path)
}

// CategoriesField returns the categories as stored in the product file
func (p *ProductRecord) CategoriesField() string {
	return strings.Join(p.Categories, CategorySeparator)
}

// ImageURLsField returns the image URLs as stored in the product file
func (p *ProductRecord) ImageURLsField() string {
	return strings.Join(p.ImageURLs, ImageSeparator)
}

// SplitCategories parses a categories cell back into paths
func SplitCategories(field string) []string {
	return splitNonEmpty(field, CategorySeparator)
}

// SplitImageURLs parses an image URLs cell back into an ordered list
func SplitImageURLs(field string) []string {
	return splitNonEmpty(field, ImageSeparator)
}

func splitNonEmpty(field, sep string) []string {
	if field == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(field, sep) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// TaxonomyNode is a category term placed in the category hierarchy.
// Parent holds the parent's term id; "0" marks a root category.
type TaxonomyNode struct {
	TaxID  string `json:"taxId"`
	TermID string `json:"termId"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Parent string `json:"parent"`
}

// IsRoot reports whether the node has no parent category
func (n TaxonomyNode) IsRoot() bool {
	return n.Parent == "" || n.Parent == "0"
}

// Term is a category name/slug pair before it is placed in a taxonomy
type Term struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CatalogEntry represents one product row of the target catalog export
type CatalogEntry struct {
	Type       string            `json:"type"`
	Name       string            `json:"productName"`
	SKU        string            `json:"productSku,omitempty"`
	InternalID string            `json:"productInternalId,omitempty"`
	URL        string            `json:"url,omitempty"`
	Fields     map[string]string `json:"-"`
}

// MatchKind identifies which cascade step produced a match
type MatchKind string

const (
	MatchNone    MatchKind = ""
	MatchExact   MatchKind = "exact"
	MatchSKU     MatchKind = "sku"
	MatchFuzzy   MatchKind = "fuzzy"
	MatchPartial MatchKind = "partial"
)

// MatchResult associates a product with at most one catalog entry
type MatchResult struct {
	Product ProductRecord `json:"product"`
	Entry   *CatalogEntry `json:"entry,omitempty"`
	Kind    MatchKind     `json:"kind"`
	Score   float64       `json:"score,omitempty"` // similarity ratio 0-1, fuzzy matches only
}

// Matched reports whether a catalog entry was found
func (m MatchResult) Matched() bool {
	return m.Entry != nil && m.Kind != MatchNone
}

// Tag renders the provenance label shown to reviewers, e.g. "fuzzy (88%)"
func (m MatchResult) Tag() string {
	if m.Kind == MatchFuzzy {
		return fmt.Sprintf("fuzzy (%d%%)", int(math.Round(m.Score*100)))
	}
	return string(m.Kind)
}

// Redirect maps a stale source path to its new location
type Redirect struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Product     string `json:"product,omitempty"`
	Permanent   bool   `json:"permanent"`
}

// ImportRow is a catalog-import row for a product the target catalog lacks
type ImportRow struct {
	Type               string
	InternalID         string
	SKU                string
	Name               string
	Price              string
	CompareToPrice     string
	IsInventoryTracked string
	Quantity           string
	IsAvailable        string
	MainImageURL       string
	Description        string
	Category           string
	IsShippingRequired string
	Weight             string
}
