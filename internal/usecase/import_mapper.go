package usecase

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/wooport/wooport/internal/domain"
)

// Defaults for import fields the source left empty
const (
	defaultQuantity = "0"
	defaultWeight   = "0.0"
	brandPrefix     = "Brand"
)

// ImportMapper maps unmatched products onto the catalog import schema
type ImportMapper struct {
	cleaner *DescriptionCleaner // nil keeps descriptions as extracted
}

// NewImportMapper creates a mapper; cleanHTML reduces descriptions to plain text
func NewImportMapper(cleanHTML bool) *ImportMapper {
	m := &ImportMapper{}
	if cleanHTML {
		m.cleaner = NewDescriptionCleaner()
	}
	return m
}

// MapToImportRow converts a product into an import row.
// Only the first image is carried over; gallery images are not imported.
func (m *ImportMapper) MapToImportRow(p domain.ProductRecord) domain.ImportRow {
	description := p.Description
	if m.cleaner != nil {
		description = m.cleaner.Clean(description)
	}

	mainImage := ""
	if len(p.ImageURLs) > 0 {
		mainImage = p.ImageURLs[0]
	}

	return domain.ImportRow{
		Type:               productRowType,
		InternalID:         "",
		SKU:                p.SKU,
		Name:               p.Name,
		Price:              NormalizePrice(p.Price),
		CompareToPrice:     NormalizePrice(p.RegularPrice),
		IsInventoryTracked: "false",
		Quantity:           valueOr(p.Stock, defaultQuantity),
		IsAvailable:        "true",
		MainImageURL:       mainImage,
		Description:        description,
		Category:           PrimaryCategory(p.Categories),
		IsShippingRequired: "true",
		Weight:             valueOr(p.Weight, defaultWeight),
	}
}

// PrimaryCategory picks the import category: the top-level segment of the
// first path that does not sit under a Brand category, else the top-level
// segment of the first path, else empty.
func PrimaryCategory(categories []string) string {
	for _, path := range categories {
		top := topLevel(path)
		if top != "" && !strings.HasPrefix(top, brandPrefix) {
			return top
		}
	}
	if len(categories) > 0 {
		return topLevel(categories[0])
	}
	return ""
}

// NormalizePrice strips currency symbols. Decimal amounts keep the scale they
// were written with ("5.00" stays "5.00"); anything else is returned as stripped text.
func NormalizePrice(price string) string {
	stripped := strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, price))

	if stripped == "" {
		return ""
	}

	amount, err := decimal.NewFromString(stripped)
	if err != nil {
		return stripped
	}
	places := int32(0)
	if exp := amount.Exponent(); exp < 0 {
		places = -exp
	}
	return amount.StringFixed(places)
}

func topLevel(path string) string {
	return strings.TrimSpace(strings.SplitN(path, strings.TrimSpace(domain.CategoryPathSeparator), 2)[0])
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
