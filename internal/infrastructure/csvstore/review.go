package csvstore

import (
	"github.com/wooport/wooport/internal/domain"
)

// ImportColumns is the column layout of the catalog import file
var ImportColumns = []string{
	"type", "product_internal_id", "product_sku", "product_name", "product_price",
	"product_compare_to_price", "product_is_inventory_tracked", "product_quantity",
	"product_is_available", "product_media_main_image_url", "product_description",
	"product_category_1", "product_is_shipping_required", "product_weight",
}

// RedirectReviewColumns is the column layout of the redirect review file
var RedirectReviewColumns = []string{"source", "destination", "product"}

// MatchReviewColumns is the column layout of the match audit file
var MatchReviewColumns = []string{
	"product_name", "product_slug", "old_url",
	"catalog_name", "catalog_id", "catalog_url", "match_type",
}

// WriteImportRows writes the products to add in catalog import format
func WriteImportRows(path string, rows []domain.ImportRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Type, r.InternalID, r.SKU, r.Name, r.Price,
			r.CompareToPrice, r.IsInventoryTracked, r.Quantity,
			r.IsAvailable, r.MainImageURL, r.Description,
			r.Category, r.IsShippingRequired, r.Weight,
		})
	}
	return writeTable(path, ImportColumns, out)
}

// WriteRedirectReview writes one row per redirect for manual review
func WriteRedirectReview(path string, redirects []domain.Redirect) error {
	out := make([][]string, 0, len(redirects))
	for _, r := range redirects {
		out = append(out, []string{r.Source, r.Destination, r.Product})
	}
	return writeTable(path, RedirectReviewColumns, out)
}

// WriteMatchReview writes every match with its provenance tag
func WriteMatchReview(path string, matches []domain.MatchResult) error {
	out := make([][]string, 0, len(matches))
	for _, m := range matches {
		var name, id, url string
		if m.Entry != nil {
			name, id, url = m.Entry.Name, m.Entry.InternalID, m.Entry.URL
		}
		out = append(out, []string{
			m.Product.Name, m.Product.Slug, m.Product.OldURL,
			name, id, url, m.Tag(),
		})
	}
	return writeTable(path, MatchReviewColumns, out)
}
