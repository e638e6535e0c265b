package csvstore

import (
	"context"

	"github.com/wooport/wooport/internal/domain"
)

// ProductColumns is the column layout of the extracted product file
var ProductColumns = []string{
	"id", "name", "slug", "sku", "price", "regular_price", "sale_price",
	"stock", "stock_status", "weight", "categories", "description",
	"short_description", "image_urls", "old_url",
}

var (
	_ domain.ProductWriter = (*ProductFile)(nil)
	_ domain.ProductReader = (*ProductFile)(nil)
)

// ProductFile reads and writes extracted products as CSV
type ProductFile struct {
	path string
}

// NewProductFile creates a product file bound to path
func NewProductFile(path string) *ProductFile {
	return &ProductFile{path: path}
}

// Path returns the file location
func (f *ProductFile) Path() string {
	return f.path
}

// WriteProducts writes all products, one row each, in the given order
func (f *ProductFile) WriteProducts(ctx context.Context, products []domain.ProductRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.ID, p.Name, p.Slug, p.SKU, p.Price, p.RegularPrice, p.SalePrice,
			p.Stock, p.StockStatus, p.Weight, p.CategoriesField(), p.Description,
			p.ShortDescription, p.ImageURLsField(), p.OldURL,
		})
	}
	return writeTable(f.path, ProductColumns, rows)
}

// ReadProducts loads a product file. Columns other than name are optional.
func (f *ProductFile) ReadProducts(ctx context.Context) ([]domain.ProductRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := loadTable(f.path)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns("name"); err != nil {
		return nil, err
	}

	products := make([]domain.ProductRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		products = append(products, domain.ProductRecord{
			ID:               row["id"],
			Name:             row["name"],
			Slug:             row["slug"],
			SKU:              row["sku"],
			Price:            row["price"],
			RegularPrice:     row["regular_price"],
			SalePrice:        row["sale_price"],
			Stock:            row["stock"],
			StockStatus:      row["stock_status"],
			Weight:           row["weight"],
			Categories:       domain.SplitCategories(row["categories"]),
			Description:      row["description"],
			ShortDescription: row["short_description"],
			ImageURLs:        domain.SplitImageURLs(row["image_urls"]),
			OldURL:           row["old_url"],
		})
	}
	return products, nil
}
