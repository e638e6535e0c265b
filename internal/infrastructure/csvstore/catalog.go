package csvstore

import (
	"context"

	"github.com/wooport/wooport/internal/domain"
)

// Catalog export column names
const (
	colType       = "type"
	colName       = "product_name"
	colSKU        = "product_sku"
	colInternalID = "product_internal_id"
	colURL        = "url"
)

var _ domain.CatalogReader = (*CatalogFile)(nil)

// CatalogFile reads a catalog export
type CatalogFile struct {
	path string
}

// NewCatalogFile creates a catalog reader bound to path
func NewCatalogFile(path string) *CatalogFile {
	return &CatalogFile{path: path}
}

// ReadCatalog returns every row of the export in file order. Rows of any type
// are returned; callers decide which ones describe products.
func (f *CatalogFile) ReadCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := loadTable(f.path)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns(colType, colName); err != nil {
		return nil, err
	}

	entries := make([]domain.CatalogEntry, 0, len(t.Rows))
	for _, row := range t.Rows {
		entries = append(entries, domain.CatalogEntry{
			Type:       row[colType],
			Name:       row[colName],
			SKU:        row[colSKU],
			InternalID: row[colInternalID],
			URL:        row[colURL],
			Fields:     row,
		})
	}
	return entries, nil
}
