package domain

import "context"

// ProductWriter persists extracted product records
type ProductWriter interface {
	WriteProducts(ctx context.Context, products []ProductRecord) error
}

// ProductReader loads product records written by the extractor
type ProductReader interface {
	ReadProducts(ctx context.Context) ([]ProductRecord, error)
}

// CatalogReader loads the target catalog export in file order
type CatalogReader interface {
	ReadCatalog(ctx context.Context) ([]CatalogEntry, error)
}

// RedirectStore looks up redirect rules by source path
type RedirectStore interface {
	Lookup(path string) (Redirect, bool)
	All() []Redirect
}
