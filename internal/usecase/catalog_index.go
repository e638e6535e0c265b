package usecase

import (
	"strings"

	"github.com/wooport/wooport/internal/domain"
)

// productRowType is the catalog export row type that describes a sellable product
const productRowType = "product"

// CatalogIndex holds the catalog entries keyed by normalized name and by SKU.
// Duplicate keys keep the last entry loaded. Names are also kept in the order
// they were first loaded so scans over the catalog are reproducible.
type CatalogIndex struct {
	byName map[string]*domain.CatalogEntry
	bySKU  map[string]*domain.CatalogEntry
	names  []string
}

// NewCatalogIndex indexes the product rows of a catalog export, in file order
func NewCatalogIndex(entries []domain.CatalogEntry) *CatalogIndex {
	idx := &CatalogIndex{
		byName: make(map[string]*domain.CatalogEntry),
		bySKU:  make(map[string]*domain.CatalogEntry),
	}

	for i := range entries {
		entry := entries[i]
		if entry.Type != productRowType {
			continue
		}

		name := normalizeName(entry.Name)
		if _, seen := idx.byName[name]; !seen {
			idx.names = append(idx.names, name)
		}
		idx.byName[name] = &entry

		if entry.SKU != "" {
			idx.bySKU[entry.SKU] = &entry
		}
	}

	return idx
}

// Len returns the number of distinct product names in the index
func (idx *CatalogIndex) Len() int {
	return len(idx.names)
}

// ByName looks up an entry by its normalized name
func (idx *CatalogIndex) ByName(name string) (*domain.CatalogEntry, bool) {
	entry, ok := idx.byName[name]
	return entry, ok
}

// BySKU looks up an entry by exact SKU
func (idx *CatalogIndex) BySKU(sku string) (*domain.CatalogEntry, bool) {
	entry, ok := idx.bySKU[sku]
	return entry, ok
}

// Names returns the normalized names in first-load order
func (idx *CatalogIndex) Names() []string {
	return idx.names
}

// normalizeName is the key used for exact name lookups
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
