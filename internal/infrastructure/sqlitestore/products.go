package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/wooport/wooport/internal/domain"
)

const productsTable = "products"

// productColumns mirrors the CSV product file; id is stored as an integer
var productColumns = []string{
	"id", "name", "slug", "sku", "price", "regular_price", "sale_price",
	"stock", "stock_status", "weight", "categories", "description",
	"short_description", "image_urls", "old_url",
}

var _ domain.ProductWriter = (*ProductSnapshot)(nil)

// ProductSnapshot writes extracted products into a fresh SQLite database
type ProductSnapshot struct {
	path string
}

// NewProductSnapshot creates a snapshot writer bound to path
func NewProductSnapshot(path string) *ProductSnapshot {
	return &ProductSnapshot{path: path}
}

// WriteProducts replaces the database file with one holding the given products
func (s *ProductSnapshot) WriteProducts(ctx context.Context, products []domain.ProductRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	_ = os.Remove(s.path)

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	defer db.Close()

	var defs []string
	for _, c := range productColumns {
		colType := "TEXT"
		if c == "id" {
			colType = "INTEGER PRIMARY KEY"
		}
		defs = append(defs, fmt.Sprintf("%q %s", c, colType))
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE "`+productsTable+`" (`+strings.Join(defs, ",")+`)`); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ph := strings.TrimRight(strings.Repeat("?,", len(productColumns)), ",")
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO "`+productsTable+`" VALUES (`+ph+`)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Slug, p.SKU, p.Price, p.RegularPrice, p.SalePrice,
			p.Stock, p.StockStatus, p.Weight, p.CategoriesField(), p.Description,
			p.ShortDescription, p.ImageURLsField(), p.OldURL,
		); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}

	for _, idx := range []string{
		`CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)`,
		`CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku)`,
	} {
		if _, err := tx.ExecContext(ctx, idx); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CountProducts reports how many rows the snapshot holds
func (s *ProductSnapshot) CountProducts(ctx context.Context) (int, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "`+productsTable+`"`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
