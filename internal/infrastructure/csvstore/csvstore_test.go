package csvstore

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wooport/wooport/internal/domain"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProductFile_RoundTrip(t *testing.T) {
	products := []domain.ProductRecord{
		{
			ID:               "101",
			Name:             "Oat Bar, \"Honey\"",
			Slug:             "oat-bar",
			SKU:              "OAT-1",
			Price:            "4.50",
			RegularPrice:     "5.00",
			SalePrice:        "4.50",
			Stock:            "12",
			StockStatus:      "instock",
			Weight:           "0.1",
			Categories:       []string{"Snacks > Bars", "Brand Acme"},
			Description:      "<p>Line one</p>\n<p>Line two</p>\n\n<p>Line three</p>",
			ShortDescription: "Short",
			ImageURLs:        []string{"https://shop.example/a.jpg", "https://shop.example/b.jpg"},
			OldURL:           "/product/oat-bar/",
		},
		{ID: "102", Name: "Plain", Slug: "plain", OldURL: "/product/plain/"},
	}

	file := NewProductFile(filepath.Join(t.TempDir(), "nested", "products.csv"))
	require.NoError(t, file.WriteProducts(context.Background(), products))

	rows := readRows(t, file.Path())
	require.Len(t, rows, 3)
	assert.Equal(t, ProductColumns, rows[0])
	assert.Equal(t, "Snacks > Bars; Brand Acme", rows[1][10])
	assert.Equal(t, "https://shop.example/a.jpg|https://shop.example/b.jpg", rows[1][13])

	got, err := file.ReadProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestProductFile_CarriageReturns(t *testing.T) {
	file := NewProductFile(filepath.Join(t.TempDir(), "products.csv"))
	products := []domain.ProductRecord{{ID: "1", Name: "Oat Bar", Description: "line one\r\nline two"}}
	require.NoError(t, file.WriteProducts(context.Background(), products))

	got, err := file.ReadProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	// encoding/csv folds CRLF inside quoted fields; extraction never emits CR
	assert.Equal(t, "line one\nline two", got[0].Description)
}

func TestProductFile_ReadProducts(t *testing.T) {
	t.Run("optional columns default to empty", func(t *testing.T) {
		path := writeFile(t, "p.csv", "\xEF\xBB\xBFname,sku\nGranola,GR-1\nShort Row\n")

		got, err := NewProductFile(path).ReadProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Granola", got[0].Name)
		assert.Equal(t, "GR-1", got[0].SKU)
		assert.Equal(t, "Short Row", got[1].Name)
		assert.Empty(t, got[1].SKU)
		assert.Nil(t, got[1].Categories)
	})

	t.Run("missing name column", func(t *testing.T) {
		path := writeFile(t, "p.csv", "id,sku\n1,A\n")

		_, err := NewProductFile(path).ReadProducts(context.Background())
		assert.ErrorIs(t, err, domain.ErrMissingColumn)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewProductFile(filepath.Join(t.TempDir(), "none.csv")).ReadProducts(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestCatalogFile_ReadCatalog(t *testing.T) {
	content := strings.Join([]string{
		"type,product_internal_id,product_sku,product_name,url,product_price",
		"product,501,OAT-1L,Organic Oat Milk,https://shop.example/products/oat,3.20",
		"category,9,,Drinks,,",
		"product,502,,Granola,,5",
	}, "\n") + "\n"
	path := writeFile(t, "catalog.csv", content)

	entries, err := NewCatalogFile(path).ReadCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "product", entries[0].Type)
	assert.Equal(t, "Organic Oat Milk", entries[0].Name)
	assert.Equal(t, "OAT-1L", entries[0].SKU)
	assert.Equal(t, "501", entries[0].InternalID)
	assert.Equal(t, "https://shop.example/products/oat", entries[0].URL)
	assert.Equal(t, "3.20", entries[0].Fields["product_price"])
	assert.Equal(t, "category", entries[1].Type)
	assert.Empty(t, entries[2].URL)
}

func TestCatalogFile_MissingColumns(t *testing.T) {
	path := writeFile(t, "catalog.csv", "type,name\nproduct,Oat Milk\n")

	_, err := NewCatalogFile(path).ReadCatalog(context.Background())
	require.ErrorIs(t, err, domain.ErrMissingColumn)
	assert.Contains(t, err.Error(), "product_name")
}

func TestWriteImportRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecwid-products-to-add.csv")
	rows := []domain.ImportRow{{
		Type: "product", SKU: "K-1", Name: "Kombucha", Price: "3",
		IsInventoryTracked: "false", Quantity: "0", IsAvailable: "true",
		Category: "Drinks", IsShippingRequired: "true", Weight: "0.0",
	}}

	require.NoError(t, WriteImportRows(path, rows))

	got := readRows(t, path)
	require.Len(t, got, 2)
	assert.Equal(t, ImportColumns, got[0])
	assert.Equal(t, []string{"product", "", "K-1", "Kombucha", "3", "", "false", "0", "true", "", "", "Drinks", "true", "0.0"}, got[1])
}

func TestWriteRedirectReview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redirects-review.csv")
	redirects := []domain.Redirect{{Source: "/product/oat/", Destination: "/products/oat", Product: "Oat", Permanent: true}}

	require.NoError(t, WriteRedirectReview(path, redirects))
	assert.Equal(t, [][]string{
		RedirectReviewColumns,
		{"/product/oat/", "/products/oat", "Oat"},
	}, readRows(t, path))
}

func TestWriteMatchReview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches-review.csv")
	matches := []domain.MatchResult{
		{
			Product: domain.ProductRecord{Name: "Vegan Choc Bar", Slug: "vegan-choc", OldURL: "/product/vegan-choc/"},
			Entry:   &domain.CatalogEntry{Name: "Vegan Chocolate Bar", InternalID: "7", URL: "https://shop.example/p/7"},
			Kind:    domain.MatchFuzzy,
			Score:   0.884,
		},
	}

	require.NoError(t, WriteMatchReview(path, matches))
	got := readRows(t, path)
	require.Len(t, got, 2)
	assert.Equal(t, MatchReviewColumns, got[0])
	assert.Equal(t, []string{
		"Vegan Choc Bar", "vegan-choc", "/product/vegan-choc/",
		"Vegan Chocolate Bar", "7", "https://shop.example/p/7", "fuzzy (88%)",
	}, got[1])
}
