package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wooport/wooport/internal/domain"
)

func TestMapToImportRow(t *testing.T) {
	product := domain.ProductRecord{
		Name:         "Trail Mix",
		SKU:          "TM-1",
		Price:        "$4.50",
		RegularPrice: "5.00",
		Categories:   []string{"Brand > Acme", "Snacks > Bars"},
		Description:  "<p>Nuts &amp; raisins</p>",
		ImageURLs:    []string{"https://shop.example/a.jpg", "https://shop.example/b.jpg"},
	}

	t.Run("maps fields with defaults", func(t *testing.T) {
		row := NewImportMapper(false).MapToImportRow(product)

		assert.Equal(t, domain.ImportRow{
			Type:               "product",
			SKU:                "TM-1",
			Name:               "Trail Mix",
			Price:              "4.50",
			CompareToPrice:     "5.00",
			IsInventoryTracked: "false",
			Quantity:           "0",
			IsAvailable:        "true",
			MainImageURL:       "https://shop.example/a.jpg",
			Description:        "<p>Nuts &amp; raisins</p>",
			Category:           "Snacks",
			IsShippingRequired: "true",
			Weight:             "0.0",
		}, row)
	})

	t.Run("keeps stock and weight", func(t *testing.T) {
		p := product
		p.Stock = "7"
		p.Weight = "0.25"
		row := NewImportMapper(false).MapToImportRow(p)

		assert.Equal(t, "7", row.Quantity)
		assert.Equal(t, "0.25", row.Weight)
	})

	t.Run("cleans html when enabled", func(t *testing.T) {
		row := NewImportMapper(true).MapToImportRow(product)
		assert.Equal(t, "Nuts & raisins", row.Description)
	})

	t.Run("no images", func(t *testing.T) {
		row := NewImportMapper(false).MapToImportRow(domain.ProductRecord{Name: "Bare"})
		assert.Empty(t, row.MainImageURL)
		assert.Empty(t, row.Category)
		assert.Empty(t, row.Price)
	})
}

func TestPrimaryCategory(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		want       string
	}{
		{"skips brand top level", domain.SplitCategories("Brand > Acme; Snacks > Bars"), "Snacks"},
		{"brand prefix covers plural", []string{"Brands > Acme", "Drinks"}, "Drinks"},
		{"only brand categories fall back to first", []string{"Brand Acme", "Brand > Zed"}, "Brand Acme"},
		{"first non-brand wins", []string{"Drinks > Juice", "Snacks"}, "Drinks"},
		{"no categories", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrimaryCategory(tt.categories))
		})
	}
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"5.00", "5.00"},
		{"$5.00", "5.00"},
		{"12.50", "12.50"},
		{"$12.50", "12.50"},
		{"£3", "3"},
		{" 10 ", "10"},
		{"0.00", "0.00"},
		{"1e2", "100"},
		{"", ""},
		{"call us", "call us"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePrice(tt.in))
		})
	}
}

func TestDescriptionCleaner_Clean(t *testing.T) {
	cleaner := NewDescriptionCleaner()

	tests := []struct {
		name, in, want string
	}{
		{"empty", "   ", ""},
		{"plain text", "plain   text\n here", "plain text here"},
		{"block elements", "<p>Hello</p><p>World &amp; more</p>", "Hello World & more"},
		{"drops scripts and styles", "<style>p{}</style><p>Kept</p><script>alert(1)</script>", "Kept"},
		{"nested blocks", "<div><h2>Oats</h2>\n<p>with <b>honey</b></p></div>", "Oats with honey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleaner.Clean(tt.in))
		})
	}
}
