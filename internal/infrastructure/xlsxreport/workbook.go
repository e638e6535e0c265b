package xlsxreport

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/wooport/wooport/internal/domain"
)

// Sheet names of the review workbook
const (
	SheetMatches   = "Matches"
	SheetRedirects = "Redirects"
	SheetToAdd     = "To Add"
)

// WriteReview writes a workbook with one sheet each for matches, redirects and products to add
func WriteReview(path string, matches []domain.MatchResult, redirects []domain.Redirect, toAdd []domain.ImportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	matchRows := make([][]interface{}, 0, len(matches))
	for _, m := range matches {
		var name, id, url string
		if m.Entry != nil {
			name, id, url = m.Entry.Name, m.Entry.InternalID, m.Entry.URL
		}
		matchRows = append(matchRows, []interface{}{m.Product.Name, m.Product.OldURL, name, id, url, m.Tag()})
	}

	redirectRows := make([][]interface{}, 0, len(redirects))
	for _, r := range redirects {
		redirectRows = append(redirectRows, []interface{}{r.Source, r.Destination, r.Product})
	}

	addRows := make([][]interface{}, 0, len(toAdd))
	for _, r := range toAdd {
		addRows = append(addRows, []interface{}{r.Name, r.SKU, r.Price, r.Category, r.Quantity, r.MainImageURL})
	}

	sheets := []struct {
		name    string
		headers []interface{}
		rows    [][]interface{}
	}{
		{SheetMatches, []interface{}{"Product", "Old URL", "Catalog Name", "Catalog ID", "Catalog URL", "Match"}, matchRows},
		{SheetRedirects, []interface{}{"Source", "Destination", "Product"}, redirectRows},
		{SheetToAdd, []interface{}{"Product", "SKU", "Price", "Category", "Quantity", "Image"}, addRows},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet.name, "A1", &sheet.headers); err != nil {
			return err
		}
		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet.name, r+2, err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return f.SaveAs(path)
}
