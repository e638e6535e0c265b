package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/wooport/wooport/internal/domain"
	"github.com/wooport/wooport/internal/usecase"
)

const rule = "=================================================="

func printExtractionSummary(w io.Writer, s usecase.ExtractionSummary) {
	fmt.Fprintf(w, "\n%s\nEXTRACTION SUMMARY\n%s\n", rule, rule)
	fmt.Fprintf(w, "Total products: %d\n", s.Total)
	fmt.Fprintf(w, "Products with SKU: %d\n", s.WithSKU)
	fmt.Fprintf(w, "Products with price: %d\n", s.WithPrice)
	fmt.Fprintf(w, "Products with images: %d\n", s.WithImages)

	if len(s.TopCategories) > 0 {
		fmt.Fprintln(w, "\nTop-level categories:")
		for _, c := range s.TopCategories {
			fmt.Fprintf(w, "  %s: %d\n", c.Name, c.Count)
		}
	}
}

func printReconcileSummary(w io.Writer, total int, r *usecase.ReconcileResult, outputDir string) {
	counts := r.MatchCounts()

	fmt.Fprintf(w, "\n%s\nRECONCILE SUMMARY\n%s\n", rule, rule)
	fmt.Fprintf(w, "Total WooCommerce products: %d\n", total)
	fmt.Fprintf(w, "Matched to catalog: %d\n", len(r.Matches))
	for _, kind := range []domain.MatchKind{domain.MatchExact, domain.MatchSKU, domain.MatchFuzzy, domain.MatchPartial} {
		fmt.Fprintf(w, "  %s: %d\n", kind, counts[kind])
	}
	fmt.Fprintf(w, "Products to add: %d\n", len(r.ToAdd))
	fmt.Fprintf(w, "Redirects generated: %d\n", len(r.Redirects))
	fmt.Fprintf(w, "Output directory: %s\n", outputDir)

	if len(r.ToAdd) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s\nPRODUCTS TO ADD\n%s\n", rule, rule)
	for _, p := range r.ToAdd {
		price := usecase.NormalizePrice(p.Price)
		if price == "" {
			price = "N/A"
		}
		fmt.Fprintf(w, "  - %s (%s)\n", strings.TrimSpace(p.Name), price)
	}
}
