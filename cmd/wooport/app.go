package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wooport/wooport/config"
	httpDelivery "github.com/wooport/wooport/internal/delivery/http"
	"github.com/wooport/wooport/internal/domain"
	"github.com/wooport/wooport/internal/infrastructure/csvstore"
	"github.com/wooport/wooport/internal/infrastructure/redirects"
	"github.com/wooport/wooport/internal/infrastructure/sqlitestore"
	"github.com/wooport/wooport/internal/infrastructure/wpress"
	"github.com/wooport/wooport/internal/infrastructure/xlsxreport"
	"github.com/wooport/wooport/internal/usecase"
)

// Output file names written by reconcile
const (
	defaultUnpackDir = "./wpress-extracted"
	importFileName   = "ecwid-products-to-add.csv"
	vercelFileName   = "redirects-vercel.json"
	nextJSFileName   = "redirects-nextjs.txt"
	reviewFileName   = "redirects-review.csv"
	matchReviewName  = "matches-review.csv"
)

// app wires configuration, logging and the services behind each command
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	out    io.Writer
}

// productTarget is one destination for extracted products
type productTarget struct {
	path   string
	writer domain.ProductWriter
}

func newApp(cfg *config.Config, logger *logrus.Logger, out io.Writer) *app {
	return &app{cfg: cfg, logger: logger, out: out}
}

func (a *app) runUnpack(ctx context.Context, archivePath, outputDir string) ([]wpress.Entry, error) {
	fmt.Fprintf(a.out, "Extracting %s to %s...\n", archivePath, outputDir)

	entries, err := wpress.NewUnpacker(nil, a.logger).Unpack(ctx, archivePath, outputDir)
	if err != nil {
		config.LogError(a.logger, "wpress", "Unpack", archivePath, err)
		return entries, err
	}

	for _, e := range entries {
		fmt.Fprintf(a.out, "Found: %s (%.2f MB)\n", e.Path(), float64(e.Size)/1024/1024)
	}
	fmt.Fprintf(a.out, "\nDone! Extracted %d files.\n", len(entries))
	return entries, nil
}

func (a *app) runExtract(ctx context.Context, dumpPath, outputPath string) (*usecase.ExtractionResult, error) {
	fmt.Fprintf(a.out, "Reading SQL dump from: %s\n", dumpPath)

	raw, err := os.ReadFile(dumpPath)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	// Undecodable bytes are dropped rather than failing the run
	dump := strings.ToValidUTF8(string(raw), "")

	svc := usecase.NewExtractionService(usecase.ExtractConfig{
		DescriptionLimit:      a.cfg.Extract.DescriptionLimit,
		ShortDescriptionLimit: a.cfg.Extract.ShortDescriptionLimit,
		CategoryDepthLimit:    a.cfg.Extract.CategoryDepthLimit,
		ProductBasePath:       a.cfg.Extract.ProductBasePath,
		Taxonomy:              a.cfg.Extract.Taxonomy,
		EnableDebugLogging:    a.logger.IsLevelEnabled(logrus.DebugLevel),
	}, a.logger)

	result, err := svc.Extract(ctx, dump)
	if err != nil {
		return nil, err
	}

	targets := []productTarget{{outputPath, csvstore.NewProductFile(outputPath)}}
	var snapshot *sqlitestore.ProductSnapshot
	if path := a.cfg.Extract.SQLitePath; path != "" {
		snapshot = sqlitestore.NewProductSnapshot(path)
		targets = append(targets, productTarget{path, snapshot})
	}

	for _, target := range targets {
		fmt.Fprintf(a.out, "Writing %d products to %s\n", len(result.Products), target.path)
		if err := target.writer.WriteProducts(ctx, result.Products); err != nil {
			return nil, fmt.Errorf("write products to %s: %w", target.path, err)
		}
	}

	if snapshot != nil {
		stored, err := snapshot.CountProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("count snapshot products: %w", err)
		}
		if stored != len(result.Products) {
			return nil, fmt.Errorf("snapshot holds %d products, extracted %d", stored, len(result.Products))
		}
		fmt.Fprintf(a.out, "Snapshot verified: %d products\n", stored)
	}

	printExtractionSummary(a.out, result.Summary)
	return result, nil
}

func (a *app) runReconcile(ctx context.Context, catalogPath, productsPath, outputDir string) (*usecase.ReconcileResult, error) {
	catalog, products, err := a.loadInputs(ctx, csvstore.NewCatalogFile(catalogPath), csvstore.NewProductFile(productsPath))
	if err != nil {
		return nil, err
	}

	svc := usecase.NewReconcileService(usecase.ReconcileConfig{
		SiteOrigin:      a.cfg.Reconcile.SiteOrigin,
		ProductBasePath: a.cfg.Extract.ProductBasePath,
		CleanHTML:       a.cfg.Reconcile.CleanHTML,
		Match: usecase.MatchConfig{
			FuzzyThreshold:       a.cfg.Reconcile.FuzzyThreshold,
			DisableFuzzyMatching: !a.cfg.Reconcile.EnableFuzzy,
			EnableDebugLogging:   a.cfg.Reconcile.Debug,
		},
	}, a.logger)

	result, err := svc.Reconcile(ctx, products, catalog)
	if err != nil {
		return nil, err
	}

	if err := a.writeArtifacts(outputDir, result); err != nil {
		return nil, err
	}

	printReconcileSummary(a.out, len(products), result, outputDir)
	return result, nil
}

func (a *app) loadInputs(
	ctx context.Context,
	catalogSrc domain.CatalogReader,
	productSrc domain.ProductReader,
) ([]domain.CatalogEntry, []domain.ProductRecord, error) {
	fmt.Fprintln(a.out, "Loading catalog...")
	catalog, err := catalogSrc.ReadCatalog(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog: %w", err)
	}
	fmt.Fprintf(a.out, "Loaded %d catalog rows\n", len(catalog))

	fmt.Fprintln(a.out, "Loading extracted products...")
	products, err := productSrc.ReadProducts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read products: %w", err)
	}
	fmt.Fprintf(a.out, "Loaded %d extracted products\n", len(products))

	return catalog, products, nil
}

func (a *app) writeArtifacts(outputDir string, result *usecase.ReconcileResult) error {
	if len(result.ImportRows) > 0 {
		path := filepath.Join(outputDir, importFileName)
		if err := csvstore.WriteImportRows(path, result.ImportRows); err != nil {
			return fmt.Errorf("write import file: %w", err)
		}
		fmt.Fprintf(a.out, "Written %d products to %s\n", len(result.ImportRows), path)
	}

	writers := []struct {
		name  string
		write func(string) error
	}{
		{vercelFileName, func(p string) error { return redirects.WriteVercel(p, result.Redirects) }},
		{nextJSFileName, func(p string) error { return redirects.WriteNextJS(p, result.Redirects) }},
		{reviewFileName, func(p string) error { return csvstore.WriteRedirectReview(p, result.Redirects) }},
		{matchReviewName, func(p string) error { return csvstore.WriteMatchReview(p, result.Matches) }},
	}
	for _, w := range writers {
		path := filepath.Join(outputDir, w.name)
		if err := w.write(path); err != nil {
			return fmt.Errorf("write %s: %w", w.name, err)
		}
		fmt.Fprintf(a.out, "Written %s\n", path)
	}

	if a.cfg.Reconcile.ReviewWorkbook != "" {
		if err := xlsxreport.WriteReview(a.cfg.Reconcile.ReviewWorkbook, result.Matches, result.Redirects, result.ImportRows); err != nil {
			return fmt.Errorf("write review workbook: %w", err)
		}
		fmt.Fprintf(a.out, "Written review workbook to %s\n", a.cfg.Reconcile.ReviewWorkbook)
	}

	return nil
}

func (a *app) runServe(redirectsPath string) error {
	table, err := redirects.LoadVercel(redirectsPath)
	if err != nil {
		return fmt.Errorf("load redirects: %w", err)
	}

	a.logger.WithFields(logrus.Fields{
		"redirects":   len(table.All()),
		"environment": a.cfg.Server.Environment,
		"port":        a.cfg.Server.Port,
	}).Info("[SERVE] Starting redirect preview")

	router := httpDelivery.SetupRouter(a.cfg, httpDelivery.NewHandler(table), a.logger)

	addr := fmt.Sprintf(":%s", a.cfg.Server.Port)
	a.logger.Infof("[SERVE] Listening on %s", addr)
	return router.Run(addr)
}
