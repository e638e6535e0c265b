package usecase

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wooport/wooport/internal/domain"
)

// Extraction defaults
const (
	DefaultDescriptionLimit      = 500
	DefaultShortDescriptionLimit = 200
	DefaultProductBasePath       = "/product/"
	DefaultTaxonomy              = "product_cat"
	topCategoryLimit             = 15
)

// ExtractConfig holds configuration for the extraction service
type ExtractConfig struct {
	DescriptionLimit      int
	ShortDescriptionLimit int
	CategoryDepthLimit    int
	ProductBasePath       string
	Taxonomy              string
	EnableDebugLogging    bool
}

// imageRefs keeps the attachment ids collected for one product
type imageRefs struct {
	thumbnail string
	gallery   []string
}

// ExtractionContext owns every table built while scanning one dump.
// Each stage reads and extends it; nothing is shared between runs.
type ExtractionContext struct {
	Products    map[string]*domain.ProductRecord
	Terms       map[string]domain.Term
	Taxonomy    map[string]domain.TaxonomyNode
	Attachments map[string]string

	order  []string
	images map[string]*imageRefs
}

// NewExtractionContext creates an empty context
func NewExtractionContext() *ExtractionContext {
	return &ExtractionContext{
		Products:    make(map[string]*domain.ProductRecord),
		Terms:       make(map[string]domain.Term),
		Taxonomy:    make(map[string]domain.TaxonomyNode),
		Attachments: make(map[string]string),
		images:      make(map[string]*imageRefs),
	}
}

// ProductsInOrder returns the extracted records in the order they appear in the dump
func (ec *ExtractionContext) ProductsInOrder() []domain.ProductRecord {
	out := make([]domain.ProductRecord, 0, len(ec.order))
	for _, id := range ec.order {
		out = append(out, *ec.Products[id])
	}
	return out
}

// CategoryCount is the number of category assignments under one top-level category
type CategoryCount struct {
	Name  string
	Count int
}

// ExtractionSummary describes what one extraction produced
type ExtractionSummary struct {
	Total         int
	WithSKU       int
	WithPrice     int
	WithImages    int
	TopCategories []CategoryCount
}

// ExtractionResult is the outcome of a full extraction run
type ExtractionResult struct {
	Products []domain.ProductRecord
	Summary  ExtractionSummary
}

// ExtractionService turns a raw shop database dump into product records
type ExtractionService struct {
	descriptionLimit      int
	shortDescriptionLimit int
	categoryDepthLimit    int
	productBasePath       string
	taxonomyPattern       *regexp.Regexp
	enableDebugLogging    bool
	logger                logrus.FieldLogger
}

// NewExtractionService creates an extraction service with the given configuration
func NewExtractionService(config ExtractConfig, logger logrus.FieldLogger) *ExtractionService {
	descLimit := config.DescriptionLimit
	if descLimit <= 0 {
		descLimit = DefaultDescriptionLimit
	}

	shortLimit := config.ShortDescriptionLimit
	if shortLimit <= 0 {
		shortLimit = DefaultShortDescriptionLimit
	}

	basePath := config.ProductBasePath
	if basePath == "" {
		basePath = DefaultProductBasePath
	}

	taxonomy := config.Taxonomy
	if taxonomy == "" {
		taxonomy = DefaultTaxonomy
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &ExtractionService{
		descriptionLimit:      descLimit,
		shortDescriptionLimit: shortLimit,
		categoryDepthLimit:    config.CategoryDepthLimit,
		productBasePath:       basePath,
		taxonomyPattern:       taxonomyRowPattern(taxonomy),
		enableDebugLogging:    config.EnableDebugLogging,
		logger:                logger,
	}
}

// Extract runs every stage over the dump and returns the published products in dump order
func (s *ExtractionService) Extract(ctx context.Context, dump string) (*ExtractionResult, error) {
	ec := NewExtractionContext()

	stages := []struct {
		name string
		run  func()
	}{
		{"products", func() { s.ExtractProducts(ec, dump) }},
		{"metadata", func() { s.ExtractMetadata(ec, dump) }},
		{"terms", func() { s.ExtractTerms(ec, dump) }},
		{"term taxonomy", func() { s.ExtractTermTaxonomy(ec, dump) }},
		{"relationships", func() { s.ExtractRelationships(ec, dump) }},
		{"attachments", func() { s.ExtractAttachments(ec, dump) }},
		{"image urls", func() { s.ResolveImageURLs(ec) }},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logger.Infof("[EXTRACT] Extracting %s...", stage.name)
		stage.run()
	}

	products := ec.ProductsInOrder()
	return &ExtractionResult{
		Products: products,
		Summary:  Summarize(products),
	}, nil
}

// ExtractProducts scans product post rows and keeps the published ones
func (s *ExtractionService) ExtractProducts(ec *ExtractionContext, dump string) {
	skipped := 0
	for _, m := range productRowPattern.FindAllStringSubmatch(dump, -1) {
		id, status := m[1], m[5]
		if status != "publish" {
			skipped++
			continue
		}

		slug := m[6]
		if _, seen := ec.Products[id]; !seen {
			ec.order = append(ec.order, id)
		}
		ec.Products[id] = &domain.ProductRecord{
			ID:               id,
			Name:             unescapeSQL(m[3]),
			Slug:             slug,
			Description:      truncateRunes(unescapeSQL(m[2]), s.descriptionLimit),
			ShortDescription: truncateRunes(unescapeSQL(m[4]), s.shortDescriptionLimit),
			OldURL:           s.productBasePath + slug + "/",
		}
	}

	s.logger.WithFields(logrus.Fields{
		"published": len(ec.Products),
		"skipped":   skipped,
	}).Info("[EXTRACT] Found published products")
}

// ExtractMetadata applies recognized meta rows to products already in the context
func (s *ExtractionService) ExtractMetadata(ec *ExtractionContext, dump string) {
	applied := 0
	for _, m := range metaRowPattern.FindAllStringSubmatch(dump, -1) {
		product, ok := ec.Products[m[2]]
		if !ok {
			continue
		}
		key, value := m[3], unescapeSQL(m[4])

		switch key {
		case "_price":
			product.Price = value
		case "_regular_price":
			product.RegularPrice = value
		case "_sale_price":
			product.SalePrice = value
		case "_sku":
			product.SKU = value
		case "_stock":
			product.Stock = value
		case "_stock_status":
			product.StockStatus = value
		case "_weight":
			product.Weight = value
		case "_thumbnail_id":
			ec.imageRefsFor(product.ID).thumbnail = value
		case "_product_image_gallery":
			refs := ec.imageRefsFor(product.ID)
			for _, imageID := range strings.Split(value, ",") {
				if imageID = strings.TrimSpace(imageID); imageID != "" {
					refs.gallery = append(refs.gallery, imageID)
				}
			}
		}
		applied++
	}

	if s.enableDebugLogging {
		s.logger.Debugf("[EXTRACT] Applied %d meta values", applied)
	}
}

// ExtractTerms collects category names and slugs by term id
func (s *ExtractionService) ExtractTerms(ec *ExtractionContext, dump string) {
	for _, m := range termRowPattern.FindAllStringSubmatch(dump, -1) {
		ec.Terms[m[1]] = domain.Term{
			Name: unescapeSQL(m[2]),
			Slug: m[3],
		}
	}

	if s.enableDebugLogging {
		s.logger.Debugf("[EXTRACT] Found %d terms", len(ec.Terms))
	}
}

// ExtractTermTaxonomy places known terms of the configured taxonomy into the hierarchy
func (s *ExtractionService) ExtractTermTaxonomy(ec *ExtractionContext, dump string) {
	for _, m := range s.taxonomyPattern.FindAllStringSubmatch(dump, -1) {
		taxID, termID, parent := m[1], m[2], m[3]
		term, ok := ec.Terms[termID]
		if !ok {
			continue
		}
		ec.Taxonomy[taxID] = domain.TaxonomyNode{
			TaxID:  taxID,
			TermID: termID,
			Name:   term.Name,
			Slug:   term.Slug,
			Parent: parent,
		}
	}

	s.logger.WithField("categories", len(ec.Taxonomy)).Info("[EXTRACT] Resolved category taxonomy")
}

// ExtractRelationships assigns resolved category paths to products
func (s *ExtractionService) ExtractRelationships(ec *ExtractionContext, dump string) {
	tree := NewCategoryTree(ec.Taxonomy, s.categoryDepthLimit)

	for _, m := range relationshipRowPattern.FindAllStringSubmatch(dump, -1) {
		product, ok := ec.Products[m[1]]
		if !ok {
			continue
		}
		if _, ok := ec.Taxonomy[m[2]]; !ok {
			continue
		}
		if path := tree.ResolveCategoryPath(m[2]); len(path) > 0 {
			product.AddCategory(strings.Join(path, domain.CategoryPathSeparator))
		}
	}
}

// ExtractAttachments maps image attachment ids to their URLs
func (s *ExtractionService) ExtractAttachments(ec *ExtractionContext, dump string) {
	for _, m := range attachmentRowPattern.FindAllStringSubmatch(dump, -1) {
		ec.Attachments[m[1]] = m[2]
	}

	if s.enableDebugLogging {
		s.logger.Debugf("[EXTRACT] Found %d image attachments", len(ec.Attachments))
	}
}

// ResolveImageURLs turns collected attachment ids into URLs, thumbnail first.
// Ids without a known attachment are dropped.
func (s *ExtractionService) ResolveImageURLs(ec *ExtractionContext) {
	for id, refs := range ec.images {
		product, ok := ec.Products[id]
		if !ok {
			continue
		}

		ids := refs.gallery
		if refs.thumbnail != "" {
			ids = append([]string{refs.thumbnail}, refs.gallery...)
		}

		var urls []string
		for _, imageID := range ids {
			if url, ok := ec.Attachments[imageID]; ok {
				urls = append(urls, url)
			}
		}
		product.ImageURLs = urls
	}
}

func (ec *ExtractionContext) imageRefsFor(productID string) *imageRefs {
	refs, ok := ec.images[productID]
	if !ok {
		refs = &imageRefs{}
		ec.images[productID] = refs
	}
	return refs
}

// Summarize counts field coverage and the busiest top-level categories
func Summarize(products []domain.ProductRecord) ExtractionSummary {
	summary := ExtractionSummary{Total: len(products)}
	counts := make(map[string]int)

	for _, p := range products {
		if p.SKU != "" {
			summary.WithSKU++
		}
		if p.Price != "" {
			summary.WithPrice++
		}
		if len(p.ImageURLs) > 0 {
			summary.WithImages++
		}
		for _, path := range p.Categories {
			top := strings.SplitN(path, domain.CategoryPathSeparator, 2)[0]
			if top != "" {
				counts[top]++
			}
		}
	}

	for name, count := range counts {
		summary.TopCategories = append(summary.TopCategories, CategoryCount{Name: name, Count: count})
	}
	sort.Slice(summary.TopCategories, func(i, j int) bool {
		a, b := summary.TopCategories[i], summary.TopCategories[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	if len(summary.TopCategories) > topCategoryLimit {
		summary.TopCategories = summary.TopCategories[:topCategoryLimit]
	}

	return summary
}
