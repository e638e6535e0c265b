package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wooport/wooport/internal/domain"
)

// ReconcileConfig holds configuration for the reconcile service
type ReconcileConfig struct {
	SiteOrigin      string // stripped from catalog URLs to form redirect destinations
	ProductBasePath string // used for records that carry no old URL
	CleanHTML       bool
	Match           MatchConfig
}

// ReconcileResult partitions products into matched and to-add, with derived artifacts
type ReconcileResult struct {
	Matches    []domain.MatchResult
	ToAdd      []domain.ProductRecord
	Redirects  []domain.Redirect
	ImportRows []domain.ImportRow
}

// ReconcileService reconciles extracted products against an existing catalog
type ReconcileService struct {
	matcher         *MatchingService
	mapper          *ImportMapper
	siteOrigin      string
	productBasePath string
	logger          logrus.FieldLogger
}

// NewReconcileService creates a reconcile service with its matcher and import mapper
func NewReconcileService(config ReconcileConfig, logger logrus.FieldLogger) *ReconcileService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	basePath := config.ProductBasePath
	if basePath == "" {
		basePath = DefaultProductBasePath
	}

	return &ReconcileService{
		matcher:         NewMatchingService(config.Match, logger),
		mapper:          NewImportMapper(config.CleanHTML),
		siteOrigin:      config.SiteOrigin,
		productBasePath: basePath,
		logger:          logger,
	}
}

// Reconcile matches every product against the catalog.
// Flow: index catalog -> match each product -> redirects for matches -> import rows for the rest
func (s *ReconcileService) Reconcile(
	ctx context.Context,
	products []domain.ProductRecord,
	catalog []domain.CatalogEntry,
) (*ReconcileResult, error) {
	index := NewCatalogIndex(catalog)
	if index.Len() == 0 {
		s.logger.Warn("[RECONCILE] Catalog holds no products, every product will be added")
	}

	s.logger.WithFields(logrus.Fields{
		"catalog":  index.Len(),
		"products": len(products),
	}).Info("[RECONCILE] Matching products")

	result := &ReconcileResult{}
	for _, product := range products {
		match, err := s.matcher.FindMatch(ctx, product, index)
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", product.Name, err)
		}

		if !match.Matched() {
			result.ToAdd = append(result.ToAdd, product)
			result.ImportRows = append(result.ImportRows, s.mapper.MapToImportRow(product))
			continue
		}

		result.Matches = append(result.Matches, match)
		if redirect, ok := s.buildRedirect(match); ok {
			result.Redirects = append(result.Redirects, redirect)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"matched":   len(result.Matches),
		"to_add":    len(result.ToAdd),
		"redirects": len(result.Redirects),
	}).Info("[RECONCILE] Matching complete")

	return result, nil
}

// buildRedirect maps the product's old path onto the matched entry's path.
// Entries without a URL, or whose URL is only the site origin, yield no redirect.
func (s *ReconcileService) buildRedirect(match domain.MatchResult) (domain.Redirect, bool) {
	if match.Entry == nil || match.Entry.URL == "" {
		return domain.Redirect{}, false
	}

	destination := match.Entry.URL
	if s.siteOrigin != "" {
		destination = strings.ReplaceAll(destination, s.siteOrigin, "")
	}
	if destination == "" {
		return domain.Redirect{}, false
	}

	source := match.Product.OldURL
	if source == "" {
		source = s.productBasePath + match.Product.Slug + "/"
	}

	return domain.Redirect{
		Source:      source,
		Destination: destination,
		Product:     match.Product.Name,
		Permanent:   true,
	}, true
}

// MatchCounts tallies matches by kind
func (r *ReconcileResult) MatchCounts() map[domain.MatchKind]int {
	counts := make(map[domain.MatchKind]int)
	for _, m := range r.Matches {
		counts[m.Kind]++
	}
	return counts
}
