package usecase

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wooport/wooport/internal/domain"
)

// DefaultFuzzyThreshold is the similarity a fuzzy match must strictly exceed
const DefaultFuzzyThreshold = 0.85

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	FuzzyThreshold       float64
	DisableFuzzyMatching bool
	EnableDebugLogging   bool
}

// MatchingService finds the catalog entry that corresponds to an extracted product.
//
// Strategies run in order and the first hit wins:
//  1. exact name (case-insensitive, trimmed)
//  2. SKU, when the product has one
//  3. fuzzy name similarity above the threshold
//  4. partial: one name contains the other
//
// The fuzzy step compares against every catalog name, so its cost grows with
// catalog size; it is meant for catalogs in the low thousands.
type MatchingService struct {
	fuzzyThreshold      float64
	enableFuzzyMatching bool
	enableDebugLogging  bool
	logger              logrus.FieldLogger
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig, logger logrus.FieldLogger) *MatchingService {
	threshold := config.FuzzyThreshold
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &MatchingService{
		fuzzyThreshold:      threshold,
		enableFuzzyMatching: !config.DisableFuzzyMatching,
		enableDebugLogging:  config.EnableDebugLogging,
		logger:              logger,
	}
}

// FindMatch runs the cascade for one product. An unmatched product yields a
// result with Kind == MatchNone and no error.
func (s *MatchingService) FindMatch(
	ctx context.Context,
	product domain.ProductRecord,
	catalog *CatalogIndex,
) (domain.MatchResult, error) {
	result := domain.MatchResult{Product: product}

	if catalog == nil {
		return result, domain.ErrInvalidRequest
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	name := normalizeName(product.Name)

	if entry, ok := catalog.ByName(name); ok {
		return s.found(result, entry, domain.MatchExact, 0), nil
	}

	if product.SKU != "" {
		if entry, ok := catalog.BySKU(product.SKU); ok {
			return s.found(result, entry, domain.MatchSKU, 0), nil
		}
	}

	if s.enableFuzzyMatching {
		entry, score := s.bestFuzzy(strings.ToLower(product.Name), catalog)
		if entry != nil && score > s.fuzzyThreshold {
			return s.found(result, entry, domain.MatchFuzzy, score), nil
		}
	}

	if entry := partialMatch(name, catalog); entry != nil {
		return s.found(result, entry, domain.MatchPartial, 0), nil
	}

	if s.enableDebugLogging {
		s.logger.Debugf("[MATCH] No match for %q", product.Name)
	}
	return result, nil
}

// bestFuzzy returns the catalog entry with the highest similarity to name.
// The first entry in load order wins ties.
func (s *MatchingService) bestFuzzy(name string, catalog *CatalogIndex) (*domain.CatalogEntry, float64) {
	var best *domain.CatalogEntry
	bestScore := 0.0

	for _, candidate := range catalog.Names() {
		score := SimilarityRatio(name, candidate)
		if score > bestScore {
			bestScore = score
			best, _ = catalog.ByName(candidate)
		}
	}

	if s.enableDebugLogging && best != nil {
		s.logger.Debugf("[MATCH] Best fuzzy candidate for %q: %q (%.3f)", name, best.Name, bestScore)
	}

	return best, bestScore
}

// partialMatch returns the first entry in load order whose name contains the
// product name or is contained by it. Empty names never match.
func partialMatch(name string, catalog *CatalogIndex) *domain.CatalogEntry {
	if name == "" {
		return nil
	}
	for _, candidate := range catalog.Names() {
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, name) || strings.Contains(name, candidate) {
			entry, _ := catalog.ByName(candidate)
			return entry
		}
	}
	return nil
}

func (s *MatchingService) found(
	result domain.MatchResult,
	entry *domain.CatalogEntry,
	kind domain.MatchKind,
	score float64,
) domain.MatchResult {
	result.Entry = entry
	result.Kind = kind
	result.Score = score

	if s.enableDebugLogging {
		s.logger.Debugf("[MATCH] %q -> %q (%s)", result.Product.Name, entry.Name, result.Tag())
	}
	return result
}
