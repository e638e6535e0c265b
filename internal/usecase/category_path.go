package usecase

import (
	"github.com/wooport/wooport/internal/domain"
)

// DefaultCategoryDepthLimit caps how many ancestors are walked for one category.
// It is a policy choice for malformed hierarchies, not a structural bound.
const DefaultCategoryDepthLimit = 10

// CategoryTree resolves category paths over one taxonomy
type CategoryTree struct {
	nodes      map[string]domain.TaxonomyNode // keyed by taxonomy id
	termToTax  map[string]string              // term id -> taxonomy id
	depthLimit int
}

// NewCategoryTree indexes the taxonomy nodes. A depthLimit <= 0 selects the default.
// When several taxonomy rows share a term, parents resolve to the lowest
// taxonomy id rather than the first row in dump order.
func NewCategoryTree(nodes map[string]domain.TaxonomyNode, depthLimit int) *CategoryTree {
	if depthLimit <= 0 {
		depthLimit = DefaultCategoryDepthLimit
	}

	termToTax := make(map[string]string, len(nodes))
	for taxID, node := range nodes {
		if existing, ok := termToTax[node.TermID]; !ok || lessNumeric(taxID, existing) {
			termToTax[node.TermID] = taxID
		}
	}

	return &CategoryTree{
		nodes:      nodes,
		termToTax:  termToTax,
		depthLimit: depthLimit,
	}
}

// ResolveCategoryPath returns the category names from the root down to taxID.
// An unknown id yields an empty path. The walk stops at a root, at a parent
// that is not in the taxonomy, at a parent already visited (cycle), or after
// depthLimit ancestors.
func (t *CategoryTree) ResolveCategoryPath(taxID string) []string {
	node, ok := t.nodes[taxID]
	if !ok {
		return nil
	}

	reversed := []string{node.Name}
	visited := map[string]bool{taxID: true}

	for depth := 0; depth < t.depthLimit && !node.IsRoot(); depth++ {
		parentTax, ok := t.termToTax[node.Parent]
		if !ok || visited[parentTax] {
			break
		}
		visited[parentTax] = true
		node = t.nodes[parentTax]
		reversed = append(reversed, node.Name)
	}

	path := make([]string, len(reversed))
	for i, name := range reversed {
		path[len(reversed)-1-i] = name
	}
	return path
}

// lessNumeric orders decimal id strings numerically, falling back to lexical order
func lessNumeric(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
