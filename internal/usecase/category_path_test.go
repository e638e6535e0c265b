package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wooport/wooport/internal/domain"
)

func taxonomyNodes(nodes ...domain.TaxonomyNode) map[string]domain.TaxonomyNode {
	out := make(map[string]domain.TaxonomyNode, len(nodes))
	for _, n := range nodes {
		out[n.TaxID] = n
	}
	return out
}

func TestResolveCategoryPath(t *testing.T) {
	nodes := taxonomyNodes(
		domain.TaxonomyNode{TaxID: "10", TermID: "1", Name: "Snacks", Parent: "0"},
		domain.TaxonomyNode{TaxID: "11", TermID: "2", Name: "Bars", Parent: "1"},
		domain.TaxonomyNode{TaxID: "12", TermID: "3", Name: "Protein", Parent: "2"},
		domain.TaxonomyNode{TaxID: "13", TermID: "4", Name: "Orphan", Parent: "99"},
		domain.TaxonomyNode{TaxID: "20", TermID: "5", Name: "Loop A", Parent: "6"},
		domain.TaxonomyNode{TaxID: "21", TermID: "6", Name: "Loop B", Parent: "5"},
	)
	tree := NewCategoryTree(nodes, 0)

	tests := []struct {
		name  string
		taxID string
		want  []string
	}{
		{"root category", "10", []string{"Snacks"}},
		{"nested category is root first", "12", []string{"Snacks", "Bars", "Protein"}},
		{"unknown parent stops the walk", "13", []string{"Orphan"}},
		{"cycle stops at the first repeated node", "20", []string{"Loop B", "Loop A"}},
		{"unknown id", "404", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.ResolveCategoryPath(tt.taxID))
		})
	}
}

func TestResolveCategoryPath_DepthLimit(t *testing.T) {
	var chain []domain.TaxonomyNode
	for i := 1; i <= 15; i++ {
		chain = append(chain, domain.TaxonomyNode{
			TaxID:  fmt.Sprintf("%d", 100+i),
			TermID: fmt.Sprintf("%d", i),
			Name:   fmt.Sprintf("Level %d", i),
			Parent: fmt.Sprintf("%d", i-1),
		})
	}
	nodes := taxonomyNodes(chain...)

	t.Run("explicit limit", func(t *testing.T) {
		path := NewCategoryTree(nodes, 3).ResolveCategoryPath("115")
		assert.Equal(t, []string{"Level 12", "Level 13", "Level 14", "Level 15"}, path)
	})

	t.Run("default limit", func(t *testing.T) {
		path := NewCategoryTree(nodes, 0).ResolveCategoryPath("115")
		assert.Len(t, path, DefaultCategoryDepthLimit+1)
		assert.Equal(t, "Level 15", path[len(path)-1])
	})
}

func TestNewCategoryTree_SharedTermKeepsLowestTaxID(t *testing.T) {
	nodes := taxonomyNodes(
		domain.TaxonomyNode{TaxID: "9", TermID: "1", Name: "Drinks", Parent: "0"},
		domain.TaxonomyNode{TaxID: "10", TermID: "1", Name: "Drinks (tag)", Parent: "0"},
		domain.TaxonomyNode{TaxID: "30", TermID: "7", Name: "Juice", Parent: "1"},
	)

	path := NewCategoryTree(nodes, 0).ResolveCategoryPath("30")
	assert.Equal(t, []string{"Drinks", "Juice"}, path)
}
