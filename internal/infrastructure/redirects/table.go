package redirects

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/wooport/wooport/internal/domain"
)

var _ domain.RedirectStore = (*Table)(nil)

// Table is an in-memory set of redirect rules keyed by source path
type Table struct {
	bySource map[string]domain.Redirect
	rules    []domain.Redirect
}

// NewTable builds a table; a later rule for the same source replaces an earlier one
func NewTable(rules []domain.Redirect) *Table {
	t := &Table{bySource: make(map[string]domain.Redirect, len(rules))}
	position := make(map[string]int, len(rules))
	for _, r := range rules {
		key := normalizePath(r.Source)
		if i, seen := position[key]; seen {
			t.rules[i] = r
		} else {
			position[key] = len(t.rules)
			t.rules = append(t.rules, r)
		}
		t.bySource[key] = r
	}
	return t
}

// LoadVercel reads a vercel.json style redirect document
func LoadVercel(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc vercelFile
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(doc.Redirects) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoRedirects, path)
	}

	rules := make([]domain.Redirect, 0, len(doc.Redirects))
	for _, r := range doc.Redirects {
		rules = append(rules, domain.Redirect{
			Source:      r.Source,
			Destination: r.Destination,
			Permanent:   r.Permanent,
		})
	}
	return NewTable(rules), nil
}

// Lookup finds the rule for a request path. A missing trailing slash is tolerated.
func (t *Table) Lookup(path string) (domain.Redirect, bool) {
	r, ok := t.bySource[normalizePath(path)]
	return r, ok
}

// All returns the rules in load order
func (t *Table) All() []domain.Redirect {
	return t.rules
}

func normalizePath(path string) string {
	if path == "/" {
		return path
	}
	return strings.TrimSuffix(path, "/")
}
