package redirects

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wooport/wooport/internal/domain"
)

// vercelRule is one entry of the "redirects" list in vercel.json
type vercelRule struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Permanent   bool   `json:"permanent"`
}

type vercelFile struct {
	Redirects []vercelRule `json:"redirects"`
}

// WriteVercel writes the redirects as a vercel.json style document
func WriteVercel(path string, redirects []domain.Redirect) error {
	doc := vercelFile{Redirects: make([]vercelRule, 0, len(redirects))}
	for _, r := range redirects {
		doc.Redirects = append(doc.Redirects, vercelRule{
			Source:      r.Source,
			Destination: r.Destination,
			Permanent:   r.Permanent,
		})
	}

	f, err := create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return fmt.Errorf("encode redirects: %w", err)
	}
	return f.Close()
}

// jsQuoter escapes text for a single-quoted JavaScript string literal
var jsQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

// WriteNextJS writes the redirects as a snippet for next.config.mjs
func WriteNextJS(path string, redirects []domain.Redirect) error {
	f, err := create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "// Add to next.config.mjs")
	fmt.Fprintln(w, "async redirects() {")
	fmt.Fprintln(w, "  return [")
	for _, r := range redirects {
		fmt.Fprintf(w, "    { source: '%s', destination: '%s', permanent: %t },\n",
			jsQuoter.Replace(r.Source), jsQuoter.Replace(r.Destination), r.Permanent)
	}
	fmt.Fprintln(w, "  ]")
	fmt.Fprintln(w, "}")

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}
