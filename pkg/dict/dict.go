package dict

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hazyhaar/anunturi/pkg/highlight"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultCacheTTL is how long a catalog remembers the segmentation of a text.
const DefaultCacheTTL = 10 * time.Minute

// Catalog is one loaded term catalog. Its term list is fixed once built and it
// owns the highlighter configured with those terms.
type Catalog struct {
	Manifest     *Manifest
	terms        []string
	explanations map[string]string
	normalize    Normalizer
	segmenter    *highlight.Cached
}

// NewCatalog builds a catalog from a manifest and its terms. Terms are
// lower-cased; a repeated term keeps its first position and its last
// explanation.
func NewCatalog(m *Manifest, specs []TermSpec, cacheTTL time.Duration) *Catalog {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	c := &Catalog{
		Manifest:     m,
		explanations: make(map[string]string, len(specs)),
		normalize:    GetNormalizer(m.Normalize),
	}

	var collisions int
	for _, s := range specs {
		term := strings.ToLower(strings.TrimSpace(s.Term))
		if term == "" {
			continue
		}
		key := c.normalize(term)
		if _, exists := c.explanations[key]; exists {
			collisions++
		} else {
			c.terms = append(c.terms, term)
		}
		c.explanations[key] = strings.TrimSpace(s.Explanation)
	}
	if collisions > 0 {
		slog.Warn("duplicate terms after normalization", "catalog", m.ID, "collisions", collisions)
	}

	c.segmenter = highlight.NewCached(highlight.New(c.terms), cacheTTL, 2*cacheTTL)
	return c
}

// LoadCatalog reads dir/manifest.yaml plus its optional CSV data file.
func LoadCatalog(dir string) (*Catalog, error) {
	return loadCatalog(dir, DefaultCacheTTL)
}

func loadCatalog(dir string, cacheTTL time.Duration) (*Catalog, error) {
	m, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}

	specs := append([]TermSpec(nil), m.Terms...)
	if m.DataFile != "" {
		fromCSV, err := loadCSV(filepath.Join(dir, m.DataFile), m.Format)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", m.ID, err)
		}
		specs = append(specs, fromCSV...)
	}
	return NewCatalog(m, specs, cacheTTL), nil
}

// loadCSV reads term;explanation rows.
func loadCSV(path string, format FormatSpec) ([]TermSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	// Transcode non-UTF-8 encodings declared in the manifest.
	var reader io.Reader = f
	if enc := format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	r.Comma = ';'
	if delim := format.Delimiter; delim != "" {
		r.Comma = []rune(delim)[0]
	}
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	if format.HasHeader {
		if _, err := r.Read(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
	}

	var specs []TermSpec
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		spec := TermSpec{Term: record[0]}
		if len(record) > 1 {
			spec.Explanation = record[1]
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// ID returns the catalog identifier.
func (c *Catalog) ID() string {
	return c.Manifest.ID
}

// Terms returns the catalog terms, lower-cased, in catalog order.
func (c *Catalog) Terms() []string {
	return append([]string(nil), c.terms...)
}

// Len returns the number of distinct terms.
func (c *Catalog) Len() int {
	return len(c.terms)
}

// Explain returns the explanation for term. The lookup ignores case; a term
// without an explanation reports ok=false.
func (c *Catalog) Explain(term string) (string, bool) {
	text, ok := c.explanations[c.normalize(strings.ToLower(term))]
	if !ok || text == "" {
		return "", false
	}
	return text, true
}

// Segment tags this catalog's terms in text. Results are not cached; use
// Segmenter for stored texts that are segmented repeatedly.
func (c *Catalog) Segment(text string) []highlight.Segment {
	return c.segmenter.Highlighter().Segment(text)
}

// Annotate segments text and attaches term explanations.
func (c *Catalog) Annotate(text string) []highlight.Annotated {
	return highlight.Annotate(c.Segment(text), c)
}

// Segmenter returns the cached highlighter owned by this catalog. Only feed it
// texts from the article store: every distinct text stays cached for the TTL.
func (c *Catalog) Segmenter() *highlight.Cached {
	return c.segmenter
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
