package article

import (
	"strings"

	"github.com/hazyhaar/anunturi/pkg/dict"
)

// All is the selector value that imposes no constraint.
const All = "all"

// Criteria are the three independent filter constraints. All must pass.
type Criteria struct {
	Query        string `json:"query"`
	DocumentType string `json:"document_type"`
	Subject      string `json:"subject"`
}

// NoCriteria matches every record.
var NoCriteria = Criteria{DocumentType: All, Subject: All}

// Normalize trims the query and maps empty selectors to All.
func (c Criteria) Normalize() Criteria {
	c.Query = strings.TrimSpace(c.Query)
	if c.DocumentType == "" {
		c.DocumentType = All
	}
	if c.Subject == "" {
		c.Subject = All
	}
	return c
}

// Active reports whether any criterion narrows the result.
func (c Criteria) Active() bool {
	return c.Query != "" || c.DocumentType != All || c.Subject != All
}

// Filter returns the records matching c, in input order. Comparisons ignore
// case and Romanian diacritics.
func Filter[T Record](records []T, c Criteria) []T {
	return FilterWith(dict.FoldRomanian, records, c)
}

// FilterWith is Filter with a caller-supplied comparison normalizer.
func FilterWith[T Record](fold dict.Normalizer, records []T, c Criteria) []T {
	m := newMatcher(fold, c)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if m.match(r.Fields()) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record satisfies c.
func Matches(r Record, c Criteria) bool {
	return newMatcher(dict.FoldRomanian, c).match(r.Fields())
}

// matcher holds the folded criteria so they are computed once per call.
type matcher struct {
	fold         dict.Normalizer
	c            Criteria
	query        string
	documentType string
	subject      string
}

func newMatcher(fold dict.Normalizer, c Criteria) *matcher {
	return &matcher{
		fold:         fold,
		c:            c,
		query:        fold(strings.ToLower(c.Query)),
		documentType: fold(strings.ToLower(c.DocumentType)),
		subject:      fold(strings.ToLower(c.Subject)),
	}
}

func (m *matcher) match(f Fields) bool {
	title := m.fold(strings.ToLower(f.Title))
	original := m.fold(strings.ToLower(f.OriginalContent))

	searchMatch := m.c.Query == "" ||
		strings.Contains(title, m.query) ||
		strings.Contains(original, m.query) ||
		strings.Contains(m.fold(strings.ToLower(f.SimplifiedContent)), m.query)
	if !searchMatch {
		return false
	}

	// Loose heuristic: there is no document-type field, so the type token is
	// looked up in the text itself.
	documentTypeMatch := m.c.DocumentType == All ||
		strings.Contains(title, m.documentType) ||
		strings.Contains(original, m.documentType)
	if !documentTypeMatch {
		return false
	}

	return m.c.Subject == All ||
		f.Category == m.c.Subject ||
		strings.Contains(title, m.subject) ||
		strings.Contains(original, m.subject)
}
