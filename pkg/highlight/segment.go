// Package highlight splits free text into plain and tagged segments, tagging
// every case-insensitive occurrence of a known term.
//
// Terms are tried longest first. Once a span is tagged it is never re-split by
// a shorter term, so "hotărâre de guvern" wins over "hotărâre" wherever both
// would match. Concatenating the segments in order always reproduces the
// input exactly.
//
// A Highlighter is immutable after New and safe for concurrent use.
package highlight

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind distinguishes plain text from text tagged with a term.
type Kind int

const (
	Plain Kind = iota
	Tagged
)

func (k Kind) String() string {
	if k == Tagged {
		return "tagged"
	}
	return "plain"
}

// MarshalText encodes the kind as "plain" or "tagged".
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes "plain" or "tagged".
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "plain":
		*k = Plain
	case "tagged":
		*k = Tagged
	default:
		return fmt.Errorf("unknown segment kind %q", b)
	}
	return nil
}

// Segment is a contiguous, non-empty piece of the input. Term is set only for
// tagged segments and is always lower-case; Text keeps the input's casing.
type Segment struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
	Term string `json:"term,omitempty"`
}

// IsTagged reports whether the segment matched a term.
func (s Segment) IsTagged() bool {
	return s.Kind == Tagged
}

// Join concatenates segment texts in order.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// compiledTerm is a single term with its case-insensitive literal matcher.
type compiledTerm struct {
	tag string
	re  *regexp.Regexp
}

// Highlighter tags occurrences of a fixed term list.
type Highlighter struct {
	terms []compiledTerm
}

// New builds a Highlighter for terms. Terms are sorted by descending length in
// runes; equal-length terms keep their given order. Empty terms are ignored.
func New(terms []string) *Highlighter {
	sorted := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			sorted = append(sorted, t)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})

	h := &Highlighter{terms: make([]compiledTerm, 0, len(sorted))}
	for _, t := range sorted {
		h.terms = append(h.terms, compiledTerm{
			tag: strings.ToLower(t),
			re:  regexp.MustCompile(`(?i)` + regexp.QuoteMeta(t)),
		})
	}
	return h
}

// Terms returns the lower-cased terms in matching order.
func (h *Highlighter) Terms() []string {
	out := make([]string, len(h.terms))
	for i, ct := range h.terms {
		out[i] = ct.tag
	}
	return out
}

// Segment splits text into plain and tagged segments. An empty text yields no
// segments.
func (h *Highlighter) Segment(text string) []Segment {
	if text == "" {
		return nil
	}

	segs := []Segment{{Kind: Plain, Text: text}}
	for _, ct := range h.terms {
		next := make([]Segment, 0, len(segs))
		for _, s := range segs {
			if s.Kind == Tagged {
				next = append(next, s)
				continue
			}
			next = ct.split(s.Text, next)
		}
		segs = next
	}
	return segs
}

// split appends the pieces of a plain text to dst: pre-match text, the tagged
// match, and so on. Empty pieces are dropped.
func (ct compiledTerm) split(text string, dst []Segment) []Segment {
	locs := ct.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return append(dst, Segment{Kind: Plain, Text: text})
	}

	prev := 0
	for _, loc := range locs {
		if !ct.sameLetters(text[loc[0]:loc[1]]) {
			continue
		}
		if loc[0] > prev {
			dst = append(dst, Segment{Kind: Plain, Text: text[prev:loc[0]]})
		}
		if loc[1] > loc[0] {
			dst = append(dst, Segment{Kind: Tagged, Text: text[loc[0]:loc[1]], Term: ct.tag})
		}
		prev = loc[1]
	}
	if prev < len(text) {
		dst = append(dst, Segment{Kind: Plain, Text: text[prev:]})
	}
	return dst
}

// sameLetters reports whether m lower-cases rune by rune to the tag. The
// regexp's (?i) also folds the long s (ſ) to s and the Kelvin sign to k; a
// non-ASCII rune is therefore never accepted in place of an ASCII one.
func (ct compiledTerm) sameLetters(m string) bool {
	tag := ct.tag
	for m != "" && tag != "" {
		mr, ms := utf8.DecodeRuneInString(m)
		tr, ts := utf8.DecodeRuneInString(tag)
		if mr != tr {
			if unicode.ToLower(mr) != tr || (mr < utf8.RuneSelf) != (tr < utf8.RuneSelf) {
				return false
			}
		}
		m, tag = m[ms:], tag[ts:]
	}
	return m == "" && tag == ""
}
