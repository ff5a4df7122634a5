// CLAUDE:SUMMARY Article record type, the field view consumed by the filter, and article ID generation.
package article

import (
	"github.com/google/uuid"
)

// Fields is the read-only view of a record that filtering looks at.
type Fields struct {
	Title             string
	OriginalContent   string
	SimplifiedContent string
	Category          string
}

// Record is anything that can expose the fields the filter compares.
type Record interface {
	Fields() Fields
}

// Article is a government announcement as shown to readers.
type Article struct {
	ID                string `json:"id" yaml:"id"`
	Date              string `json:"date" yaml:"date"`
	Title             string `json:"title" yaml:"title"`
	OriginalContent   string `json:"original_content" yaml:"original_content"`
	SimplifiedContent string `json:"simplified_content" yaml:"simplified_content"`
	Category          string `json:"category" yaml:"category"`
	Source            string `json:"source" yaml:"source"`
	URL               string `json:"url" yaml:"url"`
	IsNew             bool   `json:"is_new" yaml:"is_new"`
}

// Fields implements Record. A nil article has all fields empty.
func (a *Article) Fields() Fields {
	if a == nil {
		return Fields{}
	}
	return Fields{
		Title:             a.Title,
		OriginalContent:   a.OriginalContent,
		SimplifiedContent: a.SimplifiedContent,
		Category:          a.Category,
	}
}

// NewID returns a fresh article identifier.
func NewID() string {
	return "art_" + uuid.NewString()
}
