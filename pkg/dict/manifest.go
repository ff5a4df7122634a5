// CLAUDE:SUMMARY Manifest YAML schema describing a legal-term catalog: metadata, CSV format spec and inline terms.
package dict

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a term catalog: its source, locale and where its terms live.
type Manifest struct {
	ID        string     `yaml:"id" json:"id"`
	Version   string     `yaml:"version" json:"version"`
	Locale    string     `yaml:"locale" json:"locale"`
	Source    string     `yaml:"source" json:"source"`
	SourceURL string     `yaml:"source_url" json:"source_url,omitempty"`
	License   string     `yaml:"license" json:"license"`
	Normalize string     `yaml:"normalize" json:"normalize"`
	DataFile  string     `yaml:"data_file" json:"data_file,omitempty"`
	Format    FormatSpec `yaml:"format" json:"-"`
	Terms     []TermSpec `yaml:"terms" json:"-"`
}

// TermSpec is one legal term and the explanation shown next to it.
type TermSpec struct {
	Term        string `yaml:"term"`
	Explanation string `yaml:"explanation"`
}

// FormatSpec describes the CSV layout of DataFile (term;explanation).
type FormatSpec struct {
	Delimiter string `yaml:"delimiter"`
	Encoding  string `yaml:"encoding"`
	HasHeader bool   `yaml:"has_header"`
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", path)
	}
	if m.DataFile == "" && len(m.Terms) == 0 {
		return nil, fmt.Errorf("manifest %s: no terms and no data_file", path)
	}
	if m.Normalize == "" {
		m.Normalize = "lowercase"
	}
	return &m, nil
}
