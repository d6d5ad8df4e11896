package analyzer

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CatalogEntry holds the static advice for one face shape
type CatalogEntry struct {
	Recommended []string `yaml:"recommended" json:"recommended"`
	Avoid       []string `yaml:"avoid" json:"avoid"`
	Reasoning   string   `yaml:"reasoning" json:"reasoning"`
}

// Catalog maps every face shape to its CatalogEntry
type Catalog struct {
	entries map[domain.FaceShape]CatalogEntry
}

// LoadCatalog parses a YAML catalog document. Every face shape must be
// present and recommended lists must not repeat a style.
func LoadCatalog(data []byte) (*Catalog, error) {
	var raw map[domain.FaceShape]CatalogEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for shape := range raw {
		if !shape.Valid() {
			return nil, fmt.Errorf("catalog: unknown face shape %q", shape)
		}
	}

	for _, shape := range domain.FaceShapes {
		entry, ok := raw[shape]
		if !ok {
			return nil, fmt.Errorf("catalog: missing entry for %s", shape)
		}
		if len(entry.Recommended) == 0 {
			return nil, fmt.Errorf("catalog: %s has no recommended styles", shape)
		}
		if len(dedupe(entry.Recommended)) != len(entry.Recommended) {
			return nil, fmt.Errorf("catalog: %s has duplicate recommended styles", shape)
		}
	}

	return &Catalog{entries: raw}, nil
}

// LoadCatalogFile reads and parses a catalog from disk
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return LoadCatalog(data)
}

// DefaultCatalog returns the built-in catalog
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Lookup returns the entry for shape, or the Oval entry when the shape is
// not in the catalog. The returned slices are copies.
func (c *Catalog) Lookup(shape domain.FaceShape) CatalogEntry {
	entry, ok := c.entries[shape]
	if !ok {
		entry = c.entries[domain.FaceShapeOval]
	}

	return CatalogEntry{
		Recommended: slices.Clone(entry.Recommended),
		Avoid:       slices.Clone(entry.Avoid),
		Reasoning:   entry.Reasoning,
	}
}

// MarshalYAML writes the catalog in the same shape LoadCatalog reads
func (c *Catalog) MarshalYAML() (interface{}, error) {
	out := make(map[domain.FaceShape]CatalogEntry, len(c.entries))
	for _, shape := range domain.FaceShapes {
		out[shape] = c.Lookup(shape)
	}
	return out, nil
}

// Styles returns every recommended style across all shapes in first-seen order
func (c *Catalog) Styles() []string {
	var styles []string
	for _, shape := range domain.FaceShapes {
		styles = append(styles, c.entries[shape].Recommended...)
	}
	return dedupe(styles)
}
