// Package catalog holds the in-memory tables served by the development
// search backend.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrUnknownTable is returned when a search names a table the catalog lacks
var ErrUnknownTable = errors.New("unknown table")

// Record is one row of a table
type Record map[string]any

// Catalog maps table names to their rows
type Catalog struct {
	Tables map[string][]Record `yaml:"tables"`
}

// Default returns the catalog bundled with the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if c.Tables == nil {
		c.Tables = make(map[string][]Record)
	}
	return &c, nil
}

// TableNames returns the table names in sorted order
func (c *Catalog) TableNames() []string {
	names := make([]string, 0, len(c.Tables))
	for name := range c.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Search returns the rows of table whose field contains value, ignoring case.
// Rows without the field never match. Result order follows the table.
func (c *Catalog) Search(table, field, value string) ([]Record, error) {
	rows, ok := c.Tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	needle := strings.ToLower(value)
	result := make([]Record, 0)
	for _, row := range rows {
		v, ok := row[field]
		if !ok || v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(fmt.Sprint(v)), needle) {
			result = append(result, row)
		}
	}
	return result, nil
}
