// Package schemafile loads schema declarations from YAML documents.
//
// A document declares a named column list plus optional primary-key
// checks:
//
//	name: events
//	columns:
//	  - { name: id,   type: int64 }
//	  - { name: name, type: string }
//	checks:
//	  - primary_key: [id]
package schemafile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/framecheck"
	"github.com/aretw0/framecheck/pkg/frame"
)

// Document is the YAML shape of a schema declaration.
type Document struct {
	Name    string       `yaml:"name"`
	Columns []ColumnSpec `yaml:"columns"`
	Checks  []CheckSpec  `yaml:"checks"`
}

// ColumnSpec declares one column.
type ColumnSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// CheckSpec declares one quality check. Only primary-key checks are
// expressible in a document; richer checks are registered in code.
type CheckSpec struct {
	PrimaryKey []string `yaml:"primary_key"`
}

// Parse decodes a YAML declaration and builds the schema.
func Parse(data []byte) (*framecheck.Schema, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if doc.Name == "" {
		return nil, errors.New("schemafile: schema name is required")
	}
	if len(doc.Columns) == 0 {
		return nil, fmt.Errorf("schemafile: schema %s declares no columns", doc.Name)
	}

	pairs := make([][2]string, len(doc.Columns))
	for i, c := range doc.Columns {
		pairs[i] = [2]string{c.Name, c.Type}
	}
	members, err := framecheck.ParseColumns(pairs)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	for i, c := range doc.Checks {
		if len(c.PrimaryKey) == 0 {
			return nil, fmt.Errorf("schemafile: check %d: primary_key requires at least one column", i)
		}
		cols := make([]string, len(c.PrimaryKey))
		copy(cols, c.PrimaryKey)
		name := "primary_key_" + strings.Join(cols, "_")
		members = append(members, framecheck.Check(name, func(_ *framecheck.Schema, tbl *frame.Table) error {
			return framecheck.PrimaryKey(tbl, cols...)
		}))
	}
	return framecheck.Define(doc.Name, members...)
}

// Load reads and parses the declaration at path.
func Load(path string) (*framecheck.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return Parse(data)
}
