// Package schema defines the per-dataset configuration the pipeline runs on:
// canonical column order, header aliases, the completeness field list, and
// the dedup key strategy. Defaults for the two known dataset kinds are
// embedded; a schemas directory can override them, the same way dictionary
// manifests override built-ins elsewhere in the hazyhaar tooling.
package schema

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/crmclean/pkg/normalize"
)

// Kind selects the dataset schema and key strategy.
type Kind string

const (
	KindAccount Kind = "account"
	KindContact Kind = "contact"
)

// ErrUnknownKind is returned when a dataset kind has no schema. This is a
// configuration error, not a data error: kinds are fixed at two values.
var ErrUnknownKind = errors.New("unknown dataset kind")

// ParseKind validates a dataset kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindAccount, KindContact:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Kinds returns the known dataset kinds in a fixed order.
func Kinds() []Kind {
	return []Kind{KindAccount, KindContact}
}

// FormatSpec describes the CSV layout of a dataset export.
type FormatSpec struct {
	Delimiter string `yaml:"delimiter" json:"delimiter"`
	Encoding  string `yaml:"encoding" json:"encoding"`
}

// Schema is the full configuration for one dataset kind.
type Schema struct {
	Kind               Kind                `yaml:"kind" json:"kind"`
	Required           string              `yaml:"required" json:"required"`
	KeyStrategy        string              `yaml:"key_strategy" json:"key_strategy"`
	Columns            []string            `yaml:"columns" json:"columns"`
	CompletenessFields []string            `yaml:"completeness_fields" json:"completeness_fields"`
	Aliases            map[string][]string `yaml:"aliases" json:"-"`
	Format             FormatSpec          `yaml:"format" json:"-"`
}

//go:embed schemas/*.yaml
var defaults embed.FS

// Load returns the embedded default schema for a kind.
func Load(kind Kind) (*Schema, error) {
	data, err := defaults.ReadFile(fmt.Sprintf("schemas/%s.yaml", kind))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return parse(data, kind)
}

// LoadDir returns the schema for a kind from dir/<kind>.yaml, falling back
// to the embedded default when the file does not exist.
func LoadDir(dir string, kind Kind) (*Schema, error) {
	if dir == "" {
		return Load(kind)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.yaml", kind))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Load(kind)
		}
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return parse(data, kind)
}

func parse(data []byte, kind Kind) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schema for %s: %w", kind, err)
	}
	if s.Kind == "" {
		s.Kind = kind
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("schema %s: %w", kind, err)
	}
	return &s, nil
}

func (s *Schema) validate() error {
	if len(s.Columns) == 0 {
		return errors.New("no columns defined")
	}
	if s.Required == "" {
		return errors.New("no required column defined")
	}
	if s.KeyStrategy == "" {
		return errors.New("no key strategy defined")
	}
	has := func(col string) bool {
		for _, c := range s.Columns {
			if c == col {
				return true
			}
		}
		return false
	}
	if !has(s.Required) {
		return fmt.Errorf("required column %q not in columns", s.Required)
	}
	for _, f := range s.CompletenessFields {
		if !has(f) {
			return fmt.Errorf("completeness field %q not in columns", f)
		}
	}
	return nil
}

// ColumnMapping maps actual CSV header names to canonical column names via
// the alias lists. Canonical columns are resolved in declaration order and
// each header is claimed at most once, so the mapping is deterministic
// regardless of header order or duplicate aliases.
func (s *Schema) ColumnMapping(header []string) map[string]string {
	normalized := make(map[string]string, len(header)) // folded -> original header
	for _, col := range header {
		folded := normalize.ColumnName(col)
		if _, taken := normalized[folded]; !taken {
			normalized[folded] = col
		}
	}

	claimed := make(map[string]bool, len(header))
	mapping := make(map[string]string)
	for _, canonical := range s.Columns {
		variations := s.Aliases[canonical]
		if len(variations) == 0 {
			variations = []string{canonical}
		}
		for _, variation := range variations {
			actual, ok := normalized[normalize.ColumnName(variation)]
			if !ok || claimed[actual] {
				continue
			}
			claimed[actual] = true
			mapping[actual] = canonical
			break
		}
	}
	return mapping
}

// Canonical resolves a single field name (e.g. a JSON key from the API) to
// its canonical column, or reports that the schema does not know it.
func (s *Schema) Canonical(field string) (string, bool) {
	folded := normalize.ColumnName(field)
	for _, canonical := range s.Columns {
		if folded == canonical {
			return canonical, true
		}
		for _, variation := range s.Aliases[canonical] {
			if folded == normalize.ColumnName(variation) {
				return canonical, true
			}
		}
	}
	return "", false
}
