package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the declaration format understood by this package.
const CurrentVersion = "1"

// File represents the root of a YAML record declaration file.
type File struct {
	// Version of the declaration format.
	Version string `yaml:"version,omitempty"`

	// Package is the import path of the package declaring the record types.
	// Generated constructors are written into it.
	Package string `yaml:"package"`

	// Records lists the record types to generate constructors for.
	Records []Record `yaml:"records"`
}

// Record declares one struct type as a record.
type Record struct {
	// Type is the struct type name within Package.
	Type string `yaml:"type"`

	// Init enables the constructor. Nil means true.
	Init *bool `yaml:"init,omitempty"`

	// Constructor names the generated constructor (default New<Type>).
	Constructor string `yaml:"constructor,omitempty"`

	// Fields holds per-field declarations.
	Fields []Field `yaml:"fields,omitempty"`
}

// InitEnabled reports whether the record has a constructor.
func (r *Record) InitEnabled() bool {
	return r.Init == nil || *r.Init
}

// Field declares the settings of one struct field.
type Field struct {
	// Name is the Go field name.
	Name string `yaml:"name"`

	// Validator is a function expression applied to the raw value.
	Validator string `yaml:"validator,omitempty"`

	// Default is a literal default. A zero node means no default.
	Default yaml.Node `yaml:"default,omitempty"`

	// DefaultFactory is a function expression producing the default.
	DefaultFactory string `yaml:"default_factory,omitempty"`

	// Init makes the field a constructor argument. Nil means true.
	Init *bool `yaml:"init,omitempty"`
}

// HasDefault reports whether a literal default is declared.
func (f *Field) HasDefault() bool {
	return f.Default.Kind != 0
}

// InitEnabled reports whether the field is a constructor argument.
func (f *Field) InitEnabled() bool {
	return f.Init == nil || *f.Init
}

// DefaultValue decodes the literal default. Scalars decode to string, int,
// float64 or bool; null decodes to nil.
func (f *Field) DefaultValue() (any, error) {
	if !f.HasDefault() {
		return nil, nil
	}

	if f.Default.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("default must be a scalar, got %s", kindName(f.Default.Kind))
	}

	var v any
	if err := f.Default.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding default: %w", err)
	}

	return v, nil
}

// SetDefault sets the literal default to v.
func (f *Field) SetDefault(v any) error {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return fmt.Errorf("encoding default: %w", err)
	}

	f.Default = node

	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "node"
	}
}

// Bool returns a pointer to b, for Init fields.
func Bool(b bool) *bool {
	return &b
}
