// Package schema defines the attribute schema consumed by the column
// builder: attribute descriptors with typed values, per-entity-type
// scoping, and the option catalogs (statuses, types, assignees, tags)
// that drive enum ordering.
//
// The schema is owned by an external provider (project configuration,
// server response, YAML document) and is read-only to the rest of
// tablekit.
package schema

import (
	"fmt"
)

// ValueType identifies the declared type of an attribute's values.
// It selects the sort strategy for the derived column.
type ValueType string

const (
	TypeString   ValueType = "string"
	TypeInteger  ValueType = "integer"
	TypeFloat    ValueType = "float"
	TypeBoolean  ValueType = "boolean"
	TypeDatetime ValueType = "datetime"
	TypeEnum     ValueType = "enum"
	TypeList     ValueType = "list"
)

// EntityType identifies the kind of row an attribute or option applies to.
type EntityType string

const (
	EntityFolder  EntityType = "folder"
	EntityTask    EntityType = "task"
	EntityProduct EntityType = "product"
	EntityVersion EntityType = "version"
	EntityList    EntityType = "list"
)

// EnumOption is one declared value of an enum attribute. Declaration
// order is significant: enum columns sort by option index, not label.
type EnumOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Attribute describes a single schema attribute.
type Attribute struct {
	// Name is the attribute identifier, unique within a schema
	// (e.g., "priority", "fps").
	Name string `yaml:"name" json:"name"`

	// Title is the human-readable column header text.
	Title string `yaml:"title" json:"title"`

	// Type declares the value type and selects the sort strategy.
	Type ValueType `yaml:"type" json:"type"`

	// Enum lists the declared options for TypeEnum attributes, in the
	// order column owners want values sorted.
	Enum []EnumOption `yaml:"enum,omitempty" json:"enum,omitempty"`

	// Scope lists the entity types this attribute applies to. Rows of
	// other entity types render an empty cell for this column.
	Scope []EntityType `yaml:"scope,omitempty" json:"scope,omitempty"`

	// Builtin marks attributes shipped with the system, as opposed to
	// project-defined custom attributes. The builder's
	// [columns.ExcludeBuiltinAttributes] sentinel matches these.
	Builtin bool `yaml:"builtin,omitempty" json:"builtin,omitempty"`

	// ReadOnly attributes produce non-editable cells.
	ReadOnly bool `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
}

// AppliesTo reports whether the attribute is scoped to the given entity
// type. An empty scope applies to every entity type.
func (a Attribute) AppliesTo(et EntityType) bool {
	if len(a.Scope) == 0 {
		return true
	}
	for _, s := range a.Scope {
		if s == et {
			return true
		}
	}
	return false
}

// EnumIndex returns the position of value within the attribute's
// declared enum options, or -1 when the value is unknown or the
// attribute is not an enum.
func (a Attribute) EnumIndex(value string) int {
	for i, opt := range a.Enum {
		if opt.Value == value {
			return i
		}
	}
	return -1
}

// Schema is an ordered collection of attribute descriptors. Order is
// the order attribute columns appear in builder output.
type Schema struct {
	Attributes []Attribute `yaml:"attributes" json:"attributes"`
}

// Lookup returns the attribute with the given name.
func (s Schema) Lookup(name string) (Attribute, bool) {
	for _, a := range s.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Validate checks the schema for duplicate names, missing identifiers,
// and enum attributes without options.
func (s Schema) Validate() error {
	seen := make(map[string]struct{}, len(s.Attributes))
	for i, a := range s.Attributes {
		if a.Name == "" {
			return fmt.Errorf("schema: attributes[%d]: name is required", i)
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("schema: duplicate attribute %q", a.Name)
		}
		seen[a.Name] = struct{}{}
		if a.Type == TypeEnum && len(a.Enum) == 0 {
			return fmt.Errorf("schema: attribute %q: enum type requires options", a.Name)
		}
	}
	return nil
}
