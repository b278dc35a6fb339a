// Package columns builds the ordered column specifications for an
// entity table from an attribute schema, a set of exclusion rules, and
// the project option catalogs. Specs are pure data: identity,
// capability flags, and a sort strategy. Rendering and layout state
// live elsewhere.
package columns

import (
	"time"

	"github.com/oakwood-commons/tablekit/pkg/schema"
)

// Built-in column ids. Their identity and semantics are fixed;
// attribute-derived columns use the "attrib_" prefix to avoid
// collisions.
const (
	ColumnSelection = "selection"
	ColumnThumbnail = "thumbnail"
	ColumnName      = "name"
	ColumnStatus    = "status"
	ColumnSubType   = "subType"
	ColumnAssignees = "assignees"
	ColumnTags      = "tags"
)

// AttrPrefix prefixes attribute-derived column ids.
const AttrPrefix = "attrib_"

// ExcludeBuiltinAttributes is the exclusion sentinel that removes every
// column derived from a builtin attribute without naming each id.
const ExcludeBuiltinAttributes = "attrib:builtin"

// AttributeColumnID returns the column id for an attribute name.
func AttributeColumnID(name string) string {
	return AttrPrefix + name
}

// Kind distinguishes fixed built-in columns from schema-derived ones.
type Kind int

const (
	KindBuiltin Kind = iota
	KindAttribute
)

// Spec describes one column: identity, capabilities, and sort behavior.
type Spec struct {
	ID    string
	Title string
	Kind  Kind

	// AttributeName is set for KindAttribute specs and names the schema
	// attribute the column was derived from.
	AttributeName string

	// Scope restricts which entity types have a meaningful cell for
	// this column. Rows outside the scope render a non-interactive
	// placeholder; the renderer decides that per row using the row's
	// entity type, never per column. Empty means all entity types.
	Scope []schema.EntityType

	Sortable  bool
	Resizable bool
	Pinnable  bool
	Hideable  bool
	ReadOnly  bool

	// MinWidth is the smallest width (in px or cells, host-defined)
	// the layout store should accept for this column.
	MinWidth int

	// Sort is the comparison strategy chosen at build time from the
	// attribute's declared value type. Always wrapped with
	// [LoadingLast].
	Sort SortStrategy
}

// AppliesTo reports whether rows of the given entity type carry a
// meaningful cell for this column.
func (s Spec) AppliesTo(et schema.EntityType) bool {
	if len(s.Scope) == 0 {
		return true
	}
	for _, scoped := range s.Scope {
		if scoped == et {
			return true
		}
	}
	return false
}

// TypedValue is a cell value tagged with its declared type. Exactly
// one of the value fields is meaningful, selected by Type.
type TypedValue struct {
	Type schema.ValueType

	String string
	Int    int64
	Float  float64
	Bool   bool
	Time   time.Time
	List   []string
}

// StringValue wraps a string cell value.
func StringValue(s string) TypedValue {
	return TypedValue{Type: schema.TypeString, String: s}
}

// EnumValue wraps an enum cell value (the option's Value, not Label).
func EnumValue(s string) TypedValue {
	return TypedValue{Type: schema.TypeEnum, String: s}
}

// IntValue wraps an integer cell value.
func IntValue(i int64) TypedValue {
	return TypedValue{Type: schema.TypeInteger, Int: i}
}

// FloatValue wraps a float cell value.
func FloatValue(f float64) TypedValue {
	return TypedValue{Type: schema.TypeFloat, Float: f}
}

// BoolValue wraps a boolean cell value.
func BoolValue(b bool) TypedValue {
	return TypedValue{Type: schema.TypeBoolean, Bool: b}
}

// TimeValue wraps a datetime cell value.
func TimeValue(t time.Time) TypedValue {
	return TypedValue{Type: schema.TypeDatetime, Time: t}
}

// ListValue wraps a list cell value (assignees, tags).
func ListValue(items []string) TypedValue {
	return TypedValue{Type: schema.TypeList, List: items}
}

// CellEdit is the payload handed to the external update collaborator
// when a cell commits an edit. The engine forwards it verbatim.
type CellEdit struct {
	RowID      string
	EntityID   string
	EntityType schema.EntityType

	// Field is the built-in column id, or the bare attribute name when
	// IsAttribute is set.
	Field       string
	IsAttribute bool

	Value TypedValue
}

// EditForColumn assembles a CellEdit for the given spec, translating
// attribute column ids back to their attribute names.
func EditForColumn(spec Spec, rowID, entityID string, et schema.EntityType, value TypedValue) CellEdit {
	edit := CellEdit{
		RowID:      rowID,
		EntityID:   entityID,
		EntityType: et,
		Field:      spec.ID,
		Value:      value,
	}
	if spec.Kind == KindAttribute {
		edit.Field = spec.AttributeName
		edit.IsAttribute = true
	}
	return edit
}
