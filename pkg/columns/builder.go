package columns

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/tablekit/internal/cel"
	"github.com/oakwood-commons/tablekit/pkg/schema"
)

// ExtraColumn is a caller-supplied column spliced into the built list,
// supporting host-specific columns (e.g., a list view's "remove from
// list" column) without modifying the builder.
type ExtraColumn struct {
	Spec Spec

	// Position is the insertion index into the built list, clamped to
	// the list bounds. Negative means append.
	Position int
}

// BuilderOptions carries every input the builder reads. The builder
// has no other source of data: no ambient context, no globals.
type BuilderOptions struct {
	Schema   schema.Schema
	Catalogs schema.Catalogs

	// ShowHierarchy switches the name column between label ordering and
	// full-path ordering.
	ShowHierarchy bool

	// Exclude lists column ids to omit. The special
	// [ExcludeBuiltinAttributes] sentinel omits every column derived
	// from a builtin attribute at once.
	Exclude []string

	// FilterExpr is an optional CEL predicate over the attribute
	// descriptor ("attr.name", "attr.builtin", "attr.type",
	// "attr.scope"). Attributes for which it yields false are omitted.
	FilterExpr string

	Extra []ExtraColumn

	Logger logr.Logger
}

// BuildColumns produces the ordered column spec list: the built-in
// columns in their fixed order, then one column per schema attribute in
// schema order, then the extra columns at their requested positions.
// Output is deterministic for identical inputs; the only error source
// is an invalid FilterExpr.
func BuildColumns(opts BuilderOptions) ([]Spec, error) {
	excluded := make(map[string]struct{}, len(opts.Exclude))
	for _, id := range opts.Exclude {
		excluded[id] = struct{}{}
	}
	_, skipBuiltinAttrs := excluded[ExcludeBuiltinAttributes]

	var filter *cel.Predicate
	if opts.FilterExpr != "" {
		var err error
		if filter, err = cel.CompilePredicate(opts.FilterExpr); err != nil {
			return nil, fmt.Errorf("columns: filter expression: %w", err)
		}
	}

	specs := make([]Spec, 0, 7+len(opts.Schema.Attributes)+len(opts.Extra))
	for _, spec := range builtinSpecs(opts) {
		if _, skip := excluded[spec.ID]; skip {
			continue
		}
		specs = append(specs, spec)
	}

	for _, attr := range opts.Schema.Attributes {
		if skipBuiltinAttrs && attr.Builtin {
			continue
		}
		id := AttributeColumnID(attr.Name)
		if _, skip := excluded[id]; skip {
			continue
		}
		if filter != nil {
			keep, err := filter.Eval(attrInput(attr))
			if err != nil {
				return nil, fmt.Errorf("columns: filter attribute %q: %w", attr.Name, err)
			}
			if !keep {
				continue
			}
		}
		specs = append(specs, attributeSpec(attr))
	}

	for _, extra := range opts.Extra {
		if hasColumn(specs, extra.Spec.ID) {
			opts.Logger.V(1).Info("skipping duplicate extra column", "id", extra.Spec.ID)
			continue
		}
		spec := extra.Spec
		if spec.Sort != nil {
			spec.Sort = LoadingLast(spec.Sort)
		}
		specs = insertAt(specs, spec, extra.Position)
	}

	opts.Logger.V(1).Info("built columns", "count", len(specs), "hierarchy", opts.ShowHierarchy)
	return specs, nil
}

// builtinSpecs returns the fixed built-in columns in their canonical
// order. Every sort strategy is wrapped so loading placeholders sort
// last.
func builtinSpecs(opts BuilderOptions) []Spec {
	nameSort := ByLabel()
	if opts.ShowHierarchy {
		nameSort = ByPath()
	}
	return []Spec{
		{
			ID:       ColumnSelection,
			Title:    "",
			MinWidth: 24,
		},
		{
			ID:        ColumnThumbnail,
			Title:     "Thumbnail",
			Resizable: true,
			Pinnable:  true,
			Hideable:  true,
			MinWidth:  48,
		},
		{
			ID:        ColumnName,
			Title:     "Name",
			Sortable:  true,
			Resizable: true,
			Pinnable:  true,
			MinWidth:  120,
			Sort:      LoadingLast(nameSort),
		},
		{
			ID:        ColumnStatus,
			Title:     "Status",
			Sortable:  true,
			Resizable: true,
			Pinnable:  true,
			Hideable:  true,
			MinWidth:  90,
			Sort:      LoadingLast(ByStatusIndex(opts.Catalogs, ColumnStatus)),
		},
		{
			ID:        ColumnSubType,
			Title:     "Type",
			Scope:     []schema.EntityType{schema.EntityFolder, schema.EntityTask},
			Sortable:  true,
			Resizable: true,
			Pinnable:  true,
			Hideable:  true,
			MinWidth:  90,
			Sort:      LoadingLast(Alphanumeric(ColumnSubType)),
		},
		{
			ID:        ColumnAssignees,
			Title:     "Assignees",
			Scope:     []schema.EntityType{schema.EntityTask},
			Sortable:  true,
			Resizable: true,
			Pinnable:  true,
			Hideable:  true,
			MinWidth:  100,
			Sort:      LoadingLast(Alphanumeric(ColumnAssignees)),
		},
		{
			ID:        ColumnTags,
			Title:     "Tags",
			Sortable:  true,
			Resizable: true,
			Pinnable:  true,
			Hideable:  true,
			MinWidth:  100,
			Sort:      LoadingLast(Alphanumeric(ColumnTags)),
		},
	}
}

// attributeSpec derives a column spec from an attribute descriptor,
// choosing the sort strategy from the declared value type.
func attributeSpec(attr schema.Attribute) Spec {
	var sort SortStrategy
	switch attr.Type {
	case schema.TypeEnum:
		sort = ByEnumIndex(attr, attr.Name)
	case schema.TypeDatetime:
		sort = ByDatetime(attr.Name)
	case schema.TypeBoolean:
		sort = ByBoolean(attr.Name)
	default:
		sort = Alphanumeric(attr.Name)
	}
	return Spec{
		ID:            AttributeColumnID(attr.Name),
		Title:         attr.Title,
		Kind:          KindAttribute,
		AttributeName: attr.Name,
		Scope:         attr.Scope,
		Sortable:      true,
		Resizable:     true,
		Pinnable:      true,
		Hideable:      true,
		ReadOnly:      attr.ReadOnly,
		MinWidth:      80,
		Sort:          LoadingLast(sort),
	}
}

// attrInput shapes an attribute descriptor for CEL evaluation.
func attrInput(attr schema.Attribute) map[string]any {
	scope := make([]string, len(attr.Scope))
	for i, s := range attr.Scope {
		scope[i] = string(s)
	}
	return map[string]any{
		"name":     attr.Name,
		"title":    attr.Title,
		"type":     string(attr.Type),
		"builtin":  attr.Builtin,
		"readOnly": attr.ReadOnly,
		"scope":    scope,
	}
}

func hasColumn(specs []Spec, id string) bool {
	for _, s := range specs {
		if s.ID == id {
			return true
		}
	}
	return false
}

// insertAt splices spec into specs at pos, clamped to the list bounds;
// a negative pos appends.
func insertAt(specs []Spec, spec Spec, pos int) []Spec {
	if pos < 0 {
		return append(specs, spec)
	}
	if pos > len(specs) {
		pos = len(specs)
	}
	specs = append(specs, Spec{})
	copy(specs[pos+1:], specs[pos:])
	specs[pos] = spec
	return specs
}
