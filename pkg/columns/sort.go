package columns

import (
	"fmt"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/oakwood-commons/tablekit/pkg/schema"
)

// SortStrategy compares two rows for a single column and returns a
// negative number when a orders before b, zero on ties, positive
// otherwise. Strategies are chosen at build time per column and never
// look at layout state.
type SortStrategy func(a, b Row) int

// Row is the minimal row view the sort strategies operate on. Hosts
// adapt their entity rows to this shape; Values is keyed by column id
// for built-ins and by attribute name for attribute columns.
type Row struct {
	ID         string
	Name       string
	Label      string
	FolderPath string
	EntityID   string
	EntityType schema.EntityType

	// Loading marks placeholder rows emitted while a page of real data
	// is still in flight. Every strategy the builder hands out is
	// wrapped so these sort last.
	Loading bool

	Values map[string]any
}

// Value returns the row's value for the given key, or nil when absent.
func (r Row) Value(key string) any {
	if r.Values == nil {
		return nil
	}
	return r.Values[key]
}

// collator performs locale-aware, numeric-conscious string comparison
// ("shot10" after "shot2"). Collators are not safe for concurrent use,
// but the engine's scheduling model is single-threaded per table.
var collator = collate.New(language.Und, collate.Numeric, collate.IgnoreCase)

// compareStrings is the shared locale-aware comparison primitive.
func compareStrings(a, b string) int {
	return collator.CompareString(a, b)
}

// Alphanumeric compares the stringified value under key with the
// locale-aware collator. Non-string values fall back to their string
// form; absent values sort first.
func Alphanumeric(key string) SortStrategy {
	return func(a, b Row) int {
		return compareStrings(stringify(a.Value(key)), stringify(b.Value(key)))
	}
}

// ByLabel compares rows by display label, falling back to the raw name
// when a row has no label.
func ByLabel() SortStrategy {
	return func(a, b Row) int {
		return compareStrings(labelOrName(a), labelOrName(b))
	}
}

// ByPath compares rows by their full hierarchy path. The path is
// composed as folderPath + "/" + name with empty segments dropped, so a
// row without a folder path degrades to its raw name.
func ByPath() SortStrategy {
	return func(a, b Row) int {
		return compareStrings(rowPath(a), rowPath(b))
	}
}

// ByEnumIndex compares rows by the position of their value within the
// attribute's declared option order. Unknown values sort after known
// ones, tie-broken alphanumerically so output stays deterministic.
func ByEnumIndex(attr schema.Attribute, key string) SortStrategy {
	return func(a, b Row) int {
		av, bv := stringify(a.Value(key)), stringify(b.Value(key))
		ai, bi := attr.EnumIndex(av), attr.EnumIndex(bv)
		if c := compareIndexes(ai, bi); c != 0 {
			return c
		}
		return compareStrings(av, bv)
	}
}

// ByStatusIndex compares rows by their status's position in the status
// catalog, so ordering follows the pipeline rather than the alphabet.
func ByStatusIndex(catalogs schema.Catalogs, key string) SortStrategy {
	return func(a, b Row) int {
		av, bv := stringify(a.Value(key)), stringify(b.Value(key))
		ai, bi := catalogs.StatusIndex(av), catalogs.StatusIndex(bv)
		if c := compareIndexes(ai, bi); c != 0 {
			return c
		}
		return compareStrings(av, bv)
	}
}

// ByDatetime compares values as calendar instants. It accepts
// time.Time values and RFC 3339 strings; unparseable or absent values
// sort first.
func ByDatetime(key string) SortStrategy {
	return func(a, b Row) int {
		at, aok := asTime(a.Value(key))
		bt, bok := asTime(b.Value(key))
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		}
		return 0
	}
}

// ByBoolean compares boolean values with false ordering before true.
func ByBoolean(key string) SortStrategy {
	return func(a, b Row) int {
		av, bv := asBool(a.Value(key)), asBool(b.Value(key))
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	}
}

// LoadingLast wraps a strategy so placeholder rows always sort after
// real rows regardless of the wrapped comparison. This keeps skeleton
// rows from interleaving with data during incremental loads.
func LoadingLast(s SortStrategy) SortStrategy {
	return func(a, b Row) int {
		switch {
		case a.Loading && b.Loading:
			return 0
		case a.Loading:
			return 1
		case b.Loading:
			return -1
		}
		return s(a, b)
	}
}

func labelOrName(r Row) string {
	if r.Label != "" {
		return r.Label
	}
	return r.Name
}

// rowPath joins the folder path and row name with "/", dropping empty
// segments.
func rowPath(r Row) string {
	switch {
	case r.FolderPath == "":
		return r.Name
	case r.Name == "":
		return r.FolderPath
	}
	return r.FolderPath + "/" + r.Name
}

// compareIndexes orders known catalog positions ascending and pushes
// unknown (-1) positions after all known ones.
func compareIndexes(a, b int) int {
	switch {
	case a == b:
		return 0
	case a < 0:
		return 1
	case b < 0:
		return -1
	case a < b:
		return -1
	}
	return 1
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case interface{ String() string }:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
