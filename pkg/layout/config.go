// Package layout owns the per-user column layout state: visibility,
// pinning, order, and sizing. The Store keeps those four axes
// consistent across edits and hands every new configuration to its
// owner for durable storage; it holds no durable state of its own.
package layout

import (
	"github.com/oakwood-commons/tablekit/pkg/columns"
)

// Configuration is the persisted unit of layout state. Any field may
// be absent in a legacy document; absence means the empty value and the
// store tolerates unknown column ids throughout.
type Configuration struct {
	// Visibility maps column id to visibility. Absence means visible.
	Visibility map[string]bool `yaml:"visibility,omitempty" json:"visibility,omitempty"`

	// Order is the column display order. It need not be exhaustive:
	// ids the configuration predates are appended by reconciliation.
	Order []string `yaml:"order,omitempty" json:"order,omitempty"`

	Pinning Pinning `yaml:"pinning,omitempty" json:"pinning,omitempty"`

	// Sizing maps column id to its width.
	Sizing map[string]int `yaml:"sizing,omitempty" json:"sizing,omitempty"`
}

// Pinning holds the left-anchored column ids, in display order.
type Pinning struct {
	Left []string `yaml:"left,omitempty" json:"left,omitempty"`
}

// DefaultOrder is the canonical order of the default columns. The
// reconciliation pass inserts any of these missing from a persisted
// order relative to their canonical neighbors.
var DefaultOrder = []string{
	columns.ColumnThumbnail,
	columns.ColumnName,
	columns.ColumnSubType,
	columns.ColumnStatus,
	columns.ColumnTags,
}

// IsVisible reports whether the column is visible under this
// configuration. Only an explicit false hides a column.
func (c Configuration) IsVisible(id string) bool {
	v, ok := c.Visibility[id]
	return !ok || v
}

// IsPinned reports whether the column is left-pinned.
func (c Configuration) IsPinned(id string) bool {
	for _, pinned := range c.Pinning.Left {
		if pinned == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. The store clones on every boundary so the
// caller-owned configuration is never mutated in place.
func (c Configuration) Clone() Configuration {
	out := Configuration{
		Order: append([]string(nil), c.Order...),
		Pinning: Pinning{
			Left: append([]string(nil), c.Pinning.Left...),
		},
	}
	if c.Visibility != nil {
		out.Visibility = make(map[string]bool, len(c.Visibility))
		for k, v := range c.Visibility {
			out.Visibility[k] = v
		}
	}
	if c.Sizing != nil {
		out.Sizing = make(map[string]int, len(c.Sizing))
		for k, v := range c.Sizing {
			out.Sizing[k] = v
		}
	}
	return out
}

// normalize gives absent maps their empty value so lookups and updates
// never hit a nil map.
func (c *Configuration) normalize() {
	if c.Visibility == nil {
		c.Visibility = map[string]bool{}
	}
	if c.Sizing == nil {
		c.Sizing = map[string]int{}
	}
}

func indexOf(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}

func contains(ids []string, id string) bool {
	return indexOf(ids, id) >= 0
}
