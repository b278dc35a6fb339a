// Package table renders a built column set over sample rows with the
// bubbles table component, honoring the layout store's visibility,
// order, pinning, and sizing.
package table

import (
	"fmt"
	"sort"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/tablekit/pkg/columns"
	"github.com/oakwood-commons/tablekit/pkg/layout"
)

// pinMarker prefixes the header of left-pinned columns.
const pinMarker = "📌"

// Model wraps the bubbles table and keeps it in sync with a column
// spec list and a layout configuration.
type Model struct {
	table bubtable.Model

	specs []columns.Spec
	rows  []columns.Row

	// visible is the renderable subset of specs: layout order applied,
	// hidden columns dropped, pinned columns first.
	visible []columns.Spec
	cfg     layout.Configuration

	sortColumn string
	descending bool

	noColor bool
	width   int
}

// NewModel creates a table over the given specs and rows with the
// given layout configuration applied.
func NewModel(specs []columns.Spec, rows []columns.Row, cfg layout.Configuration) *Model {
	t := bubtable.New(
		bubtable.WithFocused(true),
		bubtable.WithHeight(12),
	)
	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Align(lipgloss.Left)
	t.SetStyles(s)

	m := &Model{table: t, specs: specs, rows: rows, width: 80}
	m.SetConfiguration(cfg)
	return m
}

// SetConfiguration applies a layout configuration: recomputes the
// visible column set and refreshes the underlying table.
func (m *Model) SetConfiguration(cfg layout.Configuration) {
	m.cfg = cfg
	m.visible = visibleSpecs(m.specs, cfg)
	m.refresh()
}

// SetRows replaces the row data.
func (m *Model) SetRows(rows []columns.Row) {
	m.rows = rows
	m.refresh()
}

// SortBy sorts the rows by the named column's strategy. Sorting by the
// same column again flips the direction. Columns without a strategy
// are ignored.
func (m *Model) SortBy(id string) {
	spec, ok := m.spec(id)
	if !ok || spec.Sort == nil {
		return
	}
	if m.sortColumn == id {
		m.descending = !m.descending
	} else {
		m.sortColumn = id
		m.descending = false
	}
	m.refresh()
}

// SortColumn returns the active sort column id, or "".
func (m *Model) SortColumn() string {
	return m.sortColumn
}

// VisibleColumns returns the renderable column specs in display order.
func (m *Model) VisibleColumns() []columns.Spec {
	return m.visible
}

func (m *Model) spec(id string) (columns.Spec, bool) {
	for _, s := range m.specs {
		if s.ID == id {
			return s, true
		}
	}
	return columns.Spec{}, false
}

// refresh rebuilds the bubbles columns and rows from the current
// visible set, sort state, and sizing.
func (m *Model) refresh() {
	cols := make([]bubtable.Column, len(m.visible))
	for i, spec := range m.visible {
		title := spec.Title
		if title == "" {
			title = spec.ID
		}
		if m.cfg.IsPinned(spec.ID) {
			title = pinMarker + " " + title
		}
		if spec.ID == m.sortColumn {
			if m.descending {
				title += " ↓"
			} else {
				title += " ↑"
			}
		}
		cols[i] = bubtable.Column{Title: title, Width: m.columnWidth(spec)}
	}

	rows := append([]columns.Row(nil), m.rows...)
	if spec, ok := m.spec(m.sortColumn); ok && spec.Sort != nil {
		sort.SliceStable(rows, func(i, j int) bool {
			c := spec.Sort(rows[i], rows[j])
			if m.descending {
				return c > 0
			}
			return c < 0
		})
	}

	tableRows := make([]bubtable.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = m.toRow(row)
	}

	m.table.SetColumns(cols)
	m.table.SetRows(tableRows)
	if m.table.Cursor() >= len(tableRows) && len(tableRows) > 0 {
		m.table.SetCursor(0)
	}
}

// columnWidth resolves the display width: layout sizing when present,
// clamped to the spec minimum; the minimum otherwise. Sizing values
// are pixel-oriented, so they are scaled down to terminal cells.
func (m *Model) columnWidth(spec columns.Spec) int {
	const pxPerCell = 8
	width := spec.MinWidth
	if sized, ok := m.cfg.Sizing[spec.ID]; ok && sized > width {
		width = sized
	}
	cells := width / pxPerCell
	if cells < 3 {
		cells = 3
	}
	return cells
}

// toRow renders one entity row across the visible columns. Rows whose
// entity type is outside a column's scope get a placeholder cell, and
// loading rows render skeleton dashes.
func (m *Model) toRow(row columns.Row) bubtable.Row {
	out := make(bubtable.Row, len(m.visible))
	for i, spec := range m.visible {
		out[i] = m.cell(spec, row)
	}
	return out
}

func (m *Model) cell(spec columns.Spec, row columns.Row) string {
	if row.Loading {
		return "…"
	}
	if !spec.AppliesTo(row.EntityType) {
		return "—"
	}
	var v string
	switch spec.ID {
	case columns.ColumnSelection:
		v = ""
	case columns.ColumnName:
		if row.Label != "" {
			v = row.Label
		} else {
			v = row.Name
		}
	default:
		key := spec.ID
		if spec.Kind == columns.KindAttribute {
			key = spec.AttributeName
		}
		if raw := row.Value(key); raw != nil {
			v = fmt.Sprint(raw)
		}
	}
	return runewidth.Truncate(v, m.columnWidth(spec), "…")
}

// Update handles messages and updates the table state.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m *Model) View() string {
	return m.table.View()
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.table.SetHeight(height)
}

// visibleSpecs orders specs by the layout order (unknown ids keep
// their built order at the end), drops hidden columns, and moves
// pinned columns to the front in pin-list order.
func visibleSpecs(specs []columns.Spec, cfg layout.Configuration) []columns.Spec {
	byID := make(map[string]columns.Spec, len(specs))
	for _, s := range specs {
		byID[s.ID] = s
	}

	ordered := make([]columns.Spec, 0, len(specs))
	taken := make(map[string]struct{}, len(specs))
	appendSpec := func(id string) {
		if _, dup := taken[id]; dup {
			return
		}
		spec, known := byID[id]
		if !known || !cfg.IsVisible(id) {
			return
		}
		taken[id] = struct{}{}
		ordered = append(ordered, spec)
	}

	for _, id := range cfg.Pinning.Left {
		appendSpec(id)
	}
	for _, id := range cfg.Order {
		appendSpec(id)
	}
	for _, s := range specs {
		appendSpec(s.ID)
	}
	return ordered
}
