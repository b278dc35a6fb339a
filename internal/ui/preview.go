// Package ui hosts the interactive preview: a built column set
// rendered over sample rows, with the layout session live-updating as
// the user hides, pins, reorders, and resizes columns.
package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/tablekit/internal/ui/table"
	"github.com/oakwood-commons/tablekit/pkg/columns"
	"github.com/oakwood-commons/tablekit/pkg/layout"
)

// resizeStep is how much one keypress grows or shrinks the active
// column, in the same px-oriented unit the sizing map stores.
const resizeStep = 16

// Model is the preview application model. Column-layout edits go
// through the layout session, and the table re-reads the resulting
// configuration, so the preview exercises the same update path a real
// host uses.
type Model struct {
	table   *table.Model
	session *layout.Session
	specs   []columns.Spec

	// active is the index into the visible columns that layout keys
	// (hide, pin, move, resize) operate on.
	active int

	width   int
	height  int
	noColor bool
}

// NewModel creates the preview over built specs, sample rows, and an
// open layout session.
func NewModel(specs []columns.Spec, rows []columns.Row, session *layout.Session) *Model {
	return &Model{
		table:   table.NewModel(specs, rows, session.Configuration()),
		session: session,
		specs:   specs,
	}
}

// SetNoColor disables styled output in the footer.
func (m *Model) SetNoColor(v bool) {
	m.noColor = v
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetSize(msg.Width, msg.Height-3)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.session.Close()
			return m, tea.Quit
		case "tab":
			m.moveActive(1)
			return m, nil
		case "shift+tab":
			m.moveActive(-1)
			return m, nil
		case "s":
			if spec, ok := m.activeSpec(); ok && spec.Sortable {
				m.table.SortBy(spec.ID)
			}
			return m, nil
		case "v":
			m.toggleVisibility()
			return m, nil
		case "p":
			m.togglePin()
			return m, nil
		case "H":
			m.moveColumn(-1)
			return m, nil
		case "L":
			m.moveColumn(1)
			return m, nil
		case "+", "=":
			m.resize(resizeStep)
			return m, nil
		case "-":
			m.resize(-resizeStep)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	var b strings.Builder
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return tea.NewView(b.String())
}

func (m *Model) footer() string {
	active := "(none)"
	if spec, ok := m.activeSpec(); ok {
		active = spec.ID
	}
	help := "tab: column · v: hide · p: pin · H/L: move · +/-: resize · s: sort · q: quit"
	line := fmt.Sprintf("column: %s · %s", active, help)
	if m.noColor {
		return line
	}
	return lipgloss.NewStyle().Faint(true).Render(line)
}

func (m *Model) activeSpec() (columns.Spec, bool) {
	visible := m.table.VisibleColumns()
	if m.active < 0 || m.active >= len(visible) {
		return columns.Spec{}, false
	}
	return visible[m.active], true
}

func (m *Model) moveActive(delta int) {
	visible := m.table.VisibleColumns()
	if len(visible) == 0 {
		return
	}
	m.active = (m.active + delta + len(visible)) % len(visible)
}

// toggleVisibility hides the active column (or reveals the first
// hidden one) through the reconciling updater, so pinned-but-hidden
// can never happen.
func (m *Model) toggleVisibility() {
	spec, ok := m.activeSpec()
	if !ok || !spec.Hideable {
		return
	}
	visibility := m.session.Visibility()
	visibility[spec.ID] = !m.session.Configuration().IsVisible(spec.ID)
	m.session.UpdateVisibility(visibility)
	m.applyLayout()
}

func (m *Model) togglePin() {
	spec, ok := m.activeSpec()
	if !ok || !spec.Pinnable {
		return
	}
	pinning := m.session.Pinning()
	if idx := index(pinning.Left, spec.ID); idx >= 0 {
		pinning.Left = append(pinning.Left[:idx], pinning.Left[idx+1:]...)
	} else {
		pinning.Left = append(pinning.Left, spec.ID)
	}
	m.session.UpdatePinning(pinning)
	m.applyLayout()
}

func (m *Model) moveColumn(delta int) {
	spec, ok := m.activeSpec()
	if !ok {
		return
	}
	order := m.session.Order()
	idx := index(order, spec.ID)
	target := idx + delta
	if idx < 0 || target < 0 || target >= len(order) {
		return
	}
	order[idx], order[target] = order[target], order[idx]
	m.session.UpdateOrder(order)
	m.applyLayout()
}

func (m *Model) resize(delta int) {
	spec, ok := m.activeSpec()
	if !ok || !spec.Resizable {
		return
	}
	sizing := m.session.Sizing()
	next := sizing[spec.ID] + delta
	if next < spec.MinWidth {
		next = spec.MinWidth
	}
	sizing[spec.ID] = next
	m.session.SetSizing(sizing)
	m.applyLayout()
}

// applyLayout re-reads the session configuration with the effective
// sizing overlaid, so in-flight resizes render immediately.
func (m *Model) applyLayout() {
	cfg := m.session.Configuration()
	cfg.Sizing = m.session.Sizing()
	m.table.SetConfiguration(cfg)
}

func index(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}
