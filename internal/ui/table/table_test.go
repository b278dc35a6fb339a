package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/tablekit/pkg/columns"
	"github.com/oakwood-commons/tablekit/pkg/layout"
	"github.com/oakwood-commons/tablekit/pkg/schema"
)

func demoSpecs() []columns.Spec {
	return []columns.Spec{
		{ID: "name", Title: "Name", Sortable: true, MinWidth: 120,
			Sort: columns.LoadingLast(columns.ByLabel())},
		{ID: "status", Title: "Status", Hideable: true, MinWidth: 90},
		{ID: "tags", Title: "Tags", Hideable: true, MinWidth: 90},
	}
}

func visibleIDs(m *Model) []string {
	specs := m.VisibleColumns()
	ids := make([]string, len(specs))
	for i, s := range specs {
		ids[i] = s.ID
	}
	return ids
}

func TestVisibleSpecs(t *testing.T) {
	t.Run("layout order applied, hidden dropped, pinned first", func(t *testing.T) {
		m := NewModel(demoSpecs(), nil, layout.Configuration{
			Order:      []string{"tags", "status", "name"},
			Visibility: map[string]bool{"status": false},
			Pinning:    layout.Pinning{Left: []string{"name"}},
		})
		assert.Equal(t, []string{"name", "tags"}, visibleIDs(m))
	})

	t.Run("ids missing from order keep built order at the end", func(t *testing.T) {
		m := NewModel(demoSpecs(), nil, layout.Configuration{
			Order: []string{"status"},
		})
		assert.Equal(t, []string{"status", "name", "tags"}, visibleIDs(m))
	})

	t.Run("unknown persisted ids are carried without effect", func(t *testing.T) {
		m := NewModel(demoSpecs(), nil, layout.Configuration{
			Order: []string{"ghost", "name"},
		})
		assert.Equal(t, []string{"name", "status", "tags"}, visibleIDs(m))
	})
}

func TestSortBy(t *testing.T) {
	rows := []columns.Row{
		{ID: "b", Label: "bravo"},
		{ID: "a", Label: "alpha"},
		{ID: "l", Loading: true},
	}
	m := NewModel(demoSpecs(), rows, layout.Configuration{})

	t.Run("sorting by a strategyless column is a no-op", func(t *testing.T) {
		m.SortBy("status")
		assert.Empty(t, m.SortColumn())
	})

	t.Run("sort activates and renders", func(t *testing.T) {
		m.SortBy("name")
		require.Equal(t, "name", m.SortColumn())
		view := m.View()
		assert.Contains(t, view, "alpha")
	})

	t.Run("loading rows render placeholders", func(t *testing.T) {
		view := m.View()
		assert.Contains(t, view, "…")
	})
}

func TestCellScope(t *testing.T) {
	specs := []columns.Spec{
		{ID: "name", Title: "Name", MinWidth: 120},
		{ID: "assignees", Title: "Assignees", MinWidth: 100,
			Scope: []schema.EntityType{schema.EntityTask}},
	}
	m := NewModel(specs, []columns.Row{
		{ID: "f1", Name: "lib", EntityType: schema.EntityFolder},
	}, layout.Configuration{})

	view := m.View()
	assert.Contains(t, view, "—", "out-of-scope cell renders a placeholder")
}
