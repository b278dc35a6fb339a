package layout

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oakwood-commons/tablekit/pkg/columns"
)

// recorder collects every configuration the store hands back.
type recorder struct {
	mu      sync.Mutex
	changes []Configuration
}

func (r *recorder) onChange(cfg Configuration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, cfg)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changes)
}

func (r *recorder) last() Configuration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.changes) == 0 {
		return Configuration{}
	}
	return r.changes[len(r.changes)-1]
}

func TestStoreDirectSetters(t *testing.T) {
	t.Run("setters have no cross-field effects", func(t *testing.T) {
		rec := &recorder{}
		s := NewStore(Configuration{
			Order:   []string{"a", "b", "c"},
			Pinning: Pinning{Left: []string{"b"}},
		}, rec.onChange)

		s.SetVisibility(map[string]bool{"b": false})

		// Direct setter: b stays pinned even though it is now hidden.
		assert.Equal(t, []string{"b"}, s.Pinning().Left)
		assert.Equal(t, 1, rec.count())
	})

	t.Run("every change carries the complete configuration", func(t *testing.T) {
		rec := &recorder{}
		s := NewStore(Configuration{Order: []string{"a"}}, rec.onChange)

		s.SetOrder([]string{"x", "y"})

		got := rec.last()
		assert.Equal(t, []string{"x", "y"}, got.Order)
		assert.NotNil(t, got.Visibility)
		assert.NotNil(t, got.Sizing)
	})

	t.Run("caller slices are not aliased", func(t *testing.T) {
		s := NewStore(Configuration{}, nil)
		order := []string{"a", "b"}
		s.SetOrder(order)
		order[0] = "mutated"
		assert.Equal(t, "a", s.Order()[0])
	})
}

func TestStoreUpdateVisibility(t *testing.T) {
	t.Run("hiding a pinned column unpins it", func(t *testing.T) {
		s := NewStore(Configuration{
			Order:   []string{"x", "y"},
			Pinning: Pinning{Left: []string{"x", "y"}},
		}, nil)

		s.UpdateVisibility(map[string]bool{"x": false})

		assert.Equal(t, []string{"y"}, s.Pinning().Left)
	})

	t.Run("pinned visible columns survive", func(t *testing.T) {
		s := NewStore(Configuration{
			Pinning: Pinning{Left: []string{"x"}},
		}, nil)

		s.UpdateVisibility(map[string]bool{"x": true, "z": false})

		assert.Equal(t, []string{"x"}, s.Pinning().Left)
	})
}

func TestStoreUpdateOrder(t *testing.T) {
	t.Run("pin list follows new order", func(t *testing.T) {
		s := NewStore(Configuration{
			Order:   []string{"a", "b", "c", "d"},
			Pinning: Pinning{Left: []string{"b", "d"}},
		}, nil)

		s.UpdateOrder([]string{"d", "c", "b", "a"})

		assert.Equal(t, []string{"d", "b"}, s.Pinning().Left)
	})

	t.Run("ids dropped from order drop out of pinning", func(t *testing.T) {
		s := NewStore(Configuration{
			Order:   []string{"a", "b"},
			Pinning: Pinning{Left: []string{"b"}},
		}, nil)

		s.UpdateOrder([]string{"a"})

		assert.Empty(t, s.Pinning().Left)
	})
}

func TestStoreUpdatePinning(t *testing.T) {
	t.Run("order re-partitions pinned first", func(t *testing.T) {
		s := NewStore(Configuration{Order: []string{"a", "b", "c", "d"}}, nil)

		s.UpdatePinning(Pinning{Left: []string{"c"}})

		assert.Equal(t, []string{"c", "a", "b", "d"}, s.Order())
	})

	t.Run("partition is stable on both sides", func(t *testing.T) {
		s := NewStore(Configuration{Order: []string{"a", "b", "c", "d", "e"}}, nil)

		s.UpdatePinning(Pinning{Left: []string{"d", "b"}})

		assert.Equal(t, []string{"b", "d", "a", "c", "e"}, s.Order())
	})

	t.Run("unknown pinned ids are tolerated", func(t *testing.T) {
		s := NewStore(Configuration{Order: []string{"a"}}, nil)

		s.UpdatePinning(Pinning{Left: []string{"ghost"}})

		assert.Equal(t, []string{"ghost"}, s.Pinning().Left)
		assert.Equal(t, 5+1, len(s.Order()), "defaults plus a")
	})
}

func TestStoreSizingCoalescing(t *testing.T) {
	t.Run("rapid calls commit once with the last value", func(t *testing.T) {
		rec := &recorder{}
		s := NewStore(Configuration{}, rec.onChange, WithQuietPeriod(30*time.Millisecond))
		defer s.Dispose()

		s.SetSizing(map[string]int{"a": 100})
		s.SetSizing(map[string]int{"a": 120})

		assert.Equal(t, 0, rec.count(), "no commit before the quiet period")
		assert.Equal(t, 120, s.Sizing()["a"], "reads reflect the in-flight value")

		assert.Eventually(t, func() bool { return rec.count() == 1 },
			time.Second, 5*time.Millisecond)
		assert.Equal(t, map[string]int{"a": 120}, rec.last().Sizing)

		// Overlay cleared: durable value is now authoritative.
		assert.Equal(t, 120, s.Sizing()["a"])
		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, 1, rec.count(), "exactly one commit")
	})

	t.Run("reload keeps overlay precedence until commit", func(t *testing.T) {
		rec := &recorder{}
		s := NewStore(Configuration{}, rec.onChange, WithQuietPeriod(40*time.Millisecond))
		defer s.Dispose()

		s.SetSizing(map[string]int{"a": 90})
		s.Reload(Configuration{Sizing: map[string]int{"a": 10, "b": 50}})

		assert.Equal(t, 90, s.Sizing()["a"], "overlay wins over reloaded durable value")

		assert.Eventually(t, func() bool { return rec.count() == 1 },
			time.Second, 5*time.Millisecond)
		assert.Equal(t, map[string]int{"a": 90}, s.Sizing())
	})

	t.Run("dispose cancels the pending commit", func(t *testing.T) {
		rec := &recorder{}
		s := NewStore(Configuration{}, rec.onChange, WithQuietPeriod(20*time.Millisecond))

		s.SetSizing(map[string]int{"a": 100})
		s.Dispose()

		time.Sleep(80 * time.Millisecond)
		assert.Equal(t, 0, rec.count())
	})
}

func TestStoreSetConfiguration(t *testing.T) {
	rec := &recorder{}
	s := NewStore(Configuration{Order: []string{"a"}}, rec.onChange)

	s.SetConfiguration(Configuration{Order: []string{"b"}})

	got := rec.last()
	assert.Contains(t, got.Order, "b")
	assert.NotContains(t, got.Order, "a")
	assert.Contains(t, got.Order, columns.ColumnName, "replacement is reconciled")
}

func TestStoreNilPanics(t *testing.T) {
	var s *Store
	assert.Panics(t, func() { s.Order() })
	assert.Panics(t, func() { s.SetSizing(map[string]int{"a": 1}) })
}

func TestStoreReconcilesOnLoad(t *testing.T) {
	s := NewStore(Configuration{Order: []string{"custom1"}}, nil)

	order := s.Order()
	for _, id := range DefaultOrder {
		assert.Contains(t, order, id)
	}
	assert.Contains(t, order, "custom1")
}
