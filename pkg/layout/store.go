package layout

import (
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// DefaultQuietPeriod is how long SetSizing waits without further calls
// before committing the in-flight sizing to the durable configuration.
const DefaultQuietPeriod = 500 * time.Millisecond

// ChangeFunc receives the complete new configuration after every
// direct or reconciling update. The owner is responsible for durable
// storage and for round-tripping the same shape back in on next load.
type ChangeFunc func(Configuration)

// Store synchronizes the four layout axes for one persisted
// configuration. Direct setters write exactly the named field;
// reconciling updaters also fix up the dependent fields so the
// pin/visibility/order invariants hold after every public mutation.
//
// Reading or mutating a nil Store is a wiring bug and panics; silently
// returning defaults would mask it.
type Store struct {
	mu  sync.Mutex
	cfg Configuration

	// overlay is the in-flight sizing during a resize gesture. While
	// non-nil it wins over cfg.Sizing for reads.
	overlay map[string]int

	timer    *time.Timer
	gen      uint64
	quiet    time.Duration
	onChange ChangeFunc
	log      logr.Logger
}

// StoreOption configures a Store at construction.
type StoreOption func(*Store)

// WithQuietPeriod overrides the sizing debounce quiet period.
func WithQuietPeriod(d time.Duration) StoreOption {
	return func(s *Store) { s.quiet = d }
}

// WithLogger attaches a logger for debug traces.
func WithLogger(log logr.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// NewStore creates a store over the given initial configuration. The
// initial value may be partial or legacy: missing fields default to
// empty and the canonical default columns are reconciled into the
// order before any updater runs. onChange may be nil when the caller
// does not persist.
func NewStore(initial Configuration, onChange ChangeFunc, opts ...StoreOption) *Store {
	cfg := initial.Clone()
	cfg.normalize()
	reconcileDefaults(&cfg)

	s := &Store{
		cfg:      cfg,
		quiet:    DefaultQuietPeriod,
		onChange: onChange,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) mustInit() {
	if s == nil {
		panic("layout: Store used before initialization; construct it with NewStore")
	}
}

// notify hands a snapshot to the change callback outside the lock so
// the callback may call back into the store.
func (s *Store) notify(cfg Configuration) {
	if s.onChange != nil {
		s.onChange(cfg)
	}
}

// Configuration returns a snapshot of the durable configuration.
func (s *Store) Configuration() Configuration {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// Visibility returns the visibility map snapshot.
func (s *Store) Visibility() map[string]bool {
	return s.Configuration().Visibility
}

// Order returns the column order snapshot.
func (s *Store) Order() []string {
	return s.Configuration().Order
}

// Pinning returns the pinning snapshot.
func (s *Store) Pinning() Pinning {
	return s.Configuration().Pinning
}

// Sizing returns the effective sizing: the in-flight overlay while a
// resize gesture is pending, else the durable value. Callers never
// need to know which source is active.
func (s *Store) Sizing() map[string]int {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.cfg.Sizing
	if s.overlay != nil {
		src = s.overlay
	}
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// SetVisibility replaces the visibility map with no cross-field
// effects.
func (s *Store) SetVisibility(visibility map[string]bool) {
	s.mustInit()
	s.mu.Lock()
	s.cfg.Visibility = cloneBoolMap(visibility)
	snapshot := s.cfg.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
}

// SetOrder replaces the column order with no cross-field effects.
func (s *Store) SetOrder(order []string) {
	s.mustInit()
	s.mu.Lock()
	s.cfg.Order = append([]string(nil), order...)
	snapshot := s.cfg.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
}

// SetPinning replaces the pinning with no cross-field effects.
func (s *Store) SetPinning(pinning Pinning) {
	s.mustInit()
	s.mu.Lock()
	s.cfg.Pinning = Pinning{Left: append([]string(nil), pinning.Left...)}
	snapshot := s.cfg.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
}

// UpdateVisibility replaces the visibility map and unpins any column
// the new map hides, so a hidden column is never pinned.
func (s *Store) UpdateVisibility(visibility map[string]bool) {
	s.mustInit()
	s.mu.Lock()
	s.cfg.Visibility = cloneBoolMap(visibility)
	kept := s.cfg.Pinning.Left[:0:0]
	for _, id := range s.cfg.Pinning.Left {
		if s.cfg.IsVisible(id) {
			kept = append(kept, id)
		}
	}
	s.cfg.Pinning.Left = kept
	snapshot := s.cfg.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
}

// UpdateOrder replaces the column order and rebuilds the pin list as
// the subsequence of the new order that is currently pinned, so pin
// order always follows column order.
func (s *Store) UpdateOrder(order []string) {
	s.mustInit()
	s.mu.Lock()
	pinned := make(map[string]struct{}, len(s.cfg.Pinning.Left))
	for _, id := range s.cfg.Pinning.Left {
		pinned[id] = struct{}{}
	}
	s.cfg.Order = append([]string(nil), order...)
	left := make([]string, 0, len(pinned))
	for _, id := range s.cfg.Order {
		if _, ok := pinned[id]; ok {
			left = append(left, id)
		}
	}
	s.cfg.Pinning.Left = left
	snapshot := s.cfg.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
}

// UpdatePinning replaces the pinning and re-partitions the order:
// pinned ids first in their existing relative order, then unpinned ids
// in theirs.
func (s *Store) UpdatePinning(pinning Pinning) {
	s.mustInit()
	s.mu.Lock()
	s.cfg.Pinning = Pinning{Left: append([]string(nil), pinning.Left...)}
	var front, back []string
	for _, id := range s.cfg.Order {
		if s.cfg.IsPinned(id) {
			front = append(front, id)
		} else {
			back = append(back, id)
		}
	}
	s.cfg.Order = append(front, back...)
	snapshot := s.cfg.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
}

// SetSizing replaces the in-flight sizing immediately, so reads during
// a resize gesture reflect the latest pointer position, and (re)starts
// the debounce timer. The durable configuration is written once, after
// a full quiet period with no further calls.
func (s *Store) SetSizing(sizing map[string]int) {
	s.mustInit()
	s.mu.Lock()
	s.overlay = cloneIntMap(sizing)
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, func() { s.commitSizing(gen) })
	s.mu.Unlock()
}

// commitSizing moves the overlay into the durable configuration. The
// generation guard drops commits whose timer was superseded after it
// already fired.
func (s *Store) commitSizing(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.overlay == nil {
		s.mu.Unlock()
		return
	}
	s.cfg.Sizing = s.overlay
	s.overlay = nil
	s.timer = nil
	snapshot := s.cfg.Clone()
	s.mu.Unlock()
	s.log.V(1).Info("committed sizing", "columns", len(snapshot.Sizing))
	s.notify(snapshot)
}

// SetConfiguration replaces the whole configuration (e.g.,
// reset-to-default). The new value is reconciled and persisted.
func (s *Store) SetConfiguration(cfg Configuration) {
	s.mustInit()
	next := cfg.Clone()
	next.normalize()
	reconcileDefaults(&next)
	s.mu.Lock()
	s.cfg = next
	snapshot := s.cfg.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
}

// Reload replaces the durable configuration from an external update
// without notifying the change callback. An in-flight sizing overlay,
// if any, keeps precedence until its own timer fires.
func (s *Store) Reload(cfg Configuration) {
	s.mustInit()
	next := cfg.Clone()
	next.normalize()
	reconcileDefaults(&next)
	s.mu.Lock()
	s.cfg = next
	s.mu.Unlock()
}

// Dispose cancels any pending sizing commit. Owners must call it when
// tearing the store down so the timer cannot write to a dead target.
func (s *Store) Dispose() {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.overlay = nil
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
