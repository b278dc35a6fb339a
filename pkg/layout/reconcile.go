package layout

// reconcileDefaults inserts every canonical default column missing from
// the persisted order, placing each one next to its canonical
// neighbors instead of at an arbitrary spot. It runs once per
// configuration load, before any updater.
//
// Canonical ids are processed in canonical sequence: the placement of a
// missing id depends on its canonical predecessor already being
// findable in the order, which a previous iteration may just have
// inserted.
func reconcileDefaults(cfg *Configuration) {
	for i, id := range DefaultOrder {
		if contains(cfg.Order, id) {
			continue
		}

		insertAt := 0
		if i > 0 {
			if prevPos := indexOf(cfg.Order, DefaultOrder[i-1]); prevPos >= 0 {
				insertAt = prevPos + 1
			}
		}
		cfg.Order = append(cfg.Order, "")
		copy(cfg.Order[insertAt+1:], cfg.Order[insertAt:])
		cfg.Order[insertAt] = id

		// A newly introduced default column stays visually grouped with
		// an already-pinned canonical successor.
		if i+1 < len(DefaultOrder) {
			next := DefaultOrder[i+1]
			if contains(cfg.Order, next) && cfg.IsPinned(next) {
				cfg.Pinning.Left = append([]string{id}, cfg.Pinning.Left...)
			}
		}
	}
}
