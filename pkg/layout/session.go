package layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tablekit/pkg/storage"
)

// Session binds a Store to a document store key: it loads the persisted
// configuration on creation and writes every configuration the store
// hands back. This is the wiring every host otherwise repeats.
type Session struct {
	*Store

	docs storage.Store
	key  string
	log  logr.Logger
}

// OpenSession loads the configuration stored under key (an absent or
// partial document is tolerated per the reconciliation rules) and
// returns a session whose store persists back to the same key.
func OpenSession(ctx context.Context, docs storage.Store, key string, opts ...StoreOption) (*Session, error) {
	var cfg Configuration
	doc, err := docs.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// First use: start from the empty configuration.
	case err != nil:
		return nil, fmt.Errorf("layout: load %q: %w", key, err)
	default:
		if err := yaml.Unmarshal(doc, &cfg); err != nil {
			return nil, fmt.Errorf("layout: decode %q: %w", key, err)
		}
	}

	sess := &Session{docs: docs, key: key, log: logr.Discard()}
	sess.Store = NewStore(cfg, sess.persist, opts...)
	sess.log = sess.Store.log
	return sess, nil
}

// persist is the session's ChangeFunc: it serializes the new
// configuration and writes it under the session key. Write failures
// are logged, not returned; the in-memory state is already consistent
// and the next successful write catches up.
func (s *Session) persist(cfg Configuration) {
	doc, err := yaml.Marshal(cfg)
	if err != nil {
		s.log.Error(err, "encode layout configuration", "key", s.key)
		return
	}
	if err := s.docs.Set(context.Background(), s.key, doc); err != nil {
		s.log.Error(err, "persist layout configuration", "key", s.key)
	}
}

// Close disposes the underlying store, canceling any pending sizing
// commit.
func (s *Session) Close() {
	s.Store.Dispose()
}
