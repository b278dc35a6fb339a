package layout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tablekit/pkg/storage"
)

func TestOpenSession(t *testing.T) {
	ctx := context.Background()

	t.Run("absent document starts empty", func(t *testing.T) {
		docs := storage.NewMemoryStore()
		sess, err := OpenSession(ctx, docs, "page")
		require.NoError(t, err)
		defer sess.Close()

		assert.Equal(t, DefaultOrder, sess.Order())
	})

	t.Run("updates round-trip through the store", func(t *testing.T) {
		docs := storage.NewMemoryStore()
		sess, err := OpenSession(ctx, docs, "page")
		require.NoError(t, err)

		sess.UpdatePinning(Pinning{Left: []string{"name"}})
		sess.Close()

		doc, err := docs.Get(ctx, "page")
		require.NoError(t, err)
		var persisted Configuration
		require.NoError(t, yaml.Unmarshal(doc, &persisted))
		assert.Equal(t, []string{"name"}, persisted.Pinning.Left)
		assert.Equal(t, "name", persisted.Order[0], "pinned column partitioned to the front")

		// A fresh session sees the persisted layout.
		again, err := OpenSession(ctx, docs, "page")
		require.NoError(t, err)
		defer again.Close()
		assert.Equal(t, []string{"name"}, again.Pinning().Left)
	})

	t.Run("sizing commits persist", func(t *testing.T) {
		docs := storage.NewMemoryStore()
		sess, err := OpenSession(ctx, docs, "page", WithQuietPeriod(20*time.Millisecond))
		require.NoError(t, err)
		defer sess.Close()

		sess.SetSizing(map[string]int{"name": 240})

		assert.Eventually(t, func() bool {
			doc, err := docs.Get(ctx, "page")
			if err != nil {
				return false
			}
			var persisted Configuration
			if yaml.Unmarshal(doc, &persisted) != nil {
				return false
			}
			return persisted.Sizing["name"] == 240
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("corrupt document is an error", func(t *testing.T) {
		docs := storage.NewMemoryStore()
		require.NoError(t, docs.Set(ctx, "page", []byte("\t:not yaml")))
		_, err := OpenSession(ctx, docs, "page")
		require.Error(t, err)
	})
}
