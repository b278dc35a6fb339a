package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigurationVisibility(t *testing.T) {
	cfg := Configuration{Visibility: map[string]bool{"hidden": false, "shown": true}}

	assert.False(t, cfg.IsVisible("hidden"))
	assert.True(t, cfg.IsVisible("shown"))
	assert.True(t, cfg.IsVisible("absent"), "absence means visible")
}

func TestConfigurationClone(t *testing.T) {
	cfg := Configuration{
		Visibility: map[string]bool{"a": false},
		Order:      []string{"a", "b"},
		Pinning:    Pinning{Left: []string{"a"}},
		Sizing:     map[string]int{"a": 120},
	}

	clone := cfg.Clone()
	clone.Visibility["a"] = true
	clone.Order[0] = "mutated"
	clone.Pinning.Left[0] = "mutated"
	clone.Sizing["a"] = 1

	assert.False(t, cfg.Visibility["a"])
	assert.Equal(t, "a", cfg.Order[0])
	assert.Equal(t, "a", cfg.Pinning.Left[0])
	assert.Equal(t, 120, cfg.Sizing["a"])
}

func TestConfigurationYAMLRoundTrip(t *testing.T) {
	t.Run("legacy partial document decodes", func(t *testing.T) {
		doc := []byte("order: [name, custom1]\n")
		var cfg Configuration
		require.NoError(t, yaml.Unmarshal(doc, &cfg))
		assert.Equal(t, []string{"name", "custom1"}, cfg.Order)
		assert.Nil(t, cfg.Visibility)
		assert.Empty(t, cfg.Pinning.Left)
	})

	t.Run("full document round-trips", func(t *testing.T) {
		cfg := Configuration{
			Visibility: map[string]bool{"tags": false},
			Order:      []string{"name", "status"},
			Pinning:    Pinning{Left: []string{"name"}},
			Sizing:     map[string]int{"name": 200},
		}
		doc, err := yaml.Marshal(cfg)
		require.NoError(t, err)

		var decoded Configuration
		require.NoError(t, yaml.Unmarshal(doc, &decoded))
		assert.Equal(t, cfg, decoded)
	})
}
