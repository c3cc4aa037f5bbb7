package catalog

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapforge/engine/internal/config"
	"github.com/mapforge/engine/internal/model"
)

func goblinTemplate(t *testing.T) Template {
	t.Helper()
	tpl, err := NewTemplate("Goblin", "enemy", model.CreateTokenData{
		Name:      "Goblin",
		Size:      model.SizeSmall,
		Category:  model.CategoryEnemy,
		FillColor: "#7a9e3f",
	})
	require.NoError(t, err)
	return tpl
}

func TestTemplate_RoundTrip(t *testing.T) {
	tpl := goblinTemplate(t)

	data, err := tpl.CreateData()
	require.NoError(t, err)
	assert.Equal(t, "Goblin", data.Name)
	assert.Equal(t, model.SizeSmall, data.Size)
	assert.Equal(t, model.TemplateID(tpl.ID), data.TemplateID, "template provenance stamped")
}

func TestMemoryBackend(t *testing.T) {
	b := newMemoryBackend()
	require.NoError(t, b.Init())
	defer b.Close()

	tpl := goblinTemplate(t)
	require.NoError(t, b.SaveTemplate(&tpl))

	got, err := b.GetTemplate(tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Goblin", got.Name)
	assert.False(t, got.CreatedAt.IsZero())

	// re-save preserves CreatedAt
	created := got.CreatedAt
	tpl.Name = "Goblin Chief"
	require.NoError(t, b.SaveTemplate(&tpl))
	got, err = b.GetTemplate(tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Goblin Chief", got.Name)
	assert.Equal(t, created, got.CreatedAt)

	list, err := b.ListTemplates()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, b.DeleteTemplate(tpl.ID))
	_, err = b.GetTemplate(tpl.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.ErrorIs(t, b.DeleteTemplate(tpl.ID), ErrTemplateNotFound)
}

func TestMemoryBackend_ListSortedByName(t *testing.T) {
	b := newMemoryBackend()

	for _, name := range []string{"Zombie", "Archer", "Mage"} {
		tpl, err := NewTemplate(name, "enemy", model.CreateTokenData{Name: name})
		require.NoError(t, err)
		require.NoError(t, b.SaveTemplate(&tpl))
	}

	list, err := b.ListTemplates()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Archer", list[0].Name)
	assert.Equal(t, "Mage", list[1].Name)
	assert.Equal(t, "Zombie", list[2].Name)
}

func TestNewBackend_Factory(t *testing.T) {
	log := zerolog.Nop()

	b, err := NewBackend(config.CatalogConfig{Type: "memory"}, log)
	require.NoError(t, err)
	assert.IsType(t, &memoryBackend{}, b)

	_, err = NewBackend(config.CatalogConfig{Type: "redis"}, log)
	assert.Error(t, err)
}

func TestCachedBackend_HitsAndMisses(t *testing.T) {
	c := withCache(newMemoryBackend())
	require.NoError(t, c.Init())

	tpl, err := NewTemplate("Goblin", "enemy", model.CreateTokenData{Name: "Goblin"})
	require.NoError(t, err)
	require.NoError(t, c.SaveTemplate(&tpl))

	// save primes the cache, so the first read is already a hit
	got, err := c.GetTemplate(tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, tpl.Name, got.Name)

	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 0, misses)

	_, err = c.GetTemplate("missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, misses = c.Stats()
	assert.Equal(t, 1, misses)
}

func TestCachedBackend_DeleteInvalidates(t *testing.T) {
	c := withCache(newMemoryBackend())
	require.NoError(t, c.Init())

	tpl, err := NewTemplate("Goblin", "enemy", model.CreateTokenData{Name: "Goblin"})
	require.NoError(t, err)
	require.NoError(t, c.SaveTemplate(&tpl))
	require.NoError(t, c.DeleteTemplate(tpl.ID))

	_, err = c.GetTemplate(tpl.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
