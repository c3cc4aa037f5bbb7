package catalog

import (
	"github.com/mapforge/engine/internal/cache"
)

// cachedBackend fronts a database backend with an in-process read cache
// so template spawns skip the database on repeat lookups.
type cachedBackend struct {
	inner     Backend
	templates *cache.Store[string, Template]

	hits   cache.SafeCounter
	misses cache.SafeCounter
}

func withCache(inner Backend) *cachedBackend {
	return &cachedBackend{
		inner:     inner,
		templates: cache.NewStore[string, Template](),
	}
}

func (c *cachedBackend) Init() error {
	c.templates.Reset()
	return c.inner.Init()
}

func (c *cachedBackend) Close() error {
	c.templates.Reset()
	return c.inner.Close()
}

func (c *cachedBackend) SaveTemplate(t *Template) error {
	if err := c.inner.SaveTemplate(t); err != nil {
		return err
	}
	c.templates.Add(t.ID, *t)
	return nil
}

func (c *cachedBackend) GetTemplate(id string) (Template, error) {
	if t, ok := c.templates.Get(id); ok {
		c.hits.Inc()
		return t, nil
	}
	c.misses.Inc()

	t, err := c.inner.GetTemplate(id)
	if err != nil {
		return Template{}, err
	}
	c.templates.Add(t.ID, t)
	return t, nil
}

func (c *cachedBackend) ListTemplates() ([]Template, error) {
	return c.inner.ListTemplates()
}

func (c *cachedBackend) DeleteTemplate(id string) error {
	if err := c.inner.DeleteTemplate(id); err != nil {
		return err
	}
	c.templates.Delete(id)
	return nil
}

// Stats reports cache hit and miss counts.
func (c *cachedBackend) Stats() (hits, misses int) {
	return c.hits.Value(), c.misses.Value()
}
