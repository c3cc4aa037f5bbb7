package catalog

import (
	"sort"
	"sync"
	"time"
)

// memoryBackend stores templates in a mutex-guarded map. It is the
// default; editors that never persist templates lose nothing by it.
type memoryBackend struct {
	mu        sync.RWMutex
	templates map[string]Template
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{
		templates: make(map[string]Template),
	}
}

func (b *memoryBackend) Init() error {
	return nil
}

func (b *memoryBackend) Close() error {
	return nil
}

func (b *memoryBackend) SaveTemplate(t *Template) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	if existing, ok := b.templates[t.ID]; ok {
		t.CreatedAt = existing.CreatedAt
	} else {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	b.templates[t.ID] = *t
	return nil
}

func (b *memoryBackend) GetTemplate(id string) (Template, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := b.templates[id]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	return t, nil
}

func (b *memoryBackend) ListTemplates() ([]Template, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Template, 0, len(b.templates))
	for _, t := range b.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (b *memoryBackend) DeleteTemplate(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.templates[id]; !ok {
		return ErrTemplateNotFound
	}
	delete(b.templates, id)
	return nil
}
