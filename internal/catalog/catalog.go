package catalog

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mapforge/engine/internal/config"
)

// ErrTemplateNotFound is returned when a template id is absent.
var ErrTemplateNotFound = errors.New("template not found")

// Backend is the interface all catalog storage implementations must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Template management
	SaveTemplate(t *Template) error
	GetTemplate(id string) (Template, error)
	ListTemplates() ([]Template, error)
	DeleteTemplate(id string) error
}

// NewBackend creates a catalog backend based on configuration.
func NewBackend(cfg config.CatalogConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		b, err := newPostgresBackend(log)
		if err != nil {
			return nil, err
		}
		return withCache(b), nil
	case "sqlite":
		b, err := newSqliteBackend(cfg.Path, log)
		if err != nil {
			return nil, err
		}
		return withCache(b), nil
	case "memory":
		return newMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown catalog type: %s", cfg.Type)
	}
}
