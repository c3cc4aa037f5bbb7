package catalog

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/mapforge/engine/internal/database"
)

// dbBackend implements Backend over a GORM connection. SQLite and
// Postgres share this; only the connection manager differs.
type dbBackend struct {
	db  *gorm.DB
	mgr *database.Manager
	log zerolog.Logger
}

func newSqliteBackend(path string, log zerolog.Logger) (*dbBackend, error) {
	db, err := database.GetSqliteDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite catalog: %w", err)
	}

	log.Info().Str("path", path).Msg("Using SQLite template catalog")
	return &dbBackend{db: db, log: log}, nil
}

// newPostgresBackend connects to Postgres, falling back to a local SQLite
// database when the server is unreachable.
func newPostgresBackend(log zerolog.Logger) (*dbBackend, error) {
	mgr := database.NewManager(log)
	if err := mgr.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}

	if mgr.ShouldSaveLocal {
		log.Warn().Msg("Postgres unreachable, template catalog running on local SQLite")
	} else {
		log.Info().Str("host", viper.GetString("db.host")).Msg("Using Postgres template catalog")
	}
	return &dbBackend{db: mgr.DB, mgr: mgr, log: log}, nil
}

// Init migrates the template schema.
func (b *dbBackend) Init() error {
	if err := b.db.AutoMigrate(&Template{}); err != nil {
		return fmt.Errorf("failed to migrate template schema: %w", err)
	}
	b.log.Debug().Msg("Template catalog schema migrated")
	return nil
}

func (b *dbBackend) Close() error {
	// an in-memory fallback catalog survives restarts via a disk dump
	if b.mgr != nil && b.mgr.ShouldSaveLocal && b.mgr.SqliteFilePath != "" {
		if err := b.mgr.DumpMemoryToDisk(); err != nil {
			b.log.Error().Err(err).Msg("Failed to dump catalog to disk")
		}
	}

	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}

func (b *dbBackend) SaveTemplate(t *Template) error {
	if err := b.db.Save(t).Error; err != nil {
		return fmt.Errorf("failed to save template %s: %w", t.ID, err)
	}
	return nil
}

func (b *dbBackend) GetTemplate(id string) (Template, error) {
	var t Template
	err := b.db.First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Template{}, ErrTemplateNotFound
	}
	if err != nil {
		return Template{}, fmt.Errorf("failed to load template %s: %w", id, err)
	}
	return t, nil
}

func (b *dbBackend) ListTemplates() ([]Template, error) {
	var out []Template
	if err := b.db.Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return out, nil
}

func (b *dbBackend) DeleteTemplate(id string) error {
	res := b.db.Delete(&Template{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete template %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
