// Package catalog stores reusable token templates. Templates carry a
// CreateTokenData bundle that the registry's create consumes unmodified,
// so spawning from a template is indistinguishable from a manual create.
package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/mapforge/engine/internal/model"
)

// Template is a stored token default bundle.
type Template struct {
	ID       string         `gorm:"primaryKey" json:"id"`
	Name     string         `gorm:"index" json:"name"`
	Category string         `gorm:"index" json:"category"`
	Defaults datatypes.JSON `json:"defaults"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTemplate builds a template from a name, category, and the creation
// data it should produce.
func NewTemplate(name, category string, defaults model.CreateTokenData) (Template, error) {
	raw, err := json.Marshal(defaults)
	if err != nil {
		return Template{}, fmt.Errorf("error marshalling template defaults: %w", err)
	}
	return Template{
		ID:       string(model.NewTemplateID()),
		Name:     name,
		Category: category,
		Defaults: datatypes.JSON(raw),
	}, nil
}

// CreateData unpacks the stored defaults, stamping the template's id as
// provenance on the resulting creation data.
func (t Template) CreateData() (model.CreateTokenData, error) {
	var data model.CreateTokenData
	if err := json.Unmarshal(t.Defaults, &data); err != nil {
		return data, fmt.Errorf("error unmarshalling template defaults: %w", err)
	}
	data.TemplateID = model.TemplateID(t.ID)
	return data, nil
}
