package handlers

import (
	"fmt"

	"github.com/mapforge/engine/internal/catalog"
	"github.com/mapforge/engine/internal/dispatcher"
	"github.com/mapforge/engine/internal/grid"
	"github.com/mapforge/engine/internal/model"
	"github.com/mapforge/engine/internal/util"
)

// handleTemplateSave snapshots an existing token into the catalog.
// Args: token id, optional template name (defaults to the token name).
func (m *Manager) handleTemplateSave(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("template save: expected at least 1 argument, got 0")
	}

	id := model.TokenID(util.TrimQuotes(e.Args[0]))
	tok, found := m.deps.Registry.Get(id)
	if !found {
		return nil, fmt.Errorf("template save: token %s not found", id)
	}

	name := tok.Name
	if len(e.Args) > 1 && util.TrimQuotes(e.Args[1]) != "" {
		name = util.TrimQuotes(e.Args[1])
	}

	tpl, err := catalog.NewTemplate(name, string(tok.Category), snapshotCreateData(tok))
	if err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}
	if err := m.deps.Catalog.SaveTemplate(&tpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}
	return tpl, nil
}

// handleTemplateSpawn creates a token from a stored template.
// Args: template id, optional "x,y" position.
func (m *Manager) handleTemplateSpawn(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("template spawn: expected at least 1 argument, got 0")
	}

	tpl, err := m.deps.Catalog.GetTemplate(util.TrimQuotes(e.Args[0]))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn template: %w", err)
	}

	data, err := tpl.CreateData()
	if err != nil {
		return nil, fmt.Errorf("failed to spawn template: %w", err)
	}

	if len(e.Args) > 1 && util.TrimQuotes(e.Args[1]) != "" {
		pos, err := grid.PositionFromString(util.TrimQuotes(e.Args[1]))
		if err != nil {
			return nil, fmt.Errorf("failed to spawn template: %w", err)
		}
		data.Position = pos
	}

	tok, res, err := m.deps.Registry.Create(data)
	if err != nil {
		return res, err
	}
	return tok, nil
}

func (m *Manager) handleTemplateList(e dispatcher.Event) (any, error) {
	templates, err := m.deps.Catalog.ListTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func (m *Manager) handleTemplateDelete(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("template delete: expected 1 argument, got 0")
	}
	if err := m.deps.Catalog.DeleteTemplate(util.TrimQuotes(e.Args[0])); err != nil {
		return nil, fmt.Errorf("failed to delete template: %w", err)
	}
	return nil, nil
}

// snapshotCreateData turns a live token back into creation data so it can
// be stored as a template. Identity, timestamps, and conditions are not
// part of the snapshot; templates describe fresh tokens.
func snapshotCreateData(t model.Token) model.CreateTokenData {
	borderWidth := t.BorderWidth
	opacity := t.Opacity
	label := t.Label

	return model.CreateTokenData{
		Name:        t.Name,
		Rotation:    t.Rotation,
		Size:        t.Size,
		Shape:       t.Shape,
		FillColor:   t.FillColor,
		BorderColor: t.BorderColor,
		BorderWidth: &borderWidth,
		Opacity:     &opacity,
		Layer:       t.Layer,
		Category:    t.Category,
		IsPlayer:    t.IsPlayer,
		Initiative:  t.Initiative,
		HitPoints:   t.HitPoints,
		ArmorClass:  t.ArmorClass,
		SpeedFeet:   t.SpeedFeet,
		Label:       &label,
	}
}
