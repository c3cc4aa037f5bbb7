package parser

import (
	"encoding/json"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/mapforge/engine/internal/grid"
	"github.com/mapforge/engine/internal/model"
	"github.com/mapforge/engine/internal/registry"
	"github.com/mapforge/engine/internal/util"
)

// ParseTokenCreate parses token creation data.
// data[0] is a JSON CreateTokenData payload.
func (p *Parser) ParseTokenCreate(data []string) (model.CreateTokenData, error) {
	var create model.CreateTokenData

	if len(data) < 1 {
		return create, fmt.Errorf("token create: expected 1 argument, got %d", len(data))
	}
	data = fixArgs(data)

	if err := json.Unmarshal([]byte(data[0]), &create); err != nil {
		return create, fmt.Errorf("error unmarshalling token create data: %w", err)
	}
	if create.Name == "" {
		return create, fmt.Errorf("token create: name is required")
	}
	return create, nil
}

// ParseTokenUpdate parses a token update.
// data[0] is the token id, data[1] a JSON TokenUpdate payload.
func (p *Parser) ParseTokenUpdate(data []string) (model.TokenID, model.TokenUpdate, error) {
	var update model.TokenUpdate

	if len(data) < 2 {
		return "", update, fmt.Errorf("token update: expected 2 arguments, got %d", len(data))
	}
	data = fixArgs(data)

	id := model.TokenID(data[0])
	if id == "" {
		return "", update, fmt.Errorf("token update: id is required")
	}
	if err := json.Unmarshal([]byte(data[1]), &update); err != nil {
		return "", update, fmt.Errorf("error unmarshalling token update data: %w", err)
	}
	return id, update, nil
}

// ParseTokenIDs parses a list of token ids.
// data[0] is a JSON array or comma-separated list.
func (p *Parser) ParseTokenIDs(data []string) ([]model.TokenID, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("token ids: expected 1 argument, got %d", len(data))
	}
	data = fixArgs(data)

	raw := util.ParseStringList(data[0])
	if len(raw) == 0 {
		return nil, fmt.Errorf("token ids: at least one id is required")
	}
	ids := make([]model.TokenID, len(raw))
	for i, r := range raw {
		ids[i] = model.TokenID(r)
	}
	return ids, nil
}

// ParseDuplicate parses a duplicate request.
// data[0] is the id list; data[1], if present and non-empty, is an
// "x,y" offset overriding the default. The offset is nil when absent so
// an explicit "0,0" still means duplicate in place.
func (p *Parser) ParseDuplicate(data []string) ([]model.TokenID, *geom.XY, error) {
	ids, err := p.ParseTokenIDs(data[:1])
	if err != nil {
		return nil, nil, err
	}

	var offset *geom.XY
	if len(data) > 1 && data[1] != "" {
		parsed, err := grid.PositionFromString(data[1])
		if err != nil {
			return nil, nil, fmt.Errorf("error parsing duplicate offset: %w", err)
		}
		offset = &parsed
	}
	return ids, offset, nil
}

// ParseAlign parses an align request.
// data[0] is the id list, data[1] the align mode.
func (p *Parser) ParseAlign(data []string) ([]model.TokenID, registry.AlignMode, error) {
	if len(data) < 2 {
		return nil, "", fmt.Errorf("align: expected 2 arguments, got %d", len(data))
	}

	ids, err := p.ParseTokenIDs(data[:1])
	if err != nil {
		return nil, "", err
	}

	mode := registry.AlignMode(util.TrimQuotes(data[1]))
	switch mode {
	case registry.AlignLeft, registry.AlignRight, registry.AlignTop,
		registry.AlignBottom, registry.AlignCenter, registry.AlignMiddle:
	default:
		return nil, "", fmt.Errorf("align: unknown mode %q", data[1])
	}
	return ids, mode, nil
}
