package parser

import (
	"fmt"

	"github.com/mapforge/engine/internal/model"
	"github.com/mapforge/engine/internal/util"
)

// ParseConditionApply parses a condition apply request.
// data[0] is the token id, data[1] the condition list, data[2] an
// optional source description.
func (p *Parser) ParseConditionApply(data []string) (model.TokenID, []string, string, error) {
	if len(data) < 2 {
		return "", nil, "", fmt.Errorf("condition apply: expected at least 2 arguments, got %d", len(data))
	}
	data = fixArgs(data)

	id := model.TokenID(data[0])
	if id == "" {
		return "", nil, "", fmt.Errorf("condition apply: id is required")
	}

	candidates := util.ParseStringList(data[1])
	if len(candidates) == 0 {
		return "", nil, "", fmt.Errorf("condition apply: at least one condition is required")
	}

	source := ""
	if len(data) > 2 {
		source = data[2]
	}
	return id, candidates, source, nil
}

// ParseConditionRemove parses a condition remove request.
// data[0] is the token id, data[1] the condition list.
func (p *Parser) ParseConditionRemove(data []string) (model.TokenID, []string, error) {
	if len(data) < 2 {
		return "", nil, fmt.Errorf("condition remove: expected 2 arguments, got %d", len(data))
	}
	data = fixArgs(data)

	id := model.TokenID(data[0])
	if id == "" {
		return "", nil, fmt.Errorf("condition remove: id is required")
	}

	types := util.ParseStringList(data[1])
	if len(types) == 0 {
		return "", nil, fmt.Errorf("condition remove: at least one condition is required")
	}
	return id, types, nil
}
