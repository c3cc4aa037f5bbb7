// Package parser converts raw command payloads from the UI bridge into
// typed engine requests. It is pure string -> struct conversion with zero
// dependencies beyond a logger; nothing here touches the registry or
// scheduler directly.
package parser

import (
	"log/slog"

	"github.com/mapforge/engine/internal/util"
)

// Parser provides pure []string -> request struct conversion.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser with only a logger dependency.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// fixArgs strips the quoting the bridge wraps each argument in.
func fixArgs(data []string) []string {
	for i, v := range data {
		data[i] = util.FixEscapeQuotes(util.TrimQuotes(v))
	}
	return data
}
