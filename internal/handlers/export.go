package handlers

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mapforge/engine/internal/api"
	"github.com/mapforge/engine/internal/dispatcher"
	"github.com/mapforge/engine/internal/model"
	"github.com/mapforge/engine/internal/session"
)

// boardExport is the gzipped JSON document written for a board.
type boardExport struct {
	Board      session.Board `json:"board"`
	ExportedAt time.Time     `json:"exportedAt"`
	Tokens     []model.Token `json:"tokens"`
}

// handleBoardExport writes the current board to a gzipped JSON file and,
// when a frontend is configured, uploads it. data[0] is an optional tag.
func (m *Manager) handleBoardExport(e dispatcher.Event) (any, error) {
	tag := ""
	if len(e.Args) > 0 {
		tag = e.Args[0]
	}

	board := m.deps.Session.GetBoard()
	export := boardExport{
		Board:      board,
		ExportedAt: time.Now(),
		Tokens:     m.deps.Registry.List(),
	}

	filename := fmt.Sprintf("%s.%s.json.gz",
		strings.ReplaceAll(board.Name, " ", "_"),
		export.ExportedAt.Format("20060102_150405"),
	)
	path := filepath.Join(m.deps.ExportDir, filename)

	if err := writeBoardExport(path, export); err != nil {
		return nil, fmt.Errorf("failed to export board: %w", err)
	}

	uploaded := false
	if m.deps.API != nil {
		meta := api.UploadMetadata{
			BoardName:       board.Name,
			TokenCount:      len(export.Tokens),
			SessionDuration: m.deps.Session.Duration().Seconds(),
			Tag:             tag,
		}
		if err := m.deps.API.Upload(path, meta); err != nil {
			m.deps.LogManager.WriteLog(":BOARD:EXPORT:",
				fmt.Sprintf("Upload failed, export kept locally: %v", err), "WARN")
		} else {
			uploaded = true
		}
	}

	return map[string]any{
		"path":     path,
		"tokens":   len(export.Tokens),
		"uploaded": uploaded,
	}, nil
}

func writeBoardExport(path string, export boardExport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if err := json.NewEncoder(gz).Encode(export); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}
