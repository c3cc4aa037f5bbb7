// Package handlers binds UI bridge commands to engine operations. Each
// handler parses its arguments, invokes the registry, scheduler, or
// catalog, and returns a structured result for the bridge to relay.
package handlers

import (
	"fmt"
	"time"

	"github.com/mapforge/engine/internal/api"
	"github.com/mapforge/engine/internal/catalog"
	"github.com/mapforge/engine/internal/dispatcher"
	"github.com/mapforge/engine/internal/influx"
	"github.com/mapforge/engine/internal/logging"
	"github.com/mapforge/engine/internal/parser"
	"github.com/mapforge/engine/internal/registry"
	"github.com/mapforge/engine/internal/scheduler"
	"github.com/mapforge/engine/internal/session"
	"github.com/mapforge/engine/internal/validate"
)

// Dependencies holds all dependencies for the handler manager.
type Dependencies struct {
	Registry   *registry.Registry
	Scheduler  *scheduler.Scheduler
	Parser     *parser.Parser
	Catalog    catalog.Backend
	Session    *session.Context
	LogManager *logging.SlogManager
	Validation validate.Config

	// API is the optional map frontend client; nil disables uploads.
	API *api.Client
	// Influx is the optional metrics sink; nil drops bridge metrics.
	Influx *influx.Manager
	// ExportDir receives gzipped board exports.
	ExportDir string
}

// Manager routes parsed commands into the engine.
type Manager struct {
	deps Dependencies
}

// NewManager creates a new handler manager.
func NewManager(deps Dependencies) *Manager {
	return &Manager{deps: deps}
}

// RegisterHandlers registers all command handlers with the dispatcher.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	// Token lifecycle - sync (the bridge waits for ids and validation outcomes)
	d.Register(":TOKEN:CREATE:", m.handleTokenCreate, dispatcher.Logged())
	d.Register(":TOKEN:UPDATE:", m.handleTokenUpdate, dispatcher.Logged())
	d.Register(":TOKEN:DELETE:", m.handleTokenDelete, dispatcher.Logged())
	d.Register(":TOKEN:DUPLICATE:", m.handleTokenDuplicate, dispatcher.Logged())
	d.Register(":TOKEN:ALIGN:", m.handleTokenAlign, dispatcher.Logged())
	d.Register(":TOKEN:SNAP:", m.handleTokenSnap, dispatcher.Logged())

	// Condition resolution - sync (the property panel shows the outcome)
	d.Register(":CONDITION:APPLY:", m.handleConditionApply, dispatcher.Logged())
	d.Register(":CONDITION:REMOVE:", m.handleConditionRemove, dispatcher.Logged())

	// Animation requests - sync (the bridge needs the handle back)
	d.Register(":ANIMATION:SCHEDULE:", m.handleAnimationSchedule, dispatcher.Logged())
	d.Register(":ANIMATION:CANCEL:", m.handleAnimationCancel, dispatcher.Logged())

	// Template catalog
	d.Register(":TEMPLATE:SAVE:", m.handleTemplateSave, dispatcher.Logged())
	d.Register(":TEMPLATE:SPAWN:", m.handleTemplateSpawn, dispatcher.Logged())
	d.Register(":TEMPLATE:LIST:", m.handleTemplateList, dispatcher.Logged())
	d.Register(":TEMPLATE:DELETE:", m.handleTemplateDelete, dispatcher.Logged())

	// Session state
	d.Register(":SESSION:SET:", m.handleSessionSet, dispatcher.Logged())
	d.Register(":SESSION:INFO:", m.handleSessionInfo, dispatcher.Logged())
	d.Register(":BOARD:EXPORT:", m.handleBoardExport, dispatcher.Logged())

	// Diagnostics
	d.Register(":VALIDATE:SUMMARY:", m.handleValidateSummary, dispatcher.Logged())

	// Bridge-side relays - fire-and-forget, buffered
	d.Register(":LOG:", m.handleLog, dispatcher.Buffered(1000))
	d.Register(":METRIC:PUSH:", m.handleMetricPush, dispatcher.Buffered(1000))
}

func (m *Manager) handleLog(e dispatcher.Event) (any, error) {
	if len(e.Args) < 3 {
		return nil, fmt.Errorf("log relay: expected 3 arguments, got %d", len(e.Args))
	}
	m.deps.LogManager.WriteLog(e.Args[0], e.Args[1], e.Args[2])
	return nil, nil
}

func (m *Manager) handleValidateSummary(e dispatcher.Event) (any, error) {
	return validate.Summarize(m.deps.Registry.List(), m.deps.Validation), nil
}

func durationMs(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
