// Package monitor periodically samples engine health: token counts,
// animation load, event feed depth, and frame tick duration. Samples go
// to a status file for the UI bridge and, when configured, to InfluxDB.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/mapforge/engine/internal/events"
	"github.com/mapforge/engine/internal/influx"
	"github.com/mapforge/engine/internal/logging"
	"github.com/mapforge/engine/internal/registry"
	"github.com/mapforge/engine/internal/scheduler"
)

// PerformanceBucket is the InfluxDB bucket snapshots are written to.
const PerformanceBucket = "engine_performance"

// Dependencies holds all dependencies for the monitor service.
type Dependencies struct {
	Registry   *registry.Registry
	Scheduler  *scheduler.Scheduler
	Feed       *events.Feed
	Influx     *influx.Manager
	LogManager *logging.SlogManager
	StatusDir  string
}

// Snapshot is one sampled view of engine load.
type Snapshot struct {
	Time               time.Time `json:"time"`
	Tokens             int       `json:"tokens"`
	RunningAnimations  int       `json:"runningAnimations"`
	ActiveAnimations   int       `json:"activeAnimations"`
	EventQueueDepth    int       `json:"eventQueueDepth"`
	EventsDropped      uint64    `json:"eventsDropped"`
	LastTickDurationMs float64   `json:"lastTickDurationMs"`
}

// Service manages status monitoring.
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}

	lastTick time.Duration
}

// NewService creates a new monitor service.
func NewService(deps Dependencies) *Service {
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running.
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// RecordTickDuration stores the duration of the latest frame tick. The
// frame loop calls this after every scheduler tick.
func (s *Service) RecordTickDuration(d time.Duration) {
	s.mu.Lock()
	s.lastTick = d
	s.mu.Unlock()
}

// GetSnapshot samples current engine load.
func (s *Service) GetSnapshot() Snapshot {
	s.mu.RLock()
	lastTick := s.lastTick
	s.mu.RUnlock()

	snap := Snapshot{
		Time:               time.Now(),
		LastTickDurationMs: float64(lastTick.Microseconds()) / 1000.0,
	}
	if s.deps.Registry != nil {
		snap.Tokens = s.deps.Registry.Count()
	}
	if s.deps.Scheduler != nil {
		snap.RunningAnimations = s.deps.Scheduler.Running()
		snap.ActiveAnimations = s.deps.Scheduler.Active()
	}
	if s.deps.Feed != nil {
		snap.EventQueueDepth = s.deps.Feed.Len()
		snap.EventsDropped = s.deps.Feed.Dropped()
	}
	return snap
}

// writeInflux sends a snapshot to the performance bucket.
func (s *Service) writeInflux(snap Snapshot) error {
	if s.deps.Influx == nil {
		return nil
	}

	point := influxdb2.NewPointWithMeasurement("engine_status").
		AddField("tokens", snap.Tokens).
		AddField("running_animations", snap.RunningAnimations).
		AddField("active_animations", snap.ActiveAnimations).
		AddField("event_queue_depth", snap.EventQueueDepth).
		AddField("events_dropped", int64(snap.EventsDropped)).
		AddField("last_tick_ms", snap.LastTickDurationMs).
		SetTime(snap.Time)

	return s.deps.Influx.WritePoint(context.Background(), PerformanceBucket, point)
}

// Start starts the status monitor goroutine.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		logger := s.deps.LogManager.Logger()
		logger.Debug("Starting status monitor goroutine")

		var statusFile *os.File
		if s.deps.StatusDir != "" {
			var err error
			statusFile, err = os.Create(filepath.Join(s.deps.StatusDir, "status.txt"))
			if err != nil {
				logger.Error("Error creating status file", "error", err)
			}
			defer statusFile.Close()
		}

		for {
			select {
			case <-s.stopChan:
				return
			default:
				time.Sleep(1000 * time.Millisecond)

				snap := s.GetSnapshot()

				if statusFile != nil {
					raw, err := json.MarshalIndent(snap, "", "  ")
					if err != nil {
						raw = []byte(fmt.Sprintf(`{"error": "%s"}`, err))
					}
					statusFile.Truncate(0)
					statusFile.Seek(0, 0)
					statusFile.Write(append(raw, '\n'))
				}

				if err := s.writeInflux(snap); err != nil {
					logger.Error("Error writing status to InfluxDB", "error", err)
				}
			}
		}
	}()

	return nil
}

// Stop stops the status monitor goroutine.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return
	}
	close(s.stopChan)
}
