package handlers

import (
	"context"

	"github.com/mapforge/engine/internal/dispatcher"
	"github.com/mapforge/engine/internal/influx"
)

// handleMetricPush relays a bridge-side measurement into InfluxDB. The UI
// reports its own numbers this way (render times, asset loads); engine
// metrics go through the monitor instead.
func (m *Manager) handleMetricPush(e dispatcher.Event) (any, error) {
	if m.deps.Influx == nil {
		return nil, nil
	}
	bucket, point, err := influx.ProcessMetricData(e.Args)
	if err != nil {
		return nil, err
	}
	return nil, m.deps.Influx.WritePoint(context.Background(), bucket, point)
}
