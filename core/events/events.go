// Package events defines the scheduling events published on the internal
// bus. Consumers (metric forwarders, publishers) subscribe to these instead
// of being called from the engine directly.
package events

import (
	"time"

	"github.com/railops/trackplan/core/model"
)

// ScheduleComputed is emitted after a pipeline run completes.
type ScheduleComputed struct {
	RunID    string
	Scenario string
	Schedule model.Schedule
	Tracks   int
	Trains   int
	Time     time.Time
}

// DisruptionApplied is emitted when a scenario is rescheduled under a
// disruption.
type DisruptionApplied struct {
	RunID      string
	Disruption model.Disruption
	Time       time.Time
}
