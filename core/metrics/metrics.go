package metrics

import "time"

// ScheduleRun captures the outcome of one scheduling pipeline run to be
// recorded by observability sinks.
type ScheduleRun struct {
	RunID         string
	Scenario      string
	Trains        int
	Tracks        int
	TotalDelay    float64
	WeightedDelay float64
	Finished      int
	Utilization   map[int]float64
	Time          time.Time
}

// MetricsSink records schedule runs for observability purposes.
type MetricsSink interface {
	RecordScheduleRun(runs []ScheduleRun) error
}

// NopSink discards all events.
type NopSink struct{}

// RecordScheduleRun implements MetricsSink.
func (NopSink) RecordScheduleRun([]ScheduleRun) error { return nil }
