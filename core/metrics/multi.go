package metrics

// MultiSink fans schedule runs out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordScheduleRun forwards the runs to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordScheduleRun(runs []ScheduleRun) error {
	for _, s := range m.Sinks {
		if err := s.RecordScheduleRun(runs); err != nil {
			return err
		}
	}
	return nil
}
