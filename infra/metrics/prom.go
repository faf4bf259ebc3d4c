package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/railops/trackplan/core/metrics"
)

// PromSink records schedule runs in Prometheus metrics.
type PromSink struct {
	runs          *prometheus.CounterVec
	totalDelay    *prometheus.GaugeVec
	weightedDelay *prometheus.GaugeVec
	finished      *prometheus.GaugeVec
	utilization   *prometheus.GaugeVec
}

// NewPromSink registers schedule metrics on the default Prometheus
// registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers schedule metrics on the provided
// registerer. Already registered collectors are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_runs_total",
			Help: "Total number of scheduling pipeline runs",
		}, []string{"scenario"}),
		totalDelay: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "schedule_total_delay_minutes",
			Help: "Sum of train delays in the latest schedule",
		}, []string{"scenario"}),
		weightedDelay: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "schedule_weighted_delay_minutes",
			Help: "Priority-weighted delay of the latest schedule",
		}, []string{"scenario"}),
		finished: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "schedule_finished_trains",
			Help: "Trains completing within the horizon in the latest schedule",
		}, []string{"scenario"}),
		utilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "track_busy_minutes",
			Help: "Busy minutes per track in the latest schedule",
		}, []string{"scenario", "track"}),
	}
	if err := reg.Register(s.runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	gauges := []**prometheus.GaugeVec{&s.totalDelay, &s.weightedDelay, &s.finished, &s.utilization}
	for _, g := range gauges {
		if err := reg.Register(*g); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				*g = are.ExistingCollector.(*prometheus.GaugeVec)
			} else {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordScheduleRun updates the counters and gauges for each run.
func (s *PromSink) RecordScheduleRun(runs []coremetrics.ScheduleRun) error {
	for _, r := range runs {
		s.runs.WithLabelValues(r.Scenario).Inc()
		s.totalDelay.WithLabelValues(r.Scenario).Set(r.TotalDelay)
		s.weightedDelay.WithLabelValues(r.Scenario).Set(r.WeightedDelay)
		s.finished.WithLabelValues(r.Scenario).Set(float64(r.Finished))
		for track, busy := range r.Utilization {
			s.utilization.WithLabelValues(r.Scenario, strconv.Itoa(track)).Set(busy)
		}
	}
	return nil
}
