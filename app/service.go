// Package app wires the scheduling engine to its collaborators: config,
// logging, metric sinks, the event bus and the schedule publisher.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/railops/trackplan/config"
	"github.com/railops/trackplan/core/events"
	coremetrics "github.com/railops/trackplan/core/metrics"
	"github.com/railops/trackplan/core/model"
	"github.com/railops/trackplan/core/scheduling"
	"github.com/railops/trackplan/infra/logger"
	"github.com/railops/trackplan/infra/metrics"
	"github.com/railops/trackplan/infra/mqtt"
	"github.com/railops/trackplan/internal/eventbus"
)

// Scenario labels used for metric and publish routing.
const (
	ScenarioBaseline  = "baseline"
	ScenarioDisrupted = "disrupted"
)

// Service runs scheduling scenarios and forwards results to the configured
// observers.
type Service struct {
	cfg         *config.Config
	planner     *scheduling.Planner
	sink        coremetrics.MetricsSink
	pub         mqtt.SchedulePublisher
	bus         *eventbus.Bus[events.ScheduleComputed]
	disruptions *eventbus.Bus[events.DisruptionApplied]
	log         logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	if err := logger.SetGlobalLevel(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	var pub mqtt.SchedulePublisher
	if cfg.MQTT.Enabled {
		p, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		pub = p
	}

	return &Service{
		cfg:         cfg,
		planner:     scheduling.NewPlanner(cfg.Railway, logger.New("planner")),
		sink:        sink,
		pub:         pub,
		bus:         eventbus.New[events.ScheduleComputed](),
		disruptions: eventbus.New[events.DisruptionApplied](),
		log:         logg,
	}, nil
}

// Bus exposes the schedule event stream for additional observers.
func (s *Service) Bus() *eventbus.Bus[events.ScheduleComputed] {
	return s.bus
}

// DisruptionBus exposes the disruption event stream.
func (s *Service) DisruptionBus() *eventbus.Bus[events.DisruptionApplied] {
	return s.disruptions
}

// Run computes the configured scenarios, records and publishes them, then
// serves Prometheus metrics until the context is cancelled when the endpoint
// is enabled.
func (s *Service) Run(ctx context.Context) error {
	trains := s.cfg.Fleet.TrainList()

	if s.cfg.Disruption.Enabled {
		disruption := s.cfg.Disruption.Disruption()
		res := s.planner.Reschedule(trains, disruption)
		_, disruptedCfg := scheduling.ApplyDisruption(trains, s.cfg.Railway, disruption)
		s.disruptions.Publish(events.DisruptionApplied{
			RunID:      uuid.NewString(),
			Disruption: disruption,
			Time:       time.Now().UTC(),
		})
		if err := s.emit(ScenarioBaseline, res.Before, s.cfg.Railway, len(trains)); err != nil {
			return err
		}
		if err := s.emit(ScenarioDisrupted, res.After, disruptedCfg, len(trains)); err != nil {
			return err
		}
	} else {
		sched := s.planner.ScheduleOptimized(scheduling.PrepareTrains(trains, s.cfg.Railway))
		if err := s.emit(ScenarioBaseline, sched, s.cfg.Railway, len(trains)); err != nil {
			return err
		}
	}

	if s.cfg.Metrics.PrometheusEnabled {
		s.log.Infof("serving metrics on %s", s.cfg.Metrics.PrometheusPort)
		return metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort)
	}
	return nil
}

// emit records one schedule to the sinks, publishes it and notifies bus
// subscribers.
func (s *Service) emit(scenario string, sched model.Schedule, railway model.RailwayConfig, trains int) error {
	runID := uuid.NewString()
	if s.pub != nil {
		id, err := s.pub.PublishSchedule(scenario, sched)
		if err != nil {
			return fmt.Errorf("publish %s: %w", scenario, err)
		}
		runID = id
	}
	run := coremetrics.ScheduleRun{
		RunID:         runID,
		Scenario:      scenario,
		Trains:        trains,
		Tracks:        railway.Tracks,
		TotalDelay:    sched.TotalDelay,
		WeightedDelay: sched.WeightedDelay,
		Finished:      sched.Finished,
		Utilization:   sched.Utilization,
		Time:          time.Now().UTC(),
	}
	if err := s.sink.RecordScheduleRun([]coremetrics.ScheduleRun{run}); err != nil {
		s.log.Errorf("record %s run: %v", scenario, err)
	}
	s.bus.Publish(events.ScheduleComputed{
		RunID:    runID,
		Scenario: scenario,
		Schedule: sched,
		Tracks:   railway.Tracks,
		Trains:   trains,
		Time:     run.Time,
	})
	s.log.Infof("%s: %d assignments, weighted delay %.2f, finished %d/%d",
		scenario, len(sched.Assignments), sched.WeightedDelay, sched.Finished, trains)
	return nil
}

// Close releases the publisher and the event bus.
func (s *Service) Close() error {
	if s.pub != nil {
		s.pub.Close()
	}
	s.bus.Close()
	s.disruptions.Close()
	return nil
}
