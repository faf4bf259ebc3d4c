package scheduling

import (
	"github.com/railops/trackplan/core/logger"
	"github.com/railops/trackplan/core/model"
)

// DefaultMaxPasses bounds the improvement loop. It is the only mechanism
// preventing unbounded runtime in the engine.
const DefaultMaxPasses = 10

// Planner allocates trains to tracks for one railway configuration. It holds
// no state between calls; every method computes a fresh result from its
// inputs, so a single Planner is safe to reuse across scenarios.
type Planner struct {
	Cfg model.RailwayConfig
	Log logger.Logger
	// MaxPasses caps the improvement loop; zero means DefaultMaxPasses.
	MaxPasses int
}

// NewPlanner returns a Planner for cfg. A nil log disables logging.
func NewPlanner(cfg model.RailwayConfig, log logger.Logger) *Planner {
	if log == nil {
		log = logger.Nop{}
	}
	return &Planner{Cfg: cfg, Log: log, MaxPasses: DefaultMaxPasses}
}

func (p *Planner) logger() logger.Logger {
	if p.Log == nil {
		return logger.Nop{}
	}
	return p.Log
}

func (p *Planner) maxPasses() int {
	if p.MaxPasses <= 0 {
		return DefaultMaxPasses
	}
	return p.MaxPasses
}

// ScheduleOptimized runs the greedy assignment followed by the bounded
// swap-improvement pass. The result's weighted delay is never higher than
// the plain greedy schedule's.
func (p *Planner) ScheduleOptimized(trains []model.Train) model.Schedule {
	return p.Improve(p.ScheduleGreedy(trains), trains)
}
