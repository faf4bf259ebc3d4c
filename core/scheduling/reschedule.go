package scheduling

import "github.com/railops/trackplan/core/model"

// RescheduleResult pairs the baseline schedule with the post-disruption one.
type RescheduleResult struct {
	Before model.Schedule `json:"before"`
	After  model.Schedule `json:"after"`
}

// Reschedule runs the full pipeline twice: once for the unmodified scenario
// and once after applying d. Each run derives durations from its own config
// copy; no state is shared between the two.
func (p *Planner) Reschedule(trains []model.Train, d model.Disruption) RescheduleResult {
	before := p.ScheduleOptimized(PrepareTrains(trains, p.Cfg))

	disruptedTrains, disruptedCfg := ApplyDisruption(trains, p.Cfg, d)
	after := (&Planner{Cfg: disruptedCfg, Log: p.Log, MaxPasses: p.MaxPasses}).
		ScheduleOptimized(PrepareTrains(disruptedTrains, disruptedCfg))

	p.logger().Infof("reschedule: weighted delay %.2f -> %.2f (%s)",
		before.WeightedDelay, after.WeightedDelay, d.Type)
	return RescheduleResult{Before: before, After: after}
}
