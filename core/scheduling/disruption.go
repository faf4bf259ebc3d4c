package scheduling

import "github.com/railops/trackplan/core/model"

// ApplyDisruption returns scenario inputs with d applied. The given trains
// and config are never mutated; callers keep the base scenario for the
// before/after comparison.
//
// A delay disruption shifts only the named train's scheduled arrival. An
// unknown train id yields an unchanged copy; the engine does not validate
// disruption targets (callers use Disruption.Validate beforehand).
//
// A block disruption reduces the track count by one regardless of which
// track id was named: the pool is homogeneous, so losing any one track has
// the same effect. The count is clamped at 1 so the greedy fallback always
// has a track 0 to degrade to.
func ApplyDisruption(trains []model.Train, cfg model.RailwayConfig, d model.Disruption) ([]model.Train, model.RailwayConfig) {
	out := make([]model.Train, len(trains))
	copy(out, trains)
	switch d.Type {
	case model.DisruptionDelay:
		for i := range out {
			if out[i].ID == d.TrainID {
				out[i].ScheduledArrival += d.DelayMinutes
			}
		}
	case model.DisruptionBlockTrack:
		if cfg.Tracks > 1 {
			cfg.Tracks--
		}
	}
	return out, cfg
}
