package scheduling

import "github.com/railops/trackplan/core/model"

// ComputeDuration returns the time in minutes a train needs to traverse a
// section of sectionKm at speedKmh. It returns 0 when the speed is not
// positive; a zero duration marks the train as unschedulable and every
// downstream stage skips it.
func ComputeDuration(sectionKm, speedKmh float64) float64 {
	if speedKmh <= 0 {
		return 0
	}
	return sectionKm / speedKmh * 60
}

// PrepareTrains returns derived copies of trains with Duration computed from
// the section length in cfg. The input slice and its trains are left
// untouched, so the same base list can feed multiple scenarios.
func PrepareTrains(trains []model.Train, cfg model.RailwayConfig) []model.Train {
	out := make([]model.Train, len(trains))
	copy(out, trains)
	for i := range out {
		out[i].Duration = ComputeDuration(cfg.SectionKm, out[i].SpeedKmh)
	}
	return out
}
