package scheduling

import (
	"sort"

	"github.com/railops/trackplan/core/model"
)

// ScheduleGreedy assigns every prepared train to a track and returns the
// resulting schedule with fresh aggregates.
//
// Trains are processed by descending priority weight, ties by ascending
// scheduled arrival. Each train goes to the track offering the earliest
// feasible start; a start is feasible when the occupancy still ends within
// the horizon. When no track is feasible the train is placed best-effort at
// track 0's candidate start, which may exceed the horizon; such placements
// are excluded from the finished count but still advance the track.
// Trains without a derived duration receive no assignment.
func (p *Planner) ScheduleGreedy(trains []model.Train) model.Schedule {
	if p.Cfg.Tracks < 1 {
		return ComputeMetrics(nil, trains, p.Cfg)
	}
	ordered := orderTrains(trains)
	free := make([]float64, p.Cfg.Tracks)
	assignments := make([]model.Assignment, 0, len(ordered))

	for _, t := range ordered {
		track, start, feasible := p.placeTrain(t, free)
		if !feasible {
			p.logger().Warnf("train %s placed best-effort at t=%.1f beyond horizon %.1f", t.ID, start, p.Cfg.HorizonMinutes)
		}
		delay := start - t.ScheduledArrival
		if delay < 0 {
			delay = 0
		}
		assignments = append(assignments, model.Assignment{
			TrainID:       t.ID,
			Track:         track,
			ActualArrival: start,
			Delay:         delay,
		})
		free[track] = start + t.Duration + p.Cfg.HeadwayMinutes
	}
	sched := ComputeMetrics(assignments, trains, p.Cfg)
	p.logger().Debugw("greedy schedule computed", map[string]any{
		"trains":         len(ordered),
		"tracks":         p.Cfg.Tracks,
		"total_delay":    sched.TotalDelay,
		"weighted_delay": sched.WeightedDelay,
		"finished":       sched.Finished,
	})
	return sched
}

// placeTrain scans every track and returns the chosen track, the start
// minute and whether the placement fits the horizon. Strict comparison keeps
// the lowest track index on equal starts.
func (p *Planner) placeTrain(t model.Train, free []float64) (int, float64, bool) {
	bestTrack := 0
	bestStart := t.ScheduledArrival
	if free[0] > bestStart {
		bestStart = free[0]
	}
	feasible := false
	for i, f := range free {
		start := t.ScheduledArrival
		if f > start {
			start = f
		}
		if start+t.Duration > p.Cfg.HorizonMinutes {
			continue
		}
		if !feasible || start < bestStart {
			bestTrack, bestStart = i, start
			feasible = true
		}
	}
	return bestTrack, bestStart, feasible
}

// orderTrains filters out trains without a duration and sorts the rest by
// descending priority weight, ties by ascending scheduled arrival. The input
// slice is not modified.
func orderTrains(trains []model.Train) []model.Train {
	ordered := make([]model.Train, 0, len(trains))
	for _, t := range trains {
		if t.HasDuration() {
			ordered = append(ordered, t)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		wi, wj := ordered[i].Priority.Weight(), ordered[j].Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		return ordered[i].ScheduledArrival < ordered[j].ScheduledArrival
	})
	return ordered
}
