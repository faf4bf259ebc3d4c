package scheduling

import (
	"sort"

	"github.com/railops/trackplan/core/model"
)

// Improve attempts to lower the weighted delay of sched by swapping adjacent
// trains on the same track whenever the later one carries a strictly higher
// priority weight. A candidate swap is accepted only if it is feasible and
// its fully recomputed weighted delay is strictly lower. Passes repeat until
// one yields no improvement or the pass cap is reached.
//
// The search is local: it never moves a train to another track or past a
// non-adjacent neighbour.
func (p *Planner) Improve(sched model.Schedule, trains []model.Train) model.Schedule {
	byID := trainIndex(trains)
	for pass := 0; pass < p.maxPasses(); pass++ {
		improved := false
		for track := 0; track < p.Cfg.Tracks; track++ {
			order := trackOrder(sched.Assignments, track)
			for k := 0; k+1 < len(order); k++ {
				i, j := order[k], order[k+1]
				earlier, ok1 := byID[sched.Assignments[i].TrainID]
				later, ok2 := byID[sched.Assignments[j].TrainID]
				if !ok1 || !ok2 {
					continue
				}
				if later.Priority.Weight() <= earlier.Priority.Weight() {
					continue
				}
				cand, ok := p.trySwap(sched, i, j, earlier, later, byID)
				if !ok {
					continue
				}
				if cand.WeightedDelay < sched.WeightedDelay {
					p.logger().Debugf("swap %s<->%s on track %d: weighted delay %.2f -> %.2f",
						earlier.ID, later.ID, track, sched.WeightedDelay, cand.WeightedDelay)
					sched = cand
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}
	return sched
}

// trySwap builds the schedule that results from exchanging the slots of the
// assignments at positions i (earlier) and j (later). Each train's new start
// is the later of its own scheduled arrival and the other's current actual
// arrival. The swap is feasible only if the new earlier occupancy plus
// headway clears the new later start, and the new later occupancy still ends
// within the horizon.
func (p *Planner) trySwap(sched model.Schedule, i, j int, earlier, later model.Train, byID map[string]model.Train) (model.Schedule, bool) {
	a, b := sched.Assignments[i], sched.Assignments[j]

	newLaterStart := later.ScheduledArrival
	if a.ActualArrival > newLaterStart {
		newLaterStart = a.ActualArrival
	}
	newEarlierStart := earlier.ScheduledArrival
	if b.ActualArrival > newEarlierStart {
		newEarlierStart = b.ActualArrival
	}
	if newLaterStart+later.Duration+p.Cfg.HeadwayMinutes > newEarlierStart {
		return model.Schedule{}, false
	}
	if newEarlierStart+earlier.Duration > p.Cfg.HorizonMinutes {
		return model.Schedule{}, false
	}

	cand := make([]model.Assignment, len(sched.Assignments))
	copy(cand, sched.Assignments)
	cand[j] = model.Assignment{
		TrainID:       later.ID,
		Track:         b.Track,
		ActualArrival: newLaterStart,
		Delay:         nonNegative(newLaterStart - later.ScheduledArrival),
	}
	cand[i] = model.Assignment{
		TrainID:       earlier.ID,
		Track:         a.Track,
		ActualArrival: newEarlierStart,
		Delay:         nonNegative(newEarlierStart - earlier.ScheduledArrival),
	}
	return computeMetrics(cand, byID, p.Cfg), true
}

// trackOrder returns the positions of the assignments on the given track,
// ordered by actual arrival.
func trackOrder(assignments []model.Assignment, track int) []int {
	var order []int
	for i, a := range assignments {
		if a.Track == track {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(x, y int) bool {
		return assignments[order[x]].ActualArrival < assignments[order[y]].ActualArrival
	})
	return order
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
