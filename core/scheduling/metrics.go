package scheduling

import "github.com/railops/trackplan/core/model"

// ComputeMetrics rebuilds every schedule aggregate from the assignment set.
// All track ids in [0, cfg.Tracks) are present in the utilization map, idle
// tracks with zero busy minutes. Assignments referencing a train without a
// derived duration contribute nothing.
func ComputeMetrics(assignments []model.Assignment, trains []model.Train, cfg model.RailwayConfig) model.Schedule {
	return computeMetrics(assignments, trainIndex(trains), cfg)
}

func computeMetrics(assignments []model.Assignment, byID map[string]model.Train, cfg model.RailwayConfig) model.Schedule {
	util := make(map[int]float64, cfg.Tracks)
	for i := 0; i < cfg.Tracks; i++ {
		util[i] = 0
	}
	sched := model.Schedule{Assignments: assignments, Utilization: util}
	for _, a := range assignments {
		t, ok := byID[a.TrainID]
		if !ok || !t.HasDuration() {
			continue
		}
		sched.TotalDelay += a.Delay
		sched.WeightedDelay += a.Delay * t.Priority.Weight()
		if a.ActualArrival+t.Duration <= cfg.HorizonMinutes {
			sched.Finished++
		}
		util[a.Track] += t.Duration
	}
	return sched
}

// trainIndex builds the id lookup once per run so repeated metric
// recomputations avoid scanning the train list.
func trainIndex(trains []model.Train) map[string]model.Train {
	byID := make(map[string]model.Train, len(trains))
	for _, t := range trains {
		byID[t.ID] = t
	}
	return byID
}
