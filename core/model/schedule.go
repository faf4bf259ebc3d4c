package model

// Assignment places one train on one track at a concrete arrival minute.
type Assignment struct {
	TrainID       string  `json:"train_id"`
	Track         int     `json:"track"`
	ActualArrival float64 `json:"actual_arrival"`
	// Delay is max(0, ActualArrival-ScheduledArrival) of the train.
	Delay float64 `json:"delay"`
}

// Schedule is the full outcome of one scheduling run: the assignment set plus
// aggregates recomputed from it. Aggregates are never patched incrementally;
// scheduling.ComputeMetrics rebuilds them from scratch so they always agree
// with the assignments.
type Schedule struct {
	Assignments   []Assignment `json:"assignments"`
	TotalDelay    float64      `json:"total_delay"`
	WeightedDelay float64      `json:"weighted_delay"`
	// Finished counts assignments whose occupancy ends at or before the
	// horizon. Best-effort placements beyond the horizon are excluded.
	Finished int `json:"finished"`
	// Utilization maps every track id to its total busy minutes, including
	// tracks that received no train.
	Utilization map[int]float64 `json:"utilization"`
}
