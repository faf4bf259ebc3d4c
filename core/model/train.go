package model

import "fmt"

// Priority classifies how urgently a train must be routed through the section.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Weight returns the numeric weight used for ordering trains and for
// weighting delay minutes. Unknown labels degrade to the low weight so a
// malformed train skews the objective instead of failing the run.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityHigh:
		return 3.0
	case PriorityMedium:
		return 2.0
	default:
		return 1.0
	}
}

// Train represents a single arriving train to be allocated to a track.
type Train struct {
	ID               string   `json:"id"`
	ScheduledArrival float64  `json:"scheduled_arrival"` // minutes from the start of the window
	SpeedKmh         float64  `json:"speed_kmh"`
	Priority         Priority `json:"priority"`
	LengthM          float64  `json:"length_m"` // physical length, informational only

	// Duration is the section traversal time in minutes. It stays zero
	// until derived by scheduling.PrepareTrains; trains without a duration
	// are skipped by every scheduling stage.
	Duration float64 `json:"duration,omitempty"`
}

// HasDuration reports whether the traversal duration has been derived.
func (t Train) HasDuration() bool {
	return t.Duration > 0
}

// Validate checks that the train can be scheduled at all.
func (t Train) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("train id is required")
	}
	if t.ScheduledArrival < 0 {
		return fmt.Errorf("train %s: scheduled arrival must not be negative", t.ID)
	}
	if t.SpeedKmh <= 0 {
		return fmt.Errorf("train %s: speed must be positive", t.ID)
	}
	return nil
}
