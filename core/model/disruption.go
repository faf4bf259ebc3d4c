package model

import "fmt"

// DisruptionType identifies the kind of disruption applied to a scenario.
type DisruptionType string

const (
	// DisruptionDelay adds minutes to one train's scheduled arrival.
	DisruptionDelay DisruptionType = "delay"
	// DisruptionBlockTrack removes one track from the pool. The pool is
	// homogeneous, so the block reduces the track count rather than
	// retiring a specific id.
	DisruptionBlockTrack DisruptionType = "block_track"
)

// Disruption describes a single what-if modification of a scenario.
type Disruption struct {
	Type         DisruptionType `json:"type"`
	TrainID      string         `json:"train_id,omitempty"`
	DelayMinutes float64        `json:"delay_minutes,omitempty"`
	// Track labels which track was reported blocked. It only annotates the
	// event; see DisruptionBlockTrack.
	Track int `json:"track,omitempty"`
}

// Validate checks the disruption parameters.
func (d Disruption) Validate() error {
	switch d.Type {
	case DisruptionDelay:
		if d.TrainID == "" {
			return fmt.Errorf("delay disruption requires a train id")
		}
		if d.DelayMinutes < 0 {
			return fmt.Errorf("delay_minutes must not be negative")
		}
	case DisruptionBlockTrack:
		if d.Track < 0 {
			return fmt.Errorf("track must not be negative")
		}
	default:
		return fmt.Errorf("unknown disruption type %q", d.Type)
	}
	return nil
}
