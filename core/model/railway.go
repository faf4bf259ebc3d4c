package model

import "fmt"

// RailwayConfig describes the section and the track pool a scenario is
// scheduled against. It is immutable for the duration of a run; disruptions
// produce modified copies.
type RailwayConfig struct {
	SectionKm      float64 `json:"section_km"`
	HorizonMinutes float64 `json:"horizon_minutes"`
	Tracks         int     `json:"tracks"`
	// MaxTrainsPerTrack is a declared capacity hint. The engine does not
	// enforce it.
	MaxTrainsPerTrack int     `json:"max_trains_per_track"`
	HeadwayMinutes    float64 `json:"headway_minutes"`
}

// Validate checks the configuration is usable for scheduling.
func (c RailwayConfig) Validate() error {
	if c.SectionKm <= 0 {
		return fmt.Errorf("section_km must be positive")
	}
	if c.HorizonMinutes <= 0 {
		return fmt.Errorf("horizon_minutes must be positive")
	}
	if c.Tracks < 1 {
		return fmt.Errorf("at least one track is required")
	}
	if c.HeadwayMinutes < 0 {
		return fmt.Errorf("headway_minutes must not be negative")
	}
	return nil
}
