// Package simulator generates synthetic train fleets for load tests and
// what-if experiments. Generation is deterministic for a given seed so
// scenarios can be replayed.
package simulator

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/railops/trackplan/core/model"
)

// FleetConfig holds parameters for bulk fleet generation.
type FleetConfig struct {
	Size int   `json:"size"`
	Seed int64 `json:"seed"`
	// ArrivalMeanGapMin parameterises the exponential gap between
	// consecutive scheduled arrivals.
	ArrivalMeanGapMin float64 `json:"arrival_mean_gap_min"`
	SpeedMeanKmh      float64 `json:"speed_mean_kmh"`
	SpeedStdKmh       float64 `json:"speed_std_kmh"`
	LengthMeanM       float64 `json:"length_mean_m"`
	LengthStdM        float64 `json:"length_std_m"`
	// HighShare and MediumShare split priorities; the remainder is low.
	HighShare   float64 `json:"high_share"`
	MediumShare float64 `json:"medium_share"`
}

// SetDefaults applies sane defaults.
func (c *FleetConfig) SetDefaults() {
	if c.ArrivalMeanGapMin <= 0 {
		c.ArrivalMeanGapMin = 6
	}
	if c.SpeedMeanKmh <= 0 {
		c.SpeedMeanKmh = 100
	}
	if c.SpeedStdKmh <= 0 {
		c.SpeedStdKmh = 20
	}
	if c.LengthMeanM <= 0 {
		c.LengthMeanM = 220
	}
	if c.LengthStdM <= 0 {
		c.LengthStdM = 60
	}
	if c.HighShare == 0 && c.MediumShare == 0 {
		c.HighShare, c.MediumShare = 0.2, 0.5
	}
}

// GenerateFleet creates Size trains with ids trn-0001..trn-NNNN. Scheduled
// arrivals advance by exponentially distributed gaps; speeds and lengths are
// normally distributed with a floor keeping them positive.
func GenerateFleet(cfg FleetConfig) []model.Train {
	if cfg.Size <= 0 {
		return nil
	}
	cfg.SetDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))
	gap := distuv.Exponential{Rate: 1 / cfg.ArrivalMeanGapMin}
	speed := distuv.Normal{Mu: cfg.SpeedMeanKmh, Sigma: cfg.SpeedStdKmh}
	length := distuv.Normal{Mu: cfg.LengthMeanM, Sigma: cfg.LengthStdM}

	trains := make([]model.Train, cfg.Size)
	arrival := 0.0
	for i := range trains {
		arrival += gap.Quantile(rng.Float64())
		trains[i] = model.Train{
			ID:               fmt.Sprintf("trn-%04d", i+1),
			ScheduledArrival: arrival,
			SpeedKmh:         atLeast(speed.Quantile(rng.Float64()), 30),
			Priority:         pickPriority(rng.Float64(), cfg),
			LengthM:          atLeast(length.Quantile(rng.Float64()), 50),
		}
	}
	return trains
}

func pickPriority(u float64, cfg FleetConfig) model.Priority {
	switch {
	case u < cfg.HighShare:
		return model.PriorityHigh
	case u < cfg.HighShare+cfg.MediumShare:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

func atLeast(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}
