package scorched

import "math/rand"

// Wind is the per-round wind state. The value is sampled once when the round
// starts and stays fixed; every in-flight projectile receives Force as a
// horizontal acceleration each tick.
type Wind struct {
	value    float64
	coupling float64
}

// NewWind samples a wind value uniformly in [-windRange, windRange].
func NewWind(rng *rand.Rand, windRange, coupling float64) Wind {
	if windRange < 0 {
		windRange = 0
	}
	return Wind{
		value:    (rng.Float64()*2 - 1) * windRange,
		coupling: coupling,
	}
}

// Value returns the signed wind value for display and snapshots.
func (w Wind) Value() float64 { return w.value }

// Force returns the horizontal acceleration applied per tick.
func (w Wind) Force() float64 { return w.value * w.coupling }
