// Package scorched implements the turn-based artillery simulation core:
// destructible terrain, projectile physics for every weapon family, damage
// resolution, AI policies, the turn state machine and the run orchestrator.
// The package is pure logic with no rendering or I/O; the platform layer
// drives it through Run and observes it through the event bus.
package scorched

import (
	"fmt"
	"math"
	"math/rand"
)

// Point is a position in world coordinates. Y grows downward, matching the
// canvas orientation the rest of the simulation uses.
type Point struct {
	X, Y float64
}

// TerrainOpts controls heightmap generation.
type TerrainOpts struct {
	Seed      int64
	Roughness float64 // Jitter scale for midpoint displacement
	MinPct    float64 // Lower height clamp as a fraction of playfield height
	MaxPct    float64 // Upper height clamp as a fraction of playfield height
}

// Terrain is a destructible 1D heightmap over the playfield. heights[x] is
// the vertical extent of ground in column x measured from the bottom of the
// play area, so the surface in canvas coordinates sits at PlayH - heights[x].
// Only crater carving and dirt settling mutate it after generation.
type Terrain struct {
	width   int
	playH   int
	heights []float64
}

// GenerateTerrain builds a heightmap by midpoint displacement: endpoints are
// seeded uniformly inside the clamp band, midpoints get the endpoint average
// plus jitter scaled by span and roughness. Deterministic for a given
// (seed, roughness, clamp band).
func GenerateTerrain(width, playH int, opts TerrainOpts) (*Terrain, error) {
	if width < 2 || playH < 2 {
		return nil, fmt.Errorf("%w: terrain size %dx%d", ErrInvalidArgument, width, playH)
	}
	if opts.MinPct < 0 || opts.MaxPct > 1 || opts.MinPct >= opts.MaxPct {
		return nil, fmt.Errorf("%w: terrain height band [%v, %v]", ErrInvalidArgument, opts.MinPct, opts.MaxPct)
	}
	if opts.Roughness < 0 {
		return nil, fmt.Errorf("%w: negative roughness %v", ErrInvalidArgument, opts.Roughness)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	lo := opts.MinPct * float64(playH)
	hi := opts.MaxPct * float64(playH)

	t := &Terrain{
		width:   width,
		playH:   playH,
		heights: make([]float64, width),
	}
	t.heights[0] = lo + rng.Float64()*(hi-lo)
	t.heights[width-1] = lo + rng.Float64()*(hi-lo)

	var subdivide func(a, b int)
	subdivide = func(a, b int) {
		if b-a < 2 {
			return
		}
		mid := (a + b) / 2
		jitter := (rng.Float64()*2 - 1) * float64(b-a) * opts.Roughness
		t.heights[mid] = clampFloat((t.heights[a]+t.heights[b])/2+jitter, lo, hi)
		subdivide(a, mid)
		subdivide(mid, b)
	}
	subdivide(0, width-1)

	return t, nil
}

// Width returns the terrain width in columns.
func (t *Terrain) Width() int { return t.width }

// PlayHeight returns the playfield height the terrain was generated for.
func (t *Terrain) PlayHeight() int { return t.playH }

// HeightAt returns the ground height of the column containing x.
// Out-of-range x returns the nearest edge column.
func (t *Terrain) HeightAt(x float64) float64 {
	return t.heights[t.column(x)]
}

// SurfaceY returns the canvas-down y coordinate of the ground surface at x.
func (t *Terrain) SurfaceY(x float64) float64 {
	return float64(t.playH) - t.HeightAt(x)
}

// Collides reports whether (x, y) is at or below the ground surface.
// On a hit it returns the surface intersection point of that column.
func (t *Terrain) Collides(x, y float64) (Point, bool) {
	surface := t.SurfaceY(x)
	if y >= surface {
		return Point{X: x, Y: surface}, true
	}
	return Point{}, false
}

// CarveCrater removes a circular region centered at (cx, cy) with radius r
// from the heightmap. For each affected column the vertical extent the circle
// overlaps with existing ground is subtracted; no debris is created above the
// surface, so material above the carve sinks straight down. Out-of-bounds
// portions of the circle are clipped, never an error.
func (t *Terrain) CarveCrater(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	x0 := int(math.Floor(cx - r))
	x1 := int(math.Ceil(cx + r))
	for x := x0; x <= x1; x++ {
		if x < 0 || x >= t.width {
			continue
		}
		dx := float64(x) - cx
		if math.Abs(dx) > r {
			continue
		}
		half := math.Sqrt(r*r - dx*dx)

		// Circle span in ground-altitude coordinates (measured up from the
		// bottom of the play area, like heights themselves).
		aLo := float64(t.playH) - cy - half
		aHi := float64(t.playH) - cy + half

		h := t.heights[x]
		overlap := math.Min(h, aHi) - math.Max(0, aLo)
		if overlap <= 0 {
			continue
		}
		t.heights[x] = math.Max(0, h-overlap)
	}
}

// ApplyFallingDirt settles unsupported overhangs around a carve at cx with
// radius r. Any column standing above both neighbors by more than threshold
// sheds step units into its lower neighbor, one pass per iteration, until the
// slope constraint holds everywhere in the neighborhood or maxIter is reached.
// The cap always bounds the loop, even for very narrow carves.
func (t *Terrain) ApplyFallingDirt(cx, r, threshold, step float64, maxIter int) {
	if threshold <= 0 || step <= 0 || maxIter <= 0 {
		return
	}
	// Settle a little past the crater rim so shed dirt can keep cascading.
	margin := int(math.Ceil(r)) + maxIter
	x0 := maxInt(1, int(math.Floor(cx))-margin)
	x1 := minInt(t.width-2, int(math.Ceil(cx))+margin)
	if x0 > x1 {
		return
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for x := x0; x <= x1; x++ {
			left := t.heights[x-1]
			right := t.heights[x+1]
			h := t.heights[x]
			if h <= left+threshold || h <= right+threshold {
				continue
			}
			lower := x - 1
			if right < left {
				lower = x + 1
			}
			shed := math.Min(step, h-math.Max(left, right)-threshold)
			if shed <= 0 {
				continue
			}
			t.heights[x] = h - shed
			t.heights[lower] += shed
			changed = true
		}
		if !changed {
			break
		}
	}
}

// HeightsView returns a copy of the heightmap for snapshots and AI solvers.
func (t *Terrain) HeightsView() []float64 {
	view := make([]float64, len(t.heights))
	copy(view, t.heights)
	return view
}

// Clone returns an independent copy of the terrain.
func (t *Terrain) Clone() *Terrain {
	return &Terrain{
		width:   t.width,
		playH:   t.playH,
		heights: t.HeightsView(),
	}
}

// column clamps x into the valid column range.
func (t *Terrain) column(x float64) int {
	c := int(math.Floor(x))
	if c < 0 {
		return 0
	}
	if c >= t.width {
		return t.width - 1
	}
	return c
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
