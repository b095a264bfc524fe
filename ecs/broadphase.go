package ecs

import (
	"cmp"
	"math"
	"slices"

	"github.com/kamstrup/intmap"
)

// Broadphase finds the overlapping pairs among a set of colliders. Colliders
// arrive sorted by ascending id; implementations must return pairs as
// [lower id, higher id] sorted ascending so every broad phase yields
// identical results for the same input.
type Broadphase interface {
	Pairs(colliders []Collider) []Pair
}

// AllPairs tests every collider against every other one. It is the default
// broad phase and is fine for up to a few hundred entities.
type AllPairs struct{}

func (AllPairs) Pairs(colliders []Collider) []Pair {
	var pairs []Pair
	for i := range colliders {
		a := colliders[i]
		for _, b := range colliders[i+1:] {
			if a.Box.Overlaps(b.Box) {
				pairs = append(pairs, newPair(a.Id, b.Id))
			}
		}
	}
	return pairs
}

const (
	// maxCellsPerCollider bounds how many grid cells a single box may be
	// inserted into. Larger boxes are tested against everything instead.
	maxCellsPerCollider = 1024
)

// Grid is a uniform spatial hash broad phase. Each box is bucketed into the
// square cells it covers and only colliders sharing a cell are tested.
type Grid struct {
	cellSize float64

	buckets *intmap.Map[uint64, []int]
	touched []uint64
	seen    *intmap.Map[uint64, struct{}]
}

// NewGrid creates a grid broad phase with the given cell edge length. A
// non-positive or non-finite size falls back to 1.
func NewGrid(cellSize float64) *Grid {
	if !(cellSize > 0) || math.IsInf(cellSize, 1) {
		cellSize = 1
	}
	return &Grid{
		cellSize: cellSize,
		buckets:  intmap.New[uint64, []int](256),
		seen:     intmap.New[uint64, struct{}](256),
	}
}

// CellSize returns the grid's cell edge length.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

func (g *Grid) Pairs(colliders []Collider) []Pair {
	g.reset()

	var oversized []int
	for i, c := range colliders {
		x0, y0, x1, y1, ok := g.cellRange(c.Box)
		if !ok {
			oversized = append(oversized, i)
			continue
		}
		for cx := x0; cx <= x1; cx++ {
			for cy := y0; cy <= y1; cy++ {
				key := cellKey(cx, cy)
				bucket, exists := g.buckets.Get(key)
				if !exists {
					g.touched = append(g.touched, key)
				}
				g.buckets.Put(key, append(bucket, i))
			}
		}
	}

	var pairs []Pair
	test := func(i, j int) {
		if i == j {
			return
		}
		if i > j {
			i, j = j, i
		}
		key := uint64(i)<<32 | uint64(j)
		if _, done := g.seen.Get(key); done {
			return
		}
		g.seen.Put(key, struct{}{})
		if colliders[i].Box.Overlaps(colliders[j].Box) {
			pairs = append(pairs, newPair(colliders[i].Id, colliders[j].Id))
		}
	}

	for _, key := range g.touched {
		bucket, _ := g.buckets.Get(key)
		for a := range bucket {
			for b := a + 1; b < len(bucket); b++ {
				test(bucket[a], bucket[b])
			}
		}
	}
	for _, i := range oversized {
		for j := range colliders {
			test(i, j)
		}
	}

	slices.SortFunc(pairs, comparePairs)
	return pairs
}

func (g *Grid) reset() {
	g.buckets.Clear()
	g.seen.Clear()
	g.touched = g.touched[:0]
}

// cellRange returns an inclusive range of cells that covers the half-open
// box b, possibly with one extra cell past its max edge. It reports false for boxes that are not finite or that span more
// than maxCellsPerCollider cells.
func (g *Grid) cellRange(b Box) (x0, y0, x1, y1 int32, ok bool) {
	fx0, fx1, okX := g.axisRange(b.MinX, b.MaxX)
	fy0, fy1, okY := g.axisRange(b.MinY, b.MaxY)
	if !okX || !okY {
		return 0, 0, 0, 0, false
	}
	if (fx1-fx0+1)*(fy1-fy0+1) > maxCellsPerCollider {
		return 0, 0, 0, 0, false
	}
	return int32(fx0), int32(fy0), int32(fx1), int32(fy1), true
}

func (g *Grid) axisRange(lo, hi float64) (float64, float64, bool) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 0, false
	}
	// Floor on both edges: division is monotonic, so two overlapping boxes
	// always share a cell even when an edge rounds onto a cell boundary.
	first := math.Floor(lo / g.cellSize)
	last := math.Floor(hi / g.cellSize)
	if first < math.MinInt32 || last > math.MaxInt32 {
		return 0, 0, false
	}
	return first, last, true
}

func cellKey(x, y int32) uint64 {
	return uint64(uint32(x))<<32 | uint64(uint32(y))
}

func comparePairs(a, b Pair) int {
	if c := cmp.Compare(a[0], b[0]); c != 0 {
		return c
	}
	return cmp.Compare(a[1], b[1])
}
