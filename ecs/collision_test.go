package ecs_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/plus3/hewn/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxOverlaps(t *testing.T) {
	a := ecs.Box{MinX: 0, MinY: 0, MaxX: 2, MaxY: 1}

	tests := []struct {
		name string
		b    ecs.Box
		want bool
	}{
		{"identical", a, true},
		{"overlapping", ecs.Box{MinX: 1, MinY: 0, MaxX: 3, MaxY: 1}, true},
		{"touching right edge", ecs.Box{MinX: 2, MinY: 0, MaxX: 4, MaxY: 1}, false},
		{"touching top edge", ecs.Box{MinX: 0, MinY: 1, MaxX: 2, MaxY: 2}, false},
		{"contained", ecs.Box{MinX: 0.5, MinY: 0.25, MaxX: 1, MaxY: 0.75}, true},
		{"disjoint", ecs.Box{MinX: 5, MinY: 5, MaxX: 6, MaxY: 6}, false},
		{"overlapping x only", ecs.Box{MinX: 1, MinY: 3, MaxX: 3, MaxY: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(a))
		})
	}
}

func TestBoxOf(t *testing.T) {
	t.Run("static", func(t *testing.T) {
		e := &ecs.Entity{Components: wall(1, 2, 3, 4)}
		box, ok := ecs.BoxOf(e, 1)
		require.True(t, ok)
		assert.Equal(t, ecs.Box{MinX: 1, MinY: 2, MaxX: 4, MaxY: 6}, box)
	})

	t.Run("swept forward", func(t *testing.T) {
		e := &ecs.Entity{Components: mover(0, 0, 10, 0, 1, 1)}
		box, ok := ecs.BoxOf(e, 0.5)
		require.True(t, ok)
		assert.Equal(t, ecs.Box{MinX: 0, MinY: 0, MaxX: 6, MaxY: 1}, box)
	})

	t.Run("swept backward", func(t *testing.T) {
		e := &ecs.Entity{Components: mover(0, 0, -4, -2, 1, 1)}
		box, ok := ecs.BoxOf(e, 0.5)
		require.True(t, ok)
		assert.Equal(t, ecs.Box{MinX: -2, MinY: -1, MaxX: 1, MaxY: 1}, box)
	})

	t.Run("missing size", func(t *testing.T) {
		e := &ecs.Entity{Components: point(0, 0, 1, 1)}
		_, ok := ecs.BoxOf(e, 1)
		assert.False(t, ok)
	})

	t.Run("missing position", func(t *testing.T) {
		e := &ecs.Entity{Components: ecs.Components{Size: &ecs.Size{W: 1, H: 1}}}
		_, ok := ecs.BoxOf(e, 1)
		assert.False(t, ok)
	})
}

// forEachBroadphase runs fn against a scene using each broad phase implementation.
func forEachBroadphase(t *testing.T, fn func(t *testing.T, newScene func() *ecs.Scene)) {
	phases := map[string]func() ecs.Broadphase{
		"all pairs": func() ecs.Broadphase { return ecs.AllPairs{} },
		"grid":      func() ecs.Broadphase { return ecs.NewGrid(1.5) },
	}
	for _, name := range []string{"all pairs", "grid"} {
		newPhase := phases[name]
		t.Run(name, func(t *testing.T) {
			fn(t, func() *ecs.Scene {
				return ecs.NewScene(ecs.WithBroadphase(newPhase()))
			})
		})
	}
}

func TestCollisionPassScenarios(t *testing.T) {
	forEachBroadphase(t, func(t *testing.T, newScene func() *ecs.Scene) {
		t.Run("touching is not overlapping", func(t *testing.T) {
			scene := newScene()
			scene.MustAdd(wall(0, 0, 2, 1))
			scene.MustAdd(wall(2, 0, 2, 1))

			assert.Empty(t, scene.CollisionPass(0))
		})

		t.Run("overlapping", func(t *testing.T) {
			scene := newScene()
			a := scene.MustAdd(wall(0, 0, 2, 1))
			b := scene.MustAdd(wall(1, 0, 2, 1))

			assert.Equal(t, []ecs.Pair{{a, b}}, scene.CollisionPass(0))
		})

		t.Run("same place", func(t *testing.T) {
			scene := newScene()
			a := scene.MustAdd(wall(0, 0, 1, 1))
			b := scene.MustAdd(wall(0, 0, 1, 1))

			assert.Equal(t, []ecs.Pair{{a, b}}, scene.CollisionPass(1))
		})

		t.Run("one tile gap", func(t *testing.T) {
			scene := newScene()
			scene.MustAdd(wall(0, 0, 1, 1))
			scene.MustAdd(wall(2, 2, 1, 1))

			assert.Empty(t, scene.CollisionPass(1))
		})

		t.Run("tunneling prevented by projected box", func(t *testing.T) {
			scene := newScene()
			a := scene.MustAdd(mover(0, 0, 10, 0, 1, 1))
			b := scene.MustAdd(wall(2, 0, 1, 1))

			pairs := scene.CollisionPass(0.5)
			require.Equal(t, []ecs.Pair{{a, b}}, pairs)

			for _, pair := range pairs {
				if pair.Has(a) {
					e, _ := scene.GetMut(a)
					e.Velocity.X = 0
				}
			}
			scene.Step(0.5)

			assert.Equal(t, ecs.Position{X: 0, Y: 0}, position(t, scene, a))
		})

		t.Run("tunneling without projection", func(t *testing.T) {
			scene := newScene()
			scene.MustAdd(mover(0, 0, 10, 0, 1, 1))
			scene.MustAdd(wall(2, 0, 1, 1))

			assert.Empty(t, scene.CollisionPass(0))
		})

		t.Run("moving away backwards", func(t *testing.T) {
			scene := newScene()
			a := scene.MustAdd(mover(5, 0, -6, 0, 1, 1))
			b := scene.MustAdd(wall(1.5, 0, 1, 1))
			scene.MustAdd(wall(7, 0, 1, 1))

			assert.Equal(t, []ecs.Pair{{a, b}}, scene.CollisionPass(0.5))
		})

		t.Run("two movers meet", func(t *testing.T) {
			scene := newScene()
			a := scene.MustAdd(mover(0, 0, 2, 0, 1, 1))
			b := scene.MustAdd(mover(4, 0, -2, 0, 1, 1))

			assert.Empty(t, scene.CollisionPass(0.5))
			assert.Equal(t, []ecs.Pair{{a, b}}, scene.CollisionPass(1))
		})
	})
}

func TestCollisionPassExcludesSizeless(t *testing.T) {
	forEachBroadphase(t, func(t *testing.T, newScene func() *ecs.Scene) {
		scene := newScene()
		a := scene.MustAdd(wall(0, 0, 4, 4))
		ghost := scene.MustAdd(point(1, 1, 0, 0))
		b := scene.MustAdd(wall(1, 1, 1, 1))
		scene.MustAdd(ecs.Components{Size: &ecs.Size{W: 10, H: 10}})

		pairs := scene.CollisionPass(1)
		assert.Equal(t, []ecs.Pair{{a, b}}, pairs)
		for _, pair := range pairs {
			assert.False(t, pair.Has(ghost))
		}
	})
}

func TestCollisionPassSymmetricInInsertionOrder(t *testing.T) {
	forEachBroadphase(t, func(t *testing.T, newScene func() *ecs.Scene) {
		boxes := []ecs.Components{wall(0, 0, 2, 1), wall(1, 0, 2, 1)}

		forward := newScene()
		forward.MustAdd(boxes[0])
		forward.MustAdd(boxes[1])

		backward := newScene()
		backward.MustAdd(boxes[1])
		backward.MustAdd(boxes[0])

		assert.Len(t, forward.CollisionPass(0), 1)
		assert.Len(t, backward.CollisionPass(0), 1)
	})
}

func TestCollisionPassIsReadOnly(t *testing.T) {
	forEachBroadphase(t, func(t *testing.T, newScene func() *ecs.Scene) {
		scene := newScene()
		for i := range 20 {
			scene.MustAdd(mover(float64(i), float64(i%3), 3, -1, 1.5, 1))
		}
		before := scene.Digest()

		first := scene.CollisionPass(0.1)
		second := scene.CollisionPass(0.1)

		assert.Equal(t, first, second)
		assert.Equal(t, before, scene.Digest())
		for _, pair := range first {
			assert.NotEqual(t, pair[0], pair[1])
			assert.Less(t, pair[0], pair[1])
		}
	})
}

func TestCollisionPassSkipsRemovedEntities(t *testing.T) {
	scene := ecs.NewScene()
	a := scene.MustAdd(wall(0, 0, 2, 2))
	b := scene.MustAdd(wall(1, 1, 2, 2))
	c := scene.MustAdd(wall(1, 0, 2, 2))

	scene.Remove(b)

	assert.Equal(t, []ecs.Pair{{a, c}}, scene.CollisionPass(0))
}

func TestGridMatchesAllPairs(t *testing.T) {
	for _, cellSize := range []float64{0.25, 1, 3, 50} {
		t.Run(fmt.Sprintf("cell=%v", cellSize), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(7, uint64(cellSize*100)))

			brute := ecs.NewScene()
			grid := ecs.NewScene(ecs.WithBroadphase(ecs.NewGrid(cellSize)))

			for range 150 {
				c := mover(
					rng.Float64()*40-20, rng.Float64()*40-20,
					rng.Float64()*20-10, rng.Float64()*20-10,
					rng.Float64()*3, rng.Float64()*3,
				)
				if rng.IntN(5) == 0 {
					c.Velocity = nil
				}
				if rng.IntN(10) == 0 {
					c.Size = nil
				}
				brute.MustAdd(c)
				grid.MustAdd(c)
			}

			for _, dt := range []float64{0, 0.1, 1} {
				assert.Equal(t, brute.CollisionPass(dt), grid.CollisionPass(dt), "dt=%v", dt)
			}
		})
	}
}

func TestGridMatchesAllPairsOnCellBoundaries(t *testing.T) {
	for _, cellSize := range []float64{0.1, 0.3, 1.1, 2.7} {
		t.Run(fmt.Sprintf("cell=%v", cellSize), func(t *testing.T) {
			for k := -20; k <= 20; k++ {
				edge := float64(k) * cellSize
				for _, start := range []float64{math.Nextafter(edge, math.Inf(-1)), edge, math.Nextafter(edge, math.Inf(1))} {
					brute := ecs.NewScene()
					grid := ecs.NewScene(ecs.WithBroadphase(ecs.NewGrid(cellSize)))
					for _, scene := range []*ecs.Scene{brute, grid} {
						scene.MustAdd(wall(edge-0.5, 0, 0.5, 1))
						scene.MustAdd(wall(start, 0, 1, 1))
					}
					assert.Equal(t, brute.CollisionPass(0), grid.CollisionPass(0), "k=%d start=%v", k, start)
				}
			}
		})
	}

	t.Run("rounded edge", func(t *testing.T) {
		grid := ecs.NewScene(ecs.WithBroadphase(ecs.NewGrid(1.1)))
		a := grid.MustAdd(wall(-11.5, 0, 0.5, 1))
		b := grid.MustAdd(wall(-11.000000000000002, 0, 1, 1))
		assert.Equal(t, []ecs.Pair{{a, b}}, grid.CollisionPass(0))
	})
}

func TestNewGridFallsBackOnInvalidCellSize(t *testing.T) {
	assert.Equal(t, 1.0, ecs.NewGrid(0).CellSize())
	assert.Equal(t, 1.0, ecs.NewGrid(-3).CellSize())
	assert.Equal(t, 2.5, ecs.NewGrid(2.5).CellSize())
}

func TestPair(t *testing.T) {
	p := ecs.Pair{3, 8}

	assert.True(t, p.Has(3))
	assert.True(t, p.Has(8))
	assert.False(t, p.Has(4))
	assert.Equal(t, ecs.EntityId(8), p.Other(3))
	assert.Equal(t, ecs.EntityId(3), p.Other(8))
	assert.Equal(t, ecs.NoEntity, p.Other(5))
}
