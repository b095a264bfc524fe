package main

import (
	"math/rand/v2"

	"github.com/plus3/hewn/ecs"
)

// Simulation is a field of moving boxes that bounce off each other and off
// the edges of the world, with a share of them respawned every frame.
type Simulation struct {
	Scene     *ecs.Scene
	Scheduler *ecs.Scheduler
	Bounce    *BounceSystem
	Churn     *ChurnSystem
}

// SimulationOptions sizes a Simulation.
type SimulationOptions struct {
	Entities   int
	WorldSize  float64
	ChurnRate  float64
	Seed       uint64
	Broadphase ecs.Broadphase
}

func NewSimulation(opts SimulationOptions) *Simulation {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	scene := ecs.NewScene(ecs.WithBroadphase(opts.Broadphase))
	for range opts.Entities {
		scene.MustAdd(randomBox(rng, opts.WorldSize))
	}

	sim := &Simulation{
		Scene:     scene,
		Scheduler: ecs.NewScheduler(scene),
		Bounce:    NewBounceSystem(opts.WorldSize),
		Churn: &ChurnSystem{
			Boxes:     ecs.Query{Require: ecs.HasPosition | ecs.HasSize},
			Rate:      opts.ChurnRate,
			WorldSize: opts.WorldSize,
			rng:       rng,
		},
	}
	sim.Scheduler.Register(ecs.CollisionSystem{})
	sim.Scheduler.Register(sim.Bounce)
	sim.Scheduler.Register(ecs.MovementSystem{})
	sim.Scheduler.Register(sim.Churn)
	return sim
}

func randomBox(rng *rand.Rand, worldSize float64) ecs.Components {
	return ecs.Components{
		Position: &ecs.Position{X: rng.Float64() * worldSize, Y: rng.Float64() * worldSize},
		Velocity: &ecs.Velocity{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10},
		Size:     &ecs.Size{W: 0.5 + rng.Float64()*2, H: 0.5 + rng.Float64()*2},
		Render:   &ecs.Render{Glyph: '#'},
	}
}

// BounceSystem reverses the velocity of colliding boxes, once per frame
// however many pairs a box is in, and of boxes leaving the world.
type BounceSystem struct {
	WorldSize float64

	Pairs int64
	Max   int
	hit   map[ecs.EntityId]struct{}
}

func NewBounceSystem(worldSize float64) *BounceSystem {
	return &BounceSystem{WorldSize: worldSize, hit: make(map[ecs.EntityId]struct{})}
}

func (s *BounceSystem) Execute(frame *ecs.UpdateFrame) {
	s.Pairs += int64(len(frame.Collisions))
	s.Max = max(s.Max, len(frame.Collisions))

	clear(s.hit)
	for _, pair := range frame.Collisions {
		for _, id := range pair {
			if _, done := s.hit[id]; done {
				continue
			}
			s.hit[id] = struct{}{}
			if e, ok := frame.Scene.GetMut(id); ok && e.Velocity != nil {
				e.Velocity.X, e.Velocity.Y = -e.Velocity.X, -e.Velocity.Y
			}
		}
	}

	for _, e := range frame.Scene.Each(ecs.HasPosition | ecs.HasVelocity) {
		if (e.Position.X < 0 && e.Velocity.X < 0) || (e.Position.X > s.WorldSize && e.Velocity.X > 0) {
			e.Velocity.X = -e.Velocity.X
		}
		if (e.Position.Y < 0 && e.Velocity.Y < 0) || (e.Position.Y > s.WorldSize && e.Velocity.Y > 0) {
			e.Velocity.Y = -e.Velocity.Y
		}
	}
}

// ChurnSystem replaces a fraction of the boxes every frame.
type ChurnSystem struct {
	Boxes     ecs.Query
	Rate      float64
	WorldSize float64

	Removed int64
	rng     *rand.Rand
}

func (s *ChurnSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Rate <= 0 {
		return
	}
	for id := range s.Boxes.Iter() {
		if s.rng.Float64() >= s.Rate {
			continue
		}
		frame.Commands.Remove(id)
		frame.Commands.Spawn(randomBox(s.rng, s.WorldSize))
		s.Removed++
	}
}
