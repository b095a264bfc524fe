package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/hewn/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ThrustSystem struct {
	Movers       ecs.Query
	ExecuteCount int
}

func (s *ThrustSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for _, e := range s.Movers.Iter() {
		e.Velocity.X += 1
	}
}

// StopOnCollisionSystem zeroes the velocity of every entity in a colliding pair.
type StopOnCollisionSystem struct {
	Stopped []ecs.EntityId
}

func (s *StopOnCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	for _, pair := range frame.Collisions {
		for _, id := range pair {
			e, ok := frame.Scene.GetMut(id)
			if !ok || e.Velocity == nil {
				continue
			}
			*e.Velocity = ecs.Velocity{}
			s.Stopped = append(s.Stopped, id)
		}
	}
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order and query initialization", func(t *testing.T) {
		scene := ecs.NewScene()
		scheduler := ecs.NewScheduler(scene)

		thrust := &ThrustSystem{Movers: ecs.Query{Require: ecs.HasVelocity}}
		scheduler.Register(thrust)
		scheduler.Register(ecs.MovementSystem{})

		id := scene.MustAdd(point(0, 0, 0, 0))
		scene.MustAdd(wall(5, 5, 1, 1))

		require.NoError(t, scheduler.Once(1.0))
		assert.Equal(t, 1, thrust.ExecuteCount)
		assert.Equal(t, ecs.Position{X: 1}, position(t, scene, id))

		require.NoError(t, scheduler.Once(1.0))
		assert.Equal(t, 2, thrust.ExecuteCount)
		assert.Equal(t, ecs.Position{X: 3}, position(t, scene, id))
	})

	t.Run("queries are only valid during the frame", func(t *testing.T) {
		scene := ecs.NewScene()
		scheduler := ecs.NewScheduler(scene)

		thrust := &ThrustSystem{Movers: ecs.Query{Require: ecs.HasVelocity}}
		scheduler.Register(thrust)
		scene.MustAdd(point(0, 0, 0, 0))

		require.NoError(t, scheduler.Once(1.0))
		assert.Panics(t, func() { thrust.Movers.Ids() })

		scene.MustAdd(point(1, 0, 0, 0))
		require.NoError(t, scheduler.Once(1.0))
		assert.Equal(t, 2, thrust.ExecuteCount)
	})

	t.Run("collision system feeds reactions before movement", func(t *testing.T) {
		scene := ecs.NewScene()
		scheduler := ecs.NewScheduler(scene)

		stopper := &StopOnCollisionSystem{}
		scheduler.Register(ecs.CollisionSystem{})
		scheduler.Register(stopper)
		scheduler.Register(ecs.MovementSystem{})

		player := scene.MustAdd(mover(0, 0, 10, 0, 1, 1))
		scene.MustAdd(wall(2, 0, 1, 1))

		require.NoError(t, scheduler.Once(0.5))

		assert.Equal(t, []ecs.EntityId{player}, stopper.Stopped)
		assert.Equal(t, ecs.Position{}, position(t, scene, player))
	})

	t.Run("free movement without collisions", func(t *testing.T) {
		scene := ecs.NewScene()
		scheduler := ecs.NewScheduler(scene)

		scheduler.Register(ecs.CollisionSystem{})
		scheduler.Register(&StopOnCollisionSystem{})
		scheduler.Register(ecs.MovementSystem{})

		player := scene.MustAdd(mover(0, 0, 10, 0, 1, 1))
		scene.MustAdd(wall(20, 0, 1, 1))

		require.NoError(t, scheduler.Once(0.5))

		assert.Equal(t, ecs.Position{X: 5}, position(t, scene, player))
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		scene := ecs.NewScene()
		scheduler := ecs.NewScheduler(scene)

		thrust := &ThrustSystem{Movers: ecs.Query{Require: ecs.HasVelocity}}
		scheduler.Register(thrust)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if thrust.ExecuteCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})

	t.Run("run clamps delta", func(t *testing.T) {
		scene := ecs.NewScene()
		scheduler := ecs.NewScheduler(scene, ecs.WithMaxDelta(time.Microsecond))
		scheduler.Register(ecs.MovementSystem{})

		id := scene.MustAdd(point(0, 0, 1000, 0))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		scheduler.Run(ctx, 2*time.Millisecond)

		frames := scheduler.GetStats().Frames
		require.Positive(t, frames)
		// Every frame advanced by at most 1000 units/s * 1µs.
		assert.LessOrEqual(t, position(t, scene, id).X, float64(frames)*1000*1e-6+1e-9)
	})

	t.Run("stats", func(t *testing.T) {
		scene := ecs.NewScene()
		scheduler := ecs.NewScheduler(scene)

		scheduler.Register(ecs.CollisionSystem{})
		scheduler.Register(&StopOnCollisionSystem{})

		stats := scheduler.GetStats()
		assert.Equal(t, 2, stats.SystemCount)
		assert.Equal(t, "CollisionSystem", stats.Systems[0].Name)
		assert.Equal(t, "StopOnCollisionSystem", stats.Systems[1].Name)
		assert.Zero(t, stats.Systems[0].MinDuration)

		for range 3 {
			require.NoError(t, scheduler.Once(1.0/60.0))
		}

		stats = scheduler.GetStats()
		assert.Equal(t, int64(3), stats.Frames)
		assert.Equal(t, int64(6), stats.TotalExecutions)
		for _, s := range stats.Systems {
			assert.Equal(t, int64(3), s.ExecutionCount)
			assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
			assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
		}
	})
}
