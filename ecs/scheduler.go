package ecs

import (
	"context"
	"reflect"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxDelta is the largest frame delta Run feeds to systems.
const DefaultMaxDelta = 100 * time.Millisecond

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler manages and executes systems in order.
type Scheduler struct {
	scene       *Scene
	systems     []System
	systemStats []*systemStatsInternal
	queries     []*Query
	commands    *Commands
	frames      int64

	maxDelta time.Duration
	logger   *zap.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithMaxDelta sets the upper bound Run applies to the measured frame delta.
func WithMaxDelta(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.maxDelta = d
	}
}

// WithSchedulerLogger sets the logger used to report flush errors and clamped frames.
func WithSchedulerLogger(logger *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a new scheduler for the given scene.
func NewScheduler(scene *Scene, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		scene:    scene,
		systems:  make([]System, 0),
		commands: NewCommands(),
		maxDelta: DefaultMaxDelta,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a system to the scheduler and initializes its Query fields.
// Systems run in registration order.
func (s *Scheduler) Register(system System) {
	s.initializeQueries(system)
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

var queryType = reflect.TypeFor[Query]()

func (s *Scheduler) initializeQueries(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() != reflect.Ptr {
		return
	}
	systemValue = systemValue.Elem()

	if systemValue.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Type() != queryType {
			continue
		}

		query := field.Addr().Interface().(*Query)
		query.Init(s.scene)
		s.queries = append(s.queries, query)
	}
}

// Once executes all registered systems once with the given delta time in
// seconds, then applies the commands they queued. Query fields are only
// valid during the frame and are invalidated after the flush. The returned
// error joins the spawns rejected during the flush.
func (s *Scheduler) Once(dt float64) error {
	for _, query := range s.queries {
		query.Execute()
	}

	frame := newUpdateFrame(dt, s.scene, s.commands)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
	s.frames++

	err := s.commands.Flush(s.scene)
	for _, query := range s.queries {
		query.Invalidate()
	}
	return err
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled. The measured delta is clamped to the scheduler's max delta so
// a stalled process does not feed a huge step to the simulation.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(lastTime)
			lastTime = now
			if elapsed > s.maxDelta {
				s.logger.Debug("clamped frame delta",
					zap.Duration("elapsed", elapsed),
					zap.Duration("max", s.maxDelta))
				elapsed = s.maxDelta
			}
			if err := s.Once(elapsed.Seconds()); err != nil {
				s.logger.Warn("frame commands rejected", zap.Error(err))
			}
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
