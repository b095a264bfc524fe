package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/hewn/ecs"
	"github.com/plus3/hewn/logging"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	frames := flag.Int("frames", 0, "Run exactly this many frames instead of running for a duration.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	worldSize := flag.Float64("world", 1000, "Edge length of the square world.")
	churn := flag.Float64("churn", 0.001, "Fraction of entities replaced each frame.")
	broadphase := flag.String("broadphase", "grid", "Collision broad phase: allpairs or grid.")
	gridCell := flag.Float64("grid-cell", 4, "Cell size of the grid broad phase.")
	dt := flag.Float64("dt", 1.0/60.0, "Fixed simulation step in seconds.")
	seed := flag.Uint64("seed", 1, "Random seed.")
	compactEvery := flag.Int64("compact-every", 600, "Compact entity storage every N frames; 0 disables.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	logLevel := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	logger, err := logging.New(logging.Options{Level: *logLevel, Output: "stderr", Encoding: "console"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	var bp ecs.Broadphase
	switch *broadphase {
	case "allpairs":
		bp = ecs.AllPairs{}
	case "grid":
		bp = ecs.NewGrid(*gridCell)
	default:
		logger.Fatal("unknown broad phase", zap.String("broadphase", *broadphase))
	}

	runID := uuid.New()
	logger = logger.With(zap.Stringer("run", runID))
	logger.Info("starting stress test",
		zap.Int("entities", *entityCount),
		zap.String("broadphase", *broadphase),
		zap.Uint64("seed", *seed))

	sim := NewSimulation(SimulationOptions{
		Entities:   *entityCount,
		WorldSize:  *worldSize,
		ChurnRate:  *churn,
		Seed:       *seed,
		Broadphase: bp,
	})
	logger.Info("population complete", zap.Int("entities", sim.Scene.Len()))

	report := &Report{
		RunID:          runID,
		Duration:       *duration,
		Entities:       *entityCount,
		Broadphase:     *broadphase,
		Seed:           *seed,
		DeltaTime:      *dt,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()
	if *frames > 0 {
		ctx = context.Background()
	}

	startTime := time.Now()
	var totalUpdates int64

Loop:
	for *frames <= 0 || totalUpdates < int64(*frames) {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			if err := sim.Scheduler.Once(*dt); err != nil {
				logger.Warn("spawns rejected", zap.Error(err))
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++
			if *compactEvery > 0 && totalUpdates%*compactEvery == 0 {
				sim.Scene.Compact()
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.Finish(sim)
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished", zap.Int64("frames", totalUpdates))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
