package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/hewn/ecs"
)

type Report struct {
	// Configuration
	RunID      uuid.UUID
	Duration   time.Duration
	Entities   int
	Broadphase string
	Seed       uint64
	DeltaTime  float64

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Systems        []ecs.SystemStats
	FinalEntities  int
	Collisions     int64
	MaxCollisions  int
	Respawned      int64
	Digest         uint64
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Finish copies the simulation's results into the report.
func (r *Report) Finish(sim *Simulation) {
	r.UpdateTime.Finalize()
	r.Systems = sim.Scheduler.GetStats().Systems
	r.FinalEntities = sim.Scene.Len()
	r.Collisions = sim.Bounce.Pairs
	r.MaxCollisions = sim.Bounce.Max
	r.Respawned = sim.Churn.Removed
	r.Digest = sim.Scene.Digest()
}

// AvgCollisions is the mean number of pairs reported per frame.
func (r *Report) AvgCollisions() float64 {
	if r.TotalUpdates == 0 {
		return 0
	}
	return float64(r.Collisions) / float64(r.TotalUpdates)
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Collision Stress Test Report

## Test Configuration
- **Run ID:** {{.RunID}}
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Broad Phase:** {{.Broadphase}}
- **Seed:** {{.Seed}}
- **Step:** {{printf "%.4f" .DeltaTime}}s

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{range .Systems}}
- **{{.Name}}:** {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{- end}}

## Simulation
- **Final Entities:** {{.FinalEntities}}
- **Collision Pairs:** {{.Collisions}} total, {{printf "%.2f" .AvgCollisions}} per frame, {{.MaxCollisions}} max
- **Respawned:** {{.Respawned}}
- **Scene Digest:** {{printf "%016x" .Digest}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
