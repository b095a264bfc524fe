// Package debugui provides a Dear ImGui inspector for a running scene: an
// entity browser, a component inspector, a query debugger, the collisions of
// the last frame and performance stats.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hewn/ecs"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Hosts check it before forwarding input to the game.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Inspector groups the debug windows drawn for one scene.
type Inspector struct {
	Browser     *EntityBrowser
	Components  *ComponentInspector
	Queries     *QueryDebugger
	Collisions  *CollisionViewer
	Performance *PerformanceStats

	Input InputState
}

// NewInspector creates an inspector with every window enabled.
func NewInspector() *Inspector {
	return &Inspector{
		Browser:     NewEntityBrowser(100),
		Components:  NewComponentInspector(),
		Queries:     NewQueryDebugger(),
		Collisions:  NewCollisionViewer(),
		Performance: NewPerformanceStats(120),
	}
}

// Frame is what the inspector shows for one frame.
type Frame struct {
	Scene      *ecs.Scene
	DeltaTime  float64
	Collisions []ecs.Pair
	Stats      *ecs.SchedulerStats
}

// Render draws every window. It must be called between the backend's
// BeginFrame and EndFrame.
func (in *Inspector) Render(f Frame) {
	io := imgui.CurrentIO()
	in.Input.WantCaptureMouse = io.WantCaptureMouse()
	in.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	in.Browser.Render(f.Scene)
	in.Components.Render(f.Scene, in.Browser.Selected())
	in.Queries.Render(f.Scene)
	in.Collisions.Render(f.Collisions, in.Browser.Selected())
	in.Performance.Render(f.Scene, f.DeltaTime, f.Stats)
}

// System renders the inspector from inside a Scheduler. Register it after
// ecs.CollisionSystem so the frame's collisions are available. Rendering is
// deferred until the frame's commands are flushed.
type System struct {
	Inspector *Inspector
	Scheduler *ecs.Scheduler
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	f := Frame{
		Scene:      frame.Scene,
		DeltaTime:  frame.DeltaTime,
		Collisions: frame.Collisions,
	}
	if s.Scheduler != nil {
		f.Stats = s.Scheduler.GetStats()
	}
	frame.Commands.Defer(func() {
		s.Inspector.Render(f)
	})
}
