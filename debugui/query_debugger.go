package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hewn/ecs"
)

// QueryDebugger lets the user pick component kinds and lists the entities
// carrying all of them.
type QueryDebugger struct {
	selected map[ecs.ComponentKind]bool
	maxShown int
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{
		selected: make(map[ecs.ComponentKind]bool),
		maxShown: 50,
	}
}

// Mask returns the mask built from the selected kinds.
func (qd *QueryDebugger) Mask() ecs.Mask {
	var m ecs.Mask
	for k, on := range qd.selected {
		if on {
			m |= 1 << k
		}
	}
	return m
}

func (qd *QueryDebugger) Render(scene *ecs.Scene) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	for _, k := range kinds {
		selected := qd.selected[k]
		if imgui.Checkbox(k.String(), &selected) {
			qd.selected[k] = selected
		}
	}

	imgui.Separator()

	mask := qd.Mask()
	if mask == 0 {
		imgui.Text("Select at least one component type")
		imgui.End()
		return
	}

	ids := matching(scene, mask)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(ids)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("QueryResults", 1, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableHeadersRow()
		for _, id := range ids[:min(len(ids), qd.maxShown)] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", id))
		}
		imgui.EndTable()
	}
	if len(ids) > qd.maxShown {
		imgui.Text(fmt.Sprintf("... and %d more", len(ids)-qd.maxShown))
	}

	imgui.End()
}

func matching(scene *ecs.Scene, mask ecs.Mask) []ecs.EntityId {
	var ids []ecs.EntityId
	for id := range scene.Each(mask) {
		ids = append(ids, id)
	}
	return ids
}
