package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hewn/ecs"
)

// CollisionViewer lists the pairs reported by the last collision pass.
type CollisionViewer struct {
	onlySelected bool
}

func NewCollisionViewer() *CollisionViewer {
	return &CollisionViewer{}
}

func (cv *CollisionViewer) Render(pairs []ecs.Pair, selected ecs.EntityId) {
	if !imgui.BeginV("Collisions", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Checkbox("Only selected entity", &cv.onlySelected)
	shown := visiblePairs(pairs, selected, cv.onlySelected)
	imgui.Text(fmt.Sprintf("Pairs: %d", len(shown)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("CollisionTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("First")
		imgui.TableSetupColumn("Second")
		imgui.TableHeadersRow()
		for _, p := range shown {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", p[0]))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", p[1]))
		}
		imgui.EndTable()
	}

	imgui.End()
}

func visiblePairs(pairs []ecs.Pair, selected ecs.EntityId, onlySelected bool) []ecs.Pair {
	if !onlySelected || selected == ecs.NoEntity {
		return pairs
	}
	var out []ecs.Pair
	for _, p := range pairs {
		if p.Has(selected) {
			out = append(out, p)
		}
	}
	return out
}
