package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hewn/ecs"
)

// EntityBrowser lists the scene's entities in a sortable, filterable,
// paginated table.
type EntityBrowser struct {
	entities      []EntityInfo
	sortColumn    int
	sortAscending bool

	selected    ecs.EntityId
	filterText  string
	perPage     int
	currentPage int
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	return &EntityBrowser{
		sortAscending: true,
		perPage:       max(perPage, 1),
	}
}

// Selected returns the entity picked in the table, or ecs.NoEntity.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

// Select picks an entity programmatically.
func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selected = id
}

func (eb *EntityBrowser) Render(scene *ecs.Scene) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(scene)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Velocity")
		imgui.TableSetupColumn("Size")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, entity := range eb.page() {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Kinds, ", "))
			imgui.TableNextColumn()
			imgui.Text(entity.Position)
			imgui.TableNextColumn()
			imgui.Text(entity.Velocity)
			imgui.TableNextColumn()
			imgui.Text(entity.Size)
		}

		imgui.EndTable()
	}

	filtered := eb.filtered()
	if len(filtered) > eb.perPage {
		totalPages := eb.pages(len(filtered))
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// refresh rebuilds the rows from the scene. Positions change every frame so
// nothing is cached across frames.
func (eb *EntityBrowser) refresh(scene *ecs.Scene) {
	eb.entities = eb.entities[:0]
	for id, e := range scene.Entities() {
		eb.entities = append(eb.entities, describe(id, e))
	}
	eb.sortEntities()

	if eb.selected != ecs.NoEntity && !scene.Contains(eb.selected) {
		eb.selected = ecs.NoEntity
	}
	if last := eb.pages(len(eb.filtered())) - 1; eb.currentPage > last {
		eb.currentPage = max(last, 0)
	}
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.entities, func(i, j int) bool {
		a, b := eb.entities[i], eb.entities[j]
		var less bool

		switch eb.sortColumn {
		case 1:
			less = a.Mask < b.Mask
		case 2:
			less = a.Position < b.Position
		case 3:
			less = a.Velocity < b.Velocity
		case 4:
			less = a.Size < b.Size
		default:
			less = a.ID < b.ID
		}

		if !eb.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowser) filtered() []EntityInfo {
	if eb.filterText == "" {
		return eb.entities
	}

	filter := strings.ToLower(eb.filterText)
	filtered := make([]EntityInfo, 0, len(eb.entities))
	for _, entity := range eb.entities {
		if entity.matches(filter) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}

func (eb *EntityBrowser) page() []EntityInfo {
	filtered := eb.filtered()
	start := min(eb.currentPage*eb.perPage, len(filtered))
	end := min(start+eb.perPage, len(filtered))
	return filtered[start:end]
}

func (eb *EntityBrowser) pages(n int) int {
	return (n + eb.perPage - 1) / eb.perPage
}
