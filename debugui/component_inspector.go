package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hewn/ecs"
)

var componentsType = reflect.TypeFor[ecs.Components]()

// ComponentInspector shows and edits the components of the selected entity.
// Numeric and boolean fields are editable in place.
type ComponentInspector struct {
	selected ecs.EntityId
}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{}
}

func (ci *ComponentInspector) Render(scene *ecs.Scene, selected ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selected = selected
	if ci.selected == ecs.NoEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	e, ok := scene.GetMut(ci.selected)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d not found", ci.selected))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.selected))
	imgui.Separator()

	for _, c := range presentComponents(&e.Components) {
		if imgui.TreeNodeStr(c.Name) {
			ci.renderComponent(c.Value)
			imgui.TreePop()
		}
	}

	imgui.End()
}

// namedComponent is a present component of an entity, addressable so the
// inspector can write to it.
type namedComponent struct {
	Name  string
	Value reflect.Value
}

// presentComponents returns the non-nil component fields of c in
// declaration order.
func presentComponents(c *ecs.Components) []namedComponent {
	val := reflect.ValueOf(c).Elem()
	var out []namedComponent
	for _, field := range globalReflectionCache.GetFields(componentsType) {
		fieldVal := val.Field(field.Index)
		if !field.IsPointer || fieldVal.IsNil() {
			continue
		}
		out = append(out, namedComponent{Name: field.Name, Value: fieldVal.Elem()})
	}
	return out
}

func (ci *ComponentInspector) renderComponent(val reflect.Value) {
	fields := globalReflectionCache.GetFields(val.Type())
	if len(fields) == 0 {
		imgui.Text("(marker)")
		return
	}
	for _, field := range fields {
		ci.renderField(field.Name, val.Field(field.Index))
	}
}

func (ci *ComponentInspector) renderField(name string, val reflect.Value) {
	id := fmt.Sprintf("##%d%s", ci.selected, name)

	switch val.Kind() {
	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 && val.CanSet() && !val.OverflowUint(uint64(v)) {
			val.SetUint(uint64(v))
		}

	case reflect.Int32:
		// Glyphs are runes.
		imgui.Text(fmt.Sprintf("%s: %q", name, rune(val.Int())))

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				ci.renderField(nf.Name, val.Field(nf.Index))
			}
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
