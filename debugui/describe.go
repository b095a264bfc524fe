package debugui

import (
	"fmt"
	"strings"

	"github.com/plus3/hewn/ecs"
)

var kinds = []ecs.ComponentKind{
	ecs.KindPosition,
	ecs.KindVelocity,
	ecs.KindSize,
	ecs.KindRender,
	ecs.KindCameraFollow,
}

// kindNames lists the component kinds present in m.
func kindNames(m ecs.Mask) []string {
	var names []string
	for _, k := range kinds {
		if m.Contains(1 << k) {
			names = append(names, k.String())
		}
	}
	return names
}

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID       ecs.EntityId
	Mask     ecs.Mask
	Kinds    []string
	Position string
	Velocity string
	Size     string
}

func describe(id ecs.EntityId, e *ecs.Entity) EntityInfo {
	info := EntityInfo{
		ID:    id,
		Mask:  e.Mask(),
		Kinds: kindNames(e.Mask()),
	}
	if p := e.Position; p != nil {
		info.Position = fmt.Sprintf("%.2f, %.2f", p.X, p.Y)
	}
	if v := e.Velocity; v != nil {
		info.Velocity = fmt.Sprintf("%.2f, %.2f", v.X, v.Y)
	}
	if s := e.Size; s != nil {
		info.Size = fmt.Sprintf("%.2f x %.2f", s.W, s.H)
	}
	return info
}

// matches reports whether the lower-cased filter occurs in the id or the
// component names of the row.
func (info EntityInfo) matches(filter string) bool {
	if filter == "" {
		return true
	}
	if strings.Contains(fmt.Sprintf("%d", info.ID), filter) {
		return true
	}
	return strings.Contains(strings.Join(info.Kinds, " "), filter)
}
