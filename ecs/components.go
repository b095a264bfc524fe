package ecs

// Position is a world coordinate. +x points right, +y points up.
type Position struct {
	X, Y float64
}

// Velocity is expressed in world units per second.
type Velocity struct {
	X, Y float64
}

// Size is the width and height of the entity's bounding box. The box is
// anchored at the entity's Position, which is its lower-left corner.
type Size struct {
	W, H float64
}

// RGB is an opaque color. It implements image/color.Color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Render describes how renderers draw an entity. The simulation never reads it.
type Render struct {
	Glyph rune
	Color RGB
}

// CameraFollow marks the entity camera strategies should track.
type CameraFollow struct{}

// Components is the sparse component set of an entity. A nil field means the
// entity does not carry that component.
type Components struct {
	Position     *Position
	Velocity     *Velocity
	Size         *Size
	Render       *Render
	CameraFollow *CameraFollow
}

// Mask returns the set of component kinds present in c.
func (c Components) Mask() Mask {
	var m Mask
	if c.Position != nil {
		m |= HasPosition
	}
	if c.Velocity != nil {
		m |= HasVelocity
	}
	if c.Size != nil {
		m |= HasSize
	}
	if c.Render != nil {
		m |= HasRender
	}
	if c.CameraFollow != nil {
		m |= HasCameraFollow
	}
	return m
}

// clone copies every present component so the result shares no memory with c.
func (c Components) clone() Components {
	var out Components
	if c.Position != nil {
		p := *c.Position
		out.Position = &p
	}
	if c.Velocity != nil {
		v := *c.Velocity
		out.Velocity = &v
	}
	if c.Size != nil {
		s := *c.Size
		out.Size = &s
	}
	if c.Render != nil {
		r := *c.Render
		out.Render = &r
	}
	if c.CameraFollow != nil {
		out.CameraFollow = &CameraFollow{}
	}
	return out
}
