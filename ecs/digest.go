package ecs

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest hashes the simulation state of every entity (id, mask, position,
// velocity and size) in id order. Two scenes built and stepped with the same
// inputs produce the same digest.
func (s *Scene) Digest() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)

	for id, e := range s.Entities() {
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint64(buf, uint64(id))
		buf = append(buf, byte(e.Mask()))
		if p := e.Position; p != nil {
			buf = appendFloats(buf, p.X, p.Y)
		}
		if v := e.Velocity; v != nil {
			buf = appendFloats(buf, v.X, v.Y)
		}
		if sz := e.Size; sz != nil {
			buf = appendFloats(buf, sz.W, sz.H)
		}
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}

func appendFloats(buf []byte, vs ...float64) []byte {
	for _, v := range vs {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return buf
}
