// Package render turns a scene into the data a runtime draws: a snapshot of
// the drawable entities and a glyph grid seen through a camera viewport.
package render

import (
	"math"
	"strings"

	"github.com/plus3/hewn/camera"
	"github.com/plus3/hewn/ecs"
)

// Background is the glyph of an empty cell.
const Background = '.'

// Sprite is the drawable state of one entity.
type Sprite struct {
	Id       ecs.EntityId
	Position ecs.Position
	Size     ecs.Size
	Render   ecs.Render
}

// Snapshot copies every entity carrying a position, a size and a render
// component, in ascending id order.
func Snapshot(scene *ecs.Scene) []Sprite {
	var sprites []Sprite
	for id, e := range scene.Each(ecs.HasPosition | ecs.HasSize | ecs.HasRender) {
		sprites = append(sprites, Sprite{
			Id:       id,
			Position: *e.Position,
			Size:     *e.Size,
			Render:   *e.Render,
		})
	}
	return sprites
}

// Cell is one character cell of a Grid.
type Cell struct {
	Glyph rune
	Color ecs.RGB
	Set   bool
}

// Grid is a Width×Height block of cells. Row 0 is the top of the screen.
type Grid struct {
	Width, Height int
	cells         []Cell
}

// NewGrid creates a grid filled with the background glyph.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	g := &Grid{Width: width, Height: height, cells: make([]Cell, width*height)}
	g.Clear()
	return g
}

// Clear resets every cell to the background.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{Glyph: Background}
	}
}

// At returns the cell at column col, row row. Out of range cells are
// reported as background.
func (g *Grid) At(col, row int) Cell {
	if col < 0 || col >= g.Width || row < 0 || row >= g.Height {
		return Cell{Glyph: Background}
	}
	return g.cells[row*g.Width+col]
}

// Set writes a cell. Out of range writes are ignored.
func (g *Grid) Set(col, row int, c Cell) {
	if col < 0 || col >= g.Width || row < 0 || row >= g.Height {
		return
	}
	g.cells[row*g.Width+col] = c
}

// Lines returns the glyphs of each row, top to bottom.
func (g *Grid) Lines() []string {
	lines := make([]string, g.Height)
	var sb strings.Builder
	for row := range g.Height {
		sb.Reset()
		for col := range g.Width {
			sb.WriteRune(g.cells[row*g.Width+col].Glyph)
		}
		lines[row] = sb.String()
	}
	return lines
}

// String joins Lines with newlines.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Rasterize draws sprites into a grid the size of vp. A sprite covers the
// cells from floor(position) up to ceil(position+size) on each axis, and at
// least one cell. World y grows upward so the top row shows the highest
// visible y. Later sprites overwrite earlier ones.
func Rasterize(sprites []Sprite, vp *camera.Viewport) *Grid {
	g := NewGrid(vp.Width, vp.Height)
	Draw(g, sprites, vp)
	return g
}

// Draw is Rasterize into an existing grid, which is cleared first.
func Draw(g *Grid, sprites []Sprite, vp *camera.Viewport) {
	g.Clear()
	for _, s := range sprites {
		x0, x1 := span(s.Position.X, s.Size.W)
		y0, y1 := span(s.Position.Y, s.Size.H)
		cell := Cell{Glyph: s.Render.Glyph, Color: s.Render.Color, Set: true}

		for y := max(y0, vp.Y); y < min(y1, vp.Y+vp.Height); y++ {
			row := vp.Y + vp.Height - 1 - y
			for x := max(x0, vp.X); x < min(x1, vp.X+vp.Width); x++ {
				g.Set(x-vp.X, row, cell)
			}
		}
	}
}

func span(pos, size float64) (lo, hi int) {
	lo = int(math.Floor(pos))
	hi = int(math.Ceil(pos + size))
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}
