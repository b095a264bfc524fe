// Package pathfinding finds shortest paths on a grid of cells with A*.
package pathfinding

import (
	"container/heap"
	"math"

	"github.com/kamstrup/intmap"
)

// Node is a grid cell. (0, 0) is the bottom-left cell.
type Node struct {
	X, Y int
}

func (n Node) key() uint64 {
	return uint64(uint32(n.X))<<32 | uint64(uint32(n.Y))
}

// Move costs. A diagonal step costs about √2 times a straight one.
const (
	StraightCost = 10
	DiagonalCost = 14
)

var (
	straight = []Node{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	diagonal = []Node{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// Grid is a Width×Height area where Blocked cells cannot be entered.
type Grid struct {
	Width, Height int
	Blocked       map[Node]bool

	// Cardinal restricts movement to the four axis directions.
	Cardinal bool
}

// InBounds reports whether n lies inside the grid.
func (g *Grid) InBounds(n Node) bool {
	return n.X >= 0 && n.X < g.Width && n.Y >= 0 && n.Y < g.Height
}

// Path returns the cheapest path from start to end, both included. Diagonal
// steps never cut the corner of a blocked cell. It reports false when end
// is blocked or unreachable.
func (g *Grid) Path(start, end Node) ([]Node, bool) {
	if g.Blocked[end] || !g.InBounds(end) {
		return nil, false
	}

	cost := intmap.New[uint64, int](64)
	from := intmap.New[uint64, Node](64)
	open := &openSet{}

	cost.Put(start.key(), 0)
	heap.Push(open, entry{node: start, f: g.heuristic(start, end)})

	for open.Len() > 0 {
		current := heap.Pop(open).(entry).node
		if current == end {
			return reconstruct(from, start, end), true
		}

		base, _ := cost.Get(current.key())
		g.neighbors(current, func(next Node, step int) {
			tentative := base + step
			if known, ok := cost.Get(next.key()); ok && known <= tentative {
				return
			}
			cost.Put(next.key(), tentative)
			from.Put(next.key(), current)
			heap.Push(open, entry{node: next, f: tentative + g.heuristic(next, end)})
		})
	}
	return nil, false
}

func (g *Grid) neighbors(n Node, visit func(Node, int)) {
	for _, d := range straight {
		next := Node{n.X + d.X, n.Y + d.Y}
		if g.InBounds(next) && !g.Blocked[next] {
			visit(next, StraightCost)
		}
	}
	if g.Cardinal {
		return
	}
	for _, d := range diagonal {
		next := Node{n.X + d.X, n.Y + d.Y}
		if !g.InBounds(next) || g.Blocked[next] {
			continue
		}
		if g.Blocked[Node{n.X + d.X, n.Y}] || g.Blocked[Node{n.X, n.Y + d.Y}] {
			continue
		}
		visit(next, DiagonalCost)
	}
}

// heuristic is the octile distance, or the Manhattan distance when only
// cardinal moves are allowed.
func (g *Grid) heuristic(a, b Node) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if g.Cardinal {
		return StraightCost * (dx + dy)
	}
	return DiagonalCost*min(dx, dy) + StraightCost*(max(dx, dy)-min(dx, dy))
}

func reconstruct(from *intmap.Map[uint64, Node], start, end Node) []Node {
	path := []Node{end}
	for current := end; current != start; {
		prev, ok := from.Get(current.key())
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Inflate returns the cells an agent of w×h cells, anchored at its
// bottom-left cell, cannot occupy without overlapping an obstacle.
func Inflate(obstacles map[Node]bool, w, h int) map[Node]bool {
	out := make(map[Node]bool, len(obstacles)*max(w, 1)*max(h, 1))
	for n, blocked := range obstacles {
		if !blocked {
			continue
		}
		for dx := range max(w, 1) {
			for dy := range max(h, 1) {
				out[Node{n.X - dx, n.Y - dy}] = true
			}
		}
	}
	return out
}

// WorldToGrid returns the cell containing the world point (x, y) for a grid
// whose bottom-left corner is at origin.
func WorldToGrid(x, y float64, origin [2]float64, cellSize float64) Node {
	return Node{
		X: int(math.Floor((x - origin[0]) / cellSize)),
		Y: int(math.Floor((y - origin[1]) / cellSize)),
	}
}

// GridToWorld returns the world coordinates of the center of n.
func GridToWorld(n Node, origin [2]float64, cellSize float64) (x, y float64) {
	return origin[0] + float64(n.X)*cellSize + cellSize/2,
		origin[1] + float64(n.Y)*cellSize + cellSize/2
}

type entry struct {
	node Node
	f    int
}

// openSet is a min-heap on f. Ties pop the most recently pushed entry
// first, which keeps the search moving along the current path.
type openSet struct {
	entries []entry
	seq     []int
	next    int
}

func (o *openSet) Len() int { return len(o.entries) }

func (o *openSet) Less(i, j int) bool {
	if o.entries[i].f != o.entries[j].f {
		return o.entries[i].f < o.entries[j].f
	}
	return o.seq[i] > o.seq[j]
}

func (o *openSet) Swap(i, j int) {
	o.entries[i], o.entries[j] = o.entries[j], o.entries[i]
	o.seq[i], o.seq[j] = o.seq[j], o.seq[i]
}

func (o *openSet) Push(x any) {
	o.entries = append(o.entries, x.(entry))
	o.seq = append(o.seq, o.next)
	o.next++
}

func (o *openSet) Pop() any {
	n := len(o.entries) - 1
	e := o.entries[n]
	o.entries = o.entries[:n]
	o.seq = o.seq[:n]
	return e
}
