package geo

import (
	"container/heap"
	"math"

	"github.com/udisondev/roomserver/internal/model"
)

// A* limits and weights.
const (
	// MaxPathfindIterations bounds CPU per request.
	MaxPathfindIterations = 7000

	// MaxGridCells bounds grid memory.
	MaxGridCells = 1 << 20

	WeightCardinal = 1.0
	WeightDiagonal = math.Sqrt2
)

// FindPath returns waypoints from start to end, both included.
// Returns nil when either point is outside the grid or blocked, or no path exists.
// The final waypoint is end itself; intermediate waypoints are cell centers at floor height.
func (g *NavGrid) FindPath(start, end model.Vec3) []model.Vec3 {
	sx, sz, ok := g.cellOf(start.X, start.Z)
	if !ok || !g.walkable(sx, sz) {
		return nil
	}
	ex, ez, ok := g.cellOf(end.X, end.Z)
	if !ok || !g.walkable(ex, ez) {
		return nil
	}

	if sx == ex && sz == ez {
		return []model.Vec3{start, end}
	}

	result := g.astar(sx, sz, ex, ez)
	if result == nil {
		return nil
	}

	cells := make([][2]int32, 0, 32)
	for n := result; n != nil; n = n.parent {
		cells = append(cells, [2]int32{n.x, n.z})
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	cells = g.smoothPath(cells)

	path := make([]model.Vec3, 0, len(cells))
	path = append(path, start)
	for _, c := range cells[1 : len(cells)-1] {
		x, z := g.cellCenter(c[0], c[1])
		path = append(path, model.Vec3{X: x, Y: g.floorY, Z: z})
	}
	path = append(path, end)
	return path
}

// smoothPath drops waypoints that the previous kept waypoint can see past.
func (g *NavGrid) smoothPath(cells [][2]int32) [][2]int32 {
	if len(cells) <= 2 {
		return cells
	}

	smoothed := make([][2]int32, 0, len(cells))
	smoothed = append(smoothed, cells[0])
	for i := 1; i < len(cells)-1; i++ {
		prev := smoothed[len(smoothed)-1]
		next := cells[i+1]
		if g.lineOfSight(prev[0], prev[1], next[0], next[1]) {
			continue
		}
		smoothed = append(smoothed, cells[i])
	}
	return append(smoothed, cells[len(cells)-1])
}

// gridNode represents a node in the A* search graph.
type gridNode struct {
	x, z   int32
	parent *gridNode
	gCost  float64 // Actual cost from start
	fCost  float64 // gCost + heuristic
	index  int     // heap index
}

func (g *NavGrid) astar(sx, sz, tx, tz int32) *gridNode {
	start := &gridNode{x: sx, z: sz}
	start.fCost = heuristic(sx, sz, tx, tz)

	openList := &nodeHeap{}
	heap.Init(openList)
	heap.Push(openList, start)

	closed := make(map[[2]int32]struct{}, 256)

	for range MaxPathfindIterations {
		if openList.Len() == 0 {
			return nil
		}

		current := heap.Pop(openList).(*gridNode)
		if current.x == tx && current.z == tz {
			return current
		}

		key := [2]int32{current.x, current.z}
		if _, exists := closed[key]; exists {
			continue
		}
		closed[key] = struct{}{}

		g.expandNeighbors(current, tx, tz, openList, closed)
	}

	return nil // Max iterations exceeded
}

// expandNeighbors pushes free adjacent cells. Diagonals require both adjacent
// cardinals to be free (no corner cutting).
func (g *NavGrid) expandNeighbors(current *gridNode, tx, tz int32, openList *nodeHeap, closed map[[2]int32]struct{}) {
	cardinals := [4][2]int32{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	var free [4]bool

	push := func(dx, dz int32, weight float64) {
		nx, nz := current.x+dx, current.z+dz
		if _, exists := closed[[2]int32{nx, nz}]; exists {
			return
		}
		node := &gridNode{x: nx, z: nz, parent: current, gCost: current.gCost + weight}
		node.fCost = node.gCost + heuristic(nx, nz, tx, tz)
		heap.Push(openList, node)
	}

	for i, d := range cardinals {
		if !g.walkable(current.x+d[0], current.z+d[1]) {
			continue
		}
		free[i] = true
		push(d[0], d[1], WeightCardinal)
	}

	diagonals := [4]struct {
		dx, dz     int32
		adj1, adj2 int
	}{
		{1, -1, 0, 1},
		{1, 1, 1, 2},
		{-1, 1, 2, 3},
		{-1, -1, 3, 0},
	}
	for _, d := range diagonals {
		if !free[d.adj1] || !free[d.adj2] || !g.walkable(current.x+d.dx, current.z+d.dz) {
			continue
		}
		push(d.dx, d.dz, WeightDiagonal)
	}
}

func heuristic(x, z, tx, tz int32) float64 {
	dx := float64(x - tx)
	dz := float64(z - tz)
	return math.Sqrt(dx*dx + dz*dz)
}

// nodeHeap implements container/heap for A* open list (min-heap by fCost).
type nodeHeap []*gridNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].fCost < h[j].fCost }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)        { n := x.(*gridNode); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	node.index = -1
	*h = old[:n-1]
	return node
}
