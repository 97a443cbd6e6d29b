package geo

import (
	"fmt"
	"math"

	"github.com/udisondev/roomserver/internal/model"
)

// Rect is an axis-aligned rectangle on the XZ plane.
type Rect struct {
	MinX, MinZ float32
	MaxX, MaxZ float32
}

// Contains reports whether (x, z) lies inside r.
func (r Rect) Contains(x, z float32) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

// NavGrid is a walkability grid over the room floor.
// Cells are square; a cell is blocked when its center falls inside an obstacle.
// Immutable after construction, safe for concurrent use.
type NavGrid struct {
	area     Rect
	cellSize float32
	width    int32
	height   int32
	floorY   float32
	blocked  []bool
}

// NewNavGrid rasterises obstacles over area with the given cell size.
func NewNavGrid(area Rect, cellSize, floorY float32, obstacles []Rect) (*NavGrid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("nav grid: cell size must be positive, got %v", cellSize)
	}
	if area.MaxX <= area.MinX || area.MaxZ <= area.MinZ {
		return nil, fmt.Errorf("nav grid: empty area %+v", area)
	}

	g := &NavGrid{
		area:     area,
		cellSize: cellSize,
		width:    int32(math.Ceil(float64((area.MaxX - area.MinX) / cellSize))),
		height:   int32(math.Ceil(float64((area.MaxZ - area.MinZ) / cellSize))),
		floorY:   floorY,
	}
	if g.width*g.height > MaxGridCells {
		return nil, fmt.Errorf("nav grid: %dx%d cells exceeds limit %d", g.width, g.height, MaxGridCells)
	}

	g.blocked = make([]bool, g.width*g.height)
	for cz := range g.height {
		for cx := range g.width {
			x, z := g.cellCenter(cx, cz)
			for _, o := range obstacles {
				if o.Contains(x, z) {
					g.blocked[cz*g.width+cx] = true
					break
				}
			}
		}
	}
	return g, nil
}

// Size returns the grid dimensions in cells.
func (g *NavGrid) Size() (width, height int32) {
	return g.width, g.height
}

// IsWalkable reports whether world point p is on a free cell.
func (g *NavGrid) IsWalkable(p model.Vec3) bool {
	cx, cz, ok := g.cellOf(p.X, p.Z)
	return ok && g.walkable(cx, cz)
}

func (g *NavGrid) walkable(cx, cz int32) bool {
	if cx < 0 || cz < 0 || cx >= g.width || cz >= g.height {
		return false
	}
	return !g.blocked[cz*g.width+cx]
}

func (g *NavGrid) cellOf(x, z float32) (int32, int32, bool) {
	if !g.area.Contains(x, z) {
		return 0, 0, false
	}
	cx := int32((x - g.area.MinX) / g.cellSize)
	cz := int32((z - g.area.MinZ) / g.cellSize)
	// MaxX/MaxZ land exactly on the far edge.
	cx = min(cx, g.width-1)
	cz = min(cz, g.height-1)
	return cx, cz, true
}

func (g *NavGrid) cellCenter(cx, cz int32) (float32, float32) {
	return g.area.MinX + (float32(cx)+0.5)*g.cellSize,
		g.area.MinZ + (float32(cz)+0.5)*g.cellSize
}

// lineOfSight walks the cells between a and b (Bresenham) and reports whether all are free.
func (g *NavGrid) lineOfSight(ax, az, bx, bz int32) bool {
	dx := abs32(bx - ax)
	dz := -abs32(bz - az)
	sx := int32(1)
	if ax > bx {
		sx = -1
	}
	sz := int32(1)
	if az > bz {
		sz = -1
	}
	e := dx + dz

	x, z := ax, az
	for {
		if !g.walkable(x, z) {
			return false
		}
		if x == bx && z == bz {
			return true
		}
		e2 := 2 * e
		if e2 >= dz {
			e += dz
			x += sx
		}
		if e2 <= dx {
			e += dx
			z += sz
		}
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
