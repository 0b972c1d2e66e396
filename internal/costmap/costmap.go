package costmap

import (
	"sync"

	"github.com/paulmach/orb"

	"github.com/ROBOTIS-move/navigation2/internal/geometry"
)

// Cost value written to cleared cells when a map declares no other default.
const NoInformation = uint8(255)

// Costmap2D is a 2D grid of cost cells. Cells are stored row-major as a
// flat slice indexed by Idx. World coordinates are metres; grid coordinates
// are cell indices with cell (mx, my) covering the half-open world square
// [originX + mx*resolution, originX + (mx+1)*resolution) on each axis.
//
// Mutation primitives do not acquire the mutex themselves. Callers hold
// Mutex() for the duration of any read-modify cycle so that the grid is
// never observed mid-mutation by a concurrent updater.
type Costmap2D struct {
	mu sync.Mutex

	cellsX, cellsY   int
	resolution       float64
	originX, originY float64
	defaultValue     uint8

	cells []uint8 // len = cellsX * cellsY
}

// NewCostmap2D creates a grid of cellsX by cellsY cells with every cell set
// to defaultValue. Resolution is metres per cell; origin is the world
// position of the grid's lower-left corner.
func NewCostmap2D(cellsX, cellsY int, resolution, originX, originY float64, defaultValue uint8) *Costmap2D {
	cells := make([]uint8, cellsX*cellsY)
	for i := range cells {
		cells[i] = defaultValue
	}
	return &Costmap2D{
		cellsX:       cellsX,
		cellsY:       cellsY,
		resolution:   resolution,
		originX:      originX,
		originY:      originY,
		defaultValue: defaultValue,
		cells:        cells,
	}
}

// Mutex returns the grid's lock for caller-scoped acquisition.
func (c *Costmap2D) Mutex() *sync.Mutex { return &c.mu }

// Idx converts grid coordinates into the flat cell index.
func (c *Costmap2D) Idx(mx, my int) int { return my*c.cellsX + mx }

// Cost returns the cost at the given grid coordinates.
func (c *Costmap2D) Cost(mx, my int) uint8 { return c.cells[c.Idx(mx, my)] }

// SetCost writes the cost at the given grid coordinates.
func (c *Costmap2D) SetCost(mx, my int, cost uint8) { c.cells[c.Idx(mx, my)] = cost }

// CellsX returns the grid width in cells.
func (c *Costmap2D) CellsX() int { return c.cellsX }

// CellsY returns the grid height in cells.
func (c *Costmap2D) CellsY() int { return c.cellsY }

// Resolution returns the cell size in metres.
func (c *Costmap2D) Resolution() float64 { return c.resolution }

// OriginX returns the world X coordinate of the grid's lower-left corner.
func (c *Costmap2D) OriginX() float64 { return c.originX }

// OriginY returns the world Y coordinate of the grid's lower-left corner.
func (c *Costmap2D) OriginY() float64 { return c.originY }

// SizeMetersX returns the grid width in metres.
func (c *Costmap2D) SizeMetersX() float64 { return float64(c.cellsX) * c.resolution }

// SizeMetersY returns the grid height in metres.
func (c *Costmap2D) SizeMetersY() float64 { return float64(c.cellsY) * c.resolution }

// DefaultValue returns the cost written by reset operations, representing
// unknown/unobserved space.
func (c *Costmap2D) DefaultValue() uint8 { return c.defaultValue }

// Snapshot returns a copy of the raw cell slice. The copy is detached from
// the live grid and safe to inspect without the mutex.
func (c *Costmap2D) Snapshot() []uint8 {
	out := make([]uint8, len(c.cells))
	copy(out, c.cells)
	return out
}

// InBounds reports whether the grid coordinates address a valid cell.
func (c *Costmap2D) InBounds(mx, my int) bool {
	return mx >= 0 && mx < c.cellsX && my >= 0 && my < c.cellsY
}

// WorldToMap converts world coordinates to grid coordinates. The second
// return is false when the world point falls outside the grid.
func (c *Costmap2D) WorldToMap(wx, wy float64) (int, int, bool) {
	if wx < c.originX || wy < c.originY {
		return 0, 0, false
	}
	mx := int((wx - c.originX) / c.resolution)
	my := int((wy - c.originY) / c.resolution)
	if !c.InBounds(mx, my) {
		return 0, 0, false
	}
	return mx, my, true
}

// WorldToMapEnforceBounds converts world coordinates to grid coordinates,
// snapping out-of-range points to the nearest valid cell. It never fails.
func (c *Costmap2D) WorldToMapEnforceBounds(wx, wy float64) (int, int) {
	mx := c.clampAxis(wx, c.originX, c.cellsX)
	my := c.clampAxis(wy, c.originY, c.cellsY)
	return mx, my
}

func (c *Costmap2D) clampAxis(w, origin float64, cells int) int {
	if w < origin {
		return 0
	}
	i := int((w - origin) / c.resolution)
	if i >= cells {
		return cells - 1
	}
	return i
}

// MapToWorld returns the world coordinates of the cell's centre.
func (c *Costmap2D) MapToWorld(mx, my int) (float64, float64) {
	wx := c.originX + (float64(mx)+0.5)*c.resolution
	wy := c.originY + (float64(my)+0.5)*c.resolution
	return wx, wy
}

// ResetMap sets every cell to the default value.
func (c *Costmap2D) ResetMap() {
	for i := range c.cells {
		c.cells[i] = c.defaultValue
	}
}

// SetConvexPolygonCost writes cost into every cell whose centre lies inside
// the world-frame polygon. Vertices outside the grid are snapped to the
// nearest valid cell, so the written region never exceeds the grid.
func (c *Costmap2D) SetConvexPolygonCost(worldPoly orb.Ring, cost uint8) {
	mapPoly := c.toMapPolygon(worldPoly)
	c.forEachCell(mapPoly, func(mx, my int, inside bool) {
		if inside {
			c.SetCost(mx, my, cost)
		}
	})
}

// ClearOutsideArea writes cost into every cell whose centre lies outside
// the grid-frame polygon; cells inside are preserved unchanged. A
// degenerate polygon (fewer than three distinct vertices, or zero area)
// preserves nothing.
func (c *Costmap2D) ClearOutsideArea(mapPoly orb.Ring, cost uint8) {
	c.forEachCell(mapPoly, func(mx, my int, inside bool) {
		if !inside {
			c.SetCost(mx, my, cost)
		}
	})
}

// toMapPolygon converts world-frame vertices to grid-frame vertices with
// bounds-enforced conversion.
func (c *Costmap2D) toMapPolygon(worldPoly orb.Ring) orb.Ring {
	mapPoly := make(orb.Ring, 0, len(worldPoly))
	for _, v := range worldPoly {
		mx, my := c.WorldToMapEnforceBounds(v.X(), v.Y())
		mapPoly = append(mapPoly, orb.Point{float64(mx), float64(my)})
	}
	return mapPoly
}

// forEachCell visits every cell once, reporting whether the cell's centre
// falls inside the grid-frame polygon. Cells outside the polygon's bounding
// box are reported outside without a containment test.
func (c *Costmap2D) forEachCell(mapPoly orb.Ring, fn func(mx, my int, inside bool)) {
	if len(mapPoly) < 3 {
		for my := 0; my < c.cellsY; my++ {
			for mx := 0; mx < c.cellsX; mx++ {
				fn(mx, my, false)
			}
		}
		return
	}

	bound := mapPoly.Bound()
	for my := 0; my < c.cellsY; my++ {
		for mx := 0; mx < c.cellsX; mx++ {
			centre := orb.Point{float64(mx) + 0.5, float64(my) + 0.5}
			inside := bound.Contains(centre) && geometry.PointInRing(centre, mapPoly)
			fn(mx, my, inside)
		}
	}
}
