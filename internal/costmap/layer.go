package costmap

import (
	"sync"

	"github.com/paulmach/orb"
)

// Layer is the capability set the clearing operations need from a cost
// layer. Concrete layer kinds (sensor-derived, static, inflation) sit
// behind this interface; the clearing code never constructs or destroys
// them.
//
// ClearArea and the conversion methods follow the same lock discipline as
// Costmap2D: they do not lock, callers hold Mutex() around mutation.
type Layer interface {
	// Name returns the layer's registered name, possibly hierarchical
	// ("global_costmap/obstacle_layer").
	Name() string

	// Mutex returns the lock serialising this layer against its own
	// sensor-update pipeline.
	Mutex() *sync.Mutex

	// WorldToGridEnforceBounds converts a world coordinate to grid
	// indices, snapping out-of-range points to the nearest valid cell.
	WorldToGridEnforceBounds(wx, wy float64) (mx, my int)

	// ClearArea sets every cell outside the grid-frame polygon to cost,
	// preserving cells inside unchanged. A degenerate polygon preserves
	// nothing.
	ClearArea(mapPoly orb.Ring, cost uint8)

	// OriginX returns the world X coordinate of the layer's lower-left corner.
	OriginX() float64
	// OriginY returns the world Y coordinate of the layer's lower-left corner.
	OriginY() float64
	// SizeMetersX returns the layer's width in metres.
	SizeMetersX() float64
	// SizeMetersY returns the layer's height in metres.
	SizeMetersY() float64
}

// CostmapLayer is a named cost layer backed by its own Costmap2D grid.
type CostmapLayer struct {
	*Costmap2D
	name string
}

// NewCostmapLayer wraps grid as a layer under the given (possibly
// hierarchical) name.
func NewCostmapLayer(name string, grid *Costmap2D) *CostmapLayer {
	return &CostmapLayer{Costmap2D: grid, name: name}
}

// Name returns the layer's registered name.
func (l *CostmapLayer) Name() string { return l.name }

// Grid returns the layer's backing grid.
func (l *CostmapLayer) Grid() *Costmap2D { return l.Costmap2D }

// WorldToGridEnforceBounds converts world coordinates with clamping.
func (l *CostmapLayer) WorldToGridEnforceBounds(wx, wy float64) (int, int) {
	return l.WorldToMapEnforceBounds(wx, wy)
}

// ClearArea sets every cell outside mapPoly to cost.
func (l *CostmapLayer) ClearArea(mapPoly orb.Ring, cost uint8) {
	l.ClearOutsideArea(mapPoly, cost)
}
