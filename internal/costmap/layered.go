package costmap

import (
	"sync"

	"github.com/paulmach/orb"
)

// LayeredCostmap composes an ordered list of Layers into a single combined
// costmap. The plugin list is owned here; readers iterate a snapshot copy
// so that traversal stays safe while registration changes concurrently.
//
// Dirty bounds record the world-space rectangle downstream repaint logic
// must treat as changed since the last consumption.
type LayeredCostmap struct {
	pluginMu sync.Mutex
	plugins  []Layer

	combined *Costmap2D

	boundsMu  sync.Mutex
	bounds    orb.Bound
	hasBounds bool
}

// NewLayeredCostmap creates a layered costmap with the given combined grid
// and no registered plugins.
func NewLayeredCostmap(combined *Costmap2D) *LayeredCostmap {
	return &LayeredCostmap{combined: combined}
}

// Mutex returns the master lock covering whole-map operations. The master
// lock is the combined grid's own mutex, so whole-map operations and
// direct combined-grid mutations serialise on the same lock.
func (lc *LayeredCostmap) Mutex() *sync.Mutex { return lc.combined.Mutex() }

// Combined returns the merged costmap.
func (lc *LayeredCostmap) Combined() *Costmap2D { return lc.combined }

// DefaultValue returns the combined map's declared default cost, the value
// reset operations write into cleared cells.
func (lc *LayeredCostmap) DefaultValue() uint8 { return lc.combined.DefaultValue() }

// AddPlugin appends a layer to the registration order.
func (lc *LayeredCostmap) AddPlugin(l Layer) {
	lc.pluginMu.Lock()
	lc.plugins = append(lc.plugins, l)
	lc.pluginMu.Unlock()
}

// Plugins returns a snapshot copy of the registered layers in registration
// order. The copy is safe to traverse while registration changes.
func (lc *LayeredCostmap) Plugins() []Layer {
	lc.pluginMu.Lock()
	defer lc.pluginMu.Unlock()
	out := make([]Layer, len(lc.plugins))
	copy(out, lc.plugins)
	return out
}

// ResetLayers resets every registered layer and the combined grid to the
// default value. Callers hold Mutex() for the full duration; each layer's
// own lock is additionally taken around its reset so the write serialises
// with that layer's update pipeline. Layers are reset one at a time, never
// holding two layer locks at once.
func (lc *LayeredCostmap) ResetLayers() {
	reset := lc.DefaultValue()
	for _, layer := range lc.Plugins() {
		mu := layer.Mutex()
		mu.Lock()
		// A degenerate polygon preserves nothing, so this clears the
		// layer's entire grid through its own capability set.
		layer.ClearArea(nil, reset)
		mu.Unlock()
	}
	lc.combined.ResetMap()
}

// AddExtraBounds extends the dirty bounds to cover the given world-space
// rectangle.
func (lc *LayeredCostmap) AddExtraBounds(minX, minY, maxX, maxY float64) {
	b := orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}}
	lc.boundsMu.Lock()
	if lc.hasBounds {
		lc.bounds = lc.bounds.Union(b)
	} else {
		lc.bounds = b
		lc.hasBounds = true
	}
	lc.boundsMu.Unlock()
}

// ExtraBounds returns the accumulated dirty bounds. The second return is
// false when no mutation has extended the bounds since the last clear.
func (lc *LayeredCostmap) ExtraBounds() (orb.Bound, bool) {
	lc.boundsMu.Lock()
	defer lc.boundsMu.Unlock()
	return lc.bounds, lc.hasBounds
}

// ClearExtraBounds resets the dirty bounds after downstream consumption.
func (lc *LayeredCostmap) ClearExtraBounds() {
	lc.boundsMu.Lock()
	lc.hasBounds = false
	lc.bounds = orb.Bound{}
	lc.boundsMu.Unlock()
}
