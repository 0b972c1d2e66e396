// Package costmap owns the occupancy grid model for the navigation stack.
//
// Responsibilities: the Costmap2D cell grid and its coordinate conversions,
// the Layer capability interface, the LayeredCostmap plugin composition,
// and heatmap export for grid inspection.
// Key types: Costmap2D, Layer, CostmapLayer, LayeredCostmap.
//
// Mutation primitives do not lock; callers serialise access through the
// grid and master mutex accessors. See the clearing package for the lock
// discipline applied by the clear operations.
package costmap
