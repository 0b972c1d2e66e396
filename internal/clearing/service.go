package clearing

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	"github.com/ROBOTIS-move/navigation2/internal/costmap"
	"github.com/ROBOTIS-move/navigation2/internal/geometry"
	"github.com/ROBOTIS-move/navigation2/internal/monitoring"
)

// Params is the clearing service's process-lifetime configuration. It is
// copied at construction and never mutated afterwards.
type Params struct {
	// ClearableLayers is the whitelist of leaf layer names eligible for
	// selective clearing. Layers not listed are never touched by
	// ClearExceptRegion.
	ClearableLayers []string

	// ForwardExtent replaces the symmetric half-distance on the
	// robot-forward edges of the preserved oriented region, in metres.
	// Zero keeps the region symmetric. A positive value biases
	// preservation toward the robot's front, e.g. to keep detections
	// just ahead of the footprint while the sides are trimmed tight.
	ForwardExtent float64
}

// Service implements the three clearing operations over a layered costmap.
// All operations run synchronously on the calling goroutine and report
// success or failure through their error return; a failed operation leaves
// the map unmutated, with the one documented exception of a pose loss
// part-way through ClearExceptRegion's layer iteration.
type Service struct {
	layered *costmap.LayeredCostmap
	poses   PoseProvider

	clearableLayers []string
	forwardExtent   float64
	resetValue      uint8
}

// NewService creates a clearing service over the given map. The reset value
// is captured once from the map's declared default cost: the value its
// layers use to represent unknown/unobserved space.
func NewService(layered *costmap.LayeredCostmap, poses PoseProvider, params Params) *Service {
	whitelist := make([]string, len(params.ClearableLayers))
	copy(whitelist, params.ClearableLayers)
	return &Service{
		layered:         layered,
		poses:           poses,
		clearableLayers: whitelist,
		forwardExtent:   params.ForwardExtent,
		resetValue:      layered.DefaultValue(),
	}
}

// ClearEntirely resets every layer and the combined grid to the unknown
// state. The master lock is held for the full duration; no pose is needed.
func (s *Service) ClearEntirely() error {
	s.layered.Mutex().Lock()
	defer s.layered.Mutex().Unlock()
	s.layered.ResetLayers()
	return nil
}

// ClearAroundRobot clears the combined map outside an axis-aligned window
// of the given size centred on the robot; cells inside the window keep
// their value. A zero window size on either axis means "clear everything"
// and delegates to ClearEntirely. On pose failure nothing is mutated.
func (s *Service) ClearAroundRobot(windowSizeX, windowSizeY float64) error {
	if windowSizeX == 0 || windowSizeY == 0 {
		return s.ClearEntirely()
	}

	pose, err := s.poses.GetRobotPose()
	if err != nil {
		monitoring.Logf("cannot clear around robot: %v", err)
		return fmt.Errorf("cannot clear around robot: %w", err)
	}

	window := aroundRobotWindow(pose, windowSizeX, windowSizeY)
	combined := s.layered.Combined()
	mapPoly := make(orb.Ring, 0, len(window))
	for _, v := range window {
		mx, my := combined.WorldToMapEnforceBounds(v.X(), v.Y())
		mapPoly = append(mapPoly, orb.Point{float64(mx), float64(my)})
	}

	// The master lock is the combined grid's own mutex, so this mutation
	// serialises with full resets as well as direct combined-map writers.
	s.layered.Mutex().Lock()
	combined.ClearOutsideArea(mapPoly, s.resetValue)
	s.layered.Mutex().Unlock()

	ox, oy := combined.OriginX(), combined.OriginY()
	s.layered.AddExtraBounds(ox, oy, ox+combined.SizeMetersX(), oy+combined.SizeMetersY())
	return nil
}

// ClearExceptRegion clears every whitelisted layer outside an oriented
// region of size resetDistance around the robot, preserving nearby
// detections. Layers are visited in registration order; non-whitelisted
// layers are left untouched. On pose failure nothing is mutated. The pose
// is re-resolved per layer, so a pose loss mid-iteration skips the
// remaining mutation for that layer only, an accepted partial outcome.
func (s *Service) ClearExceptRegion(resetDistance float64) error {
	if _, err := s.poses.GetRobotPose(); err != nil {
		monitoring.Logf("cannot clear except region: %v", err)
		return fmt.Errorf("cannot clear except region: %w", err)
	}

	for _, layer := range s.layered.Plugins() {
		if !s.isClearable(normalizeLayerName(layer.Name())) {
			continue
		}
		s.clearLayerExceptRegion(layer, resetDistance)
	}
	return nil
}

// clearLayerExceptRegion clears one layer outside the oriented region. The
// layer's own lock is held only around the mutation; the map's dirty
// bounds are extended over the layer's full extent afterwards so
// downstream repaint logic treats the whole layer as changed.
func (s *Service) clearLayerExceptRegion(layer costmap.Layer, resetDistance float64) {
	pose, err := s.poses.GetRobotPose()
	if err != nil {
		monitoring.Logf("skipping clear of layer %q: %v", layer.Name(), err)
		return
	}

	region := orientedRegion(pose, resetDistance, s.forwardExtent)
	mapPoly := make(orb.Ring, 0, len(region))
	for _, v := range region {
		mx, my := layer.WorldToGridEnforceBounds(v.X(), v.Y())
		mapPoly = append(mapPoly, orb.Point{float64(mx), float64(my)})
	}

	mu := layer.Mutex()
	mu.Lock()
	layer.ClearArea(mapPoly, s.resetValue)
	mu.Unlock()

	ox, oy := layer.OriginX(), layer.OriginY()
	s.layered.AddExtraBounds(ox, oy, ox+layer.SizeMetersX(), oy+layer.SizeMetersY())
}

// isClearable reports whether the leaf layer name is whitelisted. The
// whitelist is small, a linear scan is fine.
func (s *Service) isClearable(leafName string) bool {
	for _, name := range s.clearableLayers {
		if name == leafName {
			return true
		}
	}
	return false
}

// normalizeLayerName truncates a hierarchical layer name to the substring
// after the last slash; names without a slash pass through unchanged.
func normalizeLayerName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// aroundRobotWindow builds the axis-aligned clearing window centred on the
// pose. Vertex order: bottom-left, bottom-right, top-right, top-left.
func aroundRobotWindow(pose Pose, windowSizeX, windowSizeY float64) orb.Ring {
	hx := windowSizeX / 2
	hy := windowSizeY / 2
	return orb.Ring{
		{pose.X - hx, pose.Y - hy},
		{pose.X + hx, pose.Y - hy},
		{pose.X + hx, pose.Y + hy},
		{pose.X - hx, pose.Y + hy},
	}
}

// orientedRegion builds the preserved rectangle around the pose, rotated by
// the robot's heading. The region is symmetric at halfDist on every edge
// unless forwardExtent is positive, in which case the robot-forward edges
// sit at forwardExtent instead. Non-positive resetDistance collapses the
// region to the pose point, which preserves nothing.
func orientedRegion(pose Pose, resetDistance, forwardExtent float64) orb.Ring {
	if resetDistance < 0 {
		resetDistance = 0
	}
	halfDist := resetDistance / 2
	forward := halfDist
	if forwardExtent > 0 {
		forward = forwardExtent
	}

	pivot := orb.Point{pose.X, pose.Y}
	corners := orb.Ring{
		{pose.X - halfDist, pose.Y - halfDist},
		{pose.X + forward, pose.Y - halfDist},
		{pose.X + forward, pose.Y + halfDist},
		{pose.X - halfDist, pose.Y + halfDist},
	}
	for i, c := range corners {
		corners[i] = geometry.RotateAround(pivot, c, pose.Yaw)
	}
	return corners
}
