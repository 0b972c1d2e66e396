// Package clearing implements selective region clearing over a layered
// costmap: full reset, clearing outside an axis-aligned window around the
// robot, and clearing whitelisted layers outside an oriented region around
// the robot.
//
// Responsibilities: pose resolution, region construction, layer whitelist
// filtering, lock-scoped mutation, and dirty-bounds extension.
// Key types: Service, Params, Pose, PoseProvider.
package clearing
