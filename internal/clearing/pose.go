package clearing

import (
	"errors"
	"sync"
)

// ErrNoPose is returned by pose providers that cannot supply a current
// robot pose. Clearing operations abort without mutation when they see it.
var ErrNoPose = errors.New("robot pose unavailable")

// Pose is a read-only snapshot of the robot's world position and heading
// at request time.
type Pose struct {
	X   float64 // metres
	Y   float64 // metres
	Yaw float64 // radians, counter-clockwise from +X
}

// PoseProvider supplies the current robot pose. Pose resolution may fail
// (localisation loss, transform timeout); that is a failure, not an
// absence-of-default.
type PoseProvider interface {
	GetRobotPose() (Pose, error)
}

// StaticPoseProvider is a settable PoseProvider for binaries and tests.
// It reports ErrNoPose until a pose has been set.
type StaticPoseProvider struct {
	mu   sync.Mutex
	pose Pose
	ok   bool
}

// NewStaticPoseProvider returns a provider with no pose set.
func NewStaticPoseProvider() *StaticPoseProvider {
	return &StaticPoseProvider{}
}

// SetPose records the current robot pose.
func (p *StaticPoseProvider) SetPose(pose Pose) {
	p.mu.Lock()
	p.pose = pose
	p.ok = true
	p.mu.Unlock()
}

// ClearPose drops the recorded pose, simulating localisation loss.
func (p *StaticPoseProvider) ClearPose() {
	p.mu.Lock()
	p.ok = false
	p.mu.Unlock()
}

// GetRobotPose returns the recorded pose or ErrNoPose.
func (p *StaticPoseProvider) GetRobotPose() (Pose, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ok {
		return Pose{}, ErrNoPose
	}
	return p.pose, nil
}
