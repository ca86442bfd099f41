package control

import "armkernel/kinematics"

// SetJointTarget validates (clamps) js and assigns it as the controller's
// joint target. eraseCoord should be true for externally originated
// commands — it clears any pending coordinate target so the controller
// stops re-deriving the joint target via IK. With eraseCoord=false a
// pending coordinate target is left in place. The controller's own IK
// refresh does not call this; it writes through refreshJointTargetFromIK,
// which likewise leaves the coordinate target in place so it persists
// across ticks while the base is still moving toward it.
//
// SetJointTarget never fails: an out-of-range joint command is clamped,
// never rejected.
func (r *Robot) SetJointTarget(js kinematics.JointState, eraseCoord bool) {
	js.CheckLimits()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.targetState.JointState = js
	if eraseCoord {
		r.targetCoord = nil
	}
}

// SetTargetCoord records a desired end-effector pose. It never fails:
// reachability is not checked here. The joint target is refreshed by the
// controller's IK attempt on its next tick; if the pose turns out to be
// unreachable, the controller silently keeps the previous joint target
// (see Controller.Step).
func (r *Robot) SetTargetCoord(c kinematics.Coord4DOF) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targetCoord = &c
}

// SetTargetBase records a desired base pose for the controller's base PD
// loop to track.
func (r *Robot) SetTargetBase(c kinematics.Coord4DOF) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targetState.BaseState = c
}
