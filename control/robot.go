// Package control implements the authoritative shared robot record, the
// fixed-step PD controller that drives it toward operator-supplied
// targets, the command-ingest setters, and the periodic broadcaster.
package control

import (
	"sync"

	"armkernel/kinematics"
)

// Robot is the single authoritative record for one simulated arm. Exactly
// one Robot exists per process; its lifetime spans the process. It is
// protected by a single reader-preferred mutex — ingest and the
// broadcaster take short, O(1) critical sections, and the controller
// takes one read to snapshot inputs and one write to commit outputs per
// tick, plus one more write when an IK refresh updates the joint target,
// matching the teacher's convention of guarding a shared
// device record with a single sync.RWMutex rather than finer-grained
// locking.
type Robot struct {
	mu sync.RWMutex

	state       kinematics.RobotState
	targetState kinematics.RobotState
	targetCoord *kinematics.Coord4DOF
	velocity    kinematics.RobotState
}

// NewRobot returns a Robot initialized to its zero state: every joint and
// base field at its default, no target coord set.
func NewRobot() *Robot {
	return &Robot{}
}

// tickInputs is the bundle of values the controller reads in a single
// critical section at the top of a tick.
type tickInputs struct {
	state       kinematics.RobotState
	targetState kinematics.RobotState
	targetCoord *kinematics.Coord4DOF
	velocity    kinematics.RobotState
}

func (r *Robot) snapshotForTick() tickInputs {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return tickInputs{
		state:       r.state,
		targetState: r.targetState,
		targetCoord: r.targetCoord,
		velocity:    r.velocity,
	}
}

// State returns a copy of the robot's current observed state.
func (r *Robot) State() kinematics.RobotState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// EndEffectorPose returns the current end-effector pose, derived via
// forward kinematics from a snapshot of the observed state. The snapshot
// is taken under a single critical section; FK itself runs outside the
// lock.
func (r *Robot) EndEffectorPose() kinematics.Coord4DOF {
	r.mu.RLock()
	state := r.state
	r.mu.RUnlock()
	return kinematics.ForwardKinematics(state.JointState, state.BaseState)
}

// commit writes the controller's tick outputs back to the record. newJoint
// is passed through CheckLimits before being stored.
func (r *Robot) commit(newJoint kinematics.JointState, newBase kinematics.Coord4DOF, jointVelocity kinematics.JointState, baseVelocity kinematics.Coord4DOF) {
	newJoint.CheckLimits()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.JointState = newJoint
	r.state.BaseState = newBase
	r.velocity.JointState = jointVelocity
	r.velocity.BaseState = baseVelocity
}

// refreshJointTargetFromIK writes an IK solution into the target joint
// state without disturbing targetCoord, the controller's internal
// counterpart to SetJointTarget's externally-originated erase behavior.
func (r *Robot) refreshJointTargetFromIK(joint kinematics.JointState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targetState.JointState = joint
}
