package control

import (
	"testing"

	"armkernel/kinematics"
)

func TestSetJointTargetClampsAndErasesCoordWhenRequested(t *testing.T) {
	r := NewRobot()
	r.SetTargetCoord(kinematics.Coord4DOF{X: 1})

	r.SetJointTarget(kinematics.JointState{
		SwingRotationDeg: 540,
		ElbowRotationDeg: -200,
		GripperOpenMM:    400,
	}, true)

	got := r.snapshotForTick()
	if got.targetState.JointState.SwingRotationDeg != 180 {
		t.Errorf("swing = %v, want 180", got.targetState.JointState.SwingRotationDeg)
	}
	if got.targetState.JointState.ElbowRotationDeg != 160 {
		t.Errorf("elbow = %v, want 160", got.targetState.JointState.ElbowRotationDeg)
	}
	if got.targetState.JointState.GripperOpenMM != kinematics.GripperWidthMM {
		t.Errorf("gripper = %v, want %v", got.targetState.JointState.GripperOpenMM, kinematics.GripperWidthMM)
	}
	if got.targetCoord != nil {
		t.Errorf("expected targetCoord to be erased")
	}
}

func TestSetJointTargetPreservesCoordWhenNotErasing(t *testing.T) {
	r := NewRobot()
	coord := kinematics.Coord4DOF{X: 1, Y: 2}
	r.SetTargetCoord(coord)

	r.SetJointTarget(kinematics.JointState{SwingRotationDeg: 10}, false)

	got := r.snapshotForTick()
	if got.targetCoord == nil || *got.targetCoord != coord {
		t.Errorf("expected targetCoord to be preserved, got %+v", got.targetCoord)
	}
}

func TestSetTargetCoordNeverFails(t *testing.T) {
	r := NewRobot()
	r.SetTargetCoord(kinematics.Coord4DOF{X: 1000, Y: 1000})

	got := r.snapshotForTick()
	if got.targetCoord == nil || got.targetCoord.X != 1000 {
		t.Errorf("expected unreachable coord to still be recorded, got %+v", got.targetCoord)
	}
}

func TestSetTargetBase(t *testing.T) {
	r := NewRobot()
	r.SetTargetBase(kinematics.Coord4DOF{X: 0.5, Theta: 45})

	got := r.snapshotForTick()
	if got.targetState.BaseState.X != 0.5 || got.targetState.BaseState.Theta != 45 {
		t.Errorf("base target not recorded: %+v", got.targetState.BaseState)
	}
}
