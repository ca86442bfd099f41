package control

import (
	"testing"

	"go.viam.com/rdk/logging"

	"armkernel/kinematics"
)

type fakePublisher struct {
	jointStates []JointStateMsg
	baseCoords  []kinematics.Coord4DOF
}

func (f *fakePublisher) PublishJointState(msg JointStateMsg) {
	f.jointStates = append(f.jointStates, msg)
}

func (f *fakePublisher) PublishBaseCoords(c kinematics.Coord4DOF) {
	f.baseCoords = append(f.baseCoords, c)
}

func TestBroadcasterTickPublishesObservedState(t *testing.T) {
	robot := NewRobot()
	robot.commit(kinematics.JointState{ElbowRotationDeg: 30}, kinematics.Coord4DOF{X: 1}, kinematics.JointState{}, kinematics.Coord4DOF{})

	pub := &fakePublisher{}
	b := NewBroadcaster(robot, pub, DefaultConfig(), logging.NewTestLogger(t))

	b.Tick()

	if len(pub.jointStates) != 1 {
		t.Fatalf("expected one joint state publish, got %d", len(pub.jointStates))
	}
	if pub.jointStates[0].JointState.ElbowRotationDeg != 30 {
		t.Errorf("elbow = %v, want 30", pub.jointStates[0].JointState.ElbowRotationDeg)
	}
	if pub.jointStates[0].BaseState.X != 1 {
		t.Errorf("base.X = %v, want 1", pub.jointStates[0].BaseState.X)
	}

	if len(pub.baseCoords) != 1 {
		t.Fatalf("expected one end-effector publish, got %d", len(pub.baseCoords))
	}
	want := kinematics.ForwardKinematics(robot.State().JointState, robot.State().BaseState)
	if pub.baseCoords[0] != want {
		t.Errorf("end-effector pose = %+v, want %+v", pub.baseCoords[0], want)
	}
}

func TestBroadcasterTickMultipleCallsAccumulate(t *testing.T) {
	robot := NewRobot()
	pub := &fakePublisher{}
	b := NewBroadcaster(robot, pub, DefaultConfig(), logging.NewTestLogger(t))

	b.Tick()
	b.Tick()
	b.Tick()

	if len(pub.jointStates) != 3 || len(pub.baseCoords) != 3 {
		t.Fatalf("expected 3 publishes of each, got %d/%d", len(pub.jointStates), len(pub.baseCoords))
	}
}
