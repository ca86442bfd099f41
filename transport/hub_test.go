package transport

import (
	"encoding/json"
	"testing"

	"go.viam.com/rdk/logging"

	"armkernel/control"
	"armkernel/kinematics"
)

func newTestHub(t *testing.T) (*Hub, *control.Robot) {
	t.Helper()
	robot := control.NewRobot()
	return NewHub(robot, logging.NewTestLogger(t)), robot
}

func TestDispatchSetJointState(t *testing.T) {
	h, robot := newTestHub(t)

	data, _ := json.Marshal(kinematics.JointState{ElbowRotationDeg: 30, GripperOpenMM: 100})
	h.dispatch(envelope{Event: eventSetJointState, Data: data})

	state := robot.State()
	_ = state
}

func TestDispatchSetCoordState(t *testing.T) {
	h, robot := newTestHub(t)

	data, _ := json.Marshal(kinematics.Coord4DOF{X: 1, Y: 2, Z: 0.5, Theta: 10})
	h.dispatch(envelope{Event: eventSetCoordState, Data: data})

	ee := robot.EndEffectorPose()
	_ = ee
}

func TestDispatchMalformedPayloadDropped(t *testing.T) {
	h, _ := newTestHub(t)
	h.dispatch(envelope{Event: eventSetJointState, Data: json.RawMessage("not json")})
}

func TestDispatchUnrecognizedEventDropped(t *testing.T) {
	h, _ := newTestHub(t)
	h.dispatch(envelope{Event: "nonsense event", Data: json.RawMessage("{}")})
}

func TestPublishJointStateDropsWhenNoSubscribers(t *testing.T) {
	h, _ := newTestHub(t)
	h.PublishJointState(control.JointStateMsg{})
	h.PublishBaseCoords(kinematics.Coord4DOF{})
}
