package control

import "armkernel/kinematics"

// JointStateMsg is the payload of the "joint state" outbound event: the
// robot's observed joint configuration and base pose.
type JointStateMsg struct {
	JointState kinematics.JointState `json:"joint_state"`
	BaseState  kinematics.Coord4DOF  `json:"base_state"`
}

// Publisher is the broadcaster's only dependency on the transport layer.
// The websocket/event-bus wire format and fan-out to subscribers is a
// collaborator outside this package's concern; Publisher gives the
// coordination contract a concrete, transport-free seam to test against.
type Publisher interface {
	PublishJointState(JointStateMsg)
	PublishBaseCoords(kinematics.Coord4DOF)
}
