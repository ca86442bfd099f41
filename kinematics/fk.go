package kinematics

import (
	"math"

	"github.com/golang/geo/r3"
)

// ForwardKinematics derives the end-effector pose reached by joint from
// base. It is total: every input, including out-of-range angles, produces
// a defined output. theta is the global yaw of link 3, reported in degrees
// and not re-wrapped — FK is a pure reporter, not a normalizer.
func ForwardKinematics(joint JointState, base Coord4DOF) Coord4DOF {
	yaw1 := degToRad(base.Theta + joint.SwingRotationDeg)
	yaw2 := yaw1 + degToRad(joint.ElbowRotationDeg)
	yaw3 := yaw2 + degToRad(joint.WristRotationDeg)

	origin := r3.Vector{X: base.X, Y: base.Y, Z: base.Z + joint.LiftElevationMM/1000.0}
	elbow := r3.Vector{X: ElbowLengthM * math.Cos(yaw1), Y: ElbowLengthM * math.Sin(yaw1)}
	wrist := r3.Vector{X: WristLengthM * math.Cos(yaw2), Y: WristLengthM * math.Sin(yaw2)}
	gripper := r3.Vector{X: GripperLengthM * math.Cos(yaw3), Y: GripperLengthM * math.Sin(yaw3)}

	tip := origin.Add(elbow).Add(wrist).Add(gripper)

	return Coord4DOF{
		X:     tip.X,
		Y:     tip.Y,
		Z:     tip.Z,
		Theta: radToDeg(yaw3),
	}
}
