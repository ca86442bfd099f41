package kinematics

import "math"

// InverseKinematics resolves a target end-effector pose to a joint state,
// assuming the arm is mounted on base which is itself moving at
// baseVelocity (x/y/z in m/s, theta in deg/s). current is the arm's
// presently observed end-effector pose, needed only to compute the
// feed-forward velocity terms.
//
// When feedForward is true the solver pre-compensates the target
// orientation and the planar anchor point for the base's expected motion
// during the approach (scaled by FeedforwardFactor); when false it solves
// against the base's instantaneous pose with no compensation.
//
// It returns (JointState{}, false) when the target is unreachable: the
// planar 2R subproblem's reach exceeds ElbowLengthM+WristLengthM, or either
// law-of-cosines argument falls outside [-1, 1]. GripperOpenMM is left at
// its zero value; callers must preserve the previous gripper target
// themselves, matching the distilled spec's "(unchanged)" note.
func InverseKinematics(target, base, baseVelocity, current Coord4DOF, feedForward bool) (JointState, bool) {
	thetaEffDeg := target.Theta
	if feedForward {
		thetaEffDeg = LimitAngle(thetaEffDeg - FeedforwardFactor*baseVelocity.Theta)
	}
	thetaEffRad := degToRad(thetaEffDeg)

	var wx, wy, wz float64
	if feedForward {
		vxEff := baseVelocity.X - current.Y*degToRad(baseVelocity.Theta)
		vyEff := baseVelocity.Y + current.X*degToRad(baseVelocity.Theta)
		wx = target.X - base.X - FeedforwardFactor*vxEff - GripperLengthM*math.Cos(thetaEffRad)
		wy = target.Y - base.Y - FeedforwardFactor*vyEff - GripperLengthM*math.Sin(thetaEffRad)
		wz = target.Z - base.Z - FeedforwardFactor*baseVelocity.Z
	} else {
		wx = target.X - base.X - GripperLengthM*math.Cos(thetaEffRad)
		wy = target.Y - base.Y - GripperLengthM*math.Sin(thetaEffRad)
		wz = target.Z - base.Z
	}

	baseAngle := math.Atan2(wy, wx)
	c := math.Hypot(wx, wy)
	if c > ElbowLengthM+WristLengthM {
		return JointState{}, false
	}

	elbow := -(math.Pi - math.Acos((c*c-ElbowLengthM*ElbowLengthM-WristLengthM*WristLengthM)/(-2*ElbowLengthM*WristLengthM)))
	gamma := math.Acos((WristLengthM*WristLengthM - ElbowLengthM*ElbowLengthM - c*c) / (-2 * ElbowLengthM * c))
	if math.IsNaN(elbow) || math.IsNaN(gamma) {
		return JointState{}, false
	}

	swingWorld := baseAngle + gamma

	joint := JointState{
		SwingRotationDeg: radToDeg(swingWorld) - base.Theta,
		ElbowRotationDeg: radToDeg(elbow),
		WristRotationDeg: radToDeg(thetaEffRad) - radToDeg(elbow) - radToDeg(swingWorld),
		LiftElevationMM:  wz * 1000.0,
	}
	joint.CheckLimits()
	return joint, true
}
