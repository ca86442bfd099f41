package kinematics

// JointState holds the five scalar degrees of freedom of the arm: three
// revolute joints (swing, elbow, wrist), one prismatic lift, and the
// gripper jaw separation.
type JointState struct {
	SwingRotationDeg float64 `json:"swing_rotation_deg"`
	LiftElevationMM  float64 `json:"lift_elevation_mm"`
	ElbowRotationDeg float64 `json:"elbow_rotation_deg"`
	WristRotationDeg float64 `json:"wrist_rotation_deg"`
	GripperOpenMM    float64 `json:"gripper_open_mm"`
}

// CheckLimits wraps the angular fields into (-180, 180] and saturates the
// linear fields to their closed travel intervals. It mutates js in place,
// matching the teacher's "validate and clamp, never reject" convention for
// joint commands.
func (js *JointState) CheckLimits() {
	js.SwingRotationDeg = LimitAngle(js.SwingRotationDeg)
	js.ElbowRotationDeg = LimitAngle(js.ElbowRotationDeg)
	js.WristRotationDeg = LimitAngle(js.WristRotationDeg)
	js.LiftElevationMM = saturate(js.LiftElevationMM, 0, LiftHeightMM)
	js.GripperOpenMM = saturate(js.GripperOpenMM, 0, GripperWidthMM)
}

func saturate(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Add returns the componentwise sum of js and other.
func (js JointState) Add(other JointState) JointState {
	return JointState{
		SwingRotationDeg: js.SwingRotationDeg + other.SwingRotationDeg,
		LiftElevationMM:  js.LiftElevationMM + other.LiftElevationMM,
		ElbowRotationDeg: js.ElbowRotationDeg + other.ElbowRotationDeg,
		WristRotationDeg: js.WristRotationDeg + other.WristRotationDeg,
		GripperOpenMM:    js.GripperOpenMM + other.GripperOpenMM,
	}
}

// Sub returns the componentwise difference js - other.
func (js JointState) Sub(other JointState) JointState {
	return JointState{
		SwingRotationDeg: js.SwingRotationDeg - other.SwingRotationDeg,
		LiftElevationMM:  js.LiftElevationMM - other.LiftElevationMM,
		ElbowRotationDeg: js.ElbowRotationDeg - other.ElbowRotationDeg,
		WristRotationDeg: js.WristRotationDeg - other.WristRotationDeg,
		GripperOpenMM:    js.GripperOpenMM - other.GripperOpenMM,
	}
}

// Scale returns every field of js multiplied by k, the "val_mul" operator
// used to apply a velocity over a timestep.
func (js JointState) Scale(k float64) JointState {
	return JointState{
		SwingRotationDeg: js.SwingRotationDeg * k,
		LiftElevationMM:  js.LiftElevationMM * k,
		ElbowRotationDeg: js.ElbowRotationDeg * k,
		WristRotationDeg: js.WristRotationDeg * k,
		GripperOpenMM:    js.GripperOpenMM * k,
	}
}

// ClampedSub returns target - current, using ShortestAngleDiff on the three
// angular axes (swing, elbow, wrist) and plain subtraction on the two
// linear axes (lift, gripper). This is the error term fed to the joint PD
// controller.
func ClampedSub(target, current JointState) JointState {
	return JointState{
		SwingRotationDeg: ShortestAngleDiff(target.SwingRotationDeg, current.SwingRotationDeg),
		LiftElevationMM:  target.LiftElevationMM - current.LiftElevationMM,
		ElbowRotationDeg: ShortestAngleDiff(target.ElbowRotationDeg, current.ElbowRotationDeg),
		WristRotationDeg: ShortestAngleDiff(target.WristRotationDeg, current.WristRotationDeg),
		GripperOpenMM:    target.GripperOpenMM - current.GripperOpenMM,
	}
}

// Coord4DOF is a world-frame pose, used both for a base pose and for an
// end-effector pose. (x, y, z) are in meters, theta is in degrees.
type Coord4DOF struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Theta float64 `json:"theta"`
}

// Add returns the componentwise sum of c and other.
func (c Coord4DOF) Add(other Coord4DOF) Coord4DOF {
	return Coord4DOF{X: c.X + other.X, Y: c.Y + other.Y, Z: c.Z + other.Z, Theta: c.Theta + other.Theta}
}

// Sub returns the componentwise difference c - other.
func (c Coord4DOF) Sub(other Coord4DOF) Coord4DOF {
	return Coord4DOF{X: c.X - other.X, Y: c.Y - other.Y, Z: c.Z - other.Z, Theta: c.Theta - other.Theta}
}

// Scale returns every field of c multiplied by k.
func (c Coord4DOF) Scale(k float64) Coord4DOF {
	return Coord4DOF{X: c.X * k, Y: c.Y * k, Z: c.Z * k, Theta: c.Theta * k}
}

// RobotState is the full observable/target state of the robot: its joint
// configuration plus its mobile base pose.
type RobotState struct {
	JointState JointState `json:"joint_state"`
	BaseState  Coord4DOF  `json:"base_state"`
}
