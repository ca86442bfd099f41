package control

import (
	"context"
	"time"

	"go.viam.com/rdk/logging"

	"armkernel/kinematics"
)

// Controller is the fixed-period cooperative task that drives the shared
// Robot toward its operator-supplied targets. Each tick (see Step) re-runs
// inverse kinematics for any pending coordinate target, then runs a PD
// update producing base velocity and joint acceleration, integrates,
// clamps, and commits.
type Controller struct {
	robot  *Robot
	cfg    *Config
	logger logging.Logger
}

// NewController constructs a Controller for robot using the gains and
// limits in cfg.
func NewController(robot *Robot, cfg *Config, logger logging.Logger) *Controller {
	return &Controller{robot: robot, cfg: cfg, logger: logger}
}

// Step runs exactly one control-loop tick with the given timestep. It is
// exposed separately from Run so scenario tests can advance simulated
// time in milliseconds of wall-clock time instead of sleeping for the
// multi-second settling times the specification's literal scenarios call
// for.
func (c *Controller) Step(dt time.Duration) {
	dtS := dt.Seconds()
	in := c.robot.snapshotForTick()

	targetJoint := c.refreshIKTarget(in)

	newBase, baseVelocity := c.stepBase(in, dtS)
	newJoint, jointVelocity := c.stepJoints(in, targetJoint, dtS)

	c.robot.commit(newJoint, newBase, jointVelocity, baseVelocity)
}

// refreshIKTarget implements Step A: if a coordinate target is pending, it
// re-runs IK against the current base pose (feed-forward first, falling
// back to no feed-forward) to refresh the joint target, returning the
// joint target that the rest of this tick should track. Gripper is never
// touched by IK; it is carried over from the existing joint target.
func (c *Controller) refreshIKTarget(in tickInputs) kinematics.JointState {
	targetJoint := in.targetState.JointState
	if in.targetCoord == nil {
		return targetJoint
	}

	currentEE := kinematics.ForwardKinematics(in.state.JointState, in.state.BaseState)

	joint, ok := kinematics.InverseKinematics(*in.targetCoord, in.state.BaseState, in.velocity.BaseState, currentEE, true)
	if !ok {
		c.logger.Debugf("feed-forward ik unreachable for target %+v, retrying without feed-forward", *in.targetCoord)
		joint, ok = kinematics.InverseKinematics(*in.targetCoord, in.state.BaseState, in.velocity.BaseState, currentEE, false)
	}
	if !ok {
		c.logger.Debugf("target %+v unreachable, keeping previous joint target", *in.targetCoord)
		return targetJoint
	}

	joint.GripperOpenMM = targetJoint.GripperOpenMM
	c.robot.refreshJointTargetFromIK(joint)
	return joint
}

// stepBase implements Step B: a velocity-level PD loop on the base pose.
func (c *Controller) stepBase(in tickInputs, dtS float64) (kinematics.Coord4DOF, kinematics.Coord4DOF) {
	b := in.state.BaseState
	tb := in.targetState.BaseState

	err := kinematics.Coord4DOF{
		X:     tb.X - b.X,
		Y:     tb.Y - b.Y,
		Z:     tb.Z - b.Z,
		Theta: kinematics.ShortestAngleDiff(tb.Theta, b.Theta),
	}

	p := applyLinearAngleGain(err, c.cfg.BaseLinearP, c.cfg.BaseAngleP)
	v := p.Sub(applyLinearAngleGain(p, c.cfg.BaseLinearD, c.cfg.BaseAngleD))

	v.X = kinematics.Clamp(v.X, c.cfg.MaxBaseLinearVel)
	v.Y = kinematics.Clamp(v.Y, c.cfg.MaxBaseLinearVel)
	v.Z = kinematics.Clamp(v.Z, c.cfg.MaxBaseLinearVel)
	v.Theta = kinematics.Clamp(v.Theta, c.cfg.MaxBaseAngleVel)

	newBase := b.Add(v.Scale(dtS))
	return newBase, v
}

func applyLinearAngleGain(c kinematics.Coord4DOF, linearGain, angleGain float64) kinematics.Coord4DOF {
	return kinematics.Coord4DOF{X: c.X * linearGain, Y: c.Y * linearGain, Z: c.Z * linearGain, Theta: c.Theta * angleGain}
}

// stepJoints implements Step C: an acceleration-level PD loop on the joint
// state, with per-axis accel/velocity clamps inversely scaled by link
// length so that all three rotational joints contribute equally to
// end-effector speed.
func (c *Controller) stepJoints(in tickInputs, targetJoint kinematics.JointState, dtS float64) (kinematics.JointState, kinematics.JointState) {
	joint := in.state.JointState
	velocity := in.velocity.JointState

	err := kinematics.ClampedSub(targetJoint, joint)

	accel := kinematics.JointState{
		SwingRotationDeg: err.SwingRotationDeg*c.cfg.AngleP - velocity.SwingRotationDeg*c.cfg.AngleD,
		LiftElevationMM:  err.LiftElevationMM*c.cfg.LinearP - velocity.LiftElevationMM*c.cfg.LinearD,
		ElbowRotationDeg: err.ElbowRotationDeg*c.cfg.AngleP - velocity.ElbowRotationDeg*c.cfg.AngleD,
		WristRotationDeg: err.WristRotationDeg*c.cfg.AngleP - velocity.WristRotationDeg*c.cfg.AngleD,
		GripperOpenMM:    err.GripperOpenMM*c.cfg.LinearP - velocity.GripperOpenMM*c.cfg.LinearD,
	}

	accel.SwingRotationDeg = kinematics.Clamp(accel.SwingRotationDeg, c.cfg.MaxAngularAccel/kinematics.ElbowLengthM)
	accel.ElbowRotationDeg = kinematics.Clamp(accel.ElbowRotationDeg, c.cfg.MaxAngularAccel)
	accel.WristRotationDeg = kinematics.Clamp(accel.WristRotationDeg, c.cfg.MaxAngularAccel/kinematics.GripperLengthM)
	accel.LiftElevationMM = kinematics.Clamp(accel.LiftElevationMM, c.cfg.MaxLinearAccel)
	accel.GripperOpenMM = kinematics.Clamp(accel.GripperOpenMM, c.cfg.MaxLinearAccel)

	newVelocity := velocity.Add(accel.Scale(dtS))
	newVelocity.SwingRotationDeg = kinematics.Clamp(newVelocity.SwingRotationDeg, c.cfg.MaxAngularVelocity/kinematics.ElbowLengthM)
	newVelocity.ElbowRotationDeg = kinematics.Clamp(newVelocity.ElbowRotationDeg, c.cfg.MaxAngularVelocity)
	newVelocity.WristRotationDeg = kinematics.Clamp(newVelocity.WristRotationDeg, c.cfg.MaxAngularVelocity/kinematics.GripperLengthM)
	newVelocity.LiftElevationMM = kinematics.Clamp(newVelocity.LiftElevationMM, c.cfg.MaxLinearVelocity)
	newVelocity.GripperOpenMM = kinematics.Clamp(newVelocity.GripperOpenMM, c.cfg.MaxLinearVelocity)

	newJoint := joint.Add(newVelocity.Scale(dtS))
	return newJoint, newVelocity
}

// Run ticks the controller at its configured period until ctx is
// canceled. A tick that overruns its period runs the next tick
// immediately, without accumulating catch-up — integration always uses
// the nominal period, never measured elapsed time, so an overrun simply
// makes the simulation run slower than real time rather than unstable.
func (c *Controller) Run(ctx context.Context) {
	period := c.cfg.ControllerPeriod()
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	c.logger.Info("controller started")
	defer c.logger.Info("controller stopped")

	for {
		select {
		case <-ticker.C:
			start := time.Now()
			c.Step(period)
			if elapsed := time.Since(start); elapsed > period {
				c.logger.Warnf("controller tick overran period: took %s, budget %s", elapsed, period)
			}
		case <-ctx.Done():
			return
		}
	}
}
