// Package kinematics implements the value types and forward/inverse
// kinematics for a 3-link planar arm mounted on a rotating, liftable
// mobile base.
package kinematics

// Link lengths and travel limits, in the units the wire protocol uses.
const (
	ElbowLengthM    = 2.0
	WristLengthM    = 1.0
	GripperLengthM  = 0.5
	LiftHeightMM    = 3000.0
	GripperWidthMM  = 300.0

	// FeedforwardFactor compensates the inverse-kinematics target for the
	// base's expected motion during the time it takes the arm to approach
	// a commanded pose.
	FeedforwardFactor = 2.22
)
