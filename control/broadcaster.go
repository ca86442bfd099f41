package control

import (
	"context"
	"time"

	"go.viam.com/rdk/logging"

	"armkernel/kinematics"
)

// Broadcaster periodically snapshots the robot's observed state and
// publishes it to a Publisher. The read of robot state is a single
// critical section; publishing happens outside the lock so a slow
// subscriber cannot stall the next broadcaster tick or block the
// controller.
type Broadcaster struct {
	robot     *Robot
	publisher Publisher
	period    time.Duration
	logger    logging.Logger
}

// NewBroadcaster constructs a Broadcaster for robot, publishing to pub at
// the cadence in cfg.
func NewBroadcaster(robot *Robot, pub Publisher, cfg *Config, logger logging.Logger) *Broadcaster {
	return &Broadcaster{
		robot:     robot,
		publisher: pub,
		period:    cfg.BroadcastPeriod(),
		logger:    logger,
	}
}

// Tick performs one broadcast cycle: a single snapshot of state, with FK
// derived from that same snapshot outside the lock, so the "joint state"
// and "base coords" messages always describe the same tick.
func (b *Broadcaster) Tick() {
	state := b.robot.State()
	coords := kinematics.ForwardKinematics(state.JointState, state.BaseState)

	b.publisher.PublishJointState(JointStateMsg{JointState: state.JointState, BaseState: state.BaseState})
	b.publisher.PublishBaseCoords(coords)
}

// Run ticks at the broadcaster's configured period until ctx is canceled.
// Cancellation is observed at the ticker's select, the only suspension
// point in the loop.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.period)
	defer ticker.Stop()

	b.logger.Info("broadcaster started")
	defer b.logger.Info("broadcaster stopped")

	for {
		select {
		case <-ticker.C:
			b.Tick()
		case <-ctx.Done():
			return
		}
	}
}
