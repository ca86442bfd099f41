package control

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds every tunable constant of the control loop. Zero-valued
// fields are filled with the named defaults by Validate, the teacher's
// "validate and fill in defaults" convention for device configuration
// (see the teacher's SoArm101Config.Validate).
type Config struct {
	ControllerPeriodMS int64 `json:"controller_period_ms,omitempty"`
	BroadcastPeriodMS  int64 `json:"broadcast_period_ms,omitempty"`

	MaxAngularVelocity float64 `json:"max_angular_velocity_deg_s,omitempty"`
	MaxAngularAccel    float64 `json:"max_angular_accel_deg_s2,omitempty"`
	MaxLinearVelocity  float64 `json:"max_linear_velocity_mm_s,omitempty"`
	MaxLinearAccel     float64 `json:"max_linear_accel_mm_s2,omitempty"`

	MaxBaseLinearVel float64 `json:"max_base_linear_vel_m_s,omitempty"`
	MaxBaseAngleVel  float64 `json:"max_base_angle_vel_deg_s,omitempty"`

	AngleP float64 `json:"angle_p,omitempty"`
	AngleD float64 `json:"angle_d,omitempty"`
	LinearP float64 `json:"linear_p,omitempty"`
	LinearD float64 `json:"linear_d,omitempty"`

	BaseLinearP float64 `json:"base_linear_p,omitempty"`
	BaseLinearD float64 `json:"base_linear_d,omitempty"`
	BaseAngleP  float64 `json:"base_angle_p,omitempty"`
	BaseAngleD  float64 `json:"base_angle_d,omitempty"`
}

// DefaultConfig returns the constants named in the specification.
func DefaultConfig() *Config {
	return &Config{
		ControllerPeriodMS: 5,
		BroadcastPeriodMS:  20,

		MaxAngularVelocity: 18,
		MaxAngularAccel:    9,
		MaxLinearVelocity:  80,
		MaxLinearAccel:     40,

		MaxBaseLinearVel: 0.06,
		MaxBaseAngleVel:  3,

		AngleP: 0.7, AngleD: 1.5,
		LinearP: 2.5, LinearD: 4.0,

		BaseLinearP: 1.0, BaseLinearD: 0.5,
		BaseAngleP: 0.5, BaseAngleD: 0.1,
	}
}

// Validate fills any zero-valued field with its default and rejects
// negative periods or PD gains, which can never be meaningful for this
// control loop.
func (c *Config) Validate() error {
	d := DefaultConfig()

	if c.ControllerPeriodMS == 0 {
		c.ControllerPeriodMS = d.ControllerPeriodMS
	}
	if c.BroadcastPeriodMS == 0 {
		c.BroadcastPeriodMS = d.BroadcastPeriodMS
	}
	if c.MaxAngularVelocity == 0 {
		c.MaxAngularVelocity = d.MaxAngularVelocity
	}
	if c.MaxAngularAccel == 0 {
		c.MaxAngularAccel = d.MaxAngularAccel
	}
	if c.MaxLinearVelocity == 0 {
		c.MaxLinearVelocity = d.MaxLinearVelocity
	}
	if c.MaxLinearAccel == 0 {
		c.MaxLinearAccel = d.MaxLinearAccel
	}
	if c.MaxBaseLinearVel == 0 {
		c.MaxBaseLinearVel = d.MaxBaseLinearVel
	}
	if c.MaxBaseAngleVel == 0 {
		c.MaxBaseAngleVel = d.MaxBaseAngleVel
	}
	if c.AngleP == 0 {
		c.AngleP = d.AngleP
	}
	if c.AngleD == 0 {
		c.AngleD = d.AngleD
	}
	if c.LinearP == 0 {
		c.LinearP = d.LinearP
	}
	if c.LinearD == 0 {
		c.LinearD = d.LinearD
	}
	if c.BaseLinearP == 0 {
		c.BaseLinearP = d.BaseLinearP
	}
	if c.BaseLinearD == 0 {
		c.BaseLinearD = d.BaseLinearD
	}
	if c.BaseAngleP == 0 {
		c.BaseAngleP = d.BaseAngleP
	}
	if c.BaseAngleD == 0 {
		c.BaseAngleD = d.BaseAngleD
	}

	if c.ControllerPeriodMS < 0 || c.BroadcastPeriodMS < 0 {
		return errors.New("periods must not be negative")
	}
	for _, gain := range []float64{c.AngleP, c.AngleD, c.LinearP, c.LinearD, c.BaseLinearP, c.BaseLinearD, c.BaseAngleP, c.BaseAngleD} {
		if gain < 0 {
			return errors.New("gains must not be negative")
		}
	}
	return nil
}

// ControllerPeriod returns the configured controller tick period as a
// time.Duration.
func (c *Config) ControllerPeriod() time.Duration {
	return time.Duration(c.ControllerPeriodMS) * time.Millisecond
}

// BroadcastPeriod returns the configured broadcast tick period as a
// time.Duration.
func (c *Config) BroadcastPeriod() time.Duration {
	return time.Duration(c.BroadcastPeriodMS) * time.Millisecond
}

// LoadConfigFile reads a JSON config file and validates it, filling in any
// field left unset with its spec-default value.
func LoadConfigFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg := &Config{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}
