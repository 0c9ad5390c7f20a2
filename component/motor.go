package component

// MotorConfig tunes player movement. Speeds are in world units per second.
type MotorConfig struct {
	RunSpeed   float64 `yaml:"run_speed"`
	JumpSpeed  float64 `yaml:"jump_speed"`
	AirControl float64 `yaml:"air_control"`
}

func DefaultMotorConfig() MotorConfig {
	return MotorConfig{
		RunSpeed:   6,
		JumpSpeed:  12,
		AirControl: 0.5,
	}
}

// PlayerMotor turns raw input into a desired horizontal velocity and jump.
type PlayerMotor struct {
	cfg         MotorConfig
	runSpeed    float64
	wasGrounded bool
}

func NewPlayerMotor(cfg MotorConfig) *PlayerMotor {
	return &PlayerMotor{cfg: cfg, runSpeed: cfg.RunSpeed, wasGrounded: true}
}

func (m *PlayerMotor) RunSpeed() float64 {
	return m.runSpeed
}

func (m *PlayerMotor) SetRunSpeed(v float64) {
	if v < 0 {
		v = 0
	}
	m.runSpeed = v
}

// ResetRunSpeed drops any speed modifiers.
func (m *PlayerMotor) ResetRunSpeed() {
	m.runSpeed = m.cfg.RunSpeed
}

func (m *PlayerMotor) JumpSpeed() float64 {
	return m.cfg.JumpSpeed
}

// Horizontal maps input in [-1, 1] to a velocity; airborne control is reduced.
func (m *PlayerMotor) Horizontal(input float64, grounded bool) float64 {
	v := input * m.runSpeed
	if !grounded {
		v *= m.cfg.AirControl
	}
	return v
}

func (m *PlayerMotor) WantsJump(pressed, grounded bool) bool {
	return pressed && grounded
}

// Landed is true on the first grounded tick after being airborne.
func (m *PlayerMotor) Landed(grounded bool) bool {
	landed := grounded && !m.wasGrounded
	m.wasGrounded = grounded
	return landed
}
