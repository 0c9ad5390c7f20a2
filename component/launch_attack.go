package component

import "github.com/jakecoffman/cp"

type LaunchConfig struct {
	DetectionRadius float64 `yaml:"detection_radius"`
	LaunchForce     float64 `yaml:"launch_force"`
	Cooldown        float64 `yaml:"cooldown"`
	MoveSpeed       float64 `yaml:"move_speed"`
	// DestroyOnContact removes the launcher after it first touches the player.
	DestroyOnContact bool    `yaml:"destroy_on_contact"`
	FlashDuration    float64 `yaml:"flash_duration"`
}

func DefaultLaunchConfig() LaunchConfig {
	return LaunchConfig{
		DetectionRadius: 5,
		LaunchForce:     50,
		Cooldown:        2,
		MoveSpeed:       3,

		DestroyOnContact: true,
		FlashDuration:    0.1,
	}
}

// LaunchIntent is what a Launcher wants done to its body this tick.
type LaunchIntent struct {
	// Launch asks for a velocity reset followed by Impulse.
	Launch  bool
	Impulse cp.Vector
	// Stop asks for the velocity to be zeroed.
	Stop bool
}

// Launcher charges at the player horizontally whenever it is within range
// and off cooldown.
type Launcher struct {
	cfg        LaunchConfig
	inRange    bool
	lastLaunch float64
	spent      bool
}

func NewLauncher(cfg LaunchConfig) *Launcher {
	return &Launcher{cfg: cfg}
}

func (l *Launcher) Config() LaunchConfig {
	return l.cfg
}

func (l *Launcher) InRange() bool {
	return l.inRange
}

// Update is called once per tick with the current time in seconds.
func (l *Launcher) Update(now float64, self, player cp.Vector, playerFound bool) LaunchIntent {
	if !playerFound {
		return LaunchIntent{}
	}

	if self.Distance(player) > l.cfg.DetectionRadius {
		if l.inRange {
			l.inRange = false
			return LaunchIntent{Stop: true}
		}
		return LaunchIntent{}
	}

	l.inRange = true
	if now < l.lastLaunch+l.cfg.Cooldown {
		return LaunchIntent{}
	}

	dir := cp.Vector{X: player.X - self.X}.Normalize()
	l.lastLaunch = now
	return LaunchIntent{
		Launch:  true,
		Impulse: dir.Mult(l.cfg.LaunchForce),
	}
}

// Contact reports whether touching the player destroys the launcher, and
// for how long it flashes first. It answers yes at most once.
func (l *Launcher) Contact() (destroy bool, flash float64) {
	if l.spent || !l.cfg.DestroyOnContact {
		return false, 0
	}
	l.spent = true
	return true, l.cfg.FlashDuration
}
