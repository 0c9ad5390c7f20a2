package component

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestFallRespawnCheck(t *testing.T) {
	r := FallRespawn{Threshold: 600, Point: cp.Vector{X: 64, Y: 128}}
	cases := []struct {
		name string
		pos  cp.Vector
		want bool
	}{
		{"above", cp.Vector{X: 10, Y: 599}, false},
		{"at_threshold", cp.Vector{X: 10, Y: 600}, true},
		{"fallen", cp.Vector{X: 10, Y: 900}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, ok := r.Check(c.pos)
			if ok != c.want {
				t.Fatalf("Check(%v) ok = %v, want %v", c.pos, ok, c.want)
			}
			if ok && p != r.Point {
				t.Fatalf("respawn point = %v, want %v", p, r.Point)
			}
		})
	}
}

func TestCameraFollow(t *testing.T) {
	cases := []struct {
		name    string
		cam     CameraFollow
		current cp.Vector
		target  cp.Vector
		want    cp.Vector
	}{
		{
			name:   "lerp",
			cam:    CameraFollow{Smoothness: 0.5},
			target: cp.Vector{X: 100, Y: 40},
			want:   cp.Vector{X: 50, Y: 20},
		},
		{
			name:   "offset",
			cam:    CameraFollow{Smoothness: 1, Offset: cp.Vector{X: 0, Y: -32}},
			target: cp.Vector{X: 100, Y: 40},
			want:   cp.Vector{X: 100, Y: 8},
		},
		{
			name: "bounds",
			cam: CameraFollow{
				Smoothness: 1,
				UseBounds:  true,
				Bounds:     cp.BB{L: 0, B: 0, R: 50, T: 30},
			},
			target: cp.Vector{X: 100, Y: -40},
			want:   cp.Vector{X: 50, Y: 0},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.cam.Follow(c.current, c.target); got.Distance(c.want) > 1e-9 {
				t.Fatalf("Follow = %v, want %v", got, c.want)
			}
		})
	}

	if NewCameraFollow().Smoothness != DefaultCameraSmoothness {
		t.Fatalf("default smoothness not applied")
	}
}

func TestFloatingBob(t *testing.T) {
	b := NewFloatingBob(cp.Vector{X: 3, Y: 7})
	if p := b.At(0); p != (cp.Vector{X: 3, Y: 7}) {
		t.Fatalf("At(0) = %v, want base", p)
	}
	if p := b.At(math.Pi / 2); math.Abs(p.Y-7.5) > 1e-9 || p.X != 3 {
		t.Fatalf("At(pi/2) = %v, want peak at y=7.5", p)
	}
}

func TestPlayerMotor(t *testing.T) {
	m := NewPlayerMotor(DefaultMotorConfig())

	cases := []struct {
		name     string
		input    float64
		grounded bool
		want     float64
	}{
		{"ground_right", 1, true, 6},
		{"ground_left", -1, true, -6},
		{"air_right", 1, false, 3},
		{"idle", 0, true, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := m.Horizontal(c.input, c.grounded); got != c.want {
				t.Fatalf("Horizontal = %v, want %v", got, c.want)
			}
		})
	}

	if m.WantsJump(true, false) || !m.WantsJump(true, true) || m.WantsJump(false, true) {
		t.Fatalf("jump should need both the press and ground contact")
	}

	if m.Landed(true) {
		t.Fatalf("starting grounded is not a landing")
	}
	m.Landed(false)
	if !m.Landed(true) {
		t.Fatalf("expected landing pulse")
	}
	if m.Landed(true) {
		t.Fatalf("landing pulse should only fire once")
	}

	m.SetRunSpeed(-4)
	if m.RunSpeed() != 0 {
		t.Fatalf("negative run speed should clamp to 0")
	}
}

func TestPlayerCombatCooldown(t *testing.T) {
	c := NewPlayerCombat(DefaultCombatConfig())
	steps := []struct {
		now  float64
		want bool
	}{
		{0, true},
		{0.3, false},
		{0.6, true},
		{1.0, false},
		{1.25, true},
	}
	for _, s := range steps {
		if got := c.TryAttack(s.now); got != s.want {
			t.Fatalf("TryAttack(%.2f) = %v, want %v", s.now, got, s.want)
		}
	}
}
