package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	gameplay "github.com/milk9111/platformer/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type buffTarget struct {
	motor *gameplay.PlayerMotor
	stats *gameplay.PlayerStats
}

func (b *buffTarget) Motor() *gameplay.PlayerMotor { return b.motor }

func (b *buffTarget) Stats() *gameplay.PlayerStats { return b.stats }

func newBuffTarget(t *testing.T, health int) *buffTarget {
	t.Helper()
	stats := gameplay.NewPlayerStats(gameplay.DefaultStatsConfig())
	if damage := stats.Max() - health; damage > 0 {
		require.True(t, stats.TakeDamage(damage))
	}
	return &buffTarget{
		motor: gameplay.NewPlayerMotor(gameplay.DefaultMotorConfig()),
		stats: stats,
	}
}

func TestLoadAll(t *testing.T) {
	p, err := LoadAll()
	require.NoError(t, err)

	assert.Equal(t, gameplay.DefaultMotorConfig(), p.Player.Motor)
	assert.Equal(t, gameplay.DefaultStatsConfig(), p.Player.Stats)
	assert.Equal(t, gameplay.DefaultCombatConfig(), p.Player.Combat)
	assert.Equal(t, gameplay.DefaultWanderConfig(), p.Boombox.Wander)
	assert.Equal(t, gameplay.DefaultDropConfig(), p.Spider.Drop)
	assert.Equal(t, gameplay.DefaultLaunchConfig(), p.Skateboard.Launch)
	assert.InDelta(t, gameplay.DefaultCameraSmoothness, p.Camera.Smoothness, 1e-9)
	assert.True(t, p.Player.Body.NoRotation)
	assert.Equal(t, uint8(255), p.Player.Sprite.Color.A)
	assert.Len(t, p.Buffs.Buffs, 4)
}

func TestLoadSpecErrors(t *testing.T) {
	_, err := LoadSpec("missing.yaml", CameraSpec{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: load missing.yaml")
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "prefabs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prefabs", "camera.yaml"), []byte("zoom: 3\n"), 0o644))
	t.Chdir(dir)

	spec, err := LoadSpec("camera.yaml", DefaultCameraSpec())
	require.NoError(t, err)
	assert.InDelta(t, 3.0, spec.Zoom, 1e-9)

	// Files without an override still come from the embedded set.
	player, err := LoadSpec("prefabs/player.yaml", PlayerSpec{})
	require.NoError(t, err)
	assert.Equal(t, "player", player.Name)
}

func TestPartialOverrideKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "prefabs"), 0o755))
	override := []byte("wander: {walk_speed: 3}\nbody: {width: 40}\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prefabs", "boombox.yaml"), override, 0o644))
	t.Chdir(dir)

	p, err := LoadAll()
	require.NoError(t, err)

	want := gameplay.DefaultWanderConfig()
	want.WalkSpeed = 3
	assert.Equal(t, want, p.Boombox.Wander)
	assert.Equal(t, gameplay.DefaultDamageConfig(), p.Boombox.Damage)
	assert.Equal(t, "boombox", p.Boombox.Name)
	assert.InDelta(t, 40.0, p.Boombox.Body.Width, 1e-9)

	// A boombox built from the override still idles between walks.
	agent := gameplay.NewWanderAgent(p.Boombox.Wander, nil, gameplay.NewRand(1))
	changes := 0
	last := agent.State()
	for i := 0; i < 60; i++ {
		agent.Tick(gameplay.WanderInput{DT: 1.0 / 60, Position: cp.Vector{X: 1, Y: 1}, HasPosition: true})
		if agent.State() != last {
			changes++
			last = agent.State()
		}
	}
	assert.LessOrEqual(t, changes, 1)
}

func TestDefaultSpecsMatchEmbedded(t *testing.T) {
	p, err := LoadAll()
	require.NoError(t, err)

	assert.Equal(t, DefaultSkateboardSpec().Damage, p.Skateboard.Damage)
	assert.Equal(t, DefaultSpiderSpec().Drop, p.Spider.Drop)
	assert.Equal(t, DefaultCameraSpec().Smoothness, p.Camera.Smoothness)
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    [4]uint8
		wantErr bool
	}{
		{name: "rgb", in: `"#102030"`, want: [4]uint8{0x10, 0x20, 0x30, 0xff}},
		{name: "rgba", in: `"10203040"`, want: [4]uint8{0x10, 0x20, 0x30, 0x40}},
		{name: "short", in: `"#123"`, wantErr: true},
		{name: "not hex", in: `"#zz2030"`, wantErr: true},
		{name: "not scalar", in: `[1, 2]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, [4]uint8{c.R, c.G, c.B, c.A})
		})
	}
}

func TestBuffItems(t *testing.T) {
	p, err := LoadAll()
	require.NoError(t, err)

	tests := []struct {
		name      string
		health    int
		wantSpeed float64
		wantHP    int
		wantRegen bool
	}{
		{name: "speed", health: 3, wantSpeed: 9, wantHP: 3},
		{name: "health", health: 2, wantSpeed: 6, wantHP: 2, wantRegen: true},
		{name: "berserk", health: 1, wantSpeed: 9, wantHP: 1},
		{name: "second_wind", health: 1, wantSpeed: 6, wantHP: 3},
		{name: "second_wind", health: 2, wantSpeed: 6, wantHP: 2, wantRegen: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, ok := p.Buffs.Buffs[tt.name]
			require.True(t, ok)
			item, err := spec.Item(tt.name)
			require.NoError(t, err)

			target := newBuffTarget(t, tt.health)
			require.NoError(t, item.Apply(target))
			assert.InDelta(t, tt.wantSpeed, target.motor.RunSpeed(), 1e-9)
			assert.Equal(t, tt.wantHP, target.stats.Current())
			assert.Equal(t, tt.wantRegen, target.stats.Regenerating())
		})
	}
}

func TestBuffItemUnknownKind(t *testing.T) {
	_, err := BuffSpec{Kind: "teleport"}.Item("x")
	require.ErrorIs(t, err, ErrUnknownBuff)

	_, err = BuffSpec{Kind: "script", Script: "nope.tengo"}.Item("x")
	require.Error(t, err)
}

func TestDebouncer(t *testing.T) {
	d := newDebouncer(100 * time.Millisecond)
	start := time.Unix(0, 0)

	assert.True(t, d.allow("a.yaml", start))
	assert.False(t, d.allow("a.yaml", start.Add(50*time.Millisecond)))
	assert.True(t, d.allow("b.yaml", start.Add(50*time.Millisecond)))
	assert.True(t, d.allow("a.yaml", start.Add(100*time.Millisecond)))
}

func TestIsWatchedFile(t *testing.T) {
	for path, want := range map[string]bool{
		"prefabs/player.yaml":   true,
		"prefabs/x.YML":         true,
		"scripts/berserk.tengo": true,
		"levels/level1.tmx":     true,
		"levels/notes.txt":      false,
		"prefabs/player.yaml~":  false,
	} {
		assert.Equal(t, want, isWatchedFile(path), path)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "camera.yaml")
	require.NoError(t, os.WriteFile(target, []byte("zoom: 2\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for camera.yaml")
	}
}
