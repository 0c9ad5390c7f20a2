package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
	"golang.design/x/clipboard"
	"golang.org/x/sync/errgroup"
)

var backgroundColor = color.RGBA{R: 24, G: 26, B: 34, A: 255}

// Config is what the command line chooses.
type Config struct {
	Level string
	Seed  uint64
	Debug bool
	Watch bool
}

type Game struct {
	cfg Config

	level   *levels.Level
	prefabs *prefabs.Prefabs

	world  *ecs.World
	player ecs.Entity

	paused   bool
	gameOver bool
	restart  bool

	pauseUI    *ebitenui.UI
	gameOverUI *ebitenui.UI

	watcher       *prefabs.Watcher
	clipboardInit bool
}

func NewGame(cfg Config) (*Game, error) {
	g := &Game{cfg: cfg}

	lvl, p, err := loadAssets(context.Background(), cfg.Level)
	if err != nil {
		return nil, err
	}
	g.level, g.prefabs = lvl, p

	if err := g.reset(); err != nil {
		return nil, err
	}

	g.pauseUI = NewPauseUI(g)
	g.gameOverUI = NewGameOverUI(g)

	if cfg.Watch {
		g.watcher = startWatcher()
	}
	if cfg.Debug {
		if err := clipboard.Init(); err != nil {
			log.Printf("clipboard unavailable: %v", err)
		} else {
			g.clipboardInit = true
		}
	}
	return g, nil
}

// loadAssets reads the level and every prefab concurrently.
func loadAssets(ctx context.Context, levelName string) (*levels.Level, *prefabs.Prefabs, error) {
	var (
		lvl *levels.Level
		p   *prefabs.Prefabs
	)
	grp, _ := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		lvl, err = levels.Load(levelName)
		return err
	})
	grp.Go(func() error {
		var err error
		p, err = prefabs.LoadAll()
		return err
	})
	if err := grp.Wait(); err != nil {
		return nil, nil, fmt.Errorf("load assets: %w", err)
	}
	return lvl, p, nil
}

func startWatcher() *prefabs.Watcher {
	var dirs []string
	for _, dir := range []string{"prefabs", "prefabs/scripts", "levels"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		log.Printf("watch: no prefabs or levels directory on disk")
		return nil
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("watch: %v", err)
		return nil
	}
	log.Printf("watch: watching %v", dirs)
	return w
}

// reset rebuilds the world from the loaded level and prefabs.
func (g *Game) reset() error {
	g.detachHUD()

	w := ecs.NewWorld()
	system.Install(w, g.cfg.Debug, &gameEvents{game: g})
	player, err := entity.LoadLevelToWorld(w, g.level, g.prefabs, entity.LevelOptions{
		Seed:    g.cfg.Seed,
		ScreenW: common.BaseWidth,
		ScreenH: common.BaseHeight,
		Debug:   g.cfg.Debug,
	})
	if err != nil {
		return fmt.Errorf("build level %s: %w", g.level.Name, err)
	}

	g.world = w
	g.player = player
	g.paused = false
	g.gameOver = false
	g.restart = false
	return nil
}

func (g *Game) detachHUD() {
	if g.world == nil {
		return
	}
	ecs.ForEach(g.world, component.PlayerHealthBarComponent.Kind(), func(e ecs.Entity, bar *component.PlayerHealthBar) {
		if bar.Unsubscribe != nil {
			bar.Unsubscribe()
			bar.Unsubscribe = nil
		}
	})
}

// RequestRestart asks for a fresh copy of the level once the current frame
// has finished.
func (g *Game) RequestRestart() {
	g.paused = false
	g.world.Events().Push(ecs.Event{Type: ecs.EventLevelRestart})
}

func (g *Game) Resume() {
	g.paused = false
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.RequestRestart()
	}
	if g.cfg.Debug && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyPatrolAreas()
	}
	if g.gameOver {
		g.gameOverUI.Update()
	}

	g.world.Update()

	if g.restart {
		if err := g.reset(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case name, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		log.Printf("watch: %s changed, reloading", name)
		lvl, p, err := loadAssets(context.Background(), g.cfg.Level)
		if err != nil {
			log.Printf("watch: keeping current level: %v", err)
			return
		}
		g.level, g.prefabs = lvl, p
		if err := g.reset(); err != nil {
			log.Printf("watch: %v", err)
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("watch: %v", err)
		}
	default:
	}
}

func (g *Game) copyPatrolAreas() {
	data, err := levels.MarshalPatrolAreas(g.level.PatrolAreas)
	if err != nil {
		log.Printf("copy patrol areas: %v", err)
		return
	}
	if !g.clipboardInit {
		log.Printf("patrol areas:\n%s", data)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	log.Printf("copied %d patrol areas to the clipboard", len(g.level.PatrolAreas))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	camX, camY, zoom := system.CameraView(g.world, common.BaseWidth, common.BaseHeight)
	g.world.Draw(screen, camX, camY, zoom)

	switch {
	case g.paused:
		g.pauseUI.Draw(screen)
	case g.gameOver:
		g.gameOverUI.Draw(screen)
	}
}

func (g *Game) Close() {
	g.detachHUD()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// gameEvents reacts to world events the game shell cares about. It runs
// before rendering, while the frame's events are still queued.
type gameEvents struct {
	game *Game
}

func (s *gameEvents) Update(w *ecs.World) {
	debug := s.game.cfg.Debug
	for _, evt := range w.Events().Peek(ecs.EventPlayerDied) {
		s.game.gameOver = true
		log.Printf("game: player %v died", evt.Data)
	}
	for _, evt := range w.Events().Peek(ecs.EventPickup) {
		if pickup, ok := evt.Data.(system.PickupEvent); ok {
			log.Printf("game: picked up %s", pickup.Kind)
		}
	}
	if debug {
		for _, evt := range w.Events().Peek(ecs.EventRespawned) {
			log.Printf("game: %v respawned", evt.Data)
		}
	}
	if len(w.Events().DrainType(ecs.EventLevelRestart)) > 0 {
		s.game.restart = true
	}
}
