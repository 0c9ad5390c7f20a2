package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	levelName := flag.String("level", "level1", "level name in levels/ (basename, .tmx optional)")
	seed := flag.Uint64("seed", 0, "random seed for enemy behavior; 0 picks one from the clock")
	watch := flag.Bool("watch", false, "reload prefabs, scripts and levels when they change on disk")
	flag.Parse()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	log.Printf("platformer: level %s seed %d", *levelName, *seed)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("platformer")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Config{
		Level: *levelName,
		Seed:  *seed,
		Debug: *debug,
		Watch: *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
