// Command levelcheck loads a level with the game's prefabs, builds its world
// and prints what it found. With -patrol it prints the patrol areas as YAML.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

func main() {
	levelName := flag.String("level", "level1", "level name in levels/ (basename, .tmx optional)")
	seed := flag.Uint64("seed", 1, "random seed used to build the world")
	patrol := flag.Bool("patrol", false, "print patrol areas as YAML instead of the summary")
	flag.Parse()

	lvl, err := levels.Load(*levelName)
	if err != nil {
		log.Fatal(err)
	}

	if *patrol {
		data, err := levels.MarshalPatrolAreas(lvl.PatrolAreas)
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(data)
		return
	}

	p, err := prefabs.LoadAll()
	if err != nil {
		log.Fatal(err)
	}
	w := ecs.NewWorld()
	if _, err := entity.LoadLevelToWorld(w, lvl, p, entity.LevelOptions{
		Seed:    *seed,
		ScreenW: common.BaseWidth,
		ScreenH: common.BaseHeight,
	}); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("level %s: %.0fx%.0f px, %d entities\n", lvl.Name, lvl.Width, lvl.Height, len(w.Entities()))
	fmt.Printf("solids: %d\n", len(lvl.Solids))
	for _, a := range lvl.PatrolAreas {
		fmt.Printf("patrol area %s: %d points\n", a.Name, len(a.Points))
	}

	kinds := map[string]int{}
	for _, s := range lvl.Spawns {
		kinds[s.Kind]++
	}
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Printf("spawn %s: %d\n", k, kinds[k])
	}
	fmt.Printf("respawn: (%.0f, %.0f) below y=%.0f\n", lvl.Respawn.X, lvl.Respawn.Y, lvl.Respawn.Threshold)
}
