package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/milk9111/softbody/common"
	"github.com/milk9111/softbody/ecs"
	"github.com/milk9111/softbody/ecs/system"
	"github.com/milk9111/softbody/levels"
	"github.com/milk9111/softbody/physics"
	"github.com/milk9111/softbody/prefabs"
)

type config struct {
	level  string
	ticks  int
	dt     float64
	keys   string
	hold   int
	every  int
	tuning string
	seed   uint64
}

func main() {
	var cfg config
	flag.StringVar(&cfg.level, "level", "level1_displacement", "level name in levels/")
	flag.IntVar(&cfg.ticks, "ticks", 180, "number of ticks to run")
	flag.Float64Var(&cfg.dt, "dt", 1.0/60.0, "seconds per tick (clamped to 1/30)")
	flag.StringVar(&cfg.keys, "keys", "", "comma separated key groups, keys within a group joined by '+', e.g. d,d+w,,r")
	flag.IntVar(&cfg.hold, "hold", 10, "ticks each key group is held")
	flag.IntVar(&cfg.every, "every", 10, "print every N ticks")
	flag.StringVar(&cfg.tuning, "tuning", "", "tunables yaml file (defaults to prefabs/tuning.yaml)")
	flag.Uint64Var(&cfg.seed, "seed", 1, "title screen scatter seed")
	flag.Parse()

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// hintLog prints level hints inline with the dump.
type hintLog struct {
	out io.Writer
}

func (h hintLog) ShowHint(text string) { fmt.Fprintf(h.out, "hint: %s\n", text) }
func (h hintLog) ClearHint()           {}

func run(cfg config, out io.Writer) error {
	if cfg.hold <= 0 {
		cfg.hold = 1
	}
	if cfg.every <= 0 {
		cfg.every = 1
	}
	groups, err := parseKeys(cfg.keys)
	if err != nil {
		return err
	}

	spec := prefabs.DefaultTuningSpec()
	if cfg.tuning != "" {
		spec, err = prefabs.LoadTuningFile(cfg.tuning)
	} else if s, loadErr := prefabs.LoadTuningSpec(prefabs.TuningFile); loadErr == nil {
		spec = s
	}
	if err != nil {
		return err
	}

	world := ecs.NewWorld(common.BaseHeight, spec.ToTuning())
	system.Install(world, 0)
	mgr := levels.NewManager(world, hintLog{out: out}, []string{cfg.level}, rand.New(rand.NewPCG(cfg.seed, cfg.seed)))
	if err := mgr.Start(cfg.level); err != nil {
		return err
	}

	for tick := 1; tick <= cfg.ticks; tick++ {
		keys := keysAt(groups, cfg.hold, tick-1)
		world.Tick(cfg.dt, keys)
		mgr.Update(world.DeltaTime(), keys)
		for _, ev := range world.Events().Drain() {
			fmt.Fprintf(out, "tick %d %s %s\n", tick, ev.Body, ev.Kind)
		}
		if tick%cfg.every == 0 {
			for _, b := range world.Bodies() {
				fmt.Fprintf(out, "tick %d %s\n", tick, system.DescribeBody(b))
			}
		}
		if mgr.Finished() || (mgr.Current() != nil && mgr.Current().Done()) {
			fmt.Fprintf(out, "tick %d level complete\n", tick)
			break
		}
	}
	return nil
}

// parseKeys turns "d,d+w,,r" into one key set per group.
func parseKeys(s string) ([]physics.Keys, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	known := map[string]bool{
		physics.KeyLeft: true, physics.KeyRight: true,
		physics.KeyArrowLeft: true, physics.KeyArrowRight: true,
		physics.KeyJump: true, physics.KeyReset: true, physics.KeyEnter: true,
	}
	var groups []physics.Keys
	for _, group := range strings.Split(s, ",") {
		keys := physics.Keys{}
		for _, k := range strings.Split(group, "+") {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				continue
			}
			if !known[k] {
				return nil, fmt.Errorf("simdump: unknown key %q", k)
			}
			keys[k] = true
		}
		groups = append(groups, keys)
	}
	return groups, nil
}

func keysAt(groups []physics.Keys, hold, tick int) physics.Keys {
	i := tick / hold
	if i >= len(groups) {
		return nil
	}
	return groups[i]
}
