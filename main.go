package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/softbody/common"
)

func main() {
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	debug := flag.Bool("debug", false, "enable the diagnostics overlay and periodic body dumps")
	tuningPath := flag.String("tuning", "", "tunables yaml file (defaults to prefabs/tuning.yaml)")
	sentryDSN := flag.String("sentry-dsn", os.Getenv("SENTRY_DSN"), "sentry DSN for crash reports (empty disables reporting)")
	scale := flag.Float64("scale", 1, "window scale relative to 800x600")
	flag.Parse()

	if *sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              *sentryDSN,
			AttachStacktrace: true,
		}); err != nil {
			log.Printf("main: sentry init: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(common.BaseWidth**scale), int(common.BaseHeight**scale))
	ebiten.SetWindowTitle("softbody")

	game, err := NewGame(Options{
		Level:      *levelName,
		Debug:      *debug,
		TuningPath: *tuningPath,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
