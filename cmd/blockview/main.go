package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Garsondee/pitch-sense/internal/config"
	"github.com/Garsondee/pitch-sense/internal/game"
	"github.com/Garsondee/pitch-sense/internal/view"
)

func main() {
	var configPath string
	var seed int64
	var verbose bool
	flag.StringVar(&configPath, "config", "", "YAML scenario file (empty = built-in centre-dribble)")
	flag.Int64Var(&seed, "seed", 0, "override the scenario seed (0 = keep)")
	flag.BoolVar(&verbose, "verbose", false, "show per-candidate entries in the decision log")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	var cfg *config.File
	var err error
	if configPath == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	opts := append(cfg.SimOptions(), game.WithVerbose(verbose))
	if seed != 0 {
		opts = append(opts, game.WithSeed(seed))
	}
	v := view.New(opts, cfg.Scenario.Cycles)
	w, h := v.Size()

	log.Info().Str("scenario", cfg.Scenario.Name).Int("cycles", cfg.Scenario.Cycles).
		Bool("perception", cfg.Scenario.Perception).Msg("starting viewer")

	ebiten.SetWindowTitle("Pitch Sense: " + cfg.Scenario.Name)
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal().Err(err).Msg("viewer exited")
	}
}
