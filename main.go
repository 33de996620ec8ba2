package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/wfunc/connect4/broadcast"
	"github.com/wfunc/connect4/config"
	"github.com/wfunc/connect4/game"
	"github.com/wfunc/connect4/input"
	"github.com/wfunc/connect4/logger"
	"github.com/wfunc/connect4/monitor"
	"github.com/wfunc/connect4/render"
	"github.com/wfunc/connect4/strategy"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Load configuration
	cfg, err := config.Load(args, os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	// Initialize logger
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 2
	}
	defer logger.Sync()

	mon := monitor.NewMonitor("connect4")
	if cfg.Metrics.Address != "" {
		mon.StartServer(cfg.Metrics.Address)
		logger.Log.Infof("Serving metrics on %s", cfg.Metrics.Address)
	}

	// Build both players
	console := input.NewConsole(os.Stdin, os.Stdout)
	var players [2]strategy.Strategy
	for i, seat := range cfg.Seats() {
		players[i], err = strategy.Load(seat.Player, seat.Module, seat.Level, console)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		logger.Log.Debugf("Seat %d: %s", i+1, players[i])
	}

	observer, err := newObserver(cfg.Display)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	controller, err := game.NewController(
		game.Settings{Columns: cfg.Board.Columns, Rows: cfg.Board.Rows},
		players[0], players[1],
		game.WithRand(rand.New(rand.NewSource(seed))),
		game.WithObserver(observer),
		game.WithMonitor(mon),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	outcome, err := controller.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Log.Infof("Game %s finished: %s", controller.GetID(), outcome)
	return 0
}

func newObserver(display config.DisplayConfig) (broadcast.Observer, error) {
	if !display.Enabled {
		return render.NewSummary(os.Stdout), nil
	}
	palette := render.DefaultPalette()
	switch {
	case display.Plain:
		palette = render.PlainPalette()
	case display.Colors != "":
		p, err := render.ParseColors(display.Colors)
		if err != nil {
			return nil, err
		}
		palette = p
	}
	return render.NewText(os.Stdout, palette), nil
}
