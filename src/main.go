package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"elevsim/src/config"
	"elevsim/src/input"
	"elevsim/src/logging"
	"elevsim/src/sim"
	"elevsim/src/types"
	"elevsim/src/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "elevsim.yaml", "YAML config file")
	envPath := flag.String("env", ".env", "env file overriding the config")
	debug := flag.Bool("debug", false, "log the simulation trace")
	view := flag.String("view", "line", "status view: line or building")
	flag.Parse()

	var render func(io.Writer, utils.Frame)
	switch *view {
	case "line":
		render = utils.PrintStatus
	case "building":
		render = utils.PrintBuilding
	default:
		fmt.Fprintf(os.Stderr, "unknown view %q\n", *view)
		return 2
	}

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg.Debug = cfg.Debug || *debug

	logFile, err := logging.InitLogger(cfg.LogFile, cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan types.InputEvent, 16)
	closeTerminal, err := input.Listen(ctx, events)
	if err != nil {
		slog.Error("Keyboard unavailable", "err", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeTerminal()

	simulation := sim.New(cfg, logging.NewRecorder(slog.Default().With("component", "core")))
	simulation.Run(ctx, events, func(frame utils.Frame) {
		render(os.Stdout, frame)
	})
	fmt.Println()
	slog.Info("Simulation stopped", "ticks", simulation.Ticks())
	return 0
}
