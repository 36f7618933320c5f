// SPDX-License-Identifier: MIT
//
// Command marblesim runs a marble-collision simulation and renders it to
// one of three outputs: a single PNG snapshot, a live websocket feed, or
// a terminal viewer. Flag wiring follows the stdlib flag convention the
// teacher's own cmd entrypoint (niceyeti-tabular/tabular/main.go) uses
// for its host/port/debug flags.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/katalvlaran/marblesim/live"
	"github.com/katalvlaran/marblesim/marble"
	"github.com/katalvlaran/marblesim/raster"
	"github.com/katalvlaran/marblesim/scenario"
	"github.com/katalvlaran/marblesim/simulation"
	"github.com/katalvlaran/marblesim/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("marblesim: %v", err)
	}
}

func run() error {
	var (
		output     = flag.String("output", "png", "output mode: png, live, or tui")
		width      = flag.Float64("width", 40, "arena width")
		height     = flag.Float64("height", 30, "arena height")
		count      = flag.Int("count", 12, "number of marbles")
		seed       = flag.Uint64("seed", 1, "random seed for the scenario generator")
		duration   = flag.Float64("duration", 20, "seconds of simulated time to run before snapshotting (png mode only)")
		pngOut     = flag.String("png", "marblesim.png", "output file path (png mode only)")
		pixWidth   = flag.Int("pixel-width", 800, "rendered image width in pixels (png mode only)")
		pixHeight  = flag.Int("pixel-height", 600, "rendered image height in pixels (png mode only)")
		addr       = flag.String("addr", ":8080", "listen address (live mode only)")
		tickPeriod = flag.Float64("tick", 1.0/30.0, "seconds of simulated time advanced per real-time step (live and tui modes)")
	)
	flag.Parse()

	marbles, err := scenario.Generate(*width, *height, scenario.WithCount(*count), scenario.WithSeed(*seed))
	if err != nil {
		return fmt.Errorf("generate scenario: %w", err)
	}

	switch *output {
	case "png":
		return runPNG(marbles, *width, *height, *duration, *pngOut, *pixWidth, *pixHeight)
	case "live":
		return runLive(marbles, *width, *height, *addr, *tickPeriod)
	case "tui":
		return runTUI(marbles, *width, *height, *tickPeriod)
	default:
		return fmt.Errorf("unknown -output %q (want png, live, or tui)", *output)
	}
}

func runPNG(marbles []*marble.Marble, width, height, duration float64, path string, pixWidth, pixHeight int) error {
	sim, err := simulation.New(width, height, marbles)
	if err != nil {
		return err
	}
	sim.AdvanceTo(duration)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := raster.WritePNG(f, sim, pixWidth, pixHeight); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	log.Printf("wrote %s (t=%.3f, %d marbles)", path, sim.T(), len(sim.Marbles()))
	return nil
}

func runLive(marbles []*marble.Marble, width, height float64, addr string, tickPeriod float64) error {
	broadcaster := live.NewBroadcaster()
	sim, err := simulation.New(width, height, marbles, simulation.WithHandler(broadcaster))
	if err != nil {
		return err
	}

	http.HandleFunc("/ws", broadcaster.HandleWebsocket)
	go func() {
		log.Printf("live: serving ws://%s/ws", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Fatalf("live: serve: %v", err)
		}
	}()

	ticker := time.NewTicker(time.Duration(tickPeriod * float64(time.Second)))
	defer ticker.Stop()
	t := sim.T()
	for range ticker.C {
		// Each step's tick makes the broadcaster push a frame; it fires
		// during the following step's AdvanceTo.
		sim.ScheduleTickIn(tickPeriod)
		t += tickPeriod
		sim.AdvanceTo(t)
	}
	return nil
}

func runTUI(marbles []*marble.Marble, width, height, tickPeriod float64) error {
	sim, err := simulation.New(width, height, marbles)
	if err != nil {
		return err
	}
	viewer, err := tui.New(sim)
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer viewer.Close()

	t := sim.T()
	viewer.Run(func(dt time.Duration) bool {
		t += tickPeriod
		sim.AdvanceTo(t)
		return true
	})
	return nil
}
