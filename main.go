package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/living-glass/utils"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON configuration")
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Using default configuration (%s not found)\n", *configPath)
		config = utils.DefaultConfig()
	}

	// Initialize game
	sim, err := initializeGame(config)
	if err != nil {
		fmt.Printf("Error initializing simulation: %+v\n", err)
		os.Exit(1)
	}
	displayGameInfo(config, sim)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	tick := frameTick(config.FrameRate)

	lastFrameTime := time.Now()
	for {
		frameStart := time.Now()
		if config.Render {
			sim.renderer.Clear()
			sim.renderer.Display(sim.grid.Snapshot())
		}

		sim.grid.Advance()
		status := updateGameState(sim, lastFrameTime)
		lastFrameTime = frameStart
		displayGameStatus(config, sim, status)

		// Check for max generations limit
		if config.MaxGenerations > 0 && sim.grid.Generation() >= config.MaxGenerations {
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
			break
		}

		select {
		case <-sigChan:
			fmt.Println("\n🛑 Shutting down gracefully...")
			shutdown(config, sim)
			return
		case <-tick:
		}
	}
	shutdown(config, sim)
}

// frameTick returns a channel that fires once per frame; a zero interval runs
// flat out.
func frameTick(interval time.Duration) <-chan time.Time {
	if interval <= 0 {
		c := make(chan time.Time)
		close(c)
		return c
	}
	return time.NewTicker(interval).C
}
