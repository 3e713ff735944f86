package main

import (
	"fmt"
	"time"

	"github.com/sheikhrachel/living-glass/model"
	"github.com/sheikhrachel/living-glass/utils"
)

// game bundles the simulation with the driver-side state around it
type game struct {
	grid     *model.Grid
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	history  *utils.History
	seed     int64
}

// gameStatus is what the driver learned about the latest generation
type gameStatus struct {
	livingCells int
	density     float64
	injections  []model.Injection
	period      int
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (*game, error) {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var opts []model.Option
	if config.Workers > 0 {
		opts = append(opts, model.WithWorkers(config.Workers))
	}
	grid, err := model.NewGrid(config.Width, config.Height, model.NewRand(seed), opts...)
	if err != nil {
		return nil, err
	}

	return &game{
		grid:     grid,
		renderer: &model.TerminalRenderer{},
		stats:    utils.NewStats(),
		history:  utils.NewHistory(config.HistorySize),
		seed:     seed,
	}, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, g *game) {
	fmt.Printf("Grid: %dx%d | Seed: %d | Initial living cells: %d\n",
		g.grid.Width(), g.grid.Height(), g.seed, g.grid.Population())
	fmt.Printf("Frame interval: %s | Render: %v\n", config.FrameRate, config.Render)
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// updateGameState records the generation that was just computed
func updateGameState(g *game, lastFrameTime time.Time) gameStatus {
	snapshot := g.grid.Snapshot()
	status := gameStatus{
		livingCells: snapshot.Alive(),
		injections:  g.grid.LastInjections(),
		period:      g.history.Period(snapshot.Fingerprint()),
	}
	status.density = float64(status.livingCells) / float64(g.grid.Width()*g.grid.Height()) * 100

	// Update performance stats
	g.stats.Update(g.grid.Generation(), status.livingCells, len(status.injections), time.Since(lastFrameTime))

	return status
}

// displayGameStatus shows the current game status
func displayGameStatus(config utils.Config, g *game, status gameStatus) {
	state := "Active"
	switch {
	case status.period == 1:
		state = "Still"
	case status.period > 1:
		state = fmt.Sprintf("Cycling (period %d)", status.period)
	}

	injected := ""
	for _, in := range status.injections {
		injected += fmt.Sprintf(" %s@%d,%d", in.Pattern, in.X, in.Y)
	}
	if injected != "" {
		injected = " | Injected:" + injected
	}

	fmt.Printf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s%s\n",
		g.grid.Generation(), status.livingCells, status.density, state, injected)
	if config.Render {
		fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
			g.stats.GenerationsPerSecond, g.stats.AveragePopulation, time.Since(g.stats.StartTime).Seconds())
	}
}

// shutdown prints the final stats and exports the population chart
func shutdown(config utils.Config, g *game) {
	fmt.Printf("Final stats: %d generations in %.1f seconds, %d patterns injected\n",
		g.stats.TotalGenerations, time.Since(g.stats.StartTime).Seconds(), g.stats.TotalInjections)
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation)

	if config.PopulationChart == "" {
		return
	}
	if err := utils.WritePopulationChart(config.PopulationChart, g.stats); err != nil {
		fmt.Printf("Error writing population chart: %v\n", err)
		return
	}
	fmt.Printf("Population chart written to %s\n", config.PopulationChart)
}
