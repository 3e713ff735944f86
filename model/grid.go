package model

import (
	"image/color"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/living-glass/rules"
)

var (
	// ErrInvalidDimensions is returned when a grid is requested with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrNilRand is returned when a grid is requested without a random source.
	ErrNilRand = errors.New("nil random source")
)

const (
	seedDensity     = 0.25
	seedMaxAge      = 5
	mutationChance  = 0.08
	injectionMargin = 10
)

// Option configures a Grid at construction time.
type Option func(*Grid)

// WithWorkers sets how many goroutines count neighbors during Advance.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(g *Grid) {
		if n > 0 {
			g.workers = n
		}
	}
}

// Injection records one pattern placed by the population-sustaining policy.
type Injection struct {
	Pattern string
	X, Y    int
	Color   int
	// Written is the number of in-bounds cells the pattern overwrote.
	Written int
}

// Grid is a toroidal Life board whose cells age, inherit colors and fade out
// over several generations after dying.
//
// A Grid is not safe for concurrent use. One driver calls Advance once per
// frame and reads Snapshot between calls.
type Grid struct {
	width   int
	height  int
	cells   []Cell
	next    []Cell
	counts  []uint8
	rng     Rand
	workers int

	generation int
	injections []Injection
}

// NewGrid creates a grid with the specified dimensions and seeds it with a
// random population.
func NewGrid(width, height int, rng Rand, opts ...Option) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] width=%d height=%d", width, height)
	}
	if rng == nil {
		return nil, errors.WithStack(ErrNilRand)
	}
	size := width * height
	g := &Grid{
		width:   width,
		height:  height,
		cells:   make([]Cell, size),
		next:    make([]Cell, size),
		counts:  make([]uint8, size),
		rng:     rng,
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Randomize()
	return g, nil
}

// Width returns the width of the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the height of the grid
func (g *Grid) Height() int {
	return g.height
}

// Generation returns how many times Advance ran since the last reseed.
func (g *Grid) Generation() int {
	return g.generation
}

// Palette returns the colors ColorIndex refers to.
func (g *Grid) Palette() [PaletteSize]color.RGBA {
	return Palette()
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

func (g *Grid) wrap(x, y int) (int, int) {
	x = (x%g.width + g.width) % g.width
	y = (y%g.height + g.height) % g.height
	return x, y
}

// Randomize reseeds every cell: alive with probability 0.25, a random age in
// [0, 5] for live cells, and a random palette color.
func (g *Grid) Randomize() {
	for i := range g.cells {
		alive := g.rng.Float64() < seedDensity
		age := 0
		if alive {
			age = g.rng.IntN(seedMaxAge + 1)
		}
		g.cells[i] = Cell{
			Alive:      alive,
			Age:        age,
			ColorIndex: g.rng.IntN(PaletteSize),
		}
	}
	g.generation = 0
	g.injections = nil
}

// Clear kills every cell without starting a death animation.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
	g.generation = 0
	g.injections = nil
}

// Set overwrites the cell at (x, y), wrapping coordinates. The cell is
// normalized so a live cell never carries a death frame and the color stays
// inside the palette.
func (g *Grid) Set(x, y int, c Cell) {
	x, y = g.wrap(x, y)
	c.ColorIndex = ((c.ColorIndex % PaletteSize) + PaletteSize) % PaletteSize
	c.Age = max(0, min(c.Age, rules.MaxAge))
	c.DeathFrame = max(0, min(c.DeathFrame, rules.MaxDeathFrames))
	if c.Alive || c.DeathFrame == 0 {
		c.DeathFrame = 0
		c.JitterX, c.JitterY = 0, 0
	}
	if !c.Alive {
		c.Age = 0
	}
	g.cells[g.index(x, y)] = c
}

// NeighborCount counts live cells in the Moore neighborhood of (x, y) with
// toroidal wrapping.
func (g *Grid) NeighborCount(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := g.wrap(x+dx, y+dy)
			if g.cells[g.index(nx, ny)].Alive {
				count++
			}
		}
	}
	return count
}

// DominantNeighborColor returns the most common color among live neighbors of
// (x, y). Ties go to the color that reached the winning tally first, scanning
// rows top to bottom and columns left to right. With probability 0.08, or when
// no neighbor is alive, a random palette color is returned instead.
func (g *Grid) DominantNeighborColor(x, y int) int {
	var tally [PaletteSize]int
	best, bestCount := -1, 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := g.wrap(x+dx, y+dy)
			cell := g.cells[g.index(nx, ny)]
			if !cell.Alive {
				continue
			}
			tally[cell.ColorIndex]++
			if tally[cell.ColorIndex] > bestCount {
				best, bestCount = cell.ColorIndex, tally[cell.ColorIndex]
			}
		}
	}
	if g.rng.Float64() < mutationChance || best < 0 {
		return g.rng.IntN(PaletteSize)
	}
	return best
}

// countNeighbors fills g.counts for the current generation, splitting rows
// across workers. It only reads g.cells, so bands never contend.
func (g *Grid) countNeighbors() {
	workers := min(g.workers, g.height)
	if workers <= 1 {
		g.countRows(0, g.height)
		return
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (g.height + workers - 1) / workers
	)
	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}
		eg.Go(func() error {
			g.countRows(startRow, endRow)
			return nil
		})
	}
	// Workers never fail.
	_ = eg.Wait()
}

func (g *Grid) countRows(startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := range g.width {
			g.counts[g.index(x, y)] = uint8(g.NeighborCount(x, y))
		}
	}
}

// Advance computes the next generation into the scratch buffer, swaps it in,
// then tops up the population by injecting patterns when it runs low.
func (g *Grid) Advance() {
	g.countNeighbors()
	copy(g.next, g.cells)

	alive := 0
	for y := range g.height {
		for x := range g.width {
			i := g.index(x, y)
			cur, n := g.cells[i], int(g.counts[i])
			next := &g.next[i]

			switch {
			case cur.Alive && !rules.Survives(n):
				next.Alive = false
				next.Age = 0
				next.DeathFrame = 1
				next.JitterX = symmetric(g.rng, rules.DeathJitter)
				next.JitterY = symmetric(g.rng, rules.DeathJitter)
			case cur.Alive:
				next.Age = rules.NextAge(cur.Age)
				alive++
			case rules.Born(n):
				*next = Cell{Alive: true, ColorIndex: g.DominantNeighborColor(x, y)}
				alive++
			case cur.DeathFrame > 0:
				next.DeathFrame = rules.NextDeathFrame(cur.DeathFrame)
				if next.DeathFrame == 0 {
					next.JitterX, next.JitterY = 0, 0
					break
				}
				amplitude := rules.JitterIntensity(next.DeathFrame)
				next.JitterX = symmetric(g.rng, amplitude)
				next.JitterY = symmetric(g.rng, amplitude)
			}
		}
	}

	g.cells, g.next = g.next, g.cells
	g.generation++

	g.injections = g.injections[:0]
	for range rules.InjectionCount(alive, len(g.cells)) {
		g.injections = append(g.injections, g.InjectPattern())
	}
}

// InjectPattern stamps a random catalogue pattern in a random color at a
// random anchor at least 10 cells from the edges.
func (g *Grid) InjectPattern() Injection {
	x := injectionMargin + g.rng.IntN(max(injectionMargin+1, g.width-injectionMargin)-injectionMargin)
	y := injectionMargin + g.rng.IntN(max(injectionMargin+1, g.height-injectionMargin)-injectionMargin)
	colorIndex := g.rng.IntN(PaletteSize)
	p := patterns[g.rng.IntN(len(patterns))]

	return Injection{
		Pattern: p.Name,
		X:       x,
		Y:       y,
		Color:   colorIndex,
		Written: g.Stamp(p, x, y, colorIndex),
	}
}

// Stamp writes newborn cells of the given color at every pattern offset from
// (x, y) that lies inside the grid. Offsets outside the grid are skipped
// rather than wrapped. It returns the number of cells written.
func (g *Grid) Stamp(p Pattern, x, y, colorIndex int) int {
	colorIndex = ((colorIndex % PaletteSize) + PaletteSize) % PaletteSize
	written := 0
	for _, o := range p.Offsets {
		cx, cy := x+o.DX, y+o.DY
		if cx < 0 || cx >= g.width || cy < 0 || cy >= g.height {
			continue
		}
		g.cells[g.index(cx, cy)] = Cell{Alive: true, ColorIndex: colorIndex}
		written++
	}
	return written
}

// LastInjections returns the patterns injected by the most recent Advance.
func (g *Grid) LastInjections() []Injection {
	return append([]Injection(nil), g.injections...)
}

// Population returns the number of live cells in the current generation
func (g *Grid) Population() (count int) {
	for _, c := range g.cells {
		if c.Alive {
			count++
		}
	}
	return
}

// Snapshot returns a copy of the current generation.
func (g *Grid) Snapshot() Snapshot {
	return Snapshot{
		width:  g.width,
		height: g.height,
		cells:  append([]Cell(nil), g.cells...),
	}
}
