package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/living-glass/rules"
)

// fixedRand always returns the same draws.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) IntN(n int) int   { return min(r.n, n-1) }
func (r fixedRand) Float64() float64 { return r.f }

func newEmptyGrid(t *testing.T, width, height int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height, NewRand(1))
	require.NoError(t, err)
	g.Clear()
	return g
}

func liveCell(colorIndex int) Cell {
	return Cell{Alive: true, ColorIndex: colorIndex}
}

func aliveSet(s Snapshot) map[[2]int]bool {
	out := map[[2]int]bool{}
	for y := range s.Height() {
		for x := range s.Width() {
			if s.At(x, y).Alive {
				out[[2]int{x, y}] = true
			}
		}
	}
	return out
}

func TestNewGridRejectsNonPositiveDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative width", -3, 10},
		{"negative both", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.width, tt.height, NewRand(1))
			require.ErrorIs(t, err, ErrInvalidDimensions)
			assert.Nil(t, g)
		})
	}
}

func TestNewGridRequiresRand(t *testing.T) {
	_, err := NewGrid(4, 4, nil)
	require.ErrorIs(t, err, ErrNilRand)
}

func TestRandomizeSeedsPopulation(t *testing.T) {
	g, err := NewGrid(50, 50, NewRand(7))
	require.NoError(t, err)

	s := g.Snapshot()
	for y := range s.Height() {
		for x := range s.Width() {
			c := s.At(x, y)
			assert.Zero(t, c.DeathFrame)
			assert.GreaterOrEqual(t, c.ColorIndex, 0)
			assert.Less(t, c.ColorIndex, PaletteSize)
			if c.Alive {
				assert.LessOrEqual(t, c.Age, 5)
			} else {
				assert.Zero(t, c.Age)
			}
		}
	}
	density := float64(s.Alive()) / float64(50*50)
	assert.InDelta(t, 0.25, density, 0.05)
	assert.Zero(t, g.Generation())
}

func TestDeterministicUnderFixedSeed(t *testing.T) {
	run := func(workers int) Snapshot {
		g, err := NewGrid(40, 30, NewRand(42), WithWorkers(workers))
		require.NoError(t, err)
		g.Randomize()
		for range 60 {
			g.Advance()
		}
		return g.Snapshot()
	}

	first := run(1)
	assert.Equal(t, first, run(1))
	assert.Equal(t, first.Fingerprint(), run(8).Fingerprint())
	assert.Equal(t, first, run(8))
}

func TestNeighborCountWrapsToroidally(t *testing.T) {
	g := newEmptyGrid(t, 5, 5)
	g.Set(0, 0, liveCell(0))

	assert.Equal(t, 1, g.NeighborCount(4, 4))
	assert.Equal(t, 1, g.NeighborCount(4, 0))
	assert.Equal(t, 1, g.NeighborCount(0, 4))
	assert.Equal(t, 1, g.NeighborCount(1, 1))
	assert.Equal(t, 0, g.NeighborCount(0, 0))
	assert.Equal(t, 0, g.NeighborCount(2, 2))
}

func TestLoneCellDies(t *testing.T) {
	g := newEmptyGrid(t, 3, 3)
	g.Set(1, 1, Cell{Alive: true, Age: 3, ColorIndex: 4})

	g.Advance()

	c := g.Snapshot().At(1, 1)
	assert.False(t, c.Alive)
	assert.Equal(t, 1, c.DeathFrame)
	assert.Zero(t, c.Age)
	assert.Equal(t, 4, c.ColorIndex)
	assert.LessOrEqual(t, math.Abs(c.JitterX), rules.DeathJitter)
	assert.LessOrEqual(t, math.Abs(c.JitterY), rules.DeathJitter)
	assert.Zero(t, g.Population())
	assert.Empty(t, g.LastInjections())
}

func TestDeathAnimationTerminates(t *testing.T) {
	g := newEmptyGrid(t, 3, 3)
	g.Set(1, 1, liveCell(2))
	g.Advance()
	require.Equal(t, 1, g.Snapshot().At(1, 1).DeathFrame)

	prevBound := math.Inf(1)
	for k := 1; k < rules.MaxDeathFrames; k++ {
		g.Advance()
		c := g.Snapshot().At(1, 1)
		require.False(t, c.Alive)
		require.Equal(t, 1+k, c.DeathFrame)

		bound := rules.JitterIntensity(c.DeathFrame)
		assert.Less(t, bound, prevBound, "frame %d", c.DeathFrame)
		assert.LessOrEqual(t, math.Abs(c.JitterX), bound)
		assert.LessOrEqual(t, math.Abs(c.JitterY), bound)
		prevBound = bound
	}

	g.Advance()
	c := g.Snapshot().At(1, 1)
	assert.Zero(t, c.DeathFrame)
	assert.Zero(t, c.JitterX)
	assert.Zero(t, c.JitterY)
	assert.Equal(t, Cell{ColorIndex: 2}, c)

	// Inert cells stay put.
	g.Advance()
	assert.Equal(t, Cell{ColorIndex: 2}, g.Snapshot().At(1, 1))
}

func TestGliderTranslates(t *testing.T) {
	// 8x8 keeps the population above the injection threshold (64/12 = 5).
	g := newEmptyGrid(t, 8, 8)
	glider := [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	for _, p := range glider {
		g.Set(p[0], p[1], liveCell(9))
	}

	for range 4 {
		g.Advance()
		require.Empty(t, g.LastInjections())
	}

	want := map[[2]int]bool{}
	for _, p := range glider {
		want[[2]int{p[0] + 1, p[1] + 1}] = true
	}
	assert.Equal(t, want, aliveSet(g.Snapshot()))
}

func TestSurvivorsAgeAndKeepColor(t *testing.T) {
	g := newEmptyGrid(t, 6, 6)
	for _, p := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		g.Set(p[0], p[1], Cell{Alive: true, Age: rules.MaxAge - 1, ColorIndex: 7})
	}

	g.Advance()
	g.Advance()

	c := g.Snapshot().At(1, 1)
	assert.True(t, c.Alive)
	assert.Equal(t, rules.MaxAge, c.Age)
	assert.Equal(t, 7, c.ColorIndex)
}

func TestBirthTakesDominantColor(t *testing.T) {
	g, err := NewGrid(5, 5, fixedRand{f: 0.5, n: 0})
	require.NoError(t, err)
	g.Clear()
	g.Set(1, 1, liveCell(6))
	g.Set(2, 1, liveCell(6))
	g.Set(3, 1, liveCell(11))

	g.Advance()

	c := g.Snapshot().At(2, 2)
	assert.True(t, c.Alive)
	assert.Zero(t, c.Age)
	assert.Zero(t, c.DeathFrame)
	assert.Equal(t, 6, c.ColorIndex)
}

func TestDominantNeighborColor(t *testing.T) {
	newGrid := func(r Rand) *Grid {
		g, err := NewGrid(5, 5, r)
		require.NoError(t, err)
		g.Clear()
		return g
	}

	t.Run("majority wins", func(t *testing.T) {
		g := newGrid(fixedRand{f: 0.5})
		g.Set(1, 1, liveCell(3))
		g.Set(2, 1, liveCell(8))
		g.Set(3, 3, liveCell(8))
		assert.Equal(t, 8, g.DominantNeighborColor(2, 2))
	})

	t.Run("tie goes to first to reach the top tally", func(t *testing.T) {
		g := newGrid(fixedRand{f: 0.5})
		g.Set(1, 1, liveCell(3))
		g.Set(2, 1, liveCell(5))
		g.Set(3, 1, liveCell(5))
		g.Set(1, 2, liveCell(3))
		assert.Equal(t, 5, g.DominantNeighborColor(2, 2))
	})

	t.Run("single colors keep scan order", func(t *testing.T) {
		g := newGrid(fixedRand{f: 0.5})
		g.Set(3, 3, liveCell(1))
		g.Set(1, 2, liveCell(2))
		g.Set(2, 1, liveCell(12))
		assert.Equal(t, 12, g.DominantNeighborColor(2, 2))
	})

	t.Run("mutation ignores neighbors", func(t *testing.T) {
		g := newGrid(fixedRand{f: 0.01, n: 15})
		g.Set(1, 1, liveCell(3))
		assert.Equal(t, 15, g.DominantNeighborColor(2, 2))
	})

	t.Run("no neighbors falls back to random", func(t *testing.T) {
		g := newGrid(fixedRand{f: 0.5, n: 9})
		assert.Equal(t, 9, g.DominantNeighborColor(2, 2))
	})
}

func TestExtinctGridInjectsFivePatterns(t *testing.T) {
	g := newEmptyGrid(t, 40, 40)

	g.Advance()

	injections := g.LastInjections()
	require.Len(t, injections, 5)

	byName := map[string]Pattern{}
	for _, p := range Patterns() {
		byName[p.Name] = p
	}

	written := map[[2]int]int{}
	for _, in := range injections {
		assert.GreaterOrEqual(t, in.X, 10)
		assert.Less(t, in.X, 30)
		assert.GreaterOrEqual(t, in.Y, 10)
		assert.Less(t, in.Y, 30)

		p, ok := byName[in.Pattern]
		require.True(t, ok, in.Pattern)
		assert.Equal(t, len(p.Offsets), in.Written)
		for _, o := range p.Offsets {
			written[[2]int{in.X + o.DX, in.Y + o.DY}] = in.Color
		}
	}

	s := g.Snapshot()
	assert.Equal(t, len(written), s.Alive())
	assert.Equal(t, len(written), g.Population())
	for pos, colorIndex := range written {
		c := s.At(pos[0], pos[1])
		assert.Equal(t, Cell{Alive: true, ColorIndex: colorIndex}, c, "cell %v", pos)
	}
}

func TestModeratePopulationInjectsOnce(t *testing.T) {
	// 25 isolated blocks give 100 stable cells; 1600/25 = 64 <= 100 < 1600/12 = 133.
	g := newEmptyGrid(t, 40, 40)
	for i := range 5 {
		for j := range 5 {
			for _, d := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
				g.Set(4*i+d[0], 4*j+d[1], liveCell(0))
			}
		}
	}

	g.Advance()
	assert.Len(t, g.LastInjections(), 1)
}

func TestHealthyPopulationIsLeftAlone(t *testing.T) {
	// A 10x10 grid: thresholds are 100/25 = 4 and 100/12 = 8.
	g := newEmptyGrid(t, 10, 10)
	for _, origin := range [][2]int{{1, 1}, {5, 1}, {1, 5}} {
		for _, d := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			g.Set(origin[0]+d[0], origin[1]+d[1], liveCell(0))
		}
	}

	g.Advance()
	assert.Empty(t, g.LastInjections())
	assert.Equal(t, 12, g.Population())
}

func TestInvariantsHoldAcrossGenerations(t *testing.T) {
	g, err := NewGrid(60, 40, NewRand(2024))
	require.NoError(t, err)

	for gen := range 200 {
		g.Advance()
		s := g.Snapshot()
		for y := range s.Height() {
			for x := range s.Width() {
				c := s.At(x, y)
				require.GreaterOrEqual(t, c.ColorIndex, 0)
				require.Less(t, c.ColorIndex, PaletteSize)
				require.GreaterOrEqual(t, c.DeathFrame, 0)
				require.LessOrEqual(t, c.DeathFrame, rules.MaxDeathFrames)
				require.LessOrEqual(t, c.Age, rules.MaxAge)
				if c.Alive {
					require.Zero(t, c.DeathFrame, "gen %d cell (%d,%d)", gen, x, y)
				} else {
					require.Zero(t, c.Age, "gen %d cell (%d,%d)", gen, x, y)
				}
				if !c.Alive && c.DeathFrame == 0 {
					require.Zero(t, c.JitterX)
					require.Zero(t, c.JitterY)
				}
			}
		}
	}
	assert.Equal(t, 200, g.Generation())
}

func TestStampSkipsOutOfBounds(t *testing.T) {
	g := newEmptyGrid(t, 10, 10)
	glider := Patterns()[2]
	require.Equal(t, "glider", glider.Name)

	written := g.Stamp(glider, 0, 0, 3)

	assert.Equal(t, 4, written)
	assert.Equal(t, 4, g.Population())
	assert.False(t, g.Snapshot().At(2, 9).Alive)
	assert.Equal(t, liveCell(3), g.Snapshot().At(2, 0))
}

func TestStampOverwritesDyingCells(t *testing.T) {
	g := newEmptyGrid(t, 12, 12)
	g.Set(5, 5, Cell{DeathFrame: 4, JitterX: 1, JitterY: -1, ColorIndex: 1})

	g.Stamp(Pattern{Offsets: []Offset{{0, 0}}}, 5, 5, 20)

	assert.Equal(t, liveCell(4), g.Snapshot().At(5, 5))
}

func TestInjectPatternOnTinyGrid(t *testing.T) {
	g := newEmptyGrid(t, 5, 5)

	in := g.InjectPattern()

	assert.Equal(t, 10, in.X)
	assert.Equal(t, 10, in.Y)
	assert.Zero(t, in.Written)
	assert.Zero(t, g.Population())
}

func TestSetNormalizesCell(t *testing.T) {
	g := newEmptyGrid(t, 4, 4)

	g.Set(5, -1, Cell{Alive: true, Age: 99, ColorIndex: 21, DeathFrame: 5, JitterX: 1})
	assert.Equal(t, Cell{Alive: true, Age: rules.MaxAge, ColorIndex: 5}, g.Snapshot().At(1, 3))

	g.Set(0, 0, Cell{Age: 4, ColorIndex: -1, JitterY: 2})
	assert.Equal(t, Cell{ColorIndex: 15}, g.Snapshot().At(0, 0))
}

func TestSnapshotIsDetached(t *testing.T) {
	g, err := NewGrid(20, 20, NewRand(3))
	require.NoError(t, err)

	s := g.Snapshot()
	fingerprint := s.Fingerprint()
	for range 3 {
		g.Advance()
	}

	assert.Equal(t, fingerprint, s.Fingerprint())
	assert.NotEqual(t, fingerprint, g.Snapshot().Fingerprint())
}

func TestRandomizeResetsGeneration(t *testing.T) {
	g, err := NewGrid(20, 20, NewRand(5))
	require.NoError(t, err)
	g.Advance()
	g.Advance()
	require.Equal(t, 2, g.Generation())

	g.Randomize()
	assert.Zero(t, g.Generation())
	assert.Empty(t, g.LastInjections())
}
