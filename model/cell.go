package model

// Cell is the state of a single grid position.
type Cell struct {
	Alive bool
	// Age counts consecutive generations survived, capped at rules.MaxAge.
	Age int
	// ColorIndex indexes Palette and is assigned at birth.
	ColorIndex int
	// DeathFrame is 0 unless the cell is fading out after death.
	DeathFrame int
	// JitterX and JitterY are positional offsets for the fade animation.
	JitterX, JitterY float64
}

// Dying reports whether the cell is mid death animation.
func (c Cell) Dying() bool {
	return !c.Alive && c.DeathFrame > 0
}
