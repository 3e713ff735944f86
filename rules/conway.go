package rules

const (
	// MaxAge caps how many generations a surviving cell keeps counting.
	MaxAge = 50

	// MaxDeathFrames is the length of the fade animation after a cell dies.
	MaxDeathFrames = 18

	// DeathJitter bounds the jitter applied on the generation a cell dies.
	DeathJitter = 2.0

	// FadeJitter is the jitter amplitude at the start of the fade, decaying
	// linearly to zero at MaxDeathFrames.
	FadeJitter = 2.5
)

/*
Survives reports whether a live cell with the given neighbor count stays alive.

Conway's Game of Life rules: a live cell survives with 2 or 3 neighbors
*/
func Survives(neighbors int) bool {
	return neighbors == 2 || neighbors == 3
}

// Born reports whether a dead cell with the given neighbor count comes alive.
func Born(neighbors int) bool {
	return neighbors == 3
}

// NextAge returns the age of a cell that survived another generation.
func NextAge(age int) int {
	return min(age+1, MaxAge)
}

// NextDeathFrame advances the fade animation by one generation. A frame of 0
// means the cell is inert; the returned frame is 0 once the animation ends.
func NextDeathFrame(frame int) int {
	if frame <= 0 || frame >= MaxDeathFrames {
		return 0
	}
	return frame + 1
}

// JitterIntensity is the jitter amplitude for a cell at the given death frame.
func JitterIntensity(frame int) float64 {
	if frame <= 0 || frame >= MaxDeathFrames {
		return 0
	}
	return FadeJitter * (1 - float64(frame)/float64(MaxDeathFrames))
}

// InjectionCount returns how many patterns to inject after a generation
// ended with alive live cells out of total.
func InjectionCount(alive, total int) int {
	switch {
	case alive < total/25:
		return 5
	case alive < total/12:
		return 1
	default:
		return 0
	}
}
