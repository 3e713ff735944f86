package model

import (
	"crypto/md5"
	"fmt"
)

// Snapshot is a read-only copy of one generation.
type Snapshot struct {
	width  int
	height int
	cells  []Cell
}

// Width returns the width of the snapshot
func (s Snapshot) Width() int { return s.width }

// Height returns the height of the snapshot
func (s Snapshot) Height() int { return s.height }

// At returns the cell at (x, y), wrapping coordinates toroidally.
func (s Snapshot) At(x, y int) Cell {
	x = (x%s.width + s.width) % s.width
	y = (y%s.height + s.height) % s.height
	return s.cells[y*s.width+x]
}

// Alive returns the number of live cells.
func (s Snapshot) Alive() (count int) {
	for _, c := range s.cells {
		if c.Alive {
			count++
		}
	}
	return
}

// Fingerprint returns an MD5 hash of the liveness, color and death frame of
// every cell. Jitter and age are left out so visually identical boards
// hash the same.
func (s Snapshot) Fingerprint() string {
	h := md5.New()
	for _, c := range s.cells {
		alive := byte(0)
		if c.Alive {
			alive = 1
		}
		h.Write([]byte{alive, byte(c.ColorIndex), byte(c.DeathFrame)})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
