package model

// Offset is a cell position relative to a pattern anchor.
type Offset struct {
	DX, DY int
}

// Pattern is a named classic Life structure.
type Pattern struct {
	Name    string
	Offsets []Offset
}

var patterns = []Pattern{
	{Name: "r-pentomino", Offsets: []Offset{{0, 0}, {1, 0}, {-1, 1}, {0, 1}, {0, 2}}},
	{Name: "acorn", Offsets: []Offset{{0, 0}, {1, 0}, {1, 2}, {3, 1}, {4, 0}, {5, 0}, {6, 0}}},
	{Name: "glider", Offsets: []Offset{{0, 0}, {1, 1}, {2, 1}, {2, 0}, {2, -1}}},
	{Name: "lwss", Offsets: []Offset{{0, 0}, {1, -1}, {2, -1}, {3, -1}, {3, 0}, {3, 1}, {2, 2}, {0, 1}}},
	{Name: "diehard", Offsets: []Offset{{0, 0}, {1, 0}, {1, 1}, {5, 1}, {6, 1}, {7, 1}, {6, -1}}},
}

// Patterns returns a copy of the injection catalogue.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = Pattern{Name: p.Name, Offsets: append([]Offset(nil), p.Offsets...)}
	}
	return out
}
