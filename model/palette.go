package model

import "image/color"

// PaletteSize is the number of colors a cell can carry.
const PaletteSize = 16

var palette = [PaletteSize]color.RGBA{
	{R: 242, G: 66, B: 54, A: 255},
	{R: 232, G: 31, B: 99, A: 255},
	{R: 156, G: 38, B: 176, A: 255},
	{R: 102, G: 59, B: 184, A: 255},
	{R: 64, G: 82, B: 181, A: 255},
	{R: 33, G: 150, B: 242, A: 255},
	{R: 3, G: 168, B: 245, A: 255},
	{R: 0, G: 189, B: 212, A: 255},
	{R: 0, G: 150, B: 135, A: 255},
	{R: 77, G: 176, B: 79, A: 255},
	{R: 140, G: 194, B: 74, A: 255},
	{R: 204, G: 219, B: 56, A: 255},
	{R: 255, G: 235, B: 59, A: 255},
	{R: 255, G: 194, B: 8, A: 255},
	{R: 255, G: 153, B: 0, A: 255},
	{R: 245, G: 84, B: 33, A: 255},
}

// Palette returns the fixed cell colors. The array is returned by value so
// callers cannot modify the shared table.
func Palette() [PaletteSize]color.RGBA {
	return palette
}
