// Package render draws environment states into RGBA pixel buffers. It
// is a pure presentation layer over the public env state fields.
package render

import (
	"image"
	"image/color"

	"pcgrl/env"
	"pcgrl/grid"
	"pcgrl/pathfinding"
	"pcgrl/reps"
)

// DefaultTileSize is the sprite edge length in pixels.
const DefaultTileSize = 16

var tileColors = map[grid.Tile]color.RGBA{
	grid.Border: {R: 30, G: 30, B: 30, A: 255},
	grid.Empty:  {R: 235, G: 235, B: 235, A: 255},
	grid.Wall:   {R: 110, G: 80, B: 50, A: 255},
	grid.Path:   {R: 250, G: 210, B: 60, A: 255},
}

var (
	cursorColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	staticColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Map renders the state: tiles inside a one-tile border frame, the
// shortest-path overlay, white borders on agent cursors and red borders
// on static tiles.
func Map(st *env.State, tileSize int) *image.RGBA {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	fullH, fullW := st.Map.H+2, st.Map.W+2
	img := image.NewRGBA(image.Rect(0, 0, fullW*tileSize, fullH*tileSize))

	// Border frame plus map tiles.
	for y := 0; y < fullH; y++ {
		for x := 0; x < fullW; x++ {
			tile := grid.Border
			if y > 0 && y <= st.Map.H && x > 0 && x <= st.Map.W {
				tile = st.Map.At(y-1, x-1)
			}
			fillTile(img, y, x, tileSize, tileColors[tile])
		}
	}

	// Shortest-path overlay from the problem state.
	if st.ProbState != nil {
		for _, c := range st.ProbState.Path {
			if c == pathfinding.NoCoord {
				break
			}
			fillTile(img, c[0]+1, c[1]+1, tileSize, tileColors[grid.Path])
		}
	}

	// Static-tile borders.
	if st.Static != nil {
		for y := 0; y < st.Static.H; y++ {
			for x := 0; x < st.Static.W; x++ {
				if st.Static.At(y, x) {
					outlineTile(img, y+1, x+1, tileSize, staticColor)
				}
			}
		}
	}

	// Agent cursor borders, for representations that have cursors.
	if pos, ok := st.RepState.(reps.Positioned); ok {
		for _, p := range pos.Positions() {
			outlineTile(img, p[0]+1, p[1]+1, tileSize, cursorColor)
		}
	}
	return img
}

func fillTile(img *image.RGBA, ty, tx, size int, c color.RGBA) {
	for py := ty * size; py < (ty+1)*size; py++ {
		for px := tx * size; px < (tx+1)*size; px++ {
			img.SetRGBA(px, py, c)
		}
	}
}

// outlineTile draws a 2px frame inside the tile's cell.
func outlineTile(img *image.RGBA, ty, tx, size int, c color.RGBA) {
	y0, x0 := ty*size, tx*size
	for d := 0; d < 2; d++ {
		for px := x0; px < x0+size; px++ {
			img.SetRGBA(px, y0+d, c)
			img.SetRGBA(px, y0+size-1-d, c)
		}
		for py := y0; py < y0+size; py++ {
			img.SetRGBA(x0+d, py, c)
			img.SetRGBA(x0+size-1-d, py, c)
		}
	}
}
