// Package pathfinding computes distance fields and shortest paths over
// tile grids with a bounded number of relaxation passes, so the cost of
// a call depends only on the map shape and never on its content.
package pathfinding

import "pcgrl/grid"

// Unreachable is the sentinel distance for blocked or disconnected cells.
const Unreachable = -1

// Sentinel coordinate padding path buffers beyond the actual path.
var NoCoord = [2]int{-1, -1}

// Neighbor scan order: up, down, left, right. Path extraction tie
// breaks follow this order, which keeps results deterministic.
var neighbors = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Flood computes the shortest hop-count from (srcY, srcX) to every
// passable cell. Each pass relaxes every cell against its four
// neighbors; passes stop at convergence or after H*W iterations,
// whichever comes first. The longest possible shortest path visits
// every cell once, so the bound never cuts off a reachable cell.
func Flood(g *grid.Grid, passable func(grid.Tile) bool, srcY, srcX int) *grid.Int {
	dist := grid.NewInt(g.H, g.W)
	dist.Fill(Unreachable)
	if !g.InBounds(srcY, srcX) || !passable(g.At(srcY, srcX)) {
		return dist
	}
	dist.Set(srcY, srcX, 0)

	maxPasses := g.H * g.W
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				if !passable(g.At(y, x)) {
					continue
				}
				best := dist.At(y, x)
				for _, n := range neighbors {
					ny, nx := y+n[0], x+n[1]
					if !g.InBounds(ny, nx) {
						continue
					}
					d := dist.At(ny, nx)
					if d == Unreachable {
						continue
					}
					if best == Unreachable || d+1 < best {
						best = d + 1
					}
				}
				if best != dist.At(y, x) {
					dist.Set(y, x, best)
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return dist
}

// Farthest returns the coordinates and distance of the cell with the
// largest finite distance, scanning in raster order so ties resolve
// deterministically. Returns NoCoord and Unreachable on an all-sentinel
// field.
func Farthest(dist *grid.Int) (y, x, d int) {
	y, x, d = NoCoord[0], NoCoord[1], Unreachable
	for cy := 0; cy < dist.H; cy++ {
		for cx := 0; cx < dist.W; cx++ {
			if v := dist.At(cy, cx); v > d {
				y, x, d = cy, cx, v
			}
		}
	}
	return y, x, d
}

// Diameter computes the longest shortest path within the connected
// region containing the raster-first passable cell: flood from that
// cell, then re-flood from the farthest cell found. Returns the hop
// count, the second distance field, and the path endpoints. A map with
// no passable cells yields (Unreachable, all-sentinel, NoCoord, NoCoord).
func Diameter(g *grid.Grid, passable func(grid.Tile) bool) (int, *grid.Int, [2]int, [2]int) {
	srcY, srcX := NoCoord[0], NoCoord[1]
	for y := 0; y < g.H && srcY < 0; y++ {
		for x := 0; x < g.W; x++ {
			if passable(g.At(y, x)) {
				srcY, srcX = y, x
				break
			}
		}
	}
	if srcY < 0 {
		dist := grid.NewInt(g.H, g.W)
		dist.Fill(Unreachable)
		return Unreachable, dist, NoCoord, NoCoord
	}

	first := Flood(g, passable, srcY, srcX)
	startY, startX, _ := Farthest(first)
	dist := Flood(g, passable, startY, startX)
	endY, endX, d := Farthest(dist)
	return d, dist, [2]int{startY, startX}, [2]int{endY, endX}
}

// PathCoords extracts one shortest path by walking from the goal toward
// distance zero, at each step taking the first neighbor (in scan order)
// whose distance is exactly one less. The result is ordered start to
// goal and padded with NoCoord up to maxLen. An unreachable goal yields
// an all-sentinel buffer.
func PathCoords(dist *grid.Int, goalY, goalX, maxLen int) [][2]int {
	coords := make([][2]int, maxLen)
	for i := range coords {
		coords[i] = NoCoord
	}
	if !inBounds(dist, goalY, goalX) {
		return coords
	}
	d := dist.At(goalY, goalX)
	if d == Unreachable || d >= maxLen {
		return coords
	}

	// Walk backward from the goal, filling the buffer tail-first so the
	// finished path reads start to goal.
	y, x := goalY, goalX
	for i := d; i >= 0; i-- {
		coords[i] = [2]int{y, x}
		if i == 0 {
			break
		}
		for _, n := range neighbors {
			ny, nx := y+n[0], x+n[1]
			if inBounds(dist, ny, nx) && dist.At(ny, nx) == i-1 {
				y, x = ny, nx
				break
			}
		}
	}
	return coords
}

// PathLen counts the leading non-sentinel coordinates of a path buffer.
func PathLen(coords [][2]int) int {
	for i, c := range coords {
		if c == NoCoord {
			return i
		}
	}
	return len(coords)
}

func inBounds(dist *grid.Int, y, x int) bool {
	return y >= 0 && y < dist.H && x >= 0 && x < dist.W
}
