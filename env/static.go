package env

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"pcgrl/grid"
)

// genInitMap samples every cell independently from the problem's tile
// distribution.
func genInitMap(rng *rand.Rand, tileEnum []grid.Tile, tileProbs []float64, h, w int) *grid.Grid {
	g, _ := grid.New(h, w)
	for i := range g.Cells {
		idx, ok := sampleuv.NewWeighted(tileProbs, rng).Take()
		if !ok {
			idx = int(grid.Empty)
		}
		g.Cells[i] = tileEnum[idx]
	}
	return g
}

// genStaticTiles builds the frozen-tile mask: Bernoulli noise at the
// configured probability, unioned with nFreezies connected blob shapes.
func genStaticTiles(rng *rand.Rand, staticProb float64, nFreezies, h, w int) *grid.Bool {
	static := grid.NewBool(h, w)
	if staticProb > 0 {
		for i := range static.Cells {
			static.Cells[i] = rng.Float64() < staticProb
		}
	}
	for i := 0; i < nFreezies; i++ {
		genFreezie(rng, static)
	}
	return static
}

// genFreezie unions one connected rectangular-ish blob into the mask:
// a triangular membership profile is generated per axis around a random
// peak, thresholded at a random cutoff, and the two axis masks are
// ANDed together.
func genFreezie(rng *rand.Rand, static *grid.Bool) {
	rowPeak, colPeak := rng.Float64(), rng.Float64()
	rows := triangleProfile(static.H, rowPeak)
	cols := triangleProfile(static.W, colPeak)

	rowCut := profileCutoff(rng, rows)
	colCut := profileCutoff(rng, cols)

	for y := 0; y < static.H; y++ {
		if rows[y] <= rowCut {
			continue
		}
		for x := 0; x < static.W; x++ {
			if cols[x] > colCut {
				static.Set(y, x, true)
			}
		}
	}
}

// triangleProfile evaluates a period-2 triangle wave peaked at peak
// over n evenly spaced positions in [0, 1).
func triangleProfile(n int, peak float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = triangleWave(float64(i)/float64(n), peak, 2)
	}
	return out
}

// triangleWave is 1 at the peak and decays linearly to 0 half a period
// away, wrapping around the period.
func triangleWave(x, peak, period float64) float64 {
	d := math.Mod(x-peak+period, period)
	if d > period/2 {
		d = period - d
	}
	return 1 - 2*d/period
}

// profileCutoff samples a threshold between the profile extremes,
// biased upward so the surviving band stays a connected strip rather
// than covering the whole axis.
func profileCutoff(rng *rand.Rand, profile []float64) float64 {
	lo, hi := profile[0], profile[0]
	for _, v := range profile[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	min := lo * 1.5
	if min >= hi {
		return lo
	}
	return min + rng.Float64()*(hi-min)
}
