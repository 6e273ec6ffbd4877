package analysis

import (
	"path"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"pcgrl/types"
)

// EditGrid counts how often each map cell was edited across a run's
// traces.
type EditGrid struct {
	Visits map[int]map[int]int
	Height int
	Width  int
}

var _ plotter.GridXYZ = &EditGrid{}

func (g *EditGrid) Dims() (int, int) {
	return g.Width, g.Height
}

func (g *EditGrid) Z(c, r int) float64 {
	return float64(g.Visits[r][c])
}

func (g *EditGrid) X(c int) float64 {
	return float64(c)
}

func (g *EditGrid) Y(r int) float64 {
	return float64(r)
}

func (g *EditGrid) Min() float64 {
	return 0.0
}

func (g *EditGrid) Max() float64 {
	max := 0
	for _, row := range g.Visits {
		for _, count := range row {
			if count > max {
				max = count
			}
		}
	}
	return float64(max)
}

// EditHeatmap aggregates edit locations over all traces of a run.
func EditHeatmap(height, width int) types.Analyzer {
	return func(run int, experiment string, traces []*types.Trace) types.DataSet {
		g := &EditGrid{
			Visits: make(map[int]map[int]int),
			Height: height,
			Width:  width,
		}
		for _, trace := range traces {
			for i := 0; i < trace.Len(); i++ {
				s, _ := trace.Get(i)
				for _, e := range s.Edits {
					if _, ok := g.Visits[e[0]]; !ok {
						g.Visits[e[0]] = make(map[int]int)
					}
					g.Visits[e[0]][e[1]]++
				}
			}
		}
		return g
	}
}

// EditHeatmapPlotter draws one heat map per experiment showing where
// the agent concentrated its edits.
func EditHeatmapPlotter(plotPath string) types.Comparator {
	return func(run int, experiments []string, datasets []types.DataSet) {
		for i, name := range experiments {
			g := datasets[i].(*EditGrid)
			p := plot.New()
			p.Title.Text = name
			p.X.Label.Text = "Column"
			p.Y.Label.Text = "Row"
			p.Add(plotter.NewHeatMap(g, palette.Heat(16, 1)))
			p.Save(6*vg.Inch, 6*vg.Inch,
				path.Join(plotPath, strconv.Itoa(run)+"_"+name+"_edits.png"))
		}
	}
}
