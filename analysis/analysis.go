// Package analysis distills experiment traces into datasets and plots.
package analysis

import (
	"encoding/json"
	"path"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"pcgrl/types"
	"pcgrl/util"
)

// PathLength records the final path-length statistic of every episode.
func PathLength() types.Analyzer {
	return func(run int, experiment string, traces []*types.Trace) types.DataSet {
		lengths := make([]float64, len(traces))
		for i, trace := range traces {
			// Walk back to the last step that recomputed stats.
			for j := trace.Len() - 1; j >= 0; j-- {
				s, _ := trace.Get(j)
				if len(s.Stats) > 0 {
					lengths[i] = s.Stats[0]
					break
				}
			}
		}
		return lengths
	}
}

// PathLengthPlotter draws every experiment's per-episode path length as
// a line plot.
func PathLengthPlotter(plotPath string) types.Comparator {
	return func(run int, experiments []string, datasets []types.DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Final path length"
		for i := 0; i < len(experiments); i++ {
			lengths := datasets[i].([]float64)
			points := make(plotter.XYs, len(lengths))
			for j, v := range lengths {
				points[j] = plotter.XY{X: float64(j), Y: v}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(experiments[i], line)
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_path_length.png"))
	}
}

// ChangeRate records, per episode, the fraction of steps that actually
// modified the map.
func ChangeRate() types.Analyzer {
	return func(run int, experiment string, traces []*types.Trace) types.DataSet {
		rates := make([]float64, len(traces))
		for i, trace := range traces {
			if trace.Len() == 0 {
				continue
			}
			changed := 0
			for j := 0; j < trace.Len(); j++ {
				s, _ := trace.Get(j)
				if s.Changed {
					changed++
				}
			}
			rates[i] = float64(changed) / float64(trace.Len())
		}
		return rates
	}
}

// ChangeRatePlotter draws per-episode change rates as a line plot.
func ChangeRatePlotter(plotPath string) types.Comparator {
	return func(run int, experiments []string, datasets []types.DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Change rate"
		for i := 0; i < len(experiments); i++ {
			rates := datasets[i].([]float64)
			points := make(plotter.XYs, len(rates))
			for j, v := range rates {
				points[j] = plotter.XY{X: float64(j), Y: v}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(experiments[i], line)
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_change_rate.png"))
	}
}

// JSONDump writes each experiment's dataset to a JSON file, for
// offline inspection.
func JSONDump(savePath string) types.Comparator {
	return func(run int, experiments []string, datasets []types.DataSet) {
		for i, name := range experiments {
			bs, err := json.Marshal(datasets[i])
			if err != nil {
				continue
			}
			util.WriteToFile(path.Join(savePath, strconv.Itoa(run)+"_"+name+".json"), string(bs))
		}
	}
}
