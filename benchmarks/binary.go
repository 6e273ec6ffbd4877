package benchmarks

import (
	"context"

	"github.com/spf13/cobra"

	"pcgrl/analysis"
	"pcgrl/env"
	"pcgrl/policies"
	"pcgrl/reps"
	"pcgrl/store"
	"pcgrl/types"
)

func traceSink() (types.TraceSink, error) {
	if redisAddr != "" {
		return store.NewRedisSink(redisAddr)
	}
	return store.NewJSONLSink(saveDir), nil
}

func newComparison(sink types.TraceSink, ctx context.Context) *types.Comparison {
	c := types.NewComparison(&types.ComparisonConfig{
		Runs:         runs,
		Episodes:     episodes,
		Seed:         seed,
		RecordPath:   saveDir,
		RecordPolicy: true,
		TraceSink:    sink,
		Context:      ctx,
	})
	c.AddAnalysis("PathLength", analysis.PathLength(), analysis.PathLengthPlotter(saveDir))
	c.AddAnalysis("ChangeRate", analysis.ChangeRate(), analysis.ChangeRatePlotter(saveDir))
	return c
}

// BinaryLearned compares random editing against two tabular learners.
// It only suits representations whose action space is small enough to
// enumerate, such as narrow, wide and single-agent turtle.
func BinaryLearned(params env.Params, ctx context.Context) error {
	sink, err := traceSink()
	if err != nil {
		return err
	}
	c := newComparison(sink, ctx)
	c.AddAnalysis("EditHeatmap", analysis.EditHeatmap(params.MapH, params.MapW),
		analysis.EditHeatmapPlotter(saveDir))

	randomEnv, err := env.New(params)
	if err != nil {
		return err
	}
	c.AddExperiment(types.NewExperiment("Random", policies.NewRandom(seed), randomEnv))

	softmaxEnv, err := env.New(params)
	if err != nil {
		return err
	}
	softmax, err := policies.NewSoftMaxQ(softmaxEnv.ActionSpace(), 0.3, 0.95, seed)
	if err != nil {
		return err
	}
	c.AddExperiment(types.NewExperiment("SoftMaxQ", softmax, softmaxEnv))

	greedyEnv, err := env.New(params)
	if err != nil {
		return err
	}
	greedy, err := policies.NewEpsGreedyQ(greedyEnv.ActionSpace(), 0.3, 0.95, 0.1, seed)
	if err != nil {
		return err
	}
	c.AddExperiment(types.NewExperiment("EpsGreedyQ", greedy, greedyEnv))

	c.Run()
	return nil
}

// BinaryRandomOnly is the fallback for representations whose action
// space is too large to tabulate.
func BinaryRandomOnly(params env.Params, ctx context.Context) error {
	sink, err := traceSink()
	if err != nil {
		return err
	}
	c := newComparison(sink, ctx)

	e, err := env.New(params)
	if err != nil {
		return err
	}
	c.AddExperiment(types.NewExperiment("Random", policies.NewRandom(seed), e))
	c.Run()
	return nil
}

func mapFlags(cmd *cobra.Command, params *env.Params) {
	cmd.PersistentFlags().IntVar(&params.MapH, "height", params.MapH, "Height of the map")
	cmd.PersistentFlags().IntVar(&params.MapW, "width", params.MapW, "Width of the map")
	cmd.PersistentFlags().Float64Var(&params.MaxBoardScans, "scans", params.MaxBoardScans, "Episode length in board scans")
	cmd.PersistentFlags().Float64Var(&params.StaticTileProb, "static-prob", params.StaticTileProb, "Probability of freezing a tile at reset")
	cmd.PersistentFlags().IntVar(&params.NFreezies, "freezies", params.NFreezies, "Number of frozen blobs generated at reset")
}

func BinaryNarrowCommand() *cobra.Command {
	params := env.DefaultParams()
	params.MapH, params.MapW = 8, 8
	params.Rep = reps.NarrowKind

	cmd := &cobra.Command{
		Use: "binary-narrow",
		RunE: func(cmd *cobra.Command, args []string) error {
			return BinaryLearned(params, cmd.Context())
		},
	}
	mapFlags(cmd, &params)
	return cmd
}

func BinaryWideCommand() *cobra.Command {
	params := env.DefaultParams()
	params.MapH, params.MapW = 8, 8
	params.Rep = reps.WideKind

	cmd := &cobra.Command{
		Use: "binary-wide",
		RunE: func(cmd *cobra.Command, args []string) error {
			return BinaryLearned(params, cmd.Context())
		},
	}
	mapFlags(cmd, &params)
	return cmd
}

func BinaryTurtleCommand() *cobra.Command {
	params := env.DefaultParams()
	params.MapH, params.MapW = 8, 8
	params.Rep = reps.TurtleKind

	cmd := &cobra.Command{
		Use: "binary-turtle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if params.NAgents > 1 {
				// per-agent action tuples blow up the tabular policies
				return BinaryRandomOnly(params, cmd.Context())
			}
			return BinaryLearned(params, cmd.Context())
		},
	}
	mapFlags(cmd, &params)
	cmd.PersistentFlags().IntVar(&params.NAgents, "agents", 1, "Number of turtle agents")
	return cmd
}

func BinaryNCACommand() *cobra.Command {
	params := env.DefaultParams()
	params.MapH, params.MapW = 8, 8
	params.Rep = reps.NCAKind

	cmd := &cobra.Command{
		Use: "binary-nca",
		RunE: func(cmd *cobra.Command, args []string) error {
			// whole-map actions cannot be enumerated
			return BinaryRandomOnly(params, cmd.Context())
		},
	}
	mapFlags(cmd, &params)
	return cmd
}
