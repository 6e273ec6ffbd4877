package benchmarks

import (
	"github.com/spf13/cobra"

	"pcgrl/env"
	"pcgrl/probs"
	"pcgrl/reps"
	"pcgrl/viewer"
)

func ViewerCommand() *cobra.Command {
	params := env.DefaultParams()
	var addr string
	var problem string
	var rep string

	cmd := &cobra.Command{
		Use: "viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := probs.ParseKind(problem)
			if err != nil {
				return err
			}
			r, err := reps.ParseKind(rep)
			if err != nil {
				return err
			}
			params.Problem = p
			params.Rep = r
			s, err := viewer.NewServer(params)
			if err != nil {
				return err
			}
			return s.Run(addr)
		},
	}
	mapFlags(cmd, &params)
	cmd.PersistentFlags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.PersistentFlags().StringVar(&problem, "problem", "binary", "Problem to render")
	cmd.PersistentFlags().StringVar(&rep, "rep", "narrow", "Representation to roll out")
	return cmd
}
