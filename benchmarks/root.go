package benchmarks

import "github.com/spf13/cobra"

var (
	episodes  int
	runs      int
	saveDir   string
	seed      uint64
	redisAddr string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use: "pcgrl",
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 200, "Number of episodes per experiment")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	rootCommand.PersistentFlags().StringVarP(&saveDir, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 0, "Base seed for all episode streams")
	rootCommand.PersistentFlags().StringVar(&redisAddr, "redis", "", "Record traces to redis at this address instead of files")
	// adding the subcommands here
	rootCommand.AddCommand(BinaryNarrowCommand())
	rootCommand.AddCommand(BinaryWideCommand())
	rootCommand.AddCommand(BinaryTurtleCommand())
	rootCommand.AddCommand(BinaryNCACommand())
	rootCommand.AddCommand(ViewerCommand())
	return rootCommand
}
