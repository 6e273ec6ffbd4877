package main

import (
	"fmt"

	"pcgrl/benchmarks"
)

// main entry point to all the experiments
func main() {
	rootCommand := benchmarks.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
