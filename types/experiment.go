package types

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"sync"

	"pcgrl/env"
)

// Experiment pairs a named policy with an environment configuration.
type Experiment struct {
	Name   string
	policy Policy
	env    *env.PCGRLEnv
}

func NewExperiment(name string, policy Policy, e *env.PCGRLEnv) *Experiment {
	return &Experiment{Name: name, policy: policy, env: e}
}

// ComparisonConfig bundles the execution parameters shared by all
// experiments of a comparison.
type ComparisonConfig struct {
	Runs     int
	Episodes int
	Seed     uint64
	// RecordPath is where policy snapshots land when RecordPolicy is
	// set.
	RecordPath   string
	RecordPolicy bool
	// TraceSink, when non-nil, receives every episode trace.
	TraceSink TraceSink
	Context   context.Context
}

type analysis struct {
	name       string
	analyzer   Analyzer
	comparator Comparator
}

// Comparison runs several experiments side by side for a number of
// runs, feeding each run's traces through the registered analyzers.
type Comparison struct {
	config      *ComparisonConfig
	experiments []*Experiment
	analyses    []analysis
}

func NewComparison(config *ComparisonConfig) *Comparison {
	if config.Context == nil {
		config.Context = context.Background()
	}
	return &Comparison{
		config:      config,
		experiments: make([]*Experiment, 0),
		analyses:    make([]analysis, 0),
	}
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.experiments = append(c.experiments, e)
}

func (c *Comparison) AddAnalysis(name string, a Analyzer, cmp Comparator) {
	c.analyses = append(c.analyses, analysis{name: name, analyzer: a, comparator: cmp})
}

// Run executes every experiment of every run. Experiments within a run
// execute in parallel; they share nothing, so each gets its own seed
// stream derived from the comparison seed.
func (c *Comparison) Run() {
	for run := 0; run < c.config.Runs; run++ {
		select {
		case <-c.config.Context.Done():
			return
		default:
		}

		results := make([][]*Trace, len(c.experiments))
		var wg sync.WaitGroup
		for i, e := range c.experiments {
			wg.Add(1)
			go func(i int, e *Experiment) {
				defer wg.Done()
				e.policy.Reset()
				agent := NewAgent(&AgentConfig{
					Episodes: c.config.Episodes,
					Policy:   e.policy,
					Env:      e.env,
					Seed:     c.runSeed(run, i),
				})
				results[i] = agent.Run()
			}(i, e)
		}
		wg.Wait()

		names := make([]string, len(c.experiments))
		for i, e := range c.experiments {
			names[i] = e.Name
			fmt.Printf("Run %d: experiment %s finished %d episodes, last episode reward %.2f\n",
				run, e.Name, len(results[i]), results[i][len(results[i])-1].TotalReward())
		}

		if c.config.TraceSink != nil {
			for i, traces := range results {
				for _, trace := range traces {
					if err := c.config.TraceSink.Append(names[i], run, trace); err != nil {
						fmt.Printf("failed to record trace for %s: %v\n", names[i], err)
						break
					}
				}
			}
		}

		for _, an := range c.analyses {
			datasets := make([]DataSet, len(c.experiments))
			for i := range c.experiments {
				datasets[i] = an.analyzer(run, names[i], results[i])
			}
			an.comparator(run, names, datasets)
		}

		if c.config.RecordPolicy {
			for _, e := range c.experiments {
				p := path.Join(c.config.RecordPath, "policies", e.Name+"_"+strconv.Itoa(run))
				if err := e.policy.Record(p); err != nil {
					fmt.Printf("failed to record policy for %s: %v\n", e.Name, err)
				}
			}
		}
	}
}

// runSeed spreads experiment seeds far apart so episode streams never
// overlap between experiments or runs.
func (c *Comparison) runSeed(run, experiment int) uint64 {
	return c.config.Seed + uint64(run)*1_000_003 + uint64(experiment)*10_007
}
