// Package benchcmder provides the bench command for running code
// benchmarks through kernel agents.
package benchcmder

import (
	"github.com/spf13/cobra"
)

const benchLongDesc string = `Run benchmarks through an AIOS kernel agent.

A benchmark run reads a JSONL dataset, sends each problem to the
configured agent, and writes all predictions to a results file in one
shot at the end of the run.

Use subcommands to drive a run:
  cereb bench run    Run a benchmark dataset through an agent

Examples:
  cereb bench run --dataset humaneval.jsonl
  cereb bench run --dataset humaneval.jsonl --max-num 10`

const benchShortDesc string = "Run benchmarks through a kernel agent"

func NewBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: benchShortDesc,
		Long:  benchLongDesc,
	}

	cmd.AddCommand(newRunCmd())

	return cmd
}
