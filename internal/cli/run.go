package cli

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/blocks/builtin"
	"github.com/flowcanvas/flowcanvas/evaluate"
	"github.com/flowcanvas/flowcanvas/observability"
	"github.com/flowcanvas/flowcanvas/runner"
)

// NewRunCmd creates the "run" command, which executes a graph file and
// optionally scores the trace against a level file.
func NewRunCmd(provider observability.Provider, outputFn func() *Output) *cobra.Command {
	var levelPath string
	var timeout time.Duration
	var continueOnError bool

	cmd := &cobra.Command{
		Use:   "run GRAPH_FILE",
		Short: "Execute a workflow graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			workflowGraph, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			var level *evaluate.Level
			if levelPath != "" {
				levelData, readErr := os.ReadFile(levelPath)
				if readErr != nil {
					return readErr
				}
				level, err = evaluate.ParseLevel(levelData)
				if err != nil {
					return err
				}
			}

			workflowRunner := runner.New(builtin.Default(), runner.WithObserver(provider))
			executionTrace, runErr := workflowRunner.Run(cmd.Context(), workflowGraph, runner.Options{
				Timeout:         timeout,
				ContinueOnError: continueOnError,
				OnProgress:      out.Progress,
			})
			if executionTrace == nil {
				return runErr
			}

			out.Trace(executionTrace)

			if level != nil {
				evaluation := evaluate.Evaluate(executionTrace, level)
				out.Evaluation(evaluation)
				if !evaluation.Passed {
					return errors.New("level not passed")
				}
			}

			// A failed run without a level is still a command failure, but
			// the trace has already been shown; keep the message short.
			if runErr != nil && level == nil {
				return errors.New("run did not complete")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&levelPath, "level", "", "Level file to evaluate the trace against")
	cmd.Flags().DurationVar(&timeout, "timeout", runner.DefaultTimeout, "Per-node execution timeout")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Keep executing after a node fails")

	return cmd
}
