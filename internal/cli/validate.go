package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/graph"
)

// NewValidateCmd creates the "validate" command, which checks a graph file
// for structural problems without executing it.
func NewValidateCmd(outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "validate GRAPH_FILE",
		Short: "Validate a workflow graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			workflowGraph, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			validation := graph.Validate(workflowGraph)
			out.Validation(validation)

			if !validation.Valid {
				return errors.New("graph validation failed")
			}
			return nil
		},
	}
}

// loadGraph reads and parses a graph file.
func loadGraph(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return graph.Parse(data)
}
