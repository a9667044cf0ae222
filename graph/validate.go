package graph

import "fmt"

// Validation is the outcome of structural graph validation. Errors holds one
// human-readable message per problem found; Valid is true when Errors is
// empty.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks the graph's structural invariants without executing it:
// the dependency relation must be acyclic, and every edge must reference
// existing nodes. Problems are accumulated as error strings rather than
// returned as a failure, so the caller decides whether to block execution.
//
// Validate is idempotent: calling it twice on an unchanged graph yields
// identical results.
func Validate(workflowGraph *Graph) Validation {
	validationErrors := make([]string, 0)

	if _, err := TopologicalSort(workflowGraph); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	known := make(map[string]bool, len(workflowGraph.Nodes))
	for _, graphNode := range workflowGraph.Nodes {
		known[graphNode.ID] = true
	}

	// Exactly one error per dangling edge, even when both endpoints are bad.
	for _, graphEdge := range workflowGraph.Edges {
		switch {
		case !known[graphEdge.Source]:
			validationErrors = append(validationErrors,
				fmt.Sprintf("edge %q references non-existent source node %q", graphEdge.ID, graphEdge.Source))
		case !known[graphEdge.Target]:
			validationErrors = append(validationErrors,
				fmt.Sprintf("edge %q references non-existent target node %q", graphEdge.ID, graphEdge.Target))
		}
	}

	return Validation{
		Valid:  len(validationErrors) == 0,
		Errors: validationErrors,
	}
}
