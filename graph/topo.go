package graph

import "fmt"

// visitColor is the three-color marking used by the depth-first topological
// sort: unvisited, in-progress (on the current visit stack), and done.
type visitColor int

const (
	colorUnvisited visitColor = iota
	colorInProgress
	colorDone
)

// CycleError reports that the dependency relation contains a cycle. NodeID
// names a node on the cycle: the node whose in-progress marker was revisited.
type CycleError struct {
	NodeID string
}

// Error implements the error interface.
func (cycleError *CycleError) Error() string {
	return fmt.Sprintf("cycle detected in graph involving node %q", cycleError.NodeID)
}

// TopologicalSort returns every node ID exactly once, ordered so that for
// each edge (u -> v), u appears before v. Nodes without edges are included,
// trivially ordered.
//
// The sort is a depth-first visit with three-color marking. Nodes are visited
// in input array order, so the relative order of independent nodes follows
// the node array rather than any topologically-stable rule; callers must not
// rely on a particular interleaving of unrelated branches beyond that.
//
// A cycle fails the sort with a *CycleError naming a node on the cycle.
func TopologicalSort(workflowGraph *Graph) ([]string, error) {
	// Dependency map: target -> ordered list of sources.
	dependencies := make(map[string][]string, len(workflowGraph.Nodes))
	known := make(map[string]bool, len(workflowGraph.Nodes))
	for _, graphNode := range workflowGraph.Nodes {
		known[graphNode.ID] = true
	}
	for _, graphEdge := range workflowGraph.Edges {
		// Edges into unknown nodes are a validation concern, not a sort crash.
		if !known[graphEdge.Source] || !known[graphEdge.Target] {
			continue
		}
		dependencies[graphEdge.Target] = append(dependencies[graphEdge.Target], graphEdge.Source)
	}

	colors := make(map[string]visitColor, len(workflowGraph.Nodes))
	order := make([]string, 0, len(workflowGraph.Nodes))

	var visit func(nodeID string) error
	visit = func(nodeID string) error {
		switch colors[nodeID] {
		case colorDone:
			return nil
		case colorInProgress:
			// Revisiting an in-progress node means we followed a back-edge.
			return &CycleError{NodeID: nodeID}
		}

		colors[nodeID] = colorInProgress
		for _, dependencyID := range dependencies[nodeID] {
			if err := visit(dependencyID); err != nil {
				return err
			}
		}
		colors[nodeID] = colorDone
		order = append(order, nodeID)
		return nil
	}

	for _, graphNode := range workflowGraph.Nodes {
		if err := visit(graphNode.ID); err != nil {
			return nil, err
		}
	}

	return order, nil
}
