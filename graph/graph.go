package graph

import (
	"encoding/json"
	"fmt"
)

// Position is the display coordinate of a node on the canvas. The engine
// carries it through untouched; only the UI interprets it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData holds the user-editable content of a node: its display label and
// the block-specific parameters set through the parameter editor.
type NodeData struct {
	// Label is the display name shown on the canvas.
	Label string `json:"label,omitempty"`

	// Params contains block-specific configuration such as the value a
	// user-input block emits or the template a transform block renders.
	Params map[string]any `json:"params,omitempty"`
}

// Node is a single typed processing step in the workflow graph.
type Node struct {
	// ID uniquely identifies the node within the graph.
	ID string `json:"id"`

	// Type is the block-type key used to dispatch into the block registry.
	Type string `json:"type"`

	// Position is the node's canvas coordinate. Opaque to the engine.
	Position Position `json:"position"`

	// Data holds the label and block parameters.
	Data NodeData `json:"data"`
}

// Edge is one directed data dependency between two nodes.
type Edge struct {
	// ID uniquely identifies the edge.
	ID string `json:"id"`

	// Source is the ID of the producing node.
	Source string `json:"source"`

	// Target is the ID of the consuming node.
	Target string `json:"target"`

	// SourceHandle optionally names the output slot on the source node.
	SourceHandle string `json:"sourceHandle,omitempty"`

	// TargetHandle optionally names the input slot on the target node.
	// It disambiguates which logical input receives the value when the
	// target has multiple inbound edges.
	TargetHandle string `json:"targetHandle,omitempty"`
}

// Graph is the full workflow: nodes plus the directed edges between them.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the node with the given ID, or nil when it does not exist.
func (workflowGraph *Graph) Node(nodeID string) *Node {
	for index := range workflowGraph.Nodes {
		if workflowGraph.Nodes[index].ID == nodeID {
			return &workflowGraph.Nodes[index]
		}
	}
	return nil
}

// InputNodes returns the IDs of all nodes with an edge into nodeID, in edge
// declaration order.
func (workflowGraph *Graph) InputNodes(nodeID string) []string {
	inputs := make([]string, 0)
	for _, graphEdge := range workflowGraph.Edges {
		if graphEdge.Target == nodeID {
			inputs = append(inputs, graphEdge.Source)
		}
	}
	return inputs
}

// OutputNodes returns the IDs of all nodes nodeID has an edge into, in edge
// declaration order.
func (workflowGraph *Graph) OutputNodes(nodeID string) []string {
	outputs := make([]string, 0)
	for _, graphEdge := range workflowGraph.Edges {
		if graphEdge.Source == nodeID {
			outputs = append(outputs, graphEdge.Target)
		}
	}
	return outputs
}

// InboundEdges returns the edges targeting nodeID, in edge declaration order.
// The order determines the positional input{N} fallback keys during fan-in.
func (workflowGraph *Graph) InboundEdges(nodeID string) []Edge {
	inbound := make([]Edge, 0)
	for _, graphEdge := range workflowGraph.Edges {
		if graphEdge.Target == nodeID {
			inbound = append(inbound, graphEdge)
		}
	}
	return inbound
}

// Parse decodes a graph from its canvas JSON representation {nodes, edges}.
// It only checks that the document is well-formed JSON; structural problems
// such as cycles and dangling edges are reported by Validate.
func Parse(data []byte) (*Graph, error) {
	var workflowGraph Graph
	if err := json.Unmarshal(data, &workflowGraph); err != nil {
		return nil, fmt.Errorf("failed to parse graph JSON: %w", err)
	}
	return &workflowGraph, nil
}
