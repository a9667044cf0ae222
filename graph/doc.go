// Package graph defines the workflow graph data model and its structural
// algorithms: deterministic topological ordering with cycle detection,
// adjacency queries, and validation.
//
// A [Graph] is a user-authored set of typed nodes connected by directed
// edges. The package treats node IDs as identity keys and node types as
// dispatch keys; positions and labels are display-only and opaque here.
//
// The only structural hard-invariant is acyclicity of the edge-induced
// dependency relation. The graph does not need to be connected or have a
// single root. [Validate] accumulates human-readable errors instead of
// failing fast, so a caller (for example a "Run" UI control) can report all
// problems at once.
package graph
