// Package blocks defines the executable unit behind each graph node and the
// registry that maps a node's type string to its implementation.
//
// A [Block] is a named, pure-ish async transform from an [ExecutionContext]
// to a [trace.Result]. The engine never introspects block internals: it only
// type-dispatches through a [Registry] and awaits the result. Block business
// logic in this repository is simulated — each built-in block produces a
// deterministic stub output plus synthetic token and API-call metadata so the
// evaluator has something realistic to score.
//
// Built-in blocks live in subpackages (userinput, llmparse, webfetch,
// transform) and are assembled into a ready-to-use registry by [Default].
package blocks
