// Package trace defines the execution trace data model: the per-node result
// records produced by a run and the aggregate trace that collects them.
//
// A [Result] is created exactly once per executed node and is immutable after
// creation. A [Trace] owns the ordered list of results for a single run plus
// aggregate token, API-call, and duration totals. The runner appends results
// in completion order (which, for the sequential scheduler, equals topological
// order) and hands the finished trace to the evaluator as a read-only value.
package trace
