// Package evaluate scores finished execution traces against level
// definitions.
//
// A [Level] bundles test cases, numeric budgets (tokens, API calls, wall
// clock seconds), and star thresholds. [Evaluate] runs every test's
// assertion over the trace, checks each budget, computes an observability
// sub-score rewarding clean and well-connected execution, and combines the
// pieces into a 0-100 score with a pass/fail verdict.
//
// Assertions are plain functions from a trace to an [Outcome]; the five
// common ones are available as factories via [Assertions], and JSON level
// content references them declaratively through [ParseLevel].
package evaluate
