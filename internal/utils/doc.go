// Package utils holds small internal helpers shared across the engine:
// JSON stringification that never panics in log paths, and string
// truncation for output previews.
package utils
