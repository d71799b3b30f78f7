// Package kiconfig loads the YAML run profile that parameterizes a solve
// pipeline run: point-match tolerance, solve iteration caps, and SVG render
// defaults. It does not touch the solver's own hard-coded numeric
// constants; it only configures the callers that sit above pkg/sketch.
package kiconfig
