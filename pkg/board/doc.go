// Package board defines the host wire-format stand-ins consumed by the
// constraint-construction pipeline (graphic shapes, dimension markers, and
// pads) and the JSON board fixture format used to drive the pipeline
// offline, without a running host CAD application.
package board
