// Package render draws a solved sketch's points and lines to SVG for
// offline debugging. It is not part of the constraint-construction pipeline
// itself; it exists so a caller (chiefly cmd/kiconstraint) can eyeball a
// solve's before/after geometry.
package render
