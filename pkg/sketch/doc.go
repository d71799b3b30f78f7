// Package sketch provides a typed facade over a 2D variational geometric
// constraint solver. It owns entities (points, lines, circles, arcs, cubic
// Béziers) and constraints between them in a single sketch, and exposes a
// solve step that relaxes the sketch's free parameters to satisfy every
// registered constraint.
package sketch
