// Package padmap decomposes multi-layer PCB pads into solver entities for
// each supported copper-layer shape (circle, rectangle, trapezoid,
// chamfered rectangle), emits the internal constraint net that encodes each
// shape family, and writes solved coordinates back onto the pad, deriving
// size, trapezoid delta, and chamfer ratio from the solved geometry.
package padmap
