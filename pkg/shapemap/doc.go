// Package shapemap decomposes PCB graphic primitives (segments, arcs,
// circles, rectangles, cubic Béziers) into solver points/lines/arcs/circles
// and the intrinsic constraints that keep each primitive's shape family
// invariant, then provides the inverse writeback that projects solved
// coordinates back onto the original primitive.
package shapemap
