// Package dimension binds board dimension markers onto solved sketch
// geometry in two passes: a registry-construction pass that names edges and
// points by each dimension's prefix or override text, and a suffix-
// application pass that parses and applies each dimension's embedded
// constraint tokens. Writeback then translates each bound dimension to
// track its solved point or edge while preserving label placement.
package dimension
