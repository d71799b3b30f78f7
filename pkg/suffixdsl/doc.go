// Package suffixdsl parses the comma-separated constraint tokens embedded in
// a dimension's label suffix and turns each into a ConstraintSpec the
// dimension mapper can apply to a line, a point pair, or a single point.
package suffixdsl
