package dimension

import (
	"strings"

	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
	"github.com/dshills/kiconstraint/pkg/suffixdsl"
)

// BuildRegistry populates a suffixdsl.Registry from the names this mapping
// resolved in phase 1, so suffix tokens on one dimension can reference
// another by name.
func (m *Mapping) BuildRegistry() *suffixdsl.Registry {
	reg := suffixdsl.NewRegistry()
	for name, e := range m.edges {
		reg.Edges[name] = e.line
	}
	for name, p := range m.points {
		reg.Points[name] = p.point
	}
	return reg
}

// ApplyDimensionConstraints runs phase 2: every dimension, named or not, has
// its embedded suffix text parsed and applied against whatever phase 1
// resolved for it. A named dimension that failed to bind to anything in
// phase 1 has no suffix target and is skipped. The pass aborts on the first
// apply error, wrapped with the dimension's name for context.
func ApplyDimensionConstraints(s *sketch.Sketch, m *Mapping, reg *suffixdsl.Registry) error {
	for _, b := range m.bindings {
		suffixText := dimensionSuffix(b.dim)
		specs, err := suffixdsl.Parse(suffixText)
		if err != nil {
			return &DimensionError{Name: b.name, Err: err}
		}
		for _, spec := range specs {
			if err := applyOne(s, spec, b, reg); err != nil {
				return &DimensionError{Name: b.name, Err: err}
			}
		}
	}
	return nil
}

func applyOne(s *sketch.Sketch, spec suffixdsl.ConstraintSpec, b binding, reg *suffixdsl.Registry) error {
	if b.hasLine {
		return spec.ApplyToLine(s, b.line, b.name, reg)
	}
	if b.hasStart && b.hasEnd {
		return spec.ApplyToTwoPoints(s, b.start, b.end, b.name, reg)
	}
	if b.hasStart {
		return spec.ApplyToPoint(s, b.start, b.name, reg)
	}
	return spec.ApplyToPoint(s, b.end, b.name, reg)
}

// dimensionSuffix extracts the raw suffix text embedded in a dimension,
// independent of how its name was packed.
func dimensionSuffix(d board.Dimension) string {
	switch v := d.(type) {
	case *board.DimensionAligned:
		return v.Suffix
	case *board.DimensionOrthogonal:
		return v.Suffix
	case *board.DimensionLeader:
		return strings.TrimSpace(leaderSuffix(v.OverrideText))
	default:
		return ""
	}
}
