package shapemap

import (
	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// MappedCubic is a cubic Bézier curve primitive: four control points and the
// Cubic entity over them. No intrinsic constraints are emitted; the control
// polygon moves freely.
type MappedCubic struct {
	source         *board.ShapeBezier
	p1, p2, p3, p4 sketch.Point
	cubic          sketch.Cubic
}

// MapCubic builds solver entities for a cubic Bézier primitive.
func MapCubic(s *sketch.Sketch, src *board.ShapeBezier) (*MappedCubic, error) {
	p1 := pointFromVec(s, src.P1)
	p2 := pointFromVec(s, src.P2)
	p3 := pointFromVec(s, src.P3)
	p4 := pointFromVec(s, src.P4)
	cubic, err := s.Cubic(p1, p2, p3, p4)
	if err != nil {
		return nil, err
	}
	return &MappedCubic{source: src, p1: p1, p2: p2, p3: p3, p4: p4, cubic: cubic}, nil
}

// Points returns (p1, p2, p3, p4) in control order.
func (m *MappedCubic) Points() []sketch.Point {
	return []sketch.Point{m.p1, m.p2, m.p3, m.p4}
}

// Lines returns nil: a cubic has no edge lines.
func (m *MappedCubic) Lines() []sketch.Line { return nil }

// WriteBack writes all four solved control points back onto the source
// curve.
func (m *MappedCubic) WriteBack(s *sketch.Sketch) error {
	if err := requireOkSolve(s); err != nil {
		return err
	}
	pts := [4]*board.Vec2I{&m.source.P1, &m.source.P2, &m.source.P3, &m.source.P4}
	handles := [4]sketch.Point{m.p1, m.p2, m.p3, m.p4}
	for i, h := range handles {
		u, v, err := s.PointCoords(h)
		if err != nil {
			return err
		}
		*pts[i] = board.FromMM(u, v)
	}
	return nil
}
