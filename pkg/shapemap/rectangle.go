package shapemap

import (
	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// MappedRectangle is an axis-aligned rectangle primitive: four corners in
// canonical order (top-left, top-right, bottom-right, bottom-left) and the
// four edge lines joining them. Three perpendicular constraints keep the
// shape rectangular under perturbation — the minimum needed, since the
// fourth corner follows from the other three.
type MappedRectangle struct {
	source                 *board.ShapeRectangle
	tl, tr, br, bl          sketch.Point
	top, right, bottom, left sketch.Line
	intrinsic              []sketch.Constraint
}

// MapRectangle builds solver entities for a rectangle primitive.
func MapRectangle(s *sketch.Sketch, src *board.ShapeRectangle) (*MappedRectangle, error) {
	leftX, topY := src.TopLeft.MM()
	rightX, bottomY := src.BottomRight.MM()

	tl := s.Point(leftX, topY, false)
	tr := s.Point(rightX, topY, false)
	br := s.Point(rightX, bottomY, false)
	bl := s.Point(leftX, bottomY, false)

	top, err := s.Line(tl, tr)
	if err != nil {
		return nil, err
	}
	right, err := s.Line(tr, br)
	if err != nil {
		return nil, err
	}
	bottom, err := s.Line(bl, br)
	if err != nil {
		return nil, err
	}
	left, err := s.Line(tl, bl)
	if err != nil {
		return nil, err
	}

	intrinsic := []sketch.Constraint{
		s.Perpendicular(top, right, false),
		s.Perpendicular(right, bottom, false),
		s.Perpendicular(bottom, left, false),
	}

	return &MappedRectangle{
		source: src,
		tl:     tl, tr: tr, br: br, bl: bl,
		top: top, right: right, bottom: bottom, left: left,
		intrinsic: intrinsic,
	}, nil
}

// Points returns (tl, tr, br, bl).
func (m *MappedRectangle) Points() []sketch.Point {
	return []sketch.Point{m.tl, m.tr, m.br, m.bl}
}

// Lines returns (top, right, bottom, left).
func (m *MappedRectangle) Lines() []sketch.Line {
	return []sketch.Line{m.top, m.right, m.bottom, m.left}
}

// Intrinsic returns the three perpendicular constraints that keep the
// rectangle rectangular.
func (m *MappedRectangle) Intrinsic() []sketch.Constraint { return m.intrinsic }

// BottomRight returns the rectangle's bottom-right corner handle, useful for
// dragging during external-perturbation tests.
func (m *MappedRectangle) BottomRight() sketch.Point { return m.br }

// WriteBack writes the solved top-left and bottom-right corners back onto
// the source rectangle. Corners that have drifted off-axis are projected by
// the source format, since it only stores an axis-aligned box (see §9).
func (m *MappedRectangle) WriteBack(s *sketch.Sketch) error {
	if err := requireOkSolve(s); err != nil {
		return err
	}
	tlu, tlv, err := s.PointCoords(m.tl)
	if err != nil {
		return err
	}
	bru, brv, err := s.PointCoords(m.br)
	if err != nil {
		return err
	}
	m.source.TopLeft = board.FromMM(tlu, tlv)
	m.source.BottomRight = board.FromMM(bru, brv)
	return nil
}
