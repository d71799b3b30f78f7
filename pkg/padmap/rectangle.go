package padmap

import (
	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// MappedPadRectangle is a rectangular (or rounded-rectangle) copper layer:
// four corners, four edges, and a diagonal construction line pinning the
// rectangle on the pad's shared center.
type MappedPadRectangle struct {
	tl, tr, br, bl           sketch.Point
	top, right, bottom, left sketch.Line
	diagonal                 sketch.Line
	intrinsic                []sketch.Constraint
}

func mapPadRectangle(s *sketch.Sketch, center sketch.Point, cu, cv float64, layer *board.PadLayer) (*MappedPadRectangle, error) {
	sx, sy := layer.Size.MM()
	hw, hh := sx/2, sy/2

	tl := s.Point(cu-hw, cv-hh, false)
	tr := s.Point(cu+hw, cv-hh, false)
	br := s.Point(cu+hw, cv+hh, false)
	bl := s.Point(cu-hw, cv+hh, false)

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
	diagonal, err := s.Line(tl, br)
	if err != nil {
		return nil, err
	}

	intrinsic := []sketch.Constraint{
		s.Midpoint(center, diagonal),
		s.Perpendicular(top, left, false),
		s.Perpendicular(bottom, right, false),
		s.Perpendicular(left, bottom, false),
	}

	return &MappedPadRectangle{
		tl: tl, tr: tr, br: br, bl: bl,
		top: top, right: right, bottom: bottom, left: left,
		diagonal:  diagonal,
		intrinsic: intrinsic,
	}, nil
}

// Points returns (tl, tr, br, bl).
func (m *MappedPadRectangle) Points() []sketch.Point {
	return []sketch.Point{m.tl, m.tr, m.br, m.bl}
}

// Lines returns (top, right, bottom, left, diagonal).
func (m *MappedPadRectangle) Lines() []sketch.Line {
	return []sketch.Line{m.top, m.right, m.bottom, m.left, m.diagonal}
}

// Intrinsic returns the four constraints pinning the shape centered and
// rectangular.
func (m *MappedPadRectangle) Intrinsic() []sketch.Constraint { return m.intrinsic }

// WriteBackLayer writes width = |tr-tl|, height = |bl-tl|.
func (m *MappedPadRectangle) WriteBackLayer(s *sketch.Sketch, layer *board.PadLayer) error {
	width, err := pointDist(s, m.tl, m.tr)
	if err != nil {
		return err
	}
	height, err := pointDist(s, m.tl, m.bl)
	if err != nil {
		return err
	}
	layer.Size = board.FromMM(width, height)
	return nil
}
