package shapemap

import (
	"math"

	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// MappedArc is a circular arc primitive: center, start, and end points plus
// the Arc entity tying them together. No intrinsic constraints are emitted;
// the solver enforces equal center-to-endpoint distances implicitly.
type MappedArc struct {
	source               *board.ShapeArc
	center, start, end    sketch.Point
	arc                   sketch.Arc
}

// MapArc builds solver entities for an arc primitive.
func MapArc(s *sketch.Sketch, src *board.ShapeArc) (*MappedArc, error) {
	center := pointFromVec(s, src.Center)
	start := pointFromVec(s, src.Start)
	end := pointFromVec(s, src.End)
	arc, err := s.Arc(center, start, end)
	if err != nil {
		return nil, err
	}
	return &MappedArc{source: src, center: center, start: start, end: end, arc: arc}, nil
}

// Points returns (center, start, end).
func (m *MappedArc) Points() []sketch.Point {
	return []sketch.Point{m.center, m.start, m.end}
}

// Lines returns nil: an arc has no edge lines.
func (m *MappedArc) Lines() []sketch.Line { return nil }

// WriteBack writes the solved center/start/end back onto the source arc and
// reconstructs its mid point from the signed sweep between start and end,
// preserving the counter-clockwise sweep direction.
func (m *MappedArc) WriteBack(s *sketch.Sketch) error {
	if err := requireOkSolve(s); err != nil {
		return err
	}
	cu, cv, err := s.PointCoords(m.center)
	if err != nil {
		return err
	}
	su, sv, err := s.PointCoords(m.start)
	if err != nil {
		return err
	}
	eu, ev, err := s.PointCoords(m.end)
	if err != nil {
		return err
	}

	radius := math.Hypot(su-cu, sv-cv)
	if radius == 0 {
		return &sketch.DegenerateGeometryError{Reason: "arc radius is zero"}
	}

	startAngle := math.Atan2(sv-cv, su-cu)
	endAngle := math.Atan2(ev-cv, eu-cu)
	sweep := math.Mod(endAngle-startAngle, 2*math.Pi)
	if sweep < 0 {
		sweep += 2 * math.Pi
	}
	midAngle := startAngle + sweep/2

	m.source.Center = board.FromMM(cu, cv)
	m.source.Start = board.FromMM(su, sv)
	m.source.End = board.FromMM(eu, ev)
	m.source.Mid = board.FromMM(cu+radius*math.Cos(midAngle), cv+radius*math.Sin(midAngle))
	return nil
}
