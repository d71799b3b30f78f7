package shapemap

import (
	"math"

	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// MappedCircle is a full circle primitive: a center point plus a Circle
// entity carrying the radius as a scalar variable. No intrinsic constraints
// are emitted.
type MappedCircle struct {
	source *board.ShapeCircle
	center sketch.Point
	circle sketch.Circle
}

// MapCircle builds solver entities for a circle primitive. The initial
// radius is the distance from center to the source's radius point.
func MapCircle(s *sketch.Sketch, src *board.ShapeCircle) (*MappedCircle, error) {
	center := pointFromVec(s, src.Center)
	cu, cv, _ := s.PointCoords(center)
	ru, rv := src.RadiusPoint.MM()
	radius := math.Hypot(ru-cu, rv-cv)

	circle, err := s.Circle(center, radius)
	if err != nil {
		return nil, err
	}
	return &MappedCircle{source: src, center: center, circle: circle}, nil
}

// Points returns (center).
func (m *MappedCircle) Points() []sketch.Point { return []sketch.Point{m.center} }

// Lines returns nil: a circle has no edge lines.
func (m *MappedCircle) Lines() []sketch.Line { return nil }

// WriteBack writes the solved center and radius back onto the source
// circle, recomputing the radius point along +u from the center.
func (m *MappedCircle) WriteBack(s *sketch.Sketch) error {
	if err := requireOkSolve(s); err != nil {
		return err
	}
	cu, cv, err := s.PointCoords(m.center)
	if err != nil {
		return err
	}
	radius, err := s.CircleRadius(m.circle)
	if err != nil {
		return err
	}
	m.source.Center = board.FromMM(cu, cv)
	m.source.RadiusPoint = board.FromMM(cu+radius, cv)
	return nil
}
