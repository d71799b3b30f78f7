package padmap

import (
	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// MappedPadCircle is a circular copper layer: the circle sits on the pad's
// shared center, so it carries no points of its own.
type MappedPadCircle struct {
	circle sketch.Circle
}

func mapPadCircle(s *sketch.Sketch, center sketch.Point, layer *board.PadLayer) (*MappedPadCircle, error) {
	sizeX, _ := layer.Size.MM()
	circle, err := s.Circle(center, sizeX/2)
	if err != nil {
		return nil, err
	}
	return &MappedPadCircle{circle: circle}, nil
}

// Points returns nil: the circle's only point is the pad's shared center.
func (m *MappedPadCircle) Points() []sketch.Point { return nil }

// Lines returns nil: a circle layer has no edges.
func (m *MappedPadCircle) Lines() []sketch.Line { return nil }

// WriteBackLayer writes layer.Size = (2·radius, 2·radius).
func (m *MappedPadCircle) WriteBackLayer(s *sketch.Sketch, layer *board.PadLayer) error {
	radius, err := s.CircleRadius(m.circle)
	if err != nil {
		return err
	}
	layer.Size = board.FromMM(2*radius, 2*radius)
	return nil
}
