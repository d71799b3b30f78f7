package shapemap

import (
	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// MappedSegment is a straight line primitive: two points and the line
// joining them. No intrinsic constraints are emitted.
type MappedSegment struct {
	source     *board.ShapeSegment
	start, end sketch.Point
	line       sketch.Line
}

// MapSegment builds solver entities for a segment primitive.
func MapSegment(s *sketch.Sketch, src *board.ShapeSegment) (*MappedSegment, error) {
	start := pointFromVec(s, src.Start)
	end := pointFromVec(s, src.End)
	line, err := s.Line(start, end)
	if err != nil {
		return nil, err
	}
	return &MappedSegment{source: src, start: start, end: end, line: line}, nil
}

// Points returns (start, end).
func (m *MappedSegment) Points() []sketch.Point { return []sketch.Point{m.start, m.end} }

// Lines returns the segment's single line.
func (m *MappedSegment) Lines() []sketch.Line { return []sketch.Line{m.line} }

// WriteBack writes the solved start/end back onto the source segment.
func (m *MappedSegment) WriteBack(s *sketch.Sketch) error {
	if err := requireOkSolve(s); err != nil {
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
	m.source.Start = board.FromMM(su, sv)
	m.source.End = board.FromMM(eu, ev)
	return nil
}
