package padmap

import (
	"math"

	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// MappedPadLayer is the capability one mapped copper-layer shape provides:
// its solver points and lines, and its writeback onto the owning PadLayer.
type MappedPadLayer interface {
	Points() []sketch.Point
	Lines() []sketch.Line
	// WriteBackLayer reconstructs layer's size (and, where applicable,
	// trapezoid delta or chamfer ratio) from the sketch's solved
	// coordinates.
	WriteBackLayer(s *sketch.Sketch, layer *board.PadLayer) error
}

// MappedPad is a multi-layer pad: a shared center Point plus one
// MappedPadLayer per supported copper-layer shape. Unsupported layer kinds
// (UNKNOWN, OVAL, or an unrecognized CUSTOM anchor) are silently dropped, as
// the layer carries nothing for the solver to act on.
type MappedPad struct {
	source    *board.Pad
	center    sketch.Point
	layers    []MappedPadLayer
	layerRefs []*board.PadLayer
}

// MapPad builds the shared center point and dispatches every supported
// layer in src to its factory.
func MapPad(s *sketch.Sketch, src *board.Pad) (*MappedPad, error) {
	cu, cv := src.Position.MM()
	center := s.Point(cu, cv, false)

	mp := &MappedPad{source: src, center: center}
	for i := range src.Layers {
		layer := &src.Layers[i]
		built, err := mapPadLayer(s, center, cu, cv, layer)
		if err != nil {
			return nil, err
		}
		if built == nil {
			continue
		}
		mp.layers = append(mp.layers, built)
		mp.layerRefs = append(mp.layerRefs, layer)
	}
	return mp, nil
}

func mapPadLayer(s *sketch.Sketch, center sketch.Point, cu, cv float64, layer *board.PadLayer) (MappedPadLayer, error) {
	switch layer.Shape {
	case board.PadShapeCircle:
		return mapPadCircle(s, center, layer)
	case board.PadShapeRectangle, board.PadShapeRoundRect:
		return mapPadRectangle(s, center, cu, cv, layer)
	case board.PadShapeTrapezoid:
		return mapPadTrapezoid(s, center, cu, cv, layer)
	case board.PadShapeChamferedRect:
		return mapPadChamferedRect(s, center, cu, cv, layer)
	case board.PadShapeCustom:
		switch layer.CustomAnchorShape {
		case board.AnchorCircle:
			return mapPadCircle(s, center, layer)
		case board.AnchorRectangle:
			return mapPadRectangle(s, center, cu, cv, layer)
		default:
			return nil, nil
		}
	case board.PadShapeUnknown, board.PadShapeOval:
		return nil, nil
	default:
		return nil, nil
	}
}

// Center returns the pad's shared position Point.
func (m *MappedPad) Center() sketch.Point { return m.center }

// Points returns the shared center plus every mapped layer's own points.
func (m *MappedPad) Points() []sketch.Point {
	pts := []sketch.Point{m.center}
	for _, l := range m.layers {
		pts = append(pts, l.Points()...)
	}
	return pts
}

// Lines returns every mapped layer's edge lines, concatenated in layer
// order.
func (m *MappedPad) Lines() []sketch.Line {
	var lines []sketch.Line
	for _, l := range m.layers {
		lines = append(lines, l.Lines()...)
	}
	return lines
}

// WriteBack writes the solved center back onto the pad's position, then
// invokes each mapped layer's writeback in turn.
func (m *MappedPad) WriteBack(s *sketch.Sketch) error {
	if err := requireOkSolve(s); err != nil {
		return err
	}
	cu, cv, err := s.PointCoords(m.center)
	if err != nil {
		return err
	}
	m.source.Position = board.FromMM(cu, cv)

	for i, layer := range m.layers {
		if err := layer.WriteBackLayer(s, m.layerRefs[i]); err != nil {
			return err
		}
	}
	return nil
}

func requireOkSolve(s *sketch.Sketch) error {
	res := s.LastResult()
	if res == nil || !res.Ok {
		code := -1
		if res != nil {
			code = res.Code
		}
		return &sketch.SolveNotSuccessfulError{Code: code}
	}
	return nil
}

func pointDist(s *sketch.Sketch, a, b sketch.Point) (float64, error) {
	au, av, err := s.PointCoords(a)
	if err != nil {
		return 0, err
	}
	bu, bv, err := s.PointCoords(b)
	if err != nil {
		return 0, err
	}
	return math.Hypot(bu-au, bv-av), nil
}

func lineLen(s *sketch.Sketch, l sketch.Line) (float64, error) {
	p1, p2, err := s.LineEndpoints(l)
	if err != nil {
		return 0, err
	}
	return pointDist(s, p1, p2)
}

func midpointCoords(s *sketch.Sketch, a, b sketch.Point) (u, v float64, err error) {
	au, av, err := s.PointCoords(a)
	if err != nil {
		return 0, 0, err
	}
	bu, bv, err := s.PointCoords(b)
	if err != nil {
		return 0, 0, err
	}
	return (au + bu) / 2, (av + bv) / 2, nil
}
