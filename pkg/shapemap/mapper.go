package shapemap

import (
	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// MappedGeometry is the common capability set every mapped primitive
// provides: its ordered points and lines (for downstream dimension binding)
// and its writeback, which inverts the mapping back onto the source
// primitive.
type MappedGeometry interface {
	// Points returns the entity's points in the order the factory created
	// them.
	Points() []sketch.Point
	// Lines returns the entity's edge lines in the order the factory
	// created them. Entities with no edges (circles, cubics) return nil.
	Lines() []sketch.Line
	// WriteBack reconstructs the source primitive's fields from the
	// sketch's solved coordinates. It fails with a
	// *sketch.SolveNotSuccessfulError if the sketch's last solve did not
	// converge.
	WriteBack(s *sketch.Sketch) error
}

// MapShape dispatches src to the matching factory by its concrete type and
// returns the resulting MappedGeometry. Unsupported primitive kinds (e.g.
// *board.ShapeUnknown) produce an *UnsupportedShapeError.
func MapShape(s *sketch.Sketch, src board.Shape) (MappedGeometry, error) {
	switch v := src.(type) {
	case *board.ShapeSegment:
		return MapSegment(s, v)
	case *board.ShapeArc:
		return MapArc(s, v)
	case *board.ShapeCircle:
		return MapCircle(s, v)
	case *board.ShapeRectangle:
		return MapRectangle(s, v)
	case *board.ShapeBezier:
		return MapCubic(s, v)
	case *board.ShapeUnknown:
		return nil, &UnsupportedShapeError{Kind: v.RawKind}
	default:
		return nil, &UnsupportedShapeError{Kind: "unrecognized"}
	}
}

func pointFromVec(s *sketch.Sketch, v board.Vec2I) sketch.Point {
	u, w := v.MM()
	return s.Point(u, w, false)
}

// requireOkSolve returns a *sketch.SolveNotSuccessfulError if s's last solve
// did not converge. Every WriteBack implementation must check this before
// touching its source primitive, per the writeback precondition in §3.
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
