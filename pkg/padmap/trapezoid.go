package padmap

import (
	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// MappedPadTrapezoid is a trapezoidal copper layer. Its four corners are
// built so that the edge pair running along the skew axis stays parallel by
// construction while the other pair tapers; an explicit equal-length
// constraint on the non-skew pair and a parallel constraint on the skew pair
// keep that true under perturbation. Which axis is "skewed" is fixed at
// mapping time from the source delta's nonzero component and does not
// change with the solve.
type MappedPadTrapezoid struct {
	tl, tr, bl, br            sketch.Point
	top, right, bottom, left  sketch.Line
	mpA, mpB                  sketch.Point
	construction              sketch.Line
	verticalSkew              bool
	intrinsic                 []sketch.Constraint
}

// verticalTrapezoidSkew reports whether a trapezoid delta should be treated
// as a vertical skew (delta.x nonzero), preserved here exactly as the
// original tool decided it: a zero delta also resolves to vertical skew.
func verticalTrapezoidSkew(delta board.Vec2I) bool {
	return delta.X != 0 || delta.Y == 0
}

func mapPadTrapezoid(s *sketch.Sketch, center sketch.Point, cu, cv float64, layer *board.PadLayer) (*MappedPadTrapezoid, error) {
	sx, sy := layer.Size.MM()
	hw, hh := sx/2, sy/2
	dx, dy := layer.TrapezoidDelta.MM()
	halfDX, halfDY := dx/2, dy/2

	verticalSkew := verticalTrapezoidSkew(layer.TrapezoidDelta)

	var tl, tr, bl, br sketch.Point
	if verticalSkew {
		d := halfDX
		tl = s.Point(cu-hw, cv-hh+d, false)
		tr = s.Point(cu+hw, cv-hh-d, false)
		bl = s.Point(cu-hw, cv+hh-d, false)
		br = s.Point(cu+hw, cv+hh+d, false)
	} else {
		e := halfDY
		tl = s.Point(cu-hw-e, cv-hh, false)
		tr = s.Point(cu+hw+e, cv-hh, false)
		bl = s.Point(cu-hw+e, cv+hh, false)
		br = s.Point(cu+hw-e, cv+hh, false)
	}

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

	m := &MappedPadTrapezoid{
		tl: tl, tr: tr, bl: bl, br: br,
		top: top, right: right, bottom: bottom, left: left,
		verticalSkew: verticalSkew,
	}

	if verticalSkew {
		m.mpA = s.Point(cu-hw, cv, false)
		m.mpB = s.Point(cu+hw, cv, false)
		m.construction, err = s.Line(m.mpA, m.mpB)
		if err != nil {
			return nil, err
		}
		m.intrinsic = []sketch.Constraint{
			s.Midpoint(m.mpA, left),
			s.Midpoint(m.mpB, right),
			s.Perpendicular(m.construction, left, false),
			s.Midpoint(center, m.construction),
			s.Parallel(left, right, false),
		}
		eq, _ := s.Equal(top, bottom)
		m.intrinsic = append(m.intrinsic, eq)
	} else {
		m.mpA = s.Point(cu, cv-hh, false)
		m.mpB = s.Point(cu, cv+hh, false)
		m.construction, err = s.Line(m.mpA, m.mpB)
		if err != nil {
			return nil, err
		}
		m.intrinsic = []sketch.Constraint{
			s.Midpoint(m.mpA, top),
			s.Midpoint(m.mpB, bottom),
			s.Perpendicular(m.construction, top, false),
			s.Midpoint(center, m.construction),
			s.Parallel(top, bottom, false),
		}
		eq, _ := s.Equal(left, right)
		m.intrinsic = append(m.intrinsic, eq)
	}

	return m, nil
}

// Points returns (tl, tr, bl, br, mpA, mpB).
func (m *MappedPadTrapezoid) Points() []sketch.Point {
	return []sketch.Point{m.tl, m.tr, m.bl, m.br, m.mpA, m.mpB}
}

// Lines returns (top, right, bottom, left, construction).
func (m *MappedPadTrapezoid) Lines() []sketch.Line {
	return []sketch.Line{m.top, m.right, m.bottom, m.left, m.construction}
}

// Intrinsic returns the constraints that keep the skew axis's edges
// parallel and the other axis's edges equal in length.
func (m *MappedPadTrapezoid) Intrinsic() []sketch.Constraint { return m.intrinsic }

// WriteBackLayer recovers size and trapezoid delta from the solved corners,
// branching on the skew axis fixed at mapping time.
func (m *MappedPadTrapezoid) WriteBackLayer(s *sketch.Sketch, layer *board.PadLayer) error {
	constructionLen, err := lineLen(s, m.construction)
	if err != nil {
		return err
	}
	leftLen, err := pointDist(s, m.tl, m.bl)
	if err != nil {
		return err
	}
	rightLen, err := pointDist(s, m.tr, m.br)
	if err != nil {
		return err
	}
	topLen, err := pointDist(s, m.tl, m.tr)
	if err != nil {
		return err
	}
	bottomLen, err := pointDist(s, m.bl, m.br)
	if err != nil {
		return err
	}

	if m.verticalSkew {
		layer.Size = board.FromMM(constructionLen, (leftLen+rightLen)/2)
		layer.TrapezoidDelta = board.FromMM((rightLen-leftLen)/2, 0)
	} else {
		layer.Size = board.FromMM((topLen+bottomLen)/2, constructionLen)
		layer.TrapezoidDelta = board.FromMM(0, (topLen-bottomLen)/2)
	}
	return nil
}
