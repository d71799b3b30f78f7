package dimension

import (
	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// WriteBack translates every bound dimension's start/end/text position to
// track its solved geometry. An edge-bound dimension copies both endpoints
// directly from the solved line. A dimension bound at only one end
// translates its whole geometry (both endpoints and the text position) by
// the delta the bound endpoint moved, preserving the original start/end
// offset and the label's visual placement, per spec.md §4.4.
func WriteBack(s *sketch.Sketch, m *Mapping) error {
	if err := requireOkSolve(s); err != nil {
		return err
	}
	for _, b := range m.bindings {
		if err := writeBackOne(s, b); err != nil {
			return err
		}
	}
	return nil
}

func writeBackOne(s *sketch.Sketch, b binding) error {
	switch v := b.dim.(type) {
	case *board.DimensionAligned:
		return writeBackSegment(s, b, &v.Start, &v.End, &v.TextPosition)
	case *board.DimensionOrthogonal:
		return writeBackSegment(s, b, &v.Start, &v.End, &v.TextPosition)
	case *board.DimensionLeader:
		return writeBackLeader(s, b, &v.Start, &v.TextPosition)
	}
	return nil
}

func writeBackSegment(s *sketch.Sketch, b binding, start, end, textPos *board.Vec2I) error {
	origStartU, origStartV := start.MM()
	origEndU, origEndV := end.MM()

	newStartU, newStartV, haveStart := origStartU, origStartV, false
	newEndU, newEndV, haveEnd := origEndU, origEndV, false

	if b.hasStart {
		u, v, err := s.PointCoords(b.start)
		if err != nil {
			return err
		}
		newStartU, newStartV, haveStart = u, v, true
	}
	if b.hasEnd {
		u, v, err := s.PointCoords(b.end)
		if err != nil {
			return err
		}
		newEndU, newEndV, haveEnd = u, v, true
	}

	deltaU, deltaV := averageDelta(
		newStartU-origStartU, newStartV-origStartV, haveStart,
		newEndU-origEndU, newEndV-origEndV, haveEnd,
	)

	// An endpoint that never resolved to a sketch point still has to move:
	// spec.md §4.4 preserves the original (end-start) offset by translating
	// the whole dimension by the delta the bound endpoint(s) moved, not by
	// leaving the unresolved endpoint at its literal original coordinates.
	if !haveStart {
		newStartU, newStartV = origStartU+deltaU, origStartV+deltaV
	}
	if !haveEnd {
		newEndU, newEndV = origEndU+deltaU, origEndV+deltaV
	}

	*start = board.FromMM(newStartU, newStartV)
	*end = board.FromMM(newEndU, newEndV)

	tu, tv := textPos.MM()
	*textPos = board.FromMM(tu+deltaU, tv+deltaV)
	return nil
}

func writeBackLeader(s *sketch.Sketch, b binding, start, textPos *board.Vec2I) error {
	if !b.hasStart {
		return nil
	}
	origU, origV := start.MM()
	u, v, err := s.PointCoords(b.start)
	if err != nil {
		return err
	}
	deltaU, deltaV := u-origU, v-origV

	*start = board.FromMM(u, v)
	tu, tv := textPos.MM()
	*textPos = board.FromMM(tu+deltaU, tv+deltaV)
	return nil
}

// averageDelta combines the start/end movement deltas: the average when both
// ends moved, whichever single delta is available when only one did, and
// zero when neither did (unreachable for a registered binding, but kept
// total for clarity).
func averageDelta(du1, dv1 float64, have1 bool, du2, dv2 float64, have2 bool) (float64, float64) {
	switch {
	case have1 && have2:
		return (du1 + du2) / 2, (dv1 + dv2) / 2
	case have1:
		return du1, dv1
	case have2:
		return du2, dv2
	default:
		return 0, 0
	}
}
