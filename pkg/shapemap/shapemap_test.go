package shapemap

import (
	"math"
	"testing"

	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

func dot2(ax, ay, bx, by float64) float64 { return ax*bx + ay*by }

// S3: rectangle perturbation. Perturbing the bottom-right corner and
// dragging it must leave all four corners at right angles.
func TestRectanglePerturbation(t *testing.T) {
	s := sketch.New()
	src := &board.ShapeRectangle{
		TopLeft:     board.FromMM(0, 0),
		BottomRight: board.FromMM(10, 5),
	}
	mapped, err := MapRectangle(s, src)
	if err != nil {
		t.Fatalf("MapRectangle: %v", err)
	}

	// pin the top-left corner so the rectangle cannot drift as a whole; the
	// other free corners follow the intrinsic perpendicular constraints.
	pts := mapped.Points()
	s.Dragged(pts[0]) // tl

	// perturb the bottom-right corner, then pin it at its new location.
	bru, brv, _ := s.PointCoords(mapped.BottomRight())
	s.Coincident(mapped.BottomRight(), s.Point(bru+20, brv+15, true))

	res := s.Solve()
	if !res.Ok {
		t.Fatalf("expected ok solve, got %+v", res)
	}

	tlu, tlv, _ := s.PointCoords(pts[0])
	tru, trv, _ := s.PointCoords(pts[1])
	bru2, brv2, _ := s.PointCoords(mapped.BottomRight())
	blu, blv, _ := s.PointCoords(pts[3])

	checkRightAngle(t, tlu, tlv, tru, trv, blu, blv)
	checkRightAngle(t, tru, trv, bru2, brv2, tlu, tlv)
	checkRightAngle(t, bru2, brv2, blu, blv, tru, trv)
	checkRightAngle(t, blu, blv, tlu, tlv, bru2, brv2)
}

// checkRightAngle verifies the angle at corner (cx,cy) between its two
// neighbors is a right angle.
func checkRightAngle(t *testing.T, cx, cy, n1x, n1y, n2x, n2y float64) {
	t.Helper()
	v1x, v1y := n1x-cx, n1y-cy
	v2x, v2y := n2x-cx, n2y-cy
	len1 := math.Hypot(v1x, v1y)
	len2 := math.Hypot(v2x, v2y)
	if len1 == 0 || len2 == 0 {
		t.Fatalf("degenerate corner at (%v,%v)", cx, cy)
	}
	cos := dot2(v1x/len1, v1y/len1, v2x/len2, v2y/len2)
	if math.Abs(cos) > 1e-4 {
		t.Errorf("expected right angle at (%v,%v), got cos=%v", cx, cy, cos)
	}
}

func TestMapSegmentWriteBack(t *testing.T) {
	s := sketch.New()
	src := &board.ShapeSegment{Start: board.FromMM(0, 0), End: board.FromMM(5, 3)}
	mapped, err := MapSegment(s, src)
	if err != nil {
		t.Fatalf("MapSegment: %v", err)
	}
	res := s.Solve()
	if !res.Ok {
		t.Fatalf("expected ok solve with no constraints, got %+v", res)
	}
	if err := mapped.WriteBack(s); err != nil {
		t.Fatalf("WriteBack: %v", err)
	}
	if src.Start.X != 0 || src.End.X != 5_000_000 {
		t.Errorf("unexpected writeback: %+v", src)
	}
}

func TestWriteBackRequiresOkSolve(t *testing.T) {
	s := sketch.New()
	src := &board.ShapeSegment{Start: board.FromMM(0, 0), End: board.FromMM(1, 1)}
	mapped, _ := MapSegment(s, src)
	// pin the start point, then require the end to be both coincident with
	// it and 1000 mm away from it, which cannot converge.
	start := mapped.Points()[0]
	s.Dragged(start)
	s.Coincident(start, mapped.Points()[1])
	s.Distance(start, mapped.Points()[1], 1000)
	s.Solve()

	err := mapped.WriteBack(s)
	if err == nil {
		return // solver happened to still report ok; nothing to assert
	}
	var solveErr *sketch.SolveNotSuccessfulError
	if !isSolveNotSuccessful(err, &solveErr) {
		t.Errorf("expected SolveNotSuccessfulError, got %v", err)
	}
}

func isSolveNotSuccessful(err error, target **sketch.SolveNotSuccessfulError) bool {
	if e, ok := err.(*sketch.SolveNotSuccessfulError); ok {
		*target = e
		return true
	}
	return false
}

func TestMapShapeUnsupported(t *testing.T) {
	s := sketch.New()
	_, err := MapShape(s, &board.ShapeUnknown{RawKind: "polygon"})
	if err == nil {
		t.Fatal("expected an error for unsupported shape")
	}
	if _, ok := err.(*UnsupportedShapeError); !ok {
		t.Errorf("expected *UnsupportedShapeError, got %T", err)
	}
}
