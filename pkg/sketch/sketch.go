package sketch

import (
	"sync"
)

// workspace models the process-wide state the underlying geometric solver
// keeps. Per the facade's concurrency contract, constructing a Sketch clears
// this workspace and installs a fresh base group, so at most one Sketch is
// considered live per process at a time. Entity storage itself lives on the
// Sketch value (a per-sketch arena), so an older Sketch remains internally
// usable even after a newer one is constructed — only the notion of "the
// current workspace" is process-wide.
var workspace struct {
	mu         sync.Mutex
	generation uint64
}

// baseGroup is the fixed group installed once per sketch: one 2D workplane
// and one 3D orientation normal. It carries no solver variables and is never
// touched by Solve.
type baseGroup struct {
	normal [3]float64
}

// Sketch is an arena of solver entities and constraints for one board solve.
// Entities and constraints are appended monotonically; handles are stable
// for the sketch's lifetime. A Sketch is not safe for concurrent use.
type Sketch struct {
	generation uint64
	base       baseGroup

	nextHandle     Handle
	nextConstraint Handle

	pointOrder []Point
	points     map[Point]*pointData
	zcoord     map[Point]float64

	lineOrder []Line
	lines     map[Line]*lineData

	circleOrder []Circle
	circles     map[Circle]*circleData

	arcOrder []Arc
	arcs     map[Arc]*arcData

	cubicOrder []Cubic
	cubics     map[Cubic]*cubicData

	constraints []constraintRecord
	implicit    []constraintRecord // arc radius-equality, not user visible

	lastResult *SolveResult
}

// New creates an empty Sketch with a freshly installed base group. It clears
// the process-wide solver workspace per §5 of the constraint-construction
// specification: only one Sketch should be actively solved at a time.
func New() *Sketch {
	workspace.mu.Lock()
	workspace.generation++
	gen := workspace.generation
	workspace.mu.Unlock()

	return &Sketch{
		generation: gen,
		base:       baseGroup{normal: [3]float64{0, 0, 1}},
		points:     make(map[Point]*pointData),
		zcoord:     make(map[Point]float64),
		lines:      make(map[Line]*lineData),
		circles:    make(map[Circle]*circleData),
		arcs:       make(map[Arc]*arcData),
		cubics:     make(map[Cubic]*cubicData),
	}
}

func (s *Sketch) allocHandle() Handle {
	h := s.nextHandle
	s.nextHandle++
	return h
}

func (s *Sketch) allocConstraintHandle() Handle {
	h := s.nextConstraint
	s.nextConstraint++
	return h
}

// Point creates a new 2D point at (u,v) mm. If fixed is true, the point is
// additionally pinned in place with a Dragged constraint, so it never moves
// during Solve.
func (s *Sketch) Point(u, v float64, fixed bool) Point {
	p := Point(s.allocHandle())
	s.points[p] = &pointData{u: u, v: v, fixed: fixed}
	s.pointOrder = append(s.pointOrder, p)
	if fixed {
		s.Dragged(p)
	}
	return p
}

// Point3D creates a point carrying a third (z) coordinate for normal
// bookkeeping. The z value is not a solver variable: it is stored alongside
// the 2D point and never affects Solve.
func (s *Sketch) Point3D(x, y, z float64, fixed bool) Point {
	p := s.Point(x, y, fixed)
	s.zcoord[p] = z
	return p
}

// Line creates an ordered line between two points already owned by this
// sketch.
func (s *Sketch) Line(p1, p2 Point) (Line, error) {
	if _, ok := s.points[p1]; !ok {
		return 0, &UnknownHandleError{Handle: Handle(p1), Kind: KindPoint}
	}
	if _, ok := s.points[p2]; !ok {
		return 0, &UnknownHandleError{Handle: Handle(p2), Kind: KindPoint}
	}
	l := Line(s.allocHandle())
	s.lines[l] = &lineData{p1: p1, p2: p2}
	s.lineOrder = append(s.lineOrder, l)
	return l, nil
}

// Circle creates a circle centered on center with the given mm radius,
// stored as a scalar solver variable.
func (s *Sketch) Circle(center Point, r float64) (Circle, error) {
	if _, ok := s.points[center]; !ok {
		return 0, &UnknownHandleError{Handle: Handle(center), Kind: KindPoint}
	}
	c := Circle(s.allocHandle())
	s.circles[c] = &circleData{center: center, radius: r}
	s.circleOrder = append(s.circleOrder, c)
	return c, nil
}

// Arc creates an arc through the given center, start, and end points. The
// center-start and center-end lengths are implicitly kept equal by an
// internal equation installed here; the sweep direction (counter-clockwise
// from start to end) is preserved across solves.
func (s *Sketch) Arc(center, start, end Point) (Arc, error) {
	for _, p := range [...]Point{center, start, end} {
		if _, ok := s.points[p]; !ok {
			return 0, &UnknownHandleError{Handle: Handle(p), Kind: KindPoint}
		}
	}
	a := Arc(s.allocHandle())
	s.arcs[a] = &arcData{center: center, start: start, end: end}
	s.arcOrder = append(s.arcOrder, a)

	s.implicit = append(s.implicit, constraintRecord{
		kind:      kindArcRadiusEqual,
		p1:        start,
		p2:        end,
		arcCenter: center,
	})
	return a, nil
}

// Cubic creates a four-control-point Bézier curve. No intrinsic constraints
// are emitted; the control polygon is free to move.
func (s *Sketch) Cubic(p1, p2, p3, p4 Point) (Cubic, error) {
	for _, p := range [...]Point{p1, p2, p3, p4} {
		if _, ok := s.points[p]; !ok {
			return 0, &UnknownHandleError{Handle: Handle(p), Kind: KindPoint}
		}
	}
	c := Cubic(s.allocHandle())
	s.cubics[c] = &cubicData{p1: p1, p2: p2, p3: p3, p4: p4}
	s.cubicOrder = append(s.cubicOrder, c)
	return c, nil
}

func (s *Sketch) addConstraint(rec constraintRecord) Constraint {
	rec.handle = s.allocConstraintHandle()
	s.constraints = append(s.constraints, rec)
	return Constraint{Handle: rec.handle, Kind: rec.kind}
}

// Coincident pins two points to the same location.
func (s *Sketch) Coincident(a, b Point) Constraint {
	return s.addConstraint(constraintRecord{kind: KindCoincident, p1: a, p2: b})
}

// Distance fixes the euclidean distance between two points to d mm.
func (s *Sketch) Distance(a, b Point, d float64) Constraint {
	return s.addConstraint(constraintRecord{kind: KindDistance, p1: a, p2: b, scalar: d})
}

// DistanceProj fixes the signed projection of (b-a) onto axis's direction to
// d mm.
func (s *Sketch) DistanceProj(a, b Point, axis Line, d float64) Constraint {
	return s.addConstraint(constraintRecord{kind: KindDistanceProj, p1: a, p2: b, l1: axis, scalar: d})
}

// Horizontal fixes l's endpoints to the same v coordinate.
func (s *Sketch) Horizontal(l Line) Constraint {
	return s.addConstraint(constraintRecord{kind: KindHorizontal, l1: l})
}

// Vertical fixes l's endpoints to the same u coordinate.
func (s *Sketch) Vertical(l Line) Constraint {
	return s.addConstraint(constraintRecord{kind: KindVertical, l1: l})
}

// Parallel fixes l1 and l2 to have parallel directions. inverse is accepted
// for API parity with the angle-convention flip used elsewhere; the
// parallel residual (a zero cross product) is sign-invariant, so it has no
// numeric effect here.
func (s *Sketch) Parallel(l1, l2 Line, inverse bool) Constraint {
	return s.addConstraint(constraintRecord{kind: KindParallel, l1: l1, l2: l2, inverse: inverse})
}

// Perpendicular fixes l1 and l2 to have perpendicular directions. inverse
// flips the sign convention used by Angle-style callers sharing this pair;
// the perpendicular residual (a zero dot product) is sign-invariant.
func (s *Sketch) Perpendicular(l1, l2 Line, inverse bool) Constraint {
	return s.addConstraint(constraintRecord{kind: KindPerpendicular, l1: l1, l2: l2, inverse: inverse})
}

// Equal fixes two lines' lengths equal, or two curves' (Circle/Arc) radii
// equal, depending on the dynamic type of a and b.
func (s *Sketch) Equal(a, b any) (Constraint, error) {
	if la, ok := a.(Line); ok {
		lb, ok := b.(Line)
		if !ok {
			return Constraint{}, &typeMismatchError{expected: "Line", got: b}
		}
		return s.addConstraint(constraintRecord{kind: KindEqual, l1: la, l2: lb}), nil
	}
	ca, ok := asCurve(a)
	if !ok {
		return Constraint{}, &typeMismatchError{expected: "Line, Circle, or Arc", got: a}
	}
	cb, ok := asCurve(b)
	if !ok {
		return Constraint{}, &typeMismatchError{expected: "Line, Circle, or Arc", got: b}
	}
	return s.addConstraint(constraintRecord{kind: KindEqual, curve: ca, curve2: cb, hasCurve2: true, curveMode: true}), nil
}

// Tangent fixes curve (Circle or Arc) tangent to line l.
func (s *Sketch) Tangent(curve any, l Line) (Constraint, error) {
	c, ok := asCurve(curve)
	if !ok {
		return Constraint{}, &typeMismatchError{expected: "Circle or Arc", got: curve}
	}
	return s.addConstraint(constraintRecord{kind: KindTangent, curve: c, l1: l}), nil
}

// Midpoint fixes p to the midpoint of line.
func (s *Sketch) Midpoint(p Point, line Line) Constraint {
	return s.addConstraint(constraintRecord{kind: KindMidpoint, p1: p, l1: line})
}

// Symmetric mirrors a and b across axis.
func (s *Sketch) Symmetric(a, b Point, axis Line) Constraint {
	return s.addConstraint(constraintRecord{kind: KindSymmetric, p1: a, p2: b, axis: axis, hasAxis: true})
}

// SymmetricH mirrors a and b across the horizontal (v=0) workplane axis.
func (s *Sketch) SymmetricH(a, b Point) Constraint {
	return s.addConstraint(constraintRecord{kind: KindSymmetric, p1: a, p2: b, hasAxis: false, inverse: false})
}

// SymmetricV mirrors a and b across the vertical (u=0) workplane axis.
func (s *Sketch) SymmetricV(a, b Point) Constraint {
	return s.addConstraint(constraintRecord{kind: KindSymmetric, p1: a, p2: b, hasAxis: false, inverse: true})
}

// Angle fixes the angle between l1 and l2 to deg degrees. inverse negates
// the target angle.
func (s *Sketch) Angle(l1, l2 Line, deg float64, inverse bool) Constraint {
	return s.addConstraint(constraintRecord{kind: KindAngle, l1: l1, l2: l2, scalar: deg, inverse: inverse})
}

// Diameter fixes circle c's diameter to d mm (d = 2*radius).
func (s *Sketch) Diameter(c Circle, d float64) Constraint {
	return s.addConstraint(constraintRecord{kind: KindDiameter, curve: curveRef{circle: c}, scalar: d})
}

// Ratio fixes len(l1) == v * len(l2).
func (s *Sketch) Ratio(l1, l2 Line, v float64) Constraint {
	return s.addConstraint(constraintRecord{kind: KindRatio, l1: l1, l2: l2, scalar: v})
}

// LengthDiff fixes len(l1) - len(l2) == v.
func (s *Sketch) LengthDiff(l1, l2 Line, v float64) Constraint {
	return s.addConstraint(constraintRecord{kind: KindLengthDiff, l1: l1, l2: l2, scalar: v})
}

// OnLine constrains p to lie on line.
func (s *Sketch) OnLine(p Point, line Line) Constraint {
	return s.addConstraint(constraintRecord{kind: KindOnLine, p1: p, l1: line})
}

// OnCircle constrains p to lie on circle c.
func (s *Sketch) OnCircle(p Point, c Circle) Constraint {
	return s.addConstraint(constraintRecord{kind: KindOnCircle, p1: p, curve: curveRef{circle: c}})
}

// EqualAngle fixes the angle between l1,l2 equal to the angle between l3,l4.
func (s *Sketch) EqualAngle(l1, l2, l3, l4 Line) Constraint {
	return s.addConstraint(constraintRecord{kind: KindEqualAngle, l1: l1, l2: l2, l3: l3, l4: l4})
}

// EqualRadius fixes two curves' (Circle/Arc) radii equal.
func (s *Sketch) EqualRadius(a, b any) (Constraint, error) {
	ca, ok := asCurve(a)
	if !ok {
		return Constraint{}, &typeMismatchError{expected: "Circle or Arc", got: a}
	}
	cb, ok := asCurve(b)
	if !ok {
		return Constraint{}, &typeMismatchError{expected: "Circle or Arc", got: b}
	}
	return s.addConstraint(constraintRecord{kind: KindEqualRadius, curve: ca, curve2: cb, hasCurve2: true}), nil
}

// Dragged pins p's parameters to its current numeric values.
func (s *Sketch) Dragged(p Point) Constraint {
	pd := s.points[p]
	var u, v float64
	if pd != nil {
		u, v = pd.u, pd.v
	}
	return s.addConstraint(constraintRecord{kind: KindDragged, p1: p, snapU: u, snapV: v})
}

// typeMismatchError reports that a generic (any-typed) constraint operand
// was not one of the types that constraint kind accepts.
type typeMismatchError struct {
	expected string
	got      any
}

func (e *typeMismatchError) Error() string {
	return "sketch: expected " + e.expected + " operand"
}

const kindArcRadiusEqual ConstraintKind = -1 // implicit, never surfaced as a Constraint
