package suffixdsl

import "github.com/dshills/kiconstraint/pkg/sketch"

// ConstraintSpec is one parsed suffix token, ready to apply against a line,
// a pair of points, or a single point. A spec that does not support the
// context it is asked to apply to returns a *WrongContextError; the default
// implementation of all three methods does exactly that, so a concrete spec
// only needs to define the methods it supports.
type ConstraintSpec interface {
	ApplyToLine(s *sketch.Sketch, line sketch.Line, ctx string, reg *Registry) error
	ApplyToTwoPoints(s *sketch.Sketch, p1, p2 sketch.Point, ctx string, reg *Registry) error
	ApplyToPoint(s *sketch.Sketch, pt sketch.Point, ctx string, reg *Registry) error
}

// unsupported is embedded by every concrete spec to supply the default
// WrongContext behavior for the methods it does not override.
type unsupported struct {
	kind string
}

func (u unsupported) ApplyToLine(*sketch.Sketch, sketch.Line, string, *Registry) error {
	return &WrongContextError{Kind: u.kind, AppliedTo: "line"}
}

func (u unsupported) ApplyToTwoPoints(*sketch.Sketch, sketch.Point, sketch.Point, string, *Registry) error {
	return &WrongContextError{Kind: u.kind, AppliedTo: "two_points"}
}

func (u unsupported) ApplyToPoint(*sketch.Sketch, sketch.Point, string, *Registry) error {
	return &WrongContextError{Kind: u.kind, AppliedTo: "point"}
}

// DistanceSpec fixes a distance in millimeters, applied to either an edge's
// endpoints or an explicit point pair.
type DistanceSpec struct {
	unsupported
	N float64
}

func newDistanceSpec(n float64) DistanceSpec {
	return DistanceSpec{unsupported: unsupported{kind: "Distance"}, N: n}
}

func (d DistanceSpec) ApplyToLine(s *sketch.Sketch, line sketch.Line, ctx string, reg *Registry) error {
	p1, p2, err := s.LineEndpoints(line)
	if err != nil {
		return err
	}
	s.Distance(p1, p2, d.N)
	return nil
}

func (d DistanceSpec) ApplyToTwoPoints(s *sketch.Sketch, p1, p2 sketch.Point, ctx string, reg *Registry) error {
	s.Distance(p1, p2, d.N)
	return nil
}

// VerticalSpec fixes an edge's endpoints to the same u coordinate.
type VerticalSpec struct{ unsupported }

func newVerticalSpec() VerticalSpec { return VerticalSpec{unsupported{kind: "Vertical"}} }

func (v VerticalSpec) ApplyToLine(s *sketch.Sketch, line sketch.Line, ctx string, reg *Registry) error {
	s.Vertical(line)
	return nil
}

// HorizontalSpec fixes an edge's endpoints to the same v coordinate.
type HorizontalSpec struct{ unsupported }

func newHorizontalSpec() HorizontalSpec { return HorizontalSpec{unsupported{kind: "Horizontal"}} }

func (h HorizontalSpec) ApplyToLine(s *sketch.Sketch, line sketch.Line, ctx string, reg *Registry) error {
	s.Horizontal(line)
	return nil
}

// ParallelSpec fixes an edge parallel to a named edge.
type ParallelSpec struct {
	unsupported
	Ref string
}

func newParallelSpec(ref string) ParallelSpec {
	return ParallelSpec{unsupported: unsupported{kind: "Parallel"}, Ref: ref}
}

func (p ParallelSpec) ApplyToLine(s *sketch.Sketch, line sketch.Line, ctx string, reg *Registry) error {
	other, err := reg.edge(p.Ref, ctx)
	if err != nil {
		return err
	}
	s.Parallel(line, other, false)
	return nil
}

// PerpendicularSpec fixes an edge perpendicular to a named edge.
type PerpendicularSpec struct {
	unsupported
	Ref string
}

func newPerpendicularSpec(ref string) PerpendicularSpec {
	return PerpendicularSpec{unsupported: unsupported{kind: "Perpendicular"}, Ref: ref}
}

func (p PerpendicularSpec) ApplyToLine(s *sketch.Sketch, line sketch.Line, ctx string, reg *Registry) error {
	other, err := reg.edge(p.Ref, ctx)
	if err != nil {
		return err
	}
	s.Perpendicular(line, other, false)
	return nil
}

// CoincidentSpec pins a point to the same location as a named point.
type CoincidentSpec struct {
	unsupported
	Ref string
}

func newCoincidentSpec(ref string) CoincidentSpec {
	return CoincidentSpec{unsupported: unsupported{kind: "Coincident"}, Ref: ref}
}

func (c CoincidentSpec) ApplyToPoint(s *sketch.Sketch, pt sketch.Point, ctx string, reg *Registry) error {
	other, err := reg.point(c.Ref, ctx)
	if err != nil {
		return err
	}
	s.Coincident(pt, other)
	return nil
}

// EqualSpec fixes an edge's length equal to a named edge's.
type EqualSpec struct {
	unsupported
	Ref string
}

func newEqualSpec(ref string) EqualSpec {
	return EqualSpec{unsupported: unsupported{kind: "Equal"}, Ref: ref}
}

func (e EqualSpec) ApplyToLine(s *sketch.Sketch, line sketch.Line, ctx string, reg *Registry) error {
	other, err := reg.edge(e.Ref, ctx)
	if err != nil {
		return err
	}
	_, err = s.Equal(line, other)
	return err
}

// MidpointSpec pins a point to the midpoint of a named edge.
type MidpointSpec struct {
	unsupported
	Ref string
}

func newMidpointSpec(ref string) MidpointSpec {
	return MidpointSpec{unsupported: unsupported{kind: "Midpoint"}, Ref: ref}
}

func (m MidpointSpec) ApplyToPoint(s *sketch.Sketch, pt sketch.Point, ctx string, reg *Registry) error {
	line, err := reg.edge(m.Ref, ctx)
	if err != nil {
		return err
	}
	s.Midpoint(pt, line)
	return nil
}
