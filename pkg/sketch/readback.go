package sketch

// PointCoords returns the solved mm coordinates of p.
func (s *Sketch) PointCoords(p Point) (u, v float64, err error) {
	pd, ok := s.points[p]
	if !ok {
		return 0, 0, &UnknownHandleError{Handle: Handle(p), Kind: KindPoint}
	}
	return pd.u, pd.v, nil
}

// LineEndpoints returns l's two point handles.
func (s *Sketch) LineEndpoints(l Line) (Point, Point, error) {
	ld, ok := s.lines[l]
	if !ok {
		return 0, 0, &UnknownHandleError{Handle: Handle(l), Kind: KindLine}
	}
	return ld.p1, ld.p2, nil
}

// CircleCenter returns c's center point handle.
func (s *Sketch) CircleCenter(c Circle) (Point, error) {
	cd, ok := s.circles[c]
	if !ok {
		return 0, &UnknownHandleError{Handle: Handle(c), Kind: KindCircle}
	}
	return cd.center, nil
}

// CircleRadius returns c's current solved radius in mm.
func (s *Sketch) CircleRadius(c Circle) (float64, error) {
	cd, ok := s.circles[c]
	if !ok {
		return 0, &UnknownHandleError{Handle: Handle(c), Kind: KindCircle}
	}
	return cd.radius, nil
}

// ArcPoints returns an arc's center, start, and end point handles.
func (s *Sketch) ArcPoints(a Arc) (center, start, end Point, err error) {
	ad, ok := s.arcs[a]
	if !ok {
		return 0, 0, 0, &UnknownHandleError{Handle: Handle(a), Kind: KindArc}
	}
	return ad.center, ad.start, ad.end, nil
}

// CubicControls returns a cubic's four control point handles in order.
func (s *Sketch) CubicControls(c Cubic) (p1, p2, p3, p4 Point, err error) {
	cd, ok := s.cubics[c]
	if !ok {
		return 0, 0, 0, 0, &UnknownHandleError{Handle: Handle(c), Kind: KindCubic}
	}
	return cd.p1, cd.p2, cd.p3, cd.p4, nil
}

// LastResult returns the result of the most recent Solve call, or nil if
// Solve has never been called.
func (s *Sketch) LastResult() *SolveResult {
	return s.lastResult
}
