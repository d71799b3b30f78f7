package sketch

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SolveResult reports the outcome of a Solve call.
type SolveResult struct {
	// Ok is true iff the underlying relaxation converged to residual zero
	// within tolerance (the facade's OKAY/REDUNDANT_OKAY cases).
	Ok bool
	// Dof is the number of remaining degrees of freedom; 0 means fully
	// constrained.
	Dof int
	// Code is an opaque diagnostic code for callers that want more than
	// ok/dof; it is not interpreted by this package's own callers.
	Code int
}

const (
	codeConverged    = 0
	codeMaxIterHit   = 1
	codeSingularStep = 2
	codeNoEquations  = 3
)

// solveTolerance is the residual-norm threshold below which a solve is
// considered converged.
const solveTolerance = 1e-10

// maxSolveIterations bounds the Levenberg-Marquardt relaxation so a
// pathological constraint net cannot loop forever.
const maxSolveIterations = 200

// paramLayout maps each free scalar variable (point u/v pairs, circle radii)
// to an index in the flattened parameter vector used by Solve.
type paramLayout struct {
	pointIndex  map[Point]int
	circleIndex map[Circle]int
	n           int
}

func (s *Sketch) buildLayout() paramLayout {
	layout := paramLayout{
		pointIndex:  make(map[Point]int, len(s.pointOrder)),
		circleIndex: make(map[Circle]int, len(s.circleOrder)),
	}
	idx := 0
	for _, p := range s.pointOrder {
		layout.pointIndex[p] = idx
		idx += 2
	}
	for _, c := range s.circleOrder {
		layout.circleIndex[c] = idx
		idx++
	}
	layout.n = idx
	return layout
}

func (s *Sketch) paramVector(layout paramLayout) []float64 {
	x := make([]float64, layout.n)
	for p, i := range layout.pointIndex {
		pd := s.points[p]
		x[i], x[i+1] = pd.u, pd.v
	}
	for c, i := range layout.circleIndex {
		x[i] = s.circles[c].radius
	}
	return x
}

func (s *Sketch) applyParams(layout paramLayout, x []float64) {
	for p, i := range layout.pointIndex {
		s.points[p].u, s.points[p].v = x[i], x[i+1]
	}
	for c, i := range layout.circleIndex {
		s.circles[c].radius = x[i]
	}
}

func getPoint(x []float64, layout paramLayout, p Point) (u, v float64) {
	i := layout.pointIndex[p]
	return x[i], x[i+1]
}

func getRadiusVar(x []float64, layout paramLayout, c Circle) float64 {
	return x[layout.circleIndex[c]]
}

// curveCenterAndRadius resolves a curveRef's center point and radius against
// the current parameter vector, computing the arc radius as the live
// distance from its center to its start point.
func (s *Sketch) curveCenterAndRadius(x []float64, layout paramLayout, c curveRef) (cu, cv, r float64) {
	if c.isArc {
		ad := s.arcs[c.arc]
		cu, cv = getPoint(x, layout, ad.center)
		su, sv := getPoint(x, layout, ad.start)
		r = math.Hypot(su-cu, sv-cv)
		return
	}
	cd := s.circles[c.circle]
	cu, cv = getPoint(x, layout, cd.center)
	r = getRadiusVar(x, layout, c.circle)
	return
}

func lineDir(s *Sketch, x []float64, layout paramLayout, l Line) (dx, dy float64) {
	ld := s.lines[l]
	u1, v1 := getPoint(x, layout, ld.p1)
	u2, v2 := getPoint(x, layout, ld.p2)
	return u2 - u1, v2 - v1
}

func lineEndpointsXY(s *Sketch, x []float64, layout paramLayout, l Line) (u1, v1, u2, v2 float64) {
	ld := s.lines[l]
	u1, v1 = getPoint(x, layout, ld.p1)
	u2, v2 = getPoint(x, layout, ld.p2)
	return
}

func angleBetween(dx1, dy1, dx2, dy2 float64) float64 {
	return math.Atan2(dx1*dy2-dy1*dx2, dx1*dx2+dy1*dy2)
}

// evalConstraint returns the residual equations contributed by one
// constraint record given the current parameter vector.
func (s *Sketch) evalConstraint(rec constraintRecord, x []float64, layout paramLayout) []float64 {
	switch rec.kind {
	case kindArcRadiusEqual:
		cu, cv := getPoint(x, layout, rec.arcCenter)
		su, sv := getPoint(x, layout, rec.p1)
		eu, ev := getPoint(x, layout, rec.p2)
		return []float64{math.Hypot(su-cu, sv-cv) - math.Hypot(eu-cu, ev-cv)}

	case KindCoincident:
		au, av := getPoint(x, layout, rec.p1)
		bu, bv := getPoint(x, layout, rec.p2)
		return []float64{au - bu, av - bv}

	case KindDistance:
		au, av := getPoint(x, layout, rec.p1)
		bu, bv := getPoint(x, layout, rec.p2)
		return []float64{math.Hypot(bu-au, bv-av) - rec.scalar}

	case KindDistanceProj:
		au, av := getPoint(x, layout, rec.p1)
		bu, bv := getPoint(x, layout, rec.p2)
		dx, dy := lineDir(s, x, layout, rec.l1)
		norm := math.Hypot(dx, dy)
		if norm == 0 {
			norm = 1
		}
		proj := ((bu-au)*dx + (bv-av)*dy) / norm
		return []float64{proj - rec.scalar}

	case KindHorizontal:
		_, v1, _, v2 := lineEndpointsXY(s, x, layout, rec.l1)
		return []float64{v2 - v1}

	case KindVertical:
		u1, _, u2, _ := lineEndpointsXY(s, x, layout, rec.l1)
		return []float64{u2 - u1}

	case KindParallel:
		dx1, dy1 := lineDir(s, x, layout, rec.l1)
		dx2, dy2 := lineDir(s, x, layout, rec.l2)
		return []float64{dx1*dy2 - dy1*dx2}

	case KindPerpendicular:
		dx1, dy1 := lineDir(s, x, layout, rec.l1)
		dx2, dy2 := lineDir(s, x, layout, rec.l2)
		return []float64{dx1*dx2 + dy1*dy2}

	case KindEqual:
		if rec.curveMode {
			_, _, r1 := s.curveCenterAndRadius(x, layout, rec.curve)
			_, _, r2 := s.curveCenterAndRadius(x, layout, rec.curve2)
			return []float64{r1 - r2}
		}
		dx1, dy1 := lineDir(s, x, layout, rec.l1)
		dx2, dy2 := lineDir(s, x, layout, rec.l2)
		return []float64{math.Hypot(dx1, dy1) - math.Hypot(dx2, dy2)}

	case KindTangent:
		cu, cv, r := s.curveCenterAndRadius(x, layout, rec.curve)
		u1, v1, u2, v2 := lineEndpointsXY(s, x, layout, rec.l1)
		dx, dy := u2-u1, v2-v1
		norm := math.Hypot(dx, dy)
		if norm == 0 {
			norm = 1
		}
		// distance from center to the line, signed by the cross product
		dist := ((cu-u1)*dy - (cv-v1)*dx) / norm
		return []float64{dist - r}

	case KindMidpoint:
		pu, pv := getPoint(x, layout, rec.p1)
		u1, v1, u2, v2 := lineEndpointsXY(s, x, layout, rec.l1)
		return []float64{pu - (u1+u2)/2, pv - (v1+v2)/2}

	case KindSymmetric:
		au, av := getPoint(x, layout, rec.p1)
		bu, bv := getPoint(x, layout, rec.p2)
		if rec.hasAxis {
			u1, v1, u2, v2 := lineEndpointsXY(s, x, layout, rec.axis)
			dx, dy := u2-u1, v2-v1
			norm := math.Hypot(dx, dy)
			if norm == 0 {
				norm = 1
			}
			mx, my := (au+bu)/2, (av+bv)/2
			onAxis := ((mx-u1)*dy - (my-v1)*dx) / norm
			perp := (bu-au)*dx + (bv-av)*dy
			return []float64{onAxis, perp}
		}
		if rec.inverse { // SymmetricV: mirror across u=0
			return []float64{av - bv, au + bu}
		}
		// SymmetricH: mirror across v=0
		return []float64{au - bu, av + bv}

	case KindAngle:
		dx1, dy1 := lineDir(s, x, layout, rec.l1)
		dx2, dy2 := lineDir(s, x, layout, rec.l2)
		want := rec.scalar * math.Pi / 180
		if rec.inverse {
			want = -want
		}
		got := angleBetween(dx1, dy1, dx2, dy2)
		return []float64{wrapAngleDiff(got - want)}

	case KindDiameter:
		_, _, r := s.curveCenterAndRadius(x, layout, rec.curve)
		return []float64{2*r - rec.scalar}

	case KindRatio:
		dx1, dy1 := lineDir(s, x, layout, rec.l1)
		dx2, dy2 := lineDir(s, x, layout, rec.l2)
		return []float64{math.Hypot(dx1, dy1) - rec.scalar*math.Hypot(dx2, dy2)}

	case KindLengthDiff:
		dx1, dy1 := lineDir(s, x, layout, rec.l1)
		dx2, dy2 := lineDir(s, x, layout, rec.l2)
		return []float64{math.Hypot(dx1, dy1) - math.Hypot(dx2, dy2) - rec.scalar}

	case KindOnLine:
		pu, pv := getPoint(x, layout, rec.p1)
		u1, v1, u2, v2 := lineEndpointsXY(s, x, layout, rec.l1)
		return []float64{(pu-u1)*(v2-v1) - (pv-v1)*(u2-u1)}

	case KindOnCircle:
		pu, pv := getPoint(x, layout, rec.p1)
		cu, cv, r := s.curveCenterAndRadius(x, layout, rec.curve)
		return []float64{math.Hypot(pu-cu, pv-cv) - r}

	case KindEqualAngle:
		dx1, dy1 := lineDir(s, x, layout, rec.l1)
		dx2, dy2 := lineDir(s, x, layout, rec.l2)
		dx3, dy3 := lineDir(s, x, layout, rec.l3)
		dx4, dy4 := lineDir(s, x, layout, rec.l4)
		a1 := angleBetween(dx1, dy1, dx2, dy2)
		a2 := angleBetween(dx3, dy3, dx4, dy4)
		return []float64{wrapAngleDiff(a1 - a2)}

	case KindEqualRadius:
		_, _, r1 := s.curveCenterAndRadius(x, layout, rec.curve)
		_, _, r2 := s.curveCenterAndRadius(x, layout, rec.curve2)
		return []float64{r1 - r2}

	case KindDragged:
		u, v := getPoint(x, layout, rec.p1)
		return []float64{u - rec.snapU, v - rec.snapV}
	}
	return nil
}

func wrapAngleDiff(d float64) float64 {
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// residualVector evaluates every constraint (explicit and implicit) against
// x and returns the flattened residual vector; its length is the number of
// scalar equations.
func (s *Sketch) residualVector(x []float64, layout paramLayout) []float64 {
	var out []float64
	for _, rec := range s.implicit {
		out = append(out, s.evalConstraint(rec, x, layout)...)
	}
	for _, rec := range s.constraints {
		out = append(out, s.evalConstraint(rec, x, layout)...)
	}
	return out
}

// jacobian computes a forward-difference Jacobian of the residual vector
// with respect to x.
func (s *Sketch) jacobian(x []float64, layout paramLayout, r0 []float64) *mat.Dense {
	n := len(x)
	m := len(r0)
	J := mat.NewDense(m, n, nil)
	const h = 1e-6
	xp := make([]float64, n)
	for j := 0; j < n; j++ {
		copy(xp, x)
		step := h
		if math.Abs(x[j]) > 1 {
			step = h * math.Abs(x[j])
		}
		xp[j] += step
		rp := s.residualVector(xp, layout)
		for i := 0; i < m; i++ {
			J.Set(i, j, (rp[i]-r0[i])/step)
		}
	}
	return J
}

// Solve relaxes the sketch's free parameters with a damped Gauss-Newton
// (Levenberg-Marquardt) iteration until every constraint's residual is
// within tolerance or the iteration budget is exhausted. It never panics;
// failure is reported through SolveResult.Ok.
func (s *Sketch) Solve() SolveResult {
	layout := s.buildLayout()
	x := s.paramVector(layout)

	numEquations := len(s.residualVector(x, layout))
	if layout.n == 0 {
		result := SolveResult{Ok: numEquations == 0, Dof: 0, Code: codeNoEquations}
		s.lastResult = &result
		return result
	}

	lambda := 1e-3
	r := s.residualVector(x, layout)
	cost := dot(r, r)

	result := SolveResult{Code: codeMaxIterHit}
	for iter := 0; iter < maxSolveIterations; iter++ {
		if math.Sqrt(cost) < solveTolerance {
			result = SolveResult{Ok: true, Code: codeConverged}
			break
		}

		J := s.jacobian(x, layout, r)
		rv := mat.NewVecDense(len(r), r)

		var jtj mat.Dense
		jtj.Mul(J.T(), J)
		var jtr mat.VecDense
		jtr.MulVec(J.T(), rv)

		improved := false
		for tries := 0; tries < 12; tries++ {
			damped := mat.NewDense(layout.n, layout.n, nil)
			damped.Copy(&jtj)
			for i := 0; i < layout.n; i++ {
				damped.Set(i, i, damped.At(i, i)+lambda)
			}

			var delta mat.VecDense
			if err := delta.SolveVec(damped, &jtr); err != nil {
				lambda *= 10
				continue
			}

			xNew := make([]float64, layout.n)
			for i := range xNew {
				xNew[i] = x[i] - delta.AtVec(i)
			}
			rNew := s.residualVector(xNew, layout)
			costNew := dot(rNew, rNew)

			if costNew < cost {
				x = xNew
				r = rNew
				cost = costNew
				lambda = math.Max(lambda/10, 1e-12)
				improved = true
				break
			}
			lambda *= 10
		}
		if !improved {
			if math.Sqrt(cost) < 1e-6 {
				result = SolveResult{Ok: true, Code: codeConverged}
			} else {
				result = SolveResult{Ok: false, Code: codeSingularStep}
			}
			break
		}
	}
	if result.Code == codeMaxIterHit {
		result.Ok = math.Sqrt(cost) < 1e-6
	}

	dof := layout.n - numEquations
	if dof < 0 {
		dof = 0
	}
	result.Dof = dof

	if result.Ok {
		s.applyParams(layout, x)
	}
	s.lastResult = &result
	return result
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
