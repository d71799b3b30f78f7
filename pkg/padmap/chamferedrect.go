package padmap

import (
	"math"

	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// chamferCorner is one of a chamfered rectangle's four corners. When the
// corner is not chamfered, pH and pV both alias corner and hConstruction /
// vConstruction are unset, so the shared edge lines degrade to running
// corner-to-corner exactly as an ordinary rectangle would.
type chamferCorner struct {
	corner                       sketch.Point
	pH, pV                       sketch.Point
	hConstruction, vConstruction sketch.Line
	chamfered                    bool
}

// MappedPadChamferedRect is a rectangular copper layer with zero to four
// chamfered corners. Corners are indexed in top-left, top-right,
// bottom-left, bottom-right order throughout, matching board.ChamferCorners.
type MappedPadChamferedRect struct {
	corners                  [4]chamferCorner
	top, right, bottom, left sketch.Line
	tm, lm, rm, bm            sketch.Point
	globalHoriz, globalVert   sketch.Line
	intrinsic                 []sketch.Constraint
}

func mapPadChamferedRect(s *sketch.Sketch, center sketch.Point, cu, cv float64, layer *board.PadLayer) (*MappedPadChamferedRect, error) {
	sx, sy := layer.Size.MM()
	hw, hh := sx/2, sy/2
	chamferDist := math.Min(sx, sy) * layer.ChamferRatio

	corners := [4]sketch.Point{
		s.Point(cu-hw, cv-hh, false), // tl
		s.Point(cu+hw, cv-hh, false), // tr
		s.Point(cu-hw, cv+hh, false), // bl
		s.Point(cu+hw, cv+hh, false), // br
	}
	flags := [4]bool{
		layer.ChamferedCorners.TopLeft,
		layer.ChamferedCorners.TopRight,
		layer.ChamferedCorners.BottomLeft,
		layer.ChamferedCorners.BottomRight,
	}
	// offsets toward the interior along the horizontal and vertical edges
	// meeting at each corner.
	hOffset := [4]float64{chamferDist, -chamferDist, chamferDist, -chamferDist}
	vOffset := [4]float64{chamferDist, chamferDist, -chamferDist, -chamferDist}

	var built [4]chamferCorner
	var chamferedIdx []int
	for i := 0; i < 4; i++ {
		c := corners[i]
		if !flags[i] {
			built[i] = chamferCorner{corner: c, pH: c, pV: c}
			continue
		}
		ccu, ccv, err := s.PointCoords(c)
		if err != nil {
			return nil, err
		}
		pH := s.Point(ccu+hOffset[i], ccv, false)
		pV := s.Point(ccu, ccv+vOffset[i], false)
		hc, err := s.Line(c, pH)
		if err != nil {
			return nil, err
		}
		vc, err := s.Line(c, pV)
		if err != nil {
			return nil, err
		}
		built[i] = chamferCorner{corner: c, pH: pH, pV: pV, hConstruction: hc, vConstruction: vc, chamfered: true}
		chamferedIdx = append(chamferedIdx, i)
	}

	const (
		tl, tr, bl, br = 0, 1, 2, 3
	)
	top, err := s.Line(built[tr].pH, built[tl].pH)
	if err != nil {
		return nil, err
	}
	left, err := s.Line(built[tl].pV, built[bl].pV)
	if err != nil {
		return nil, err
	}
	right, err := s.Line(built[tr].pV, built[br].pV)
	if err != nil {
		return nil, err
	}
	bottom, err := s.Line(built[bl].pH, built[br].pH)
	if err != nil {
		return nil, err
	}

	tmU, tmV, err := midpointCoords(s, built[tr].pH, built[tl].pH)
	if err != nil {
		return nil, err
	}
	lmU, lmV, err := midpointCoords(s, built[tl].pV, built[bl].pV)
	if err != nil {
		return nil, err
	}
	rmU, rmV, err := midpointCoords(s, built[tr].pV, built[br].pV)
	if err != nil {
		return nil, err
	}
	bmU, bmV, err := midpointCoords(s, built[bl].pH, built[br].pH)
	if err != nil {
		return nil, err
	}
	tm := s.Point(tmU, tmV, false)
	lm := s.Point(lmU, lmV, false)
	rm := s.Point(rmU, rmV, false)
	bm := s.Point(bmU, bmV, false)

	globalHoriz, err := s.Line(lm, rm)
	if err != nil {
		return nil, err
	}
	globalVert, err := s.Line(tm, bm)
	if err != nil {
		return nil, err
	}

	m := &MappedPadChamferedRect{
		corners:     built,
		top:         top,
		right:       right,
		bottom:      bottom,
		left:        left,
		tm:          tm,
		lm:          lm,
		rm:          rm,
		bm:          bm,
		globalHoriz: globalHoriz,
		globalVert:  globalVert,
	}

	var intrinsic []sketch.Constraint
	for _, i := range chamferedIdx {
		eq, _ := s.Equal(built[i].hConstruction, built[i].vConstruction)
		intrinsic = append(intrinsic, eq)
	}
	for j := 1; j < len(chamferedIdx); j++ {
		prev, cur := chamferedIdx[j-1], chamferedIdx[j]
		eq, _ := s.Equal(built[cur].vConstruction, built[prev].vConstruction)
		intrinsic = append(intrinsic, eq)
	}
	intrinsic = append(intrinsic,
		s.Midpoint(tm, top),
		s.Midpoint(lm, left),
		s.Midpoint(rm, right),
		s.Midpoint(bm, bottom),
		s.Midpoint(center, globalVert),
		s.Midpoint(center, globalHoriz),
		s.Perpendicular(globalHoriz, globalVert, false),
		s.Parallel(globalHoriz, top, false),
		s.Parallel(globalHoriz, bottom, false),
		s.Parallel(globalVert, left, false),
		s.Parallel(globalVert, right, false),
	)
	for _, i := range chamferedIdx {
		intrinsic = append(intrinsic,
			s.Parallel(globalVert, built[i].vConstruction, false),
			s.Parallel(globalHoriz, built[i].hConstruction, false),
		)
	}
	m.intrinsic = intrinsic

	return m, nil
}

// Points returns the four corners, any chamfer points, and the four edge
// midpoints.
func (m *MappedPadChamferedRect) Points() []sketch.Point {
	pts := make([]sketch.Point, 0, 16)
	for _, c := range m.corners {
		pts = append(pts, c.corner)
		if c.chamfered {
			pts = append(pts, c.pH, c.pV)
		}
	}
	return append(pts, m.tm, m.lm, m.rm, m.bm)
}

// Lines returns (top, right, bottom, left), the two center construction
// lines, and each chamfered corner's horizontal and vertical construction
// lines. No line joins a corner's two chamfer points.
func (m *MappedPadChamferedRect) Lines() []sketch.Line {
	lines := []sketch.Line{m.top, m.right, m.bottom, m.left, m.globalHoriz, m.globalVert}
	for _, c := range m.corners {
		if c.chamfered {
			lines = append(lines, c.hConstruction, c.vConstruction)
		}
	}
	return lines
}

// Intrinsic returns the chamfer-equality, centering, and axis-alignment
// constraints.
func (m *MappedPadChamferedRect) Intrinsic() []sketch.Constraint { return m.intrinsic }

// WriteBackLayer recovers width and height from the edge midpoints, and the
// chamfer ratio from the first chamfered corner, if any.
func (m *MappedPadChamferedRect) WriteBackLayer(s *sketch.Sketch, layer *board.PadLayer) error {
	width, err := pointDist(s, m.lm, m.rm)
	if err != nil {
		return err
	}
	height, err := pointDist(s, m.tm, m.bm)
	if err != nil {
		return err
	}
	layer.Size = board.FromMM(width, height)

	for _, c := range m.corners {
		if !c.chamfered {
			continue
		}
		hLen, err := lineLen(s, c.hConstruction)
		if err != nil {
			return err
		}
		layer.ChamferRatio = hLen / math.Min(width, height)
		break
	}
	return nil
}
