package render

import (
	"bytes"
	"fmt"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/kiconstraint/pkg/kiconfig"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// Geometry is the capability this package needs from a mapped shape or pad:
// its points and edge lines. shapemap.MappedGeometry and padmap.MappedPad
// both satisfy this structurally, without either package importing render.
type Geometry interface {
	Points() []sketch.Point
	Lines() []sketch.Line
}

const pointRadiusPx = 3

// Render draws every point and line reachable from geoms, using s's current
// solved coordinates, and returns the SVG document as bytes.
func Render(s *sketch.Sketch, geoms []Geometry, cfg kiconfig.RenderCfg) ([]byte, error) {
	points, lines := collect(geoms)

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(cfg.Width, cfg.Height)
	canvas.Rect(0, 0, cfg.Width, cfg.Height, "fill:#ffffff")

	centerU, centerV, err := centroid(s, points)
	if err != nil {
		return nil, err
	}
	project := func(u, v float64) (int, int) {
		px := float64(cfg.Width)/2 + (u-centerU)*cfg.ScalePxPerMM
		py := float64(cfg.Height)/2 - (v-centerV)*cfg.ScalePxPerMM
		return int(math.Round(px)), int(math.Round(py))
	}

	lineStyle := fmt.Sprintf("stroke:%s;stroke-width:%.2f;fill:none", cfg.GeometryColor, cfg.StrokeWidth)
	for _, l := range lines {
		p1, p2, err := s.LineEndpoints(l)
		if err != nil {
			return nil, err
		}
		u1, v1, err := s.PointCoords(p1)
		if err != nil {
			return nil, err
		}
		u2, v2, err := s.PointCoords(p2)
		if err != nil {
			return nil, err
		}
		x1, y1 := project(u1, v1)
		x2, y2 := project(u2, v2)
		canvas.Line(x1, y1, x2, y2, lineStyle)
	}

	pointStyle := fmt.Sprintf("fill:%s;stroke:none", cfg.GeometryColor)
	for _, p := range points {
		u, v, err := s.PointCoords(p)
		if err != nil {
			return nil, err
		}
		x, y := project(u, v)
		canvas.Circle(x, y, pointRadiusPx, pointStyle)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveToFile renders and writes the SVG document to path with 0644
// permissions.
func SaveToFile(s *sketch.Sketch, geoms []Geometry, cfg kiconfig.RenderCfg, path string) error {
	data, err := Render(s, geoms, cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func collect(geoms []Geometry) ([]sketch.Point, []sketch.Line) {
	var points []sketch.Point
	var lines []sketch.Line
	seenPoints := make(map[sketch.Point]bool)
	seenLines := make(map[sketch.Line]bool)

	for _, g := range geoms {
		for _, p := range g.Points() {
			if !seenPoints[p] {
				seenPoints[p] = true
				points = append(points, p)
			}
		}
		for _, l := range g.Lines() {
			if !seenLines[l] {
				seenLines[l] = true
				lines = append(lines, l)
			}
		}
	}
	return points, lines
}

// centroid averages every point's solved coordinates, so the drawing is
// centered on the geometry regardless of where it sits in sketch space.
func centroid(s *sketch.Sketch, points []sketch.Point) (u, v float64, err error) {
	if len(points) == 0 {
		return 0, 0, nil
	}
	var su, sv float64
	for _, p := range points {
		pu, pv, err := s.PointCoords(p)
		if err != nil {
			return 0, 0, err
		}
		su += pu
		sv += pv
	}
	n := float64(len(points))
	return su / n, sv / n, nil
}
