package render

import (
	"bytes"
	"testing"

	"github.com/dshills/kiconstraint/pkg/kiconfig"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

type fakeGeometry struct {
	points []sketch.Point
	lines  []sketch.Line
}

func (f fakeGeometry) Points() []sketch.Point { return f.points }
func (f fakeGeometry) Lines() []sketch.Line   { return f.lines }

func TestRenderProducesWellFormedSVG(t *testing.T) {
	s := sketch.New()
	p1 := s.Point(0, 0, true)
	p2 := s.Point(10, 0, true)
	p3 := s.Point(10, 10, true)
	l1, err := s.Line(p1, p2)
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	l2, err := s.Line(p2, p3)
	if err != nil {
		t.Fatalf("Line: %v", err)
	}

	geoms := []Geometry{fakeGeometry{
		points: []sketch.Point{p1, p2, p3},
		lines:  []sketch.Line{l1, l2},
	}}

	data, err := Render(s, geoms, kiconfig.DefaultConfig().Render)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("expected output to contain an <svg> tag")
	}
	if !bytes.HasSuffix(bytes.TrimSpace(data), []byte("</svg>")) {
		t.Error("expected output to end with </svg>")
	}
	if n := bytes.Count(data, []byte("<line")); n != 2 {
		t.Errorf("expected 2 <line> elements, got %d", n)
	}
	if n := bytes.Count(data, []byte("<circle")); n != 3 {
		t.Errorf("expected 3 <circle> elements, got %d", n)
	}
}

func TestRenderDeduplicatesSharedPointsAndLines(t *testing.T) {
	s := sketch.New()
	p1 := s.Point(0, 0, true)
	p2 := s.Point(5, 0, true)
	l, err := s.Line(p1, p2)
	if err != nil {
		t.Fatalf("Line: %v", err)
	}

	shared := fakeGeometry{points: []sketch.Point{p1, p2}, lines: []sketch.Line{l}}
	geoms := []Geometry{shared, shared}

	data, err := Render(s, geoms, kiconfig.DefaultConfig().Render)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := bytes.Count(data, []byte("<line")); n != 1 {
		t.Errorf("expected deduplication to 1 <line> element, got %d", n)
	}
	if n := bytes.Count(data, []byte("<circle")); n != 2 {
		t.Errorf("expected deduplication to 2 <circle> elements, got %d", n)
	}
}

func TestRenderEmptySceneProducesBareCanvas(t *testing.T) {
	s := sketch.New()
	data, err := Render(s, nil, kiconfig.DefaultConfig().Render)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("expected output to contain an <svg> tag even with no geometry")
	}
}
