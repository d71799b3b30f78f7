package dimension

import (
	"math"
	"strings"

	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/sketch"
)

// DefaultTolerance is the default euclidean point-match tolerance (0.1 µm),
// per §6.
const DefaultTolerance = 1e-4

// Geometry is the capability a mapped shape or pad exposes for dimension
// binding: its points and edge lines. shapemap.MappedGeometry and
// padmap.MappedPad both satisfy this structurally.
type Geometry interface {
	Points() []sketch.Point
	Lines() []sketch.Line
}

type edgeEntry struct {
	dim  board.Dimension
	line sketch.Line
}

type pointEntry struct {
	dim   board.Dimension
	point sketch.Point
	isEnd bool // true if bound as the ":end" half of an aligned/orthogonal pair
}

// binding is the full phase-1 resolution for one dimension (named or not),
// used by phase 2 to pick a dispatch target independent of what ended up in
// the name registry. name is "<unnamed>" for a dimension that never opted
// into the registry.
type binding struct {
	name     string
	dim      board.Dimension
	line     sketch.Line
	hasLine  bool
	start    sketch.Point
	hasStart bool
	end      sketch.Point
	hasEnd   bool
}

// Mapping is the registry built by phase 1: named edges and points plus
// every point known to the board, for name resolution in the suffix DSL and
// writeback.
type Mapping struct {
	allPoints []sketch.Point
	edgeIndex map[[2]sketch.Point]sketch.Line

	edges  map[string]edgeEntry
	points map[string]pointEntry

	extraPoints []sketch.Point
	bindings    []binding
}

func requireOkSolve(s *sketch.Sketch) error {
	res := s.LastResult()
	if res == nil || !res.Ok {
		code := -1
		if res != nil {
			code = res.Code
		}
		return &sketch.SolveNotSuccessfulError{Code: code}
	}
	return nil
}

func edgeKey(a, b sketch.Point) [2]sketch.Point {
	if a > b {
		a, b = b, a
	}
	return [2]sketch.Point{a, b}
}

// findPoint returns the first point in pts within tolerance of (u,v),
// ties resolved by insertion order (invariant 6).
func findPoint(s *sketch.Sketch, pts []sketch.Point, u, v, tolerance float64) (sketch.Point, bool) {
	for _, p := range pts {
		pu, pv, err := s.PointCoords(p)
		if err != nil {
			continue
		}
		if math.Hypot(pu-u, pv-v) <= tolerance {
			return p, true
		}
	}
	return 0, false
}

// BuildMapping runs phase 1: it flattens every mapped geometry's points and
// edges, synthesizes and pins a point for each center dimension, then binds
// every aligned/orthogonal/leader dimension whose endpoints resolve to an
// edge or point. Only dimensions that additionally opt in by name (see
// dimensionName) are entered into the edges/points registry used for
// cross-dimension references; every resolved dimension still gets a
// binding for phase 2's suffix application, named or not.
func BuildMapping(s *sketch.Sketch, dims []board.Dimension, geoms []Geometry, tolerance float64) (*Mapping, error) {
	m := &Mapping{
		edgeIndex: make(map[[2]sketch.Point]sketch.Line),
		edges:     make(map[string]edgeEntry),
		points:    make(map[string]pointEntry),
	}

	for _, g := range geoms {
		m.allPoints = append(m.allPoints, g.Points()...)
		for _, l := range g.Lines() {
			p1, p2, err := s.LineEndpoints(l)
			if err != nil {
				return nil, err
			}
			m.edgeIndex[edgeKey(p1, p2)] = l
		}
	}

	for _, d := range dims {
		center, ok := d.(*board.DimensionCenter)
		if !ok {
			continue
		}
		cu, cv := center.Center.MM()
		p := s.Point(cu, cv, true)
		m.allPoints = append(m.allPoints, p)
		m.extraPoints = append(m.extraPoints, p)
	}

	// Phase 2 (see apply.go) must see every dimension whose endpoints
	// resolve, not only the ones that opted into the name registry (spec.md
	// §4.4: "Iterate all dimensions (named or not)"). dimensionName's ok
	// only gates registry population below; it never gates binding.
	for _, d := range dims {
		name, named := dimensionName(d)
		switch v := d.(type) {
		case *board.DimensionAligned:
			m.bindEdgeOrPoints(s, name, named, v, v.Start, v.End, tolerance)
		case *board.DimensionOrthogonal:
			m.bindEdgeOrPoints(s, name, named, v, v.Start, v.End, tolerance)
		case *board.DimensionLeader:
			su, sv := v.Start.MM()
			if p, ok := findPoint(s, m.allPoints, su, sv, tolerance); ok {
				if named {
					m.points[name] = pointEntry{dim: v, point: p}
				}
				m.bindings = append(m.bindings, binding{name: bindingLabel(name, named), dim: v, start: p, hasStart: true})
			}
		}
	}

	return m, nil
}

// bindingLabel is the name used in error messages and binding records: the
// extracted name, or "<unnamed>" per spec.md §4.4.
func bindingLabel(name string, named bool) string {
	if !named {
		return "<unnamed>"
	}
	return name
}

func (m *Mapping) bindEdgeOrPoints(s *sketch.Sketch, name string, named bool, dim board.Dimension, start, end board.Vec2I, tolerance float64) {
	su, sv := start.MM()
	eu, ev := end.MM()
	pStart, okStart := findPoint(s, m.allPoints, su, sv, tolerance)
	pEnd, okEnd := findPoint(s, m.allPoints, eu, ev, tolerance)

	b := binding{name: bindingLabel(name, named), dim: dim, start: pStart, hasStart: okStart, end: pEnd, hasEnd: okEnd}

	if okStart && okEnd {
		if line, found := m.edgeIndex[edgeKey(pStart, pEnd)]; found {
			if named {
				m.edges[name] = edgeEntry{dim: dim, line: line}
			}
			b.line, b.hasLine = line, true
		}
	}
	if named {
		if okStart {
			m.points[name+":start"] = pointEntry{dim: dim, point: pStart}
		}
		if okEnd {
			m.points[name+":end"] = pointEntry{dim: dim, point: pEnd, isEnd: true}
		}
	}
	if b.hasLine || b.hasStart || b.hasEnd {
		m.bindings = append(m.bindings, b)
	}
}

// dimensionName extracts a dimension's registry name. Center, radial, and
// unknown dimensions never opt in.
func dimensionName(d board.Dimension) (string, bool) {
	switch v := d.(type) {
	case *board.DimensionAligned:
		return prefixName(v.Prefix)
	case *board.DimensionOrthogonal:
		return prefixName(v.Prefix)
	case *board.DimensionLeader:
		return leaderName(v.OverrideText)
	default:
		return "", false
	}
}

func prefixName(prefix string) (string, bool) {
	if !strings.HasSuffix(prefix, ":") {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimSuffix(prefix, ":"))
	return name, name != ""
}

func leaderName(overrideText string) (string, bool) {
	head, _, _ := strings.Cut(overrideText, ",")
	name := strings.TrimSpace(head)
	return name, name != ""
}

// leaderSuffix returns the suffix portion of a leader's override text, or
// "" if no comma separates a suffix from the name.
func leaderSuffix(overrideText string) string {
	_, tail, found := strings.Cut(overrideText, ",")
	if !found {
		return ""
	}
	return tail
}
