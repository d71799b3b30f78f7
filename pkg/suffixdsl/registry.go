package suffixdsl

import "github.com/dshills/kiconstraint/pkg/sketch"

// Registry holds the named edges and points a suffix token's func-form
// argument resolves against. The dimension mapper owns and populates one
// registry per board; lookups here are by exact name.
type Registry struct {
	Points map[string]sketch.Point
	Edges  map[string]sketch.Line
}

// NewRegistry returns an empty Registry ready for population.
func NewRegistry() *Registry {
	return &Registry{
		Points: make(map[string]sketch.Point),
		Edges:  make(map[string]sketch.Line),
	}
}

func (r *Registry) edge(name, ctx string) (sketch.Line, error) {
	l, ok := r.Edges[name]
	if !ok {
		return 0, &UnknownReferenceError{Name: name, Context: ctx}
	}
	return l, nil
}

func (r *Registry) point(name, ctx string) (sketch.Point, error) {
	p, ok := r.Points[name]
	if !ok {
		return 0, &UnknownReferenceError{Name: name, Context: ctx}
	}
	return p, nil
}
