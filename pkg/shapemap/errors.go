package shapemap

import "fmt"

// UnsupportedShapeError is returned when MapShape is given a primitive
// variant the shape mapper cannot decompose, such as a polygon.
type UnsupportedShapeError struct {
	Kind string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("shapemap: unsupported shape kind %q", e.Kind)
}
