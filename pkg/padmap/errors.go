package padmap

// UnsupportedPadShapeError names a pad layer shape kind the mapper drops
// rather than maps (UNKNOWN, OVAL, or a CUSTOM layer whose anchor shape is
// neither circle nor rectangle). MapPad drops such layers silently and does
// not return this error.
type UnsupportedPadShapeError struct {
	Kind string
}

func (e *UnsupportedPadShapeError) Error() string {
	return "padmap: unsupported pad layer shape " + e.Kind
}
