package sketch

import "fmt"

// UnknownHandleError is returned when an operation references a handle that
// does not belong to the sketch it was invoked on.
type UnknownHandleError struct {
	Handle Handle
	Kind   EntityKind
}

func (e *UnknownHandleError) Error() string {
	return fmt.Sprintf("sketch: unknown %s handle %d", e.Kind, e.Handle)
}

// SolveNotSuccessfulError is returned by writeback-style operations when the
// sketch's last solve did not converge. Writeback must never run against
// variables that were not produced by an ok solve.
type SolveNotSuccessfulError struct {
	Code int
}

func (e *SolveNotSuccessfulError) Error() string {
	return fmt.Sprintf("sketch: writeback attempted without a successful solve (code=%d)", e.Code)
}

// DegenerateGeometryError is returned when solved coordinates cannot describe
// a valid entity, e.g. an arc whose radius has collapsed to zero at
// writeback.
type DegenerateGeometryError struct {
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("sketch: degenerate geometry: %s", e.Reason)
}
