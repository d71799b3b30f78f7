package suffixdsl

// EmptyTokenError reports a zero-length token between two commas (e.g.
// "v,,h").
type EmptyTokenError struct{}

func (e *EmptyTokenError) Error() string { return "suffixdsl: empty token" }

// UnrecognizedTokenError reports a token that matches none of the lexical
// grammar's alternatives.
type UnrecognizedTokenError struct {
	Text string
}

func (e *UnrecognizedTokenError) Error() string {
	return "suffixdsl: unrecognized token " + e.Text
}

// UnknownConstraintError reports a func-form token whose identifier is not
// one of the known constraint names or aliases.
type UnknownConstraintError struct {
	Name string
}

func (e *UnknownConstraintError) Error() string {
	return "suffixdsl: unknown constraint " + e.Name
}

// UnknownReferenceError reports a func-form token whose argument does not
// resolve in the registry for the context it was applied in (e.g.
// par(unknown)).
type UnknownReferenceError struct {
	Name    string
	Context string
}

func (e *UnknownReferenceError) Error() string {
	return "suffixdsl: unknown reference " + e.Name + " in " + e.Context
}

// WrongContextError reports a constraint applied to an entity kind it does
// not support (e.g. a point-only constraint applied to a line).
type WrongContextError struct {
	Kind      string
	AppliedTo string
}

func (e *WrongContextError) Error() string {
	return "suffixdsl: " + e.Kind + " cannot apply to " + e.AppliedTo
}
