package suffixdsl

import (
	"strconv"
	"strings"
)

// Tokenize splits a suffix string on commas and trims surrounding
// whitespace from each piece. An empty suffix yields zero tokens; a
// genuinely empty piece between commas (e.g. "v,,h") is a parse error.
func Tokenize(suffix string) ([]string, error) {
	if strings.TrimSpace(suffix) == "" {
		return nil, nil
	}
	parts := strings.Split(suffix, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			return nil, &EmptyTokenError{}
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// ParseToken parses a single trimmed token into its ConstraintSpec.
func ParseToken(raw string) (ConstraintSpec, error) {
	if strings.HasPrefix(raw, "=") && strings.HasSuffix(raw, "mm") {
		numText := raw[1 : len(raw)-2]
		n, err := strconv.ParseFloat(numText, 64)
		if err != nil || numText == "" {
			return nil, &UnrecognizedTokenError{Text: raw}
		}
		return newDistanceSpec(n), nil
	}

	switch raw {
	case "v", "vert":
		return newVerticalSpec(), nil
	case "h", "horiz":
		return newHorizontalSpec(), nil
	}

	if open := strings.IndexByte(raw, '('); open >= 0 && strings.HasSuffix(raw, ")") {
		name := raw[:open]
		arg := raw[open+1 : len(raw)-1]
		if name == "" || arg == "" {
			return nil, &UnrecognizedTokenError{Text: raw}
		}
		switch name {
		case "p", "par":
			return newParallelSpec(arg), nil
		case "x", "perp":
			return newPerpendicularSpec(arg), nil
		case "c", "coin":
			return newCoincidentSpec(arg), nil
		case "e", "eq":
			return newEqualSpec(arg), nil
		case "m", "mid":
			return newMidpointSpec(arg), nil
		default:
			return nil, &UnknownConstraintError{Name: name}
		}
	}

	return nil, &UnrecognizedTokenError{Text: raw}
}

// Parse tokenizes and parses a full suffix string into an ordered list of
// constraint specs.
func Parse(suffix string) ([]ConstraintSpec, error) {
	tokens, err := Tokenize(suffix)
	if err != nil {
		return nil, err
	}
	specs := make([]ConstraintSpec, 0, len(tokens))
	for _, t := range tokens {
		sp, err := ParseToken(t)
		if err != nil {
			return nil, err
		}
		specs = append(specs, sp)
	}
	return specs, nil
}

// Serialize renders specs back into suffix text; re-parsing the result
// yields an equal spec list, per the idempotence invariant.
func Serialize(specs []ConstraintSpec) string {
	parts := make([]string, len(specs))
	for i, sp := range specs {
		parts[i] = tokenText(sp)
	}
	return strings.Join(parts, ",")
}

func tokenText(sp ConstraintSpec) string {
	switch v := sp.(type) {
	case DistanceSpec:
		return "=" + strconv.FormatFloat(v.N, 'f', -1, 64) + "mm"
	case VerticalSpec:
		return "v"
	case HorizontalSpec:
		return "h"
	case ParallelSpec:
		return "p(" + v.Ref + ")"
	case PerpendicularSpec:
		return "x(" + v.Ref + ")"
	case CoincidentSpec:
		return "c(" + v.Ref + ")"
	case EqualSpec:
		return "e(" + v.Ref + ")"
	case MidpointSpec:
		return "m(" + v.Ref + ")"
	default:
		return ""
	}
}
