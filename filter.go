package apihelper

import (
	"regexp"
	"strings"
)

// Op is the closed set of filter operators. The condition grammar's function
// names map onto it with an exhaustive switch so an operator added here
// without wiring fails to compile, instead of being dropped at runtime the
// way a string-keyed dispatch table would drop it.
type Op int

const (
	OpIn Op = iota // literal/list form: field equals one of the values
	OpNotIn
	OpGreater
	OpLess
	OpGreaterOrEqual
	OpLessOrEqual
	OpBetween
	OpLike
	OpContains
	OpNull
	OpBlank
)

func (op Op) String() string {
	switch op {
	case OpIn:
		return "in"
	case OpNotIn:
		return "not_in"
	case OpGreater:
		return "greater"
	case OpLess:
		return "less"
	case OpGreaterOrEqual:
		return "greater_or_equal"
	case OpLessOrEqual:
		return "less_or_equal"
	case OpBetween:
		return "between"
	case OpLike:
		return "like"
	case OpContains:
		return "contains"
	case OpNull:
		return "null"
	case OpBlank:
		return "blank"
	}
	return "unknown"
}

// PredicateOp is one structured, parameterized condition: field, operator
// and typed arguments. It is never a pre-formatted query fragment; escaping
// and parameterization stay with the collection collaborator.
type PredicateOp struct {
	Field  string
	Op     Op
	Values []any
}

// FieldType is the primitive type a schema collaborator declares for a
// field. The filter compiler only needs to tell booleans apart; the rest is
// carried through for collaborators that care.
type FieldType string

const (
	TypeBoolean FieldType = "boolean"
	TypeInteger FieldType = "integer"
	TypeFloat   FieldType = "float"
	TypeString  FieldType = "string"
	TypeTime    FieldType = "time"
)

// FieldTypeFunc resolves a field name to its declared type. ok=false marks
// an unknown field, whose conditions are skipped.
type FieldTypeFunc func(field string) (ft FieldType, ok bool)

// name(args) with args possibly empty
var funcCallRe = regexp.MustCompile(`^(\w+)\((.*)\)$`)

// CompileFilter turns filter parameters into a sequence of predicate
// operations combined with logical AND.
//
// Conditions on fields outside the filterable whitelist (when non-empty) or
// unknown to the schema are skipped without error, so query strings may
// carry unrelated parameters. Unrecognized function names and malformed
// argument lists drop the single condition the same way.
func CompileFilter(filters []FilterParam, filterable []string, typeOf FieldTypeFunc) []PredicateOp {
	allowed := NewFieldSet(filterable...)

	var ops []PredicateOp
	for _, f := range filters {
		if len(filterable) > 0 && !allowed.Has(f.Field) {
			continue
		}
		if typeOf == nil {
			continue
		}
		ft, ok := typeOf(f.Field)
		if !ok {
			continue
		}
		if op, ok := parseCondition(f.Field, f.Condition, ft); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// parseCondition parses one condition string: function-call form when it
// matches name(args), plain comma-list equality otherwise.
func parseCondition(field, cond string, ft FieldType) (PredicateOp, bool) {
	m := funcCallRe.FindStringSubmatch(cond)
	if m == nil {
		// Literal/list form. No splitList here: an empty condition is one
		// empty literal, which a boolean field coerces to false.
		return PredicateOp{Field: field, Op: OpIn, Values: coerceValues(strings.Split(cond, ","), ft)}, true
	}

	name, rawArgs := m[1], m[2]
	args := splitList(rawArgs)

	switch name {
	case "not":
		if len(args) == 0 {
			return PredicateOp{}, false
		}
		return PredicateOp{Field: field, Op: OpNotIn, Values: coerceValues(args, ft)}, true
	case "greater_then":
		return comparison(field, OpGreater, rawArgs, ft)
	case "less_then":
		return comparison(field, OpLess, rawArgs, ft)
	case "greater_then_or_equal":
		return comparison(field, OpGreaterOrEqual, rawArgs, ft)
	case "less_then_or_equal":
		return comparison(field, OpLessOrEqual, rawArgs, ft)
	case "between":
		if len(args) != 2 {
			return PredicateOp{}, false
		}
		return PredicateOp{Field: field, Op: OpBetween, Values: coerceValues(args, ft)}, true
	case "like":
		if rawArgs == "" {
			return PredicateOp{}, false
		}
		return PredicateOp{Field: field, Op: OpLike, Values: []any{rawArgs}}, true
	case "contains":
		if rawArgs == "" {
			return PredicateOp{}, false
		}
		return PredicateOp{Field: field, Op: OpContains, Values: []any{rawArgs}}, true
	case "null":
		return PredicateOp{Field: field, Op: OpNull}, true
	case "blank":
		return PredicateOp{Field: field, Op: OpBlank}, true
	}
	// Unrecognized function: the condition is dropped, not an error.
	// Clients rely on harmless-ignore for forward compatibility.
	return PredicateOp{}, false
}

// comparison builds a single-argument comparison predicate. The whole
// argument string is the one argument, commas included.
func comparison(field string, op Op, arg string, ft FieldType) (PredicateOp, bool) {
	if arg == "" {
		return PredicateOp{}, false
	}
	return PredicateOp{Field: field, Op: op, Values: []any{coerceValue(arg, ft)}}, true
}

func coerceValues(vals []string, ft FieldType) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = coerceValue(v, ft)
	}
	return out
}

// coerceValue applies declared-type coercion to one literal. Booleans use
// the strict rule: the string "true" is true, every other string is false.
// Other types pass through as strings and are cast by the database.
func coerceValue(v string, ft FieldType) any {
	if ft == TypeBoolean {
		return v == "true"
	}
	return v
}

// SanitizeIdent strips every character that cannot appear in a column
// identifier. Compiled predicates carry the raw field name; collaborators
// run it through this before embedding it in a query fragment.
func SanitizeIdent(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
