package datacontext

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gobeam/stringy"
)

type NamingStrategy string

const NAMING_STRATEGY_NO_CHANGE = "no_change"
const NAMING_STRATEGY_SNAKE_CASE = "snake_case"

func normalizeName(strategy NamingStrategy, name string) string {
	if strategy == NAMING_STRATEGY_SNAKE_CASE {
		return stringy.New(name).SnakeCase("?", "").ToLower()
	}
	return name
}

type operandKind int

const (
	operandMember operandKind = iota
	operandValue
)

// operand is the resolved form of one sub-tree: either the filter target
// (a parameter-rooted member) or a concrete value.
type operand struct {
	kind   operandKind
	member string
	param  string
	value  any
}

func (o operand) isMember() bool { return o.kind == operandMember }

// resolveOperand classifies a sub-tree per the closed shapes: literal,
// captured value (evaluated reflectively), or parameter-rooted member chain.
func resolveOperand(ctx *TranslationContext, strategy NamingStrategy, e Expr) (operand, error) {
	switch x := e.(type) {
	case LiteralExpr:
		return operand{kind: operandValue, value: x.Value}, nil
	case CapturedExpr:
		return operand{kind: operandValue, value: x.Container}, nil
	case MemberExpr:
		return resolveMember(ctx, strategy, x)
	case UnaryExpr:
		if x.Op == OperatorConvert {
			return resolveOperand(ctx, strategy, x.Operand)
		}
	case CoalesceExpr:
		left, err := resolveOperand(ctx, strategy, x.Left)
		if err != nil {
			return operand{}, err
		}
		if left.isMember() || !isNilAny(left.value) {
			return left, nil
		}
		return resolveOperand(ctx, strategy, x.Right)
	}
	return operand{}, &InvalidOperandShapeError{
		Kind:   exprKind(e),
		Detail: "expected a literal, a captured value, or a parameter-rooted member access",
	}
}

func resolveMember(ctx *TranslationContext, strategy NamingStrategy, m MemberExpr) (operand, error) {
	root, names := memberChain(m)

	switch r := root.(type) {
	case ParamExpr:
		for _, n := range names {
			ctx.PushMember(n)
		}
		segs := make([]string, len(names))
		for i, n := range names {
			segs[i] = normalizeName(strategy, n)
		}
		op := operand{
			kind:   operandMember,
			member: strings.Join(segs, "."),
			param:  strings.Join(segs, "_"),
		}
		for range names {
			if _, err := ctx.PopMember(); err != nil {
				return operand{}, err
			}
		}
		return op, nil
	case CapturedExpr:
		v, err := evalCaptured(r.Container, names)
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandValue, value: v}, nil
	default:
		return operand{}, &InvalidOperandShapeError{
			Kind:   exprKind(root),
			Detail: "member chain must be rooted at the record parameter or a captured value",
		}
	}
}

// memberChain unwinds a nested member access into its root and the member
// names in navigation order.
func memberChain(m MemberExpr) (Expr, []string) {
	var names []string
	var cur Expr = m
	for {
		mm, ok := cur.(MemberExpr)
		if !ok {
			break
		}
		names = append([]string{mm.Name}, names...)
		cur = mm.Target
	}
	return cur, names
}

// evalCaptured navigates a captured container by member names using
// reflection: pointer/interface deref, struct fields, string-keyed maps.
func evalCaptured(container any, path []string) (any, error) {
	v := reflect.ValueOf(container)
	for _, name := range path {
		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return nil, &InvalidOperandShapeError{
					Kind:   "MemberExpr",
					Detail: fmt.Sprintf("nil dereference resolving captured member %q", name),
				}
			}
			v = v.Elem()
		}
		switch v.Kind() {
		case reflect.Struct:
			f := v.FieldByName(name)
			if !f.IsValid() {
				return nil, &InvalidOperandShapeError{
					Kind:   "MemberExpr",
					Detail: fmt.Sprintf("captured %s has no member %q", v.Type(), name),
				}
			}
			v = f
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return nil, &InvalidOperandShapeError{
					Kind:   "MemberExpr",
					Detail: fmt.Sprintf("captured map %s is not string keyed", v.Type()),
				}
			}
			v = v.MapIndex(reflect.ValueOf(name))
			if !v.IsValid() {
				return nil, nil
			}
		default:
			return nil, &InvalidOperandShapeError{
				Kind:   "MemberExpr",
				Detail: fmt.Sprintf("cannot navigate %q into captured %s", name, v.Kind()),
			}
		}
	}
	if !v.IsValid() {
		return nil, nil
	}
	return v.Interface(), nil
}

// flattenValues turns a captured collection into a flat ordered slice of
// scalars: arrays and slices recurse, pointers deref, anything else is a
// single-element fallback. Strings and byte slices count as scalars.
func flattenValues(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return []any{rv.Interface()}
		}
		out := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, flattenValues(rv.Index(i).Interface())...)
		}
		return out
	default:
		return []any{rv.Interface()}
	}
}

// isNilAny catches both untyped nil and typed nil pointers boxed in any.
func isNilAny(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func exprKind(e Expr) string {
	switch e.(type) {
	case ParamExpr:
		return "ParamExpr"
	case MemberExpr:
		return "MemberExpr"
	case LiteralExpr:
		return "LiteralExpr"
	case CapturedExpr:
		return "CapturedExpr"
	case BinaryExpr:
		return "BinaryExpr"
	case UnaryExpr:
		return "UnaryExpr"
	case CallExpr:
		return "CallExpr"
	case CoalesceExpr:
		return "CoalesceExpr"
	case ConditionalExpr:
		return "ConditionalExpr"
	default:
		return fmt.Sprintf("%T", e)
	}
}
