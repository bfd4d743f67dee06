package datacontext

import "reflect"

// Translator walks typed predicate trees and accumulates filter actions and
// named parameters into its TranslationContext. One instance per query-build
// call; not safe for concurrent use and not meant to be shared.
type Translator interface {
	Translate(root Expr) error
	Context() *TranslationContext
	SetNamingStrategy(strategy NamingStrategy)
	GetNamingStrategy() NamingStrategy
	Clear()
}

type translator struct {
	ctx    *TranslationContext
	naming NamingStrategy
}

func New() Translator {
	return &translator{
		ctx:    NewTranslationContext(),
		naming: NAMING_STRATEGY_SNAKE_CASE,
	}
}

// Translate walks root into a scratch context and commits on success, so a
// failed pass leaves no partial actions visible.
func (t *translator) Translate(root Expr) error {
	scratch := NewTranslationContext()
	w := &walker{ctx: scratch, naming: t.naming}
	if err := w.walkPredicate(root); err != nil {
		return err
	}
	return t.ctx.commit(scratch)
}

func (t *translator) Context() *TranslationContext {
	return t.ctx
}

func (t *translator) SetNamingStrategy(strategy NamingStrategy) {
	t.naming = strategy
}

func (t *translator) GetNamingStrategy() NamingStrategy {
	return t.naming
}

func (t *translator) Clear() {
	t.ctx.Clear()
}

type walker struct {
	ctx    *TranslationContext
	naming NamingStrategy
}

// walkPredicate dispatches one predicate node. Boolean-constant folding runs
// first so dead sub-trees never emit actions or bind parameters.
func (w *walker) walkPredicate(e Expr) error {
	if b, ok := foldBool(e); ok {
		w.ctx.AddWhereAction(ConstOp{Value: b})
		return nil
	}
	switch x := e.(type) {
	case BinaryExpr:
		switch x.Op {
		case OperatorEq, OperatorNeq:
			return w.processEquality(x)
		case OperatorGt, OperatorGte, OperatorLt, OperatorLte:
			return w.processComparison(x)
		case OperatorAnd, OperatorOr:
			return w.processLogical(x)
		default:
			return w.unsupported("BinaryExpr", x.Op)
		}
	case UnaryExpr:
		switch x.Op {
		case OperatorNot:
			return w.processNot(x.Operand)
		case OperatorConvert:
			// conversions carry no filter semantics
			return w.walkPredicate(x.Operand)
		default:
			return w.unsupported("UnaryExpr", x.Op)
		}
	case CallExpr:
		return w.processCall(x)
	case MemberExpr:
		return w.processBoolMember(x, false)
	case CoalesceExpr:
		return w.processCoalesce(x)
	case ConditionalExpr:
		return w.processConditional(x)
	default:
		return w.unsupported(exprKind(e), "")
	}
}

// walkGrouped walks an operand of a logical node, wrapping nested logical
// sub-trees in grouping boundaries so scoping survives the flat op stream.
func (w *walker) walkGrouped(e Expr) error {
	if isCompositeLogical(e) {
		w.ctx.AddWhereAction(GroupBeginOp{})
		if err := w.walkPredicate(e); err != nil {
			return err
		}
		w.ctx.AddWhereAction(GroupEndOp{})
		return nil
	}
	return w.walkPredicate(e)
}

func isCompositeLogical(e Expr) bool {
	if _, ok := foldBool(e); ok {
		return false
	}
	b, ok := e.(BinaryExpr)
	return ok && (b.Op == OperatorAnd || b.Op == OperatorOr)
}

func (w *walker) unsupported(kind string, op Operator) error {
	return &UnsupportedNodeError{Kind: kind, Operator: op, Path: w.ctx.memberPathString()}
}

// foldBool evaluates sub-trees whose boolean value is known at translation
// time: boolean literals, negations and conversions of those, equality of two
// literals, and logical nodes a constant operand short-circuits.
func foldBool(e Expr) (bool, bool) {
	switch x := e.(type) {
	case LiteralExpr:
		b, ok := x.Value.(bool)
		return b, ok
	case UnaryExpr:
		switch x.Op {
		case OperatorNot:
			if b, ok := foldBool(x.Operand); ok {
				return !b, true
			}
		case OperatorConvert:
			return foldBool(x.Operand)
		}
	case BinaryExpr:
		switch x.Op {
		case OperatorEq, OperatorNeq:
			l, lok := x.Left.(LiteralExpr)
			r, rok := x.Right.(LiteralExpr)
			if lok && rok {
				eq := literalsEqual(l.Value, r.Value)
				if x.Op == OperatorNeq {
					eq = !eq
				}
				return eq, true
			}
		case OperatorAnd:
			lb, lok := foldBool(x.Left)
			rb, rok := foldBool(x.Right)
			if lok && rok {
				return lb && rb, true
			}
			if (lok && !lb) || (rok && !rb) {
				return false, true
			}
		case OperatorOr:
			lb, lok := foldBool(x.Left)
			rb, rok := foldBool(x.Right)
			if lok && rok {
				return lb || rb, true
			}
			if (lok && lb) || (rok && rb) {
				return true, true
			}
		}
	}
	return false, false
}

func literalsEqual(a, b any) bool {
	if na, ok := normalizeNumber(a); ok {
		nb, okb := normalizeNumber(b)
		return okb && na == nb
	}
	return reflect.DeepEqual(a, b)
}

func normalizeNumber(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
