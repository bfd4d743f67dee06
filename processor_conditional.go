package datacontext

import (
	"fmt"
	"reflect"
)

// processCoalesce resolves `left ?? right` in predicate position: a
// member-rooted left wins and the downstream consumer's null semantics gate
// it; a captured left is used when non-nil, otherwise the right side is
// translated.
func (w *walker) processCoalesce(x CoalesceExpr) error {
	left, err := resolveOperand(w.ctx, w.naming, x.Left)
	if err != nil {
		return err
	}
	if left.isMember() {
		w.ctx.AddWhereAction(BoolOp{Member: left.member})
		return nil
	}
	if !isNilAny(left.value) {
		b, ok := left.value.(bool)
		if !ok {
			return &InvalidOperandShapeError{
				Kind:   "CoalesceExpr",
				Detail: fmt.Sprintf("left operand resolved to non-boolean %T", left.value),
			}
		}
		w.ctx.AddWhereAction(ConstOp{Value: b})
		return nil
	}
	return w.walkPredicate(x.Right)
}

// processConditional translates the ternary's condition as an independent
// grouped fragment. Branches carry no filter semantics of their own but must
// be type-compatible.
func (w *walker) processConditional(x ConditionalExpr) error {
	if err := checkBranchTypes(x.Then, x.Else); err != nil {
		return err
	}
	w.ctx.AddWhereAction(GroupBeginOp{})
	if err := w.walkPredicate(x.Test); err != nil {
		return err
	}
	w.ctx.AddWhereAction(GroupEndOp{})
	return nil
}

// checkBranchTypes compares the concrete types of value-carrying branches,
// literal or captured. Member-rooted branches have no type until the backend
// binds the record, so they are not checked here.
func checkBranchTypes(then, els Expr) error {
	tt, tok, err := branchValueType(then)
	if err != nil {
		return err
	}
	et, eok, err := branchValueType(els)
	if err != nil {
		return err
	}
	if !tok || !eok {
		return nil
	}
	if tt != et {
		return &InvalidOperandShapeError{
			Kind:   "ConditionalExpr",
			Detail: fmt.Sprintf("branches are not type-compatible (%s vs %s)", tt, et),
		}
	}
	return nil
}

// branchValueType resolves a branch to its runtime type when it carries a
// value. Nil values report no type.
func branchValueType(e Expr) (reflect.Type, bool, error) {
	switch x := e.(type) {
	case LiteralExpr:
		if x.Value == nil {
			return nil, false, nil
		}
		return reflect.TypeOf(x.Value), true, nil
	case CapturedExpr:
		if isNilAny(x.Container) {
			return nil, false, nil
		}
		return reflect.TypeOf(x.Container), true, nil
	case MemberExpr:
		root, names := memberChain(x)
		captured, ok := root.(CapturedExpr)
		if !ok {
			return nil, false, nil
		}
		v, err := evalCaptured(captured.Container, names)
		if err != nil {
			return nil, false, err
		}
		if isNilAny(v) {
			return nil, false, nil
		}
		return reflect.TypeOf(v), true, nil
	}
	return nil, false, nil
}
