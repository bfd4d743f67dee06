package datacontext

import "fmt"

// processLogical handles and/or. Order of business: boolean-constant
// short-circuiting, the range-merge probe, then the general path (grouping
// marker, left operand, connective, right operand).
func (w *walker) processLogical(x BinaryExpr) error {
	grouping := GroupingAnd
	if x.Op == OperatorOr {
		grouping = GroupingOr
	}

	if b, ok := foldBool(x.Left); ok {
		return w.foldedLogicalSide(grouping, b, x.Right)
	}
	if b, ok := foldBool(x.Right); ok {
		return w.foldedLogicalSide(grouping, b, x.Left)
	}

	if grouping == GroupingAnd {
		if handled, err := w.tryRangeMerge(x); handled || err != nil {
			return err
		}
	}

	w.ctx.PushLogicalGrouping(grouping)
	if err := w.walkGrouped(x.Left); err != nil {
		return err
	}
	w.ctx.AddWhereAction(ConnectiveOp{Grouping: grouping})
	if err := w.walkGrouped(x.Right); err != nil {
		return err
	}
	_, err := w.ctx.PopLogicalGrouping()
	return err
}

// foldedLogicalSide applies true&&x -> x, false&&x -> false, true||x -> true,
// false||x -> x. The dead side emits nothing and binds nothing.
func (w *walker) foldedLogicalSide(grouping Grouping, constant bool, other Expr) error {
	if grouping == GroupingAnd {
		if !constant {
			w.ctx.AddWhereAction(ConstOp{Value: false})
			return nil
		}
		return w.walkPredicate(other)
	}
	if constant {
		w.ctx.AddWhereAction(ConstOp{Value: true})
		return nil
	}
	return w.walkPredicate(other)
}

// tryRangeMerge collapses `m >= lo && m <= hi` (either operand order, member
// on either side of each comparison) into a single range action. The probe
// declines quietly on any non-matching shape so the general path can report
// real errors.
func (w *walker) tryRangeMerge(x BinaryExpr) (bool, error) {
	lb, lok := x.Left.(BinaryExpr)
	rb, rok := x.Right.(BinaryExpr)
	if !lok || !rok {
		return false, nil
	}
	if !isOrderingOp(lb.Op) || !isOrderingOp(rb.Op) {
		return false, nil
	}
	lm, lop, lv, err := w.normalizeComparison(lb)
	if err != nil {
		return false, nil
	}
	rm, rop, rv, err := w.normalizeComparison(rb)
	if err != nil {
		return false, nil
	}
	if lm.member != rm.member {
		return false, nil
	}

	var low, high any
	switch {
	case lop == OperatorGte && rop == OperatorLte:
		low, high = lv, rv
	case lop == OperatorLte && rop == OperatorGte:
		low, high = rv, lv
	default:
		return false, nil
	}

	lowParam := lm.param + "_from"
	highParam := lm.param + "_to"
	if err := w.ctx.AddParameter(lowParam, low); err != nil {
		return true, err
	}
	if err := w.ctx.AddParameter(highParam, high); err != nil {
		return true, err
	}
	w.ctx.AddWhereAction(RangeOp{Member: lm.member, LowParam: lowParam, HighParam: highParam})
	return true, nil
}

func isOrderingOp(op Operator) bool {
	return op == OperatorGt || op == OperatorGte || op == OperatorLt || op == OperatorLte
}

// processNot negates a sub-tree. Double negation collapses, boolean members
// and foldable constants negate directly, composite sub-trees are wrapped in
// a negated group.
func (w *walker) processNot(operand Expr) error {
	switch x := operand.(type) {
	case UnaryExpr:
		switch x.Op {
		case OperatorNot:
			return w.walkPredicate(x.Operand)
		case OperatorConvert:
			return w.processNot(x.Operand)
		}
	case MemberExpr:
		return w.processBoolMember(x, true)
	}
	if b, ok := foldBool(operand); ok {
		w.ctx.AddWhereAction(ConstOp{Value: !b})
		return nil
	}
	w.ctx.AddWhereAction(GroupBeginOp{Negated: true})
	if err := w.walkPredicate(operand); err != nil {
		return err
	}
	w.ctx.AddWhereAction(GroupEndOp{})
	return nil
}

// processBoolMember emits a direct boolean member test. No parameter is
// bound; the polarity rides on the action itself.
func (w *walker) processBoolMember(m MemberExpr, negated bool) error {
	o, err := resolveMember(w.ctx, w.naming, m)
	if err != nil {
		return err
	}
	if !o.isMember() {
		b, ok := o.value.(bool)
		if !ok {
			return &InvalidOperandShapeError{
				Kind:   "MemberExpr",
				Detail: fmt.Sprintf("captured value %v is not usable as a boolean predicate", o.value),
			}
		}
		if negated {
			b = !b
		}
		w.ctx.AddWhereAction(ConstOp{Value: b})
		return nil
	}
	w.ctx.AddWhereAction(BoolOp{Member: o.member, Negated: negated})
	return nil
}
