package datacontext

import "fmt"

// processEquality handles = and != regardless of operand order. A captured
// member chain on either side is evaluated to its runtime value, so
// member-to-member comparisons against closed-over objects work.
func (w *walker) processEquality(x BinaryExpr) error {
	left, err := resolveOperand(w.ctx, w.naming, x.Left)
	if err != nil {
		return err
	}
	right, err := resolveOperand(w.ctx, w.naming, x.Right)
	if err != nil {
		return err
	}

	if left.isMember() && right.isMember() {
		return &InvalidOperandShapeError{
			Kind:   "BinaryExpr",
			Detail: fmt.Sprintf("cannot compare two record members (%s, %s)", left.member, right.member),
		}
	}
	if !left.isMember() && !right.isMember() {
		// both sides resolved to runtime constants
		eq := literalsEqual(left.value, right.value)
		if x.Op == OperatorNeq {
			eq = !eq
		}
		w.ctx.AddWhereAction(ConstOp{Value: eq})
		return nil
	}

	m, v := left, right.value
	if right.isMember() {
		m, v = right, left.value
	}
	if err := w.ctx.AddParameter(m.param, v); err != nil {
		return err
	}
	if x.Op == OperatorNeq {
		w.ctx.AddWhereAction(NotEqualsOp{Member: m.member, Param: m.param})
	} else {
		w.ctx.AddWhereAction(EqualsOp{Member: m.member, Param: m.param})
	}
	return nil
}

// processComparison handles the four ordering operators, flipping the
// operator when the member sits on the right-hand side.
func (w *walker) processComparison(x BinaryExpr) error {
	member, op, value, err := w.normalizeComparison(x)
	if err != nil {
		return err
	}
	if err := w.ctx.AddParameter(member.param, value); err != nil {
		return err
	}
	w.ctx.AddWhereAction(CompareOp{Member: member.member, Op: op, Param: member.param})
	return nil
}

// normalizeComparison resolves a comparison node into (member, operator,
// value) with the member on the left.
func (w *walker) normalizeComparison(x BinaryExpr) (operand, Operator, any, error) {
	left, err := resolveOperand(w.ctx, w.naming, x.Left)
	if err != nil {
		return operand{}, "", nil, err
	}
	right, err := resolveOperand(w.ctx, w.naming, x.Right)
	if err != nil {
		return operand{}, "", nil, err
	}
	switch {
	case left.isMember() && !right.isMember():
		return left, x.Op, right.value, nil
	case right.isMember() && !left.isMember():
		return right, flipComparison(x.Op), left.value, nil
	default:
		return operand{}, "", nil, &InvalidOperandShapeError{
			Kind:   "BinaryExpr",
			Detail: fmt.Sprintf("comparison %q needs exactly one record member operand", x.Op),
		}
	}
}

func flipComparison(op Operator) Operator {
	switch op {
	case OperatorGt:
		return OperatorLt
	case OperatorGte:
		return OperatorLte
	case OperatorLt:
		return OperatorGt
	case OperatorLte:
		return OperatorGte
	}
	return op
}
