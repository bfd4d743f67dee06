package datacontext

import "fmt"

// processCall handles the method-invocation shapes: string pattern matches
// on a member receiver, membership of a member value in a captured
// collection, and membership of a value in a collection-valued member.
func (w *walker) processCall(x CallExpr) error {
	if len(x.Args) != 1 {
		return &InvalidOperandShapeError{
			Kind:   "CallExpr",
			Detail: fmt.Sprintf("method %s expects exactly one argument, got %d", x.Method, len(x.Args)),
		}
	}
	receiver, err := resolveOperand(w.ctx, w.naming, x.Receiver)
	if err != nil {
		return err
	}
	arg, err := resolveOperand(w.ctx, w.naming, x.Args[0])
	if err != nil {
		return err
	}

	switch x.Method {
	case MethodContains, MethodStartsWith, MethodEndsWith:
		// collection.Contains(member): membership of the member's value
		if x.Method == MethodContains && !receiver.isMember() && arg.isMember() {
			return w.emitMembership(arg, receiver.value)
		}
		if !receiver.isMember() || arg.isMember() {
			return &InvalidOperandShapeError{
				Kind:   "CallExpr",
				Detail: fmt.Sprintf("%s expects a member receiver and a value argument", x.Method),
			}
		}
		return w.emitMatch(receiver, x.Method, arg.value)
	case MethodHas:
		// member-collection.Contains(value)
		if !receiver.isMember() || arg.isMember() {
			return &InvalidOperandShapeError{
				Kind:   "CallExpr",
				Detail: "Has expects a collection-valued member receiver and a value argument",
			}
		}
		return w.emitMembership(receiver, arg.value)
	default:
		return w.unsupported("CallExpr", Operator(x.Method))
	}
}

func (w *walker) emitMatch(member operand, method Method, value any) error {
	kind := MatchContains
	switch method {
	case MethodStartsWith:
		kind = MatchPrefix
	case MethodEndsWith:
		kind = MatchSuffix
	}
	s, ok := value.(string)
	if !ok {
		return &InvalidOperandShapeError{
			Kind:   "CallExpr",
			Detail: fmt.Sprintf("%s argument must resolve to a string, got %T", method, value),
		}
	}
	if err := w.ctx.AddParameter(member.param, s); err != nil {
		return err
	}
	w.ctx.AddWhereAction(MatchOp{Member: member.member, Kind: kind, Param: member.param})
	return nil
}

// emitMembership flattens the candidate collection (nested enumerables and
// boxed scalars included) and emits one set-membership action.
func (w *walker) emitMembership(member operand, collection any) error {
	values := flattenValues(collection)
	if err := w.ctx.AddParameter(member.param, values); err != nil {
		return err
	}
	w.ctx.AddWhereAction(InOp{Member: member.member, Param: member.param})
	return nil
}
