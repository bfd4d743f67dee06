package datacontext

import "fmt"

// UnsupportedNodeError reports a node kind or operator outside the closed
// grammar. Path is the member-access chain active when the node was reached.
type UnsupportedNodeError struct {
	Kind     string
	Operator Operator
	Path     string
}

func (e *UnsupportedNodeError) Error() string {
	if e.Operator != "" {
		return fmt.Sprintf("unsupported predicate node %s with operator %q (at %q)", e.Kind, e.Operator, e.Path)
	}
	return fmt.Sprintf("unsupported predicate node %s (at %q)", e.Kind, e.Path)
}

// InvalidOperandShapeError reports an operand that is neither a literal, a
// resolvable captured value, nor a parameter-rooted member access.
type InvalidOperandShapeError struct {
	Kind   string
	Detail string
}

func (e *InvalidOperandShapeError) Error() string {
	return fmt.Sprintf("invalid operand shape %s: %s", e.Kind, e.Detail)
}

// DuplicateParameterError reports two sub-expressions binding the same
// parameter name within one translation pass.
type DuplicateParameterError struct {
	Name string
}

func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("parameter %q already bound in this pass", e.Name)
}

// EmptyStackError reports a pop without a matching push. This is a walker
// bug, not bad user input.
type EmptyStackError struct {
	Stack string
}

func (e *EmptyStackError) Error() string {
	return fmt.Sprintf("pop from empty %s stack", e.Stack)
}
