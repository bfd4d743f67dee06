package datacontext

type Operator string

const (
	OperatorEq      Operator = "="
	OperatorNeq     Operator = "!="
	OperatorGt      Operator = ">"
	OperatorGte     Operator = ">="
	OperatorLt      Operator = "<"
	OperatorLte     Operator = "<="
	OperatorAnd     Operator = "and"
	OperatorOr      Operator = "or"
	OperatorNot     Operator = "not"
	OperatorConvert Operator = "convert"
	OperatorXor     Operator = "xor"
)

type Method string

const (
	MethodContains   Method = "Contains"
	MethodStartsWith Method = "StartsWith"
	MethodEndsWith   Method = "EndsWith"
	MethodHas        Method = "Has"
)

// Expr is the closed grammar of predicate nodes the translator accepts.
// Trees are immutable; the translator only reads them.
type Expr interface {
	expr()
}

// ParamExpr is the bound record a predicate is written against.
type ParamExpr struct{}

// MemberExpr is a member access on Target (the record parameter, another
// member, or a captured container).
type MemberExpr struct {
	Target Expr
	Name   string
}

// LiteralExpr is a compile-time constant value.
type LiteralExpr struct {
	Value any
}

// CapturedExpr is a runtime value closed over by the caller. Member chains
// rooted here are evaluated reflectively at translation time.
type CapturedExpr struct {
	Container any
}

type BinaryExpr struct {
	Op    Operator
	Left  Expr
	Right Expr
}

type UnaryExpr struct {
	Op      Operator
	Operand Expr
}

// CallExpr is a method invocation on a string member (Contains/StartsWith/
// EndsWith) or a membership check on a collection receiver.
type CallExpr struct {
	Receiver Expr
	Method   Method
	Args     []Expr
}

type CoalesceExpr struct {
	Left  Expr
	Right Expr
}

type ConditionalExpr struct {
	Test Expr
	Then Expr
	Else Expr
}

func (ParamExpr) expr()       {}
func (MemberExpr) expr()      {}
func (LiteralExpr) expr()     {}
func (CapturedExpr) expr()    {}
func (BinaryExpr) expr()      {}
func (UnaryExpr) expr()       {}
func (CallExpr) expr()        {}
func (CoalesceExpr) expr()    {}
func (ConditionalExpr) expr() {}

// Field builds a member chain rooted at the record parameter.
func Field(names ...string) Expr {
	var e Expr = ParamExpr{}
	for _, n := range names {
		e = MemberExpr{Target: e, Name: n}
	}
	return e
}

// Value wraps a literal.
func Value(v any) Expr {
	return LiteralExpr{Value: v}
}

// Captured wraps a closed-over runtime value, optionally navigating into it.
func Captured(container any, path ...string) Expr {
	var e Expr = CapturedExpr{Container: container}
	for _, n := range path {
		e = MemberExpr{Target: e, Name: n}
	}
	return e
}

func Eq(left, right Expr) Expr  { return BinaryExpr{Op: OperatorEq, Left: left, Right: right} }
func Neq(left, right Expr) Expr { return BinaryExpr{Op: OperatorNeq, Left: left, Right: right} }
func Gt(left, right Expr) Expr  { return BinaryExpr{Op: OperatorGt, Left: left, Right: right} }
func Gte(left, right Expr) Expr { return BinaryExpr{Op: OperatorGte, Left: left, Right: right} }
func Lt(left, right Expr) Expr  { return BinaryExpr{Op: OperatorLt, Left: left, Right: right} }
func Lte(left, right Expr) Expr { return BinaryExpr{Op: OperatorLte, Left: left, Right: right} }
func And(left, right Expr) Expr { return BinaryExpr{Op: OperatorAnd, Left: left, Right: right} }
func Or(left, right Expr) Expr  { return BinaryExpr{Op: OperatorOr, Left: left, Right: right} }

func Not(operand Expr) Expr     { return UnaryExpr{Op: OperatorNot, Operand: operand} }
func Convert(operand Expr) Expr { return UnaryExpr{Op: OperatorConvert, Operand: operand} }

func Contains(receiver, arg Expr) Expr {
	return CallExpr{Receiver: receiver, Method: MethodContains, Args: []Expr{arg}}
}

func StartsWith(receiver, arg Expr) Expr {
	return CallExpr{Receiver: receiver, Method: MethodStartsWith, Args: []Expr{arg}}
}

func EndsWith(receiver, arg Expr) Expr {
	return CallExpr{Receiver: receiver, Method: MethodEndsWith, Args: []Expr{arg}}
}

// Has tests whether a collection-valued member contains the given value.
func Has(member, value Expr) Expr {
	return CallExpr{Receiver: member, Method: MethodHas, Args: []Expr{value}}
}

// In tests whether a member's value is one of the candidates in collection.
func In(member, collection Expr) Expr {
	return CallExpr{Receiver: collection, Method: MethodContains, Args: []Expr{member}}
}

func Coalesce(left, right Expr) Expr {
	return CoalesceExpr{Left: left, Right: right}
}

func If(test, then, els Expr) Expr {
	return ConditionalExpr{Test: test, Then: then, Else: els}
}
