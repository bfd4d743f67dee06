package datacontext

type MatchKind string

const (
	MatchContains MatchKind = "contains"
	MatchPrefix   MatchKind = "prefix"
	MatchSuffix   MatchKind = "suffix"
)

// FilterOp is one unit of the emitted filter IR. Ops reference parameters by
// name; the bound values live in the TranslationContext parameter table.
type FilterOp interface {
	filterOp()
}

type EqualsOp struct {
	Member string
	Param  string
}

type NotEqualsOp struct {
	Member string
	Param  string
}

// CompareOp is a bounded comparison, Op one of >, >=, <, <=.
type CompareOp struct {
	Member string
	Op     Operator
	Param  string
}

// RangeOp is a merged lower+upper bound on one member.
type RangeOp struct {
	Member    string
	LowParam  string
	HighParam string
}

type MatchOp struct {
	Member string
	Kind   MatchKind
	Param  string
}

// InOp is set membership; the named parameter holds the flattened candidates.
type InOp struct {
	Member string
	Param  string
}

// BoolOp tests a boolean member directly. It binds no parameter.
type BoolOp struct {
	Member  string
	Negated bool
}

// ConstOp is an always-true or always-false filter left behind by
// constant folding.
type ConstOp struct {
	Value bool
}

// ConnectiveOp joins the two sibling fragments around it.
type ConnectiveOp struct {
	Grouping Grouping
}

type GroupBeginOp struct {
	Negated bool
}

type GroupEndOp struct{}

func (EqualsOp) filterOp()     {}
func (NotEqualsOp) filterOp()  {}
func (CompareOp) filterOp()    {}
func (RangeOp) filterOp()      {}
func (MatchOp) filterOp()      {}
func (InOp) filterOp()         {}
func (BoolOp) filterOp()       {}
func (ConstOp) filterOp()      {}
func (ConnectiveOp) filterOp() {}
func (GroupBeginOp) filterOp() {}
func (GroupEndOp) filterOp()   {}

// FilterBuilder is the downstream consumer boundary: one callback per op.
// Replay drives a builder in emission order.
type FilterBuilder interface {
	WhereEquals(member, param string)
	WhereNotEquals(member, param string)
	WhereCompare(member string, op Operator, param string)
	WhereRange(member, lowParam, highParam string)
	WhereMatch(member string, kind MatchKind, param string)
	WhereIn(member, param string)
	WhereBool(member string, negated bool)
	WhereConst(value bool)
	Connective(g Grouping)
	BeginGroup(negated bool)
	EndGroup()
}

func Replay(ops []FilterOp, b FilterBuilder) {
	for _, op := range ops {
		switch x := op.(type) {
		case EqualsOp:
			b.WhereEquals(x.Member, x.Param)
		case NotEqualsOp:
			b.WhereNotEquals(x.Member, x.Param)
		case CompareOp:
			b.WhereCompare(x.Member, x.Op, x.Param)
		case RangeOp:
			b.WhereRange(x.Member, x.LowParam, x.HighParam)
		case MatchOp:
			b.WhereMatch(x.Member, x.Kind, x.Param)
		case InOp:
			b.WhereIn(x.Member, x.Param)
		case BoolOp:
			b.WhereBool(x.Member, x.Negated)
		case ConstOp:
			b.WhereConst(x.Value)
		case ConnectiveOp:
			b.Connective(x.Grouping)
		case GroupBeginOp:
			b.BeginGroup(x.Negated)
		case GroupEndOp:
			b.EndGroup()
		}
	}
}

// opGroup is the nested view of a flat op stream, used by the backend
// adapters. items and joins interleave: items[0] joins[0] items[1] ...
type opGroup struct {
	negated bool
	items   []opFragment
	joins   []Grouping
}

type opFragment struct {
	leaf  FilterOp
	group *opGroup
}

// groupOps folds the flat ordered stream back into nested fragments.
func groupOps(ops []FilterOp) (*opGroup, error) {
	root := &opGroup{}
	stack := []*opGroup{root}
	for _, op := range ops {
		top := stack[len(stack)-1]
		switch x := op.(type) {
		case GroupBeginOp:
			g := &opGroup{negated: x.Negated}
			stack = append(stack, g)
		case GroupEndOp:
			if len(stack) < 2 {
				return nil, &EmptyStackError{Stack: "op group"}
			}
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.items = append(parent.items, opFragment{group: top})
		case ConnectiveOp:
			top.joins = append(top.joins, x.Grouping)
		default:
			top.items = append(top.items, opFragment{leaf: op})
		}
	}
	if len(stack) != 1 {
		return nil, &EmptyStackError{Stack: "op group"}
	}
	return root, nil
}
