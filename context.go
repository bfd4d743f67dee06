package datacontext

type Grouping string

const (
	GroupingAnd Grouping = "AND"
	GroupingOr  Grouping = "OR"
)

// TranslationContext accumulates the output of one predicate walk: the named
// parameter table, the member-access path, the logical-grouping nesting, and
// the ordered filter actions. One instance per pass, no locking.
type TranslationContext struct {
	parameters map[string]any
	paramOrder []string
	memberPath []string
	groupings  []Grouping
	actions    []FilterOp
}

func NewTranslationContext() *TranslationContext {
	return &TranslationContext{parameters: make(map[string]any)}
}

// AddParameter binds value under name. Names are unique per pass.
func (c *TranslationContext) AddParameter(name string, value any) error {
	if _, ok := c.parameters[name]; ok {
		return &DuplicateParameterError{Name: name}
	}
	c.parameters[name] = value
	c.paramOrder = append(c.paramOrder, name)
	return nil
}

func (c *TranslationContext) Parameters() map[string]any {
	return c.parameters
}

// ParameterNames returns bound names in insertion order.
func (c *TranslationContext) ParameterNames() []string {
	return c.paramOrder
}

func (c *TranslationContext) PushMember(name string) {
	c.memberPath = append(c.memberPath, name)
}

func (c *TranslationContext) PopMember() (string, error) {
	if len(c.memberPath) == 0 {
		return "", &EmptyStackError{Stack: "member"}
	}
	name := c.memberPath[len(c.memberPath)-1]
	c.memberPath = c.memberPath[:len(c.memberPath)-1]
	return name, nil
}

func (c *TranslationContext) MemberDepth() int {
	return len(c.memberPath)
}

func (c *TranslationContext) memberPathString() string {
	s := ""
	for i, n := range c.memberPath {
		if i > 0 {
			s += "."
		}
		s += n
	}
	return s
}

func (c *TranslationContext) PushLogicalGrouping(g Grouping) {
	c.groupings = append(c.groupings, g)
}

func (c *TranslationContext) PopLogicalGrouping() (Grouping, error) {
	if len(c.groupings) == 0 {
		return "", &EmptyStackError{Stack: "logical grouping"}
	}
	g := c.groupings[len(c.groupings)-1]
	c.groupings = c.groupings[:len(c.groupings)-1]
	return g, nil
}

func (c *TranslationContext) GroupingDepth() int {
	return len(c.groupings)
}

func (c *TranslationContext) AddWhereAction(op FilterOp) {
	c.actions = append(c.actions, op)
}

func (c *TranslationContext) WhereActions() []FilterOp {
	return c.actions
}

// Clear resets the context for an independent pass on the same instance.
func (c *TranslationContext) Clear() {
	c.parameters = make(map[string]any)
	c.paramOrder = nil
	c.memberPath = nil
	c.groupings = nil
	c.actions = nil
}

// commit appends another context's output into c. All names are checked
// against the live table first, so a cross-pass clash fails before c
// mutates and no orphan parameters survive the error.
func (c *TranslationContext) commit(other *TranslationContext) error {
	for _, name := range other.paramOrder {
		if _, ok := c.parameters[name]; ok {
			return &DuplicateParameterError{Name: name}
		}
	}
	for _, name := range other.paramOrder {
		c.parameters[name] = other.parameters[name]
		c.paramOrder = append(c.paramOrder, name)
	}
	c.actions = append(c.actions, other.actions...)
	return nil
}
