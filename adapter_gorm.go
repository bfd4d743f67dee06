package datacontext

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// BuildGormExpression converts the translated filter actions into a single
// gorm clause.Expression, resolving parameter references against the
// context's parameter table.
func BuildGormExpression(t Translator) (clause.Expression, error) {
	ctx := t.Context()
	root, err := groupOps(ctx.WhereActions())
	if err != nil {
		return nil, err
	}
	return gormGroup(root, ctx.Parameters()), nil
}

// ApplyGorm applies the translated filter to a GORM DB instance.
func ApplyGorm(t Translator, trx *gorm.DB) (*gorm.DB, error) {
	expr, err := BuildGormExpression(t)
	if err != nil {
		return trx, err
	}
	if expr == nil {
		return trx, nil
	}
	return trx.Clauses(expr), nil
}

// GormSQLString renders the query via DryRun for inspection, the way the
// dialector would explain it.
func GormSQLString(trx *gorm.DB) string {
	tr := trx.Session(&gorm.Session{DryRun: true, NewDB: true})
	tr.Logger = logger.Default.LogMode(logger.Silent)

	tr.Callback().Query().Execute(tr)
	stmt := tr.Statement
	return tr.Dialector.Explain(stmt.SQL.String(), stmt.Vars...)
}

func gormGroup(g *opGroup, params map[string]any) clause.Expression {
	var parts []clause.Expression
	for _, item := range g.items {
		if item.group != nil {
			if e := gormGroup(item.group, params); e != nil {
				parts = append(parts, e)
			}
			continue
		}
		if e := gormLeaf(item.leaf, params); e != nil {
			parts = append(parts, e)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	result := parts[0]
	for i := 1; i < len(parts); i++ {
		join := GroupingAnd
		if i-1 < len(g.joins) {
			join = g.joins[i-1]
		}
		if join == GroupingOr {
			result = clause.Or(result, parts[i])
		} else {
			result = clause.And(result, parts[i])
		}
	}
	if g.negated {
		result = clause.Not(result)
	}
	return result
}

func gormLeaf(op FilterOp, params map[string]any) clause.Expression {
	switch x := op.(type) {
	case EqualsOp:
		return clause.Eq{Column: x.Member, Value: params[x.Param]}
	case NotEqualsOp:
		return clause.Neq{Column: x.Member, Value: params[x.Param]}
	case CompareOp:
		switch x.Op {
		case OperatorGt:
			return clause.Gt{Column: x.Member, Value: params[x.Param]}
		case OperatorGte:
			return clause.Gte{Column: x.Member, Value: params[x.Param]}
		case OperatorLt:
			return clause.Lt{Column: x.Member, Value: params[x.Param]}
		case OperatorLte:
			return clause.Lte{Column: x.Member, Value: params[x.Param]}
		}
		return nil
	case RangeOp:
		return clause.Expr{SQL: "? BETWEEN ? AND ?", Vars: []any{clause.Column{Name: x.Member}, params[x.LowParam], params[x.HighParam]}}
	case MatchOp:
		return clause.Like{Column: x.Member, Value: likePattern(x.Kind, params[x.Param])}
	case InOp:
		values, _ := params[x.Param].([]any)
		return clause.IN{Column: x.Member, Values: values}
	case BoolOp:
		return clause.Eq{Column: x.Member, Value: !x.Negated}
	case ConstOp:
		if x.Value {
			return clause.Expr{SQL: "1=1"}
		}
		return clause.Expr{SQL: "1=0"}
	default:
		return nil
	}
}

func likePattern(kind MatchKind, v any) string {
	s, _ := v.(string)
	switch kind {
	case MatchPrefix:
		return s + "%"
	case MatchSuffix:
		return "%" + s
	default:
		return "%" + s + "%"
	}
}
