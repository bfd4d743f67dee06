package datacontext

import (
	"fmt"
	"strings"
)

// BuildNamedWhere renders the translated filter as a SQL WHERE fragment
// (without the WHERE keyword) using @name placeholders, together with the
// parameter table the backend binds by name.
func BuildNamedWhere(t Translator) (string, map[string]any, error) {
	ctx := t.Context()
	root, err := groupOps(ctx.WhereActions())
	if err != nil {
		return "", nil, err
	}
	return renderSQLGroup(root, true), ctx.Parameters(), nil
}

// BuildNamedSelect builds a full SELECT for the given table. Identifiers are
// backtick-quoted for MySQL-like dialects.
func BuildNamedSelect(t Translator, table string, columns ...string) (string, map[string]any, error) {
	cols := "*"
	if len(columns) > 0 {
		quoted := make([]string, 0, len(columns))
		for _, c := range columns {
			quoted = append(quoted, quoteIdent(c))
		}
		cols = strings.Join(quoted, ", ")
	}
	where, params, err := BuildNamedWhere(t)
	if err != nil {
		return "", nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s", cols, quoteIdent(table))
	if where != "" {
		query += " WHERE " + where
	}
	return query, params, nil
}

// -- internals --

func renderSQLGroup(g *opGroup, top bool) string {
	parts := make([]string, 0, len(g.items))
	for _, item := range g.items {
		if item.group != nil {
			parts = append(parts, renderSQLGroup(item.group, false))
			continue
		}
		parts = append(parts, opToSQL(item.leaf))
	}
	if len(parts) == 0 {
		return ""
	}

	sql := parts[0]
	for i := 1; i < len(parts); i++ {
		join := string(GroupingAnd)
		if i-1 < len(g.joins) {
			join = string(g.joins[i-1])
		}
		sql = sql + " " + join + " " + parts[i]
	}
	if len(parts) > 1 && !top {
		sql = "(" + sql + ")"
	}
	if g.negated {
		if !strings.HasPrefix(sql, "(") {
			sql = "(" + sql + ")"
		}
		sql = "NOT " + sql
	}
	return sql
}

func opToSQL(op FilterOp) string {
	switch x := op.(type) {
	case EqualsOp:
		return fmt.Sprintf("%s = @%s", quoteIdent(x.Member), x.Param)
	case NotEqualsOp:
		return fmt.Sprintf("%s != @%s", quoteIdent(x.Member), x.Param)
	case CompareOp:
		return fmt.Sprintf("%s %s @%s", quoteIdent(x.Member), x.Op, x.Param)
	case RangeOp:
		return fmt.Sprintf("%s BETWEEN @%s AND @%s", quoteIdent(x.Member), x.LowParam, x.HighParam)
	case MatchOp:
		switch x.Kind {
		case MatchPrefix:
			return fmt.Sprintf("%s LIKE CONCAT(@%s, '%%')", quoteIdent(x.Member), x.Param)
		case MatchSuffix:
			return fmt.Sprintf("%s LIKE CONCAT('%%', @%s)", quoteIdent(x.Member), x.Param)
		default:
			return fmt.Sprintf("%s LIKE CONCAT('%%', @%s, '%%')", quoteIdent(x.Member), x.Param)
		}
	case InOp:
		return fmt.Sprintf("%s IN (@%s)", quoteIdent(x.Member), x.Param)
	case BoolOp:
		if x.Negated {
			return fmt.Sprintf("%s = FALSE", quoteIdent(x.Member))
		}
		return fmt.Sprintf("%s = TRUE", quoteIdent(x.Member))
	case ConstOp:
		if x.Value {
			return "1=1"
		}
		return "1=0"
	default:
		return ""
	}
}

// quoteIdent quotes a possibly dotted member path segment by segment.
func quoteIdent(ident string) string {
	segs := strings.Split(ident, ".")
	for i, s := range segs {
		segs[i] = "`" + s + "`"
	}
	return strings.Join(segs, ".")
}

// ExpandNamedPlaceholders replaces @name placeholders with SQL literals for
// debugging and logging, similar to a dialector's Explain.
func ExpandNamedPlaceholders(sql string, params map[string]any) string {
	if len(params) == 0 {
		return sql
	}
	var b strings.Builder
	b.Grow(len(sql) + len(params)*4)

	for i := 0; i < len(sql); {
		if sql[i] != '@' {
			b.WriteByte(sql[i])
			i++
			continue
		}
		j := i + 1
		for j < len(sql) && isNameByte(sql[j]) {
			j++
		}
		name := sql[i+1 : j]
		if v, ok := params[name]; ok {
			b.WriteString(toSQLLiteral(v))
		} else {
			b.WriteString(sql[i:j])
		}
		i = j
	}
	return b.String()
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func toSQLLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return fmt.Sprintf("'%s'", escapeSQLString(x))
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			parts = append(parts, toSQLLiteral(e))
		}
		return strings.Join(parts, ", ")
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", x)
	default:
		return fmt.Sprintf("'%s'", escapeSQLString(fmt.Sprintf("%v", x)))
	}
}

func escapeSQLString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "'", "\\'")
	return s
}
