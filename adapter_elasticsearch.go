package datacontext

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ElasticsearchQuery is the wire shape of a search request body.
type ElasticsearchQuery struct {
	Query map[string]interface{} `json:"query"`
}

// BuildElasticsearchQuery converts the translated filter actions into an
// Elasticsearch query body.
func BuildElasticsearchQuery(t Translator) (ElasticsearchQuery, error) {
	ctx := t.Context()
	root, err := groupOps(ctx.WhereActions())
	if err != nil {
		return ElasticsearchQuery{}, err
	}
	q := esGroup(root, ctx.Parameters())
	if q == nil {
		q = map[string]interface{}{"match_all": map[string]interface{}{}}
	}
	return ElasticsearchQuery{Query: q}, nil
}

// GetElasticsearchQueryString returns the query as an indented JSON string.
func GetElasticsearchQueryString(t Translator) (string, error) {
	query, err := BuildElasticsearchQuery(t)
	if err != nil {
		return "", err
	}
	jsonBytes, err := json.MarshalIndent(query, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal Elasticsearch query: %w", err)
	}
	return string(jsonBytes), nil
}

func esGroup(g *opGroup, params map[string]any) map[string]interface{} {
	var parts []map[string]interface{}
	for _, item := range g.items {
		if item.group != nil {
			if q := esGroup(item.group, params); q != nil {
				parts = append(parts, q)
			}
			continue
		}
		if q := esLeaf(item.leaf, params); q != nil {
			parts = append(parts, q)
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
			result = map[string]interface{}{
				"bool": map[string]interface{}{
					"should":               []map[string]interface{}{result, parts[i]},
					"minimum_should_match": 1,
				},
			}
		} else {
			result = map[string]interface{}{
				"bool": map[string]interface{}{
					"must": []map[string]interface{}{result, parts[i]},
				},
			}
		}
	}
	if g.negated {
		result = map[string]interface{}{
			"bool": map[string]interface{}{
				"must_not": result,
			},
		}
	}
	return result
}

func esLeaf(op FilterOp, params map[string]any) map[string]interface{} {
	switch x := op.(type) {
	case EqualsOp:
		return map[string]interface{}{
			"term": map[string]interface{}{x.Member: params[x.Param]},
		}
	case NotEqualsOp:
		return map[string]interface{}{
			"bool": map[string]interface{}{
				"must_not": map[string]interface{}{
					"term": map[string]interface{}{x.Member: params[x.Param]},
				},
			},
		}
	case CompareOp:
		bound := map[Operator]string{
			OperatorGt:  "gt",
			OperatorGte: "gte",
			OperatorLt:  "lt",
			OperatorLte: "lte",
		}[x.Op]
		if bound == "" {
			return nil
		}
		return map[string]interface{}{
			"range": map[string]interface{}{
				x.Member: map[string]interface{}{bound: params[x.Param]},
			},
		}
	case RangeOp:
		return map[string]interface{}{
			"range": map[string]interface{}{
				x.Member: map[string]interface{}{
					"gte": params[x.LowParam],
					"lte": params[x.HighParam],
				},
			},
		}
	case MatchOp:
		s, _ := params[x.Param].(string)
		s = strings.ReplaceAll(s, "*", "")
		wildcard := "*" + s + "*"
		switch x.Kind {
		case MatchPrefix:
			wildcard = s + "*"
		case MatchSuffix:
			wildcard = "*" + s
		}
		return map[string]interface{}{
			"wildcard": map[string]interface{}{x.Member: wildcard},
		}
	case InOp:
		values, _ := params[x.Param].([]any)
		return map[string]interface{}{
			"terms": map[string]interface{}{x.Member: values},
		}
	case BoolOp:
		return map[string]interface{}{
			"term": map[string]interface{}{x.Member: !x.Negated},
		}
	case ConstOp:
		if x.Value {
			return map[string]interface{}{"match_all": map[string]interface{}{}}
		}
		return map[string]interface{}{"match_none": map[string]interface{}{}}
	default:
		return nil
	}
}
