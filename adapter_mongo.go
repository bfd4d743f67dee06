package datacontext

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// BuildMongoFilter converts the translated filter actions into a MongoDB
// filter document.
func BuildMongoFilter(t Translator) (bson.M, error) {
	ctx := t.Context()
	root, err := groupOps(ctx.WhereActions())
	if err != nil {
		return nil, err
	}
	return mongoGroup(root, ctx.Parameters()), nil
}

func mongoGroup(g *opGroup, params map[string]any) bson.M {
	var parts []bson.M
	for _, item := range g.items {
		if item.group != nil {
			if m := mongoGroup(item.group, params); len(m) > 0 {
				parts = append(parts, m)
			}
			continue
		}
		if m := mongoLeaf(item.leaf, params); len(m) > 0 {
			parts = append(parts, m)
		}
	}
	if len(parts) == 0 {
		return bson.M{}
	}

	result := parts[0]
	for i := 1; i < len(parts); i++ {
		join := GroupingAnd
		if i-1 < len(g.joins) {
			join = g.joins[i-1]
		}
		if join == GroupingOr {
			result = bson.M{"$or": []bson.M{result, parts[i]}}
		} else {
			result = bson.M{"$and": []bson.M{result, parts[i]}}
		}
	}
	if g.negated {
		result = bson.M{"$nor": []bson.M{result}}
	}
	return result
}

func mongoLeaf(op FilterOp, params map[string]any) bson.M {
	switch x := op.(type) {
	case EqualsOp:
		return bson.M{x.Member: params[x.Param]}
	case NotEqualsOp:
		return bson.M{x.Member: bson.M{"$ne": params[x.Param]}}
	case CompareOp:
		switch x.Op {
		case OperatorGt:
			return bson.M{x.Member: bson.M{"$gt": params[x.Param]}}
		case OperatorGte:
			return bson.M{x.Member: bson.M{"$gte": params[x.Param]}}
		case OperatorLt:
			return bson.M{x.Member: bson.M{"$lt": params[x.Param]}}
		case OperatorLte:
			return bson.M{x.Member: bson.M{"$lte": params[x.Param]}}
		}
		return bson.M{}
	case RangeOp:
		return bson.M{x.Member: bson.M{"$gte": params[x.LowParam], "$lte": params[x.HighParam]}}
	case MatchOp:
		return bson.M{x.Member: bson.M{"$regex": matchRegex(x.Kind, params[x.Param])}}
	case InOp:
		values, _ := params[x.Param].([]any)
		return bson.M{x.Member: bson.M{"$in": values}}
	case BoolOp:
		return bson.M{x.Member: !x.Negated}
	case ConstOp:
		return bson.M{"$expr": x.Value}
	default:
		return bson.M{}
	}
}

// matchRegex anchors the escaped needle according to the match kind.
func matchRegex(kind MatchKind, v any) *regexp.Regexp {
	s, _ := v.(string)
	pattern := regexp.QuoteMeta(s)
	switch kind {
	case MatchPrefix:
		pattern = "^" + pattern
	case MatchSuffix:
		pattern = pattern + "$"
	}
	return regexp.MustCompile(pattern)
}
