package datacontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNamedWhere(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Translate(And(
		Eq(Field("Status"), Value("Published")),
		Gt(Field("Views"), Value(100)),
	)))

	where, params, err := BuildNamedWhere(tr)
	require.NoError(t, err)
	assert.Equal(t, "`status` = @status AND `views` > @views", where)
	assert.Equal(t, map[string]any{"status": "Published", "views": 100}, params)
}

func TestBuildNamedWhereNestedGroups(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Translate(And(
		Eq(Field("Status"), Value("Published")),
		Or(
			Gt(Field("Views"), Value(100)),
			Field("Featured"),
		),
	)))

	where, _, err := BuildNamedWhere(tr)
	require.NoError(t, err)
	assert.Equal(t, "`status` = @status AND (`views` > @views OR `featured` = TRUE)", where)
}

func TestBuildNamedWhereRangeAndMembership(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Translate(And(
		Gte(Field("Price"), Value(10)),
		Lte(Field("Price"), Value(50)),
	)))
	require.NoError(t, tr.Translate(In(Field("Status"), Captured([]string{"a", "b"}))))

	where, params, err := BuildNamedWhere(tr)
	require.NoError(t, err)
	assert.Equal(t, "`price` BETWEEN @price_from AND @price_to AND `status` IN (@status)", where)
	assert.Equal(t, []any{"a", "b"}, params["status"])
}

func TestBuildNamedWhereNegation(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Translate(Not(And(
		Eq(Field("Status"), Value("Draft")),
		Gt(Field("Views"), Value(10)),
	))))

	where, _, err := BuildNamedWhere(tr)
	require.NoError(t, err)
	assert.Equal(t, "NOT (`status` = @status AND `views` > @views)", where)
}

func TestBuildNamedSelect(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Translate(Eq(Field("Status"), Value("Published"))))

	query, params, err := BuildNamedSelect(tr, "articles", "id", "title")
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id`, `title` FROM `articles` WHERE `status` = @status", query)
	assert.Equal(t, "Published", params["status"])
}

func TestBuildNamedSelectNoFilter(t *testing.T) {
	tr := New()

	query, _, err := BuildNamedSelect(tr, "articles")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `articles`", query)
}

func TestExpandNamedPlaceholders(t *testing.T) {
	sql := "`status` = @status AND `views` > @views AND `id` IN (@ids)"
	out := ExpandNamedPlaceholders(sql, map[string]any{
		"status": "it's",
		"views":  100,
		"ids":    []any{1, 2, 3},
	})
	assert.Equal(t, "`status` = 'it\\'s' AND `views` > 100 AND `id` IN (1, 2, 3)", out)
}

func TestExpandNamedPlaceholdersUnknownName(t *testing.T) {
	out := ExpandNamedPlaceholders("`a` = @missing", map[string]any{"other": 1})
	assert.Equal(t, "`a` = @missing", out)
}
