package datacontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalCapturedStructChain(t *testing.T) {
	type vendor struct{ Name string }
	type order struct{ Vendor *vendor }
	o := &order{Vendor: &vendor{Name: "acme"}}

	v, err := evalCaptured(o, []string{"Vendor", "Name"})
	require.NoError(t, err)
	assert.Equal(t, "acme", v)
}

func TestEvalCapturedMap(t *testing.T) {
	m := map[string]any{"region": "eu"}

	v, err := evalCaptured(m, []string{"region"})
	require.NoError(t, err)
	assert.Equal(t, "eu", v)

	v, err = evalCaptured(m, []string{"missing"})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestEvalCapturedNilDereference(t *testing.T) {
	type order struct{ Vendor *struct{ Name string } }
	o := &order{}

	_, err := evalCaptured(o, []string{"Vendor", "Name"})
	var invalid *InvalidOperandShapeError
	require.ErrorAs(t, err, &invalid)
}

func TestEvalCapturedUnknownMember(t *testing.T) {
	type order struct{ ID int }

	_, err := evalCaptured(order{ID: 1}, []string{"Vendor"})
	var invalid *InvalidOperandShapeError
	require.ErrorAs(t, err, &invalid)
}

func TestFlattenValues(t *testing.T) {
	assert.Equal(t, []any{1, 2, 3}, flattenValues([]int{1, 2, 3}))
	assert.Equal(t, []any{1, 2, 3, 4}, flattenValues([][]int{{1, 2}, {3, 4}}))
	assert.Equal(t, []any{"a"}, flattenValues("a"))
	assert.Equal(t, []any{7}, flattenValues(7))
	assert.Nil(t, flattenValues(nil))

	nested := []any{[]any{1, []any{2, 3}}, 4}
	assert.Equal(t, []any{1, 2, 3, 4}, flattenValues(nested))
}

func TestResolveOperandShapes(t *testing.T) {
	ctx := NewTranslationContext()

	lit, err := resolveOperand(ctx, NAMING_STRATEGY_SNAKE_CASE, Value(42))
	require.NoError(t, err)
	assert.False(t, lit.isMember())
	assert.Equal(t, 42, lit.value)

	member, err := resolveOperand(ctx, NAMING_STRATEGY_SNAKE_CASE, Field("CreatedAt"))
	require.NoError(t, err)
	assert.True(t, member.isMember())
	assert.Equal(t, "created_at", member.member)
	assert.Equal(t, "created_at", member.param)
	assert.Equal(t, 0, ctx.MemberDepth())

	_, err = resolveOperand(ctx, NAMING_STRATEGY_SNAKE_CASE, And(Value(true), Value(true)))
	var invalid *InvalidOperandShapeError
	require.ErrorAs(t, err, &invalid)
}
