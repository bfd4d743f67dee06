package datacontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddParameter(t *testing.T) {
	ctx := NewTranslationContext()

	require.NoError(t, ctx.AddParameter("status", "published"))
	require.NoError(t, ctx.AddParameter("views", 100))

	assert.Equal(t, "published", ctx.Parameters()["status"])
	assert.Equal(t, 100, ctx.Parameters()["views"])
	assert.Equal(t, []string{"status", "views"}, ctx.ParameterNames())
}

func TestAddParameterDuplicate(t *testing.T) {
	ctx := NewTranslationContext()

	require.NoError(t, ctx.AddParameter("status", "published"))
	err := ctx.AddParameter("status", "draft")

	var dup *DuplicateParameterError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "status", dup.Name)
	// original binding is untouched
	assert.Equal(t, "published", ctx.Parameters()["status"])
}

func TestMemberStack(t *testing.T) {
	ctx := NewTranslationContext()

	ctx.PushMember("User")
	ctx.PushMember("Name")
	assert.Equal(t, 2, ctx.MemberDepth())

	name, err := ctx.PopMember()
	require.NoError(t, err)
	assert.Equal(t, "Name", name)

	name, err = ctx.PopMember()
	require.NoError(t, err)
	assert.Equal(t, "User", name)

	_, err = ctx.PopMember()
	var empty *EmptyStackError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "member", empty.Stack)
}

func TestLogicalGroupingStack(t *testing.T) {
	ctx := NewTranslationContext()

	ctx.PushLogicalGrouping(GroupingAnd)
	ctx.PushLogicalGrouping(GroupingOr)
	assert.Equal(t, 2, ctx.GroupingDepth())

	g, err := ctx.PopLogicalGrouping()
	require.NoError(t, err)
	assert.Equal(t, GroupingOr, g)

	g, err = ctx.PopLogicalGrouping()
	require.NoError(t, err)
	assert.Equal(t, GroupingAnd, g)

	_, err = ctx.PopLogicalGrouping()
	var empty *EmptyStackError
	require.ErrorAs(t, err, &empty)
}

func TestClear(t *testing.T) {
	ctx := NewTranslationContext()

	require.NoError(t, ctx.AddParameter("status", "published"))
	ctx.PushMember("Status")
	ctx.PushLogicalGrouping(GroupingAnd)
	ctx.AddWhereAction(EqualsOp{Member: "status", Param: "status"})

	ctx.Clear()

	assert.Empty(t, ctx.Parameters())
	assert.Empty(t, ctx.ParameterNames())
	assert.Equal(t, 0, ctx.MemberDepth())
	assert.Equal(t, 0, ctx.GroupingDepth())
	assert.Empty(t, ctx.WhereActions())

	// the cleared context accepts a fresh pass
	require.NoError(t, ctx.AddParameter("status", "draft"))
}
