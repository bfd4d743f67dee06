package datacontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildMongoFilter(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Translate(And(
		Eq(Field("Status"), Value("published")),
		Gt(Field("Views"), Value(100)),
	)))

	filter, err := BuildMongoFilter(tr)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$and": []bson.M{
		{"status": "published"},
		{"views": bson.M{"$gt": 100}},
	}}, filter)
}

func TestBuildMongoFilterRange(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Translate(And(
		Gte(Field("Price"), Value(10)),
		Lte(Field("Price"), Value(50)),
	)))

	filter, err := BuildMongoFilter(tr)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"price": bson.M{"$gte": 10, "$lte": 50}}, filter)
}

func TestBuildMongoFilterMembership(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Translate(In(Field("Status"), Captured([]string{"draft", "review"}))))

	filter, err := BuildMongoFilter(tr)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"status": bson.M{"$in": []any{"draft", "review"}}}, filter)
}

func TestBuildMongoFilterNegatedGroup(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Translate(Not(And(
		Eq(Field("Status"), Value("draft")),
		Gt(Field("Views"), Value(10)),
	))))

	filter, err := BuildMongoFilter(tr)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$nor": []bson.M{
		{"$and": []bson.M{
			{"status": "draft"},
			{"views": bson.M{"$gt": 10}},
		}},
	}}, filter)
}

func TestBuildMongoFilterMatch(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Translate(StartsWith(Field("Title"), Value("How"))))

	filter, err := BuildMongoFilter(tr)
	require.NoError(t, err)

	inner, ok := filter["title"].(bson.M)
	require.True(t, ok)
	re := inner["$regex"]
	require.NotNil(t, re)
	assert.Equal(t, "^How", re.(interface{ String() string }).String())
}

func TestBuildMongoFilterBoolMember(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Translate(Not(Field("IsArchived"))))

	filter, err := BuildMongoFilter(tr)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"is_archived": false}, filter)
}

func TestBuildMongoFilterEmpty(t *testing.T) {
	tr := New()
	filter, err := BuildMongoFilter(tr)
	require.NoError(t, err)
	assert.Empty(t, filter)
}
