package datacontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Article struct {
	ID       int
	Status   string
	Views    int
	Price    float64
	Featured bool
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Article{}))

	db.Create(&Article{ID: 1, Status: "published", Views: 250, Price: 12.5, Featured: true})
	db.Create(&Article{ID: 2, Status: "published", Views: 40, Price: 90, Featured: false})
	db.Create(&Article{ID: 3, Status: "draft", Views: 900, Price: 30, Featured: false})
	return db
}

func TestApplyGorm(t *testing.T) {
	db := openTestDB(t)

	tr := New()
	require.NoError(t, tr.Translate(And(
		Eq(Field("Status"), Value("published")),
		Gt(Field("Views"), Value(100)),
	)))

	query, err := ApplyGorm(tr, db.Model(&Article{}))
	require.NoError(t, err)

	var got []Article
	require.NoError(t, query.Find(&got).Error)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestApplyGormRange(t *testing.T) {
	db := openTestDB(t)

	tr := New()
	require.NoError(t, tr.Translate(And(
		Gte(Field("Price"), Value(10.0)),
		Lte(Field("Price"), Value(50.0)),
	)))

	query, err := ApplyGorm(tr, db.Model(&Article{}))
	require.NoError(t, err)

	var got []Article
	require.NoError(t, query.Find(&got).Error)
	assert.Len(t, got, 2)
}

func TestApplyGormNestedOr(t *testing.T) {
	db := openTestDB(t)

	tr := New()
	require.NoError(t, tr.Translate(Or(
		Field("Featured"),
		Gt(Field("Views"), Value(500)),
	)))

	query, err := ApplyGorm(tr, db.Model(&Article{}))
	require.NoError(t, err)

	var got []Article
	require.NoError(t, query.Find(&got).Error)
	assert.Len(t, got, 2)
}

func TestApplyGormAlwaysFalse(t *testing.T) {
	db := openTestDB(t)

	tr := New()
	require.NoError(t, tr.Translate(And(Value(false), Gt(Field("Views"), Value(0)))))

	query, err := ApplyGorm(tr, db.Model(&Article{}))
	require.NoError(t, err)

	var got []Article
	require.NoError(t, query.Find(&got).Error)
	assert.Empty(t, got)
}

func TestGormSQLString(t *testing.T) {
	db := openTestDB(t)

	tr := New()
	require.NoError(t, tr.Translate(Eq(Field("Status"), Value("published"))))

	query, err := ApplyGorm(tr, db.Model(&Article{}))
	require.NoError(t, err)

	sql := GormSQLString(query)
	assert.Contains(t, sql, "WHERE")
	assert.Contains(t, sql, "status")
}

func TestBuildGormExpressionEmpty(t *testing.T) {
	tr := New()
	expr, err := BuildGormExpression(tr)
	require.NoError(t, err)
	assert.Nil(t, expr)
}
