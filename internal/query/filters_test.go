package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func dryRunSQL(t *testing.T, scopes ...Scope) (string, []interface{}) {
	t.Helper()
	db, _ := newMockDB(t)
	stmt := db.Session(&gorm.Session{DryRun: true}).
		Model(&widget{}).
		Scopes(scopes...).
		Find(&[]widget{}).
		Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestPattern(t *testing.T) {
	_, ok := Pattern("   ")
	assert.False(t, ok)

	p, ok := Pattern(" 50%_off\\ ")
	assert.True(t, ok)
	assert.Equal(t, `%50\%\_off\\%`, p)
}

func TestZeroFiltersAddNoConstraint(t *testing.T) {
	sql, vars := dryRunSQL(t,
		Search(""),
		Equal("status", ""),
		AtLeast("weight", 0),
		AtMost("weight", 0),
		From("created_at", time.Time{}),
		Until("created_at", time.Time{}),
		ContainsFold("name", " "),
	)

	assert.Equal(t, `SELECT * FROM "widgets" WHERE "widgets"."deleted_at" IS NULL`, sql)
	assert.Empty(t, vars)
}

func TestSearchOrsColumns(t *testing.T) {
	sql, vars := dryRunSQL(t, Search("ann", "name", "status"))

	assert.Contains(t, sql, "(name ILIKE $1 OR status ILIKE $2)")
	assert.Equal(t, []interface{}{"%ann%", "%ann%"}, vars)
}

func TestRangesAndEquality(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sql, vars := dryRunSQL(t,
		Equal("status", "PENDING"),
		AtLeast("weight", 2),
		AtMost("weight", 9),
		From("created_at", start),
	)

	assert.Contains(t, sql, "status = $1 AND weight >= $2 AND weight <= $3 AND created_at >= $4")
	assert.Equal(t, []interface{}{"PENDING", 2, 9, start}, vars)
}

func TestFilteringIsIdempotent(t *testing.T) {
	build := func() []Scope {
		return []Scope{Search("x", "name"), Equal("status", "ACTIVE"), AtLeast("weight", 3)}
	}
	sql1, vars1 := dryRunSQL(t, build()...)
	sql2, vars2 := dryRunSQL(t, build()...)

	assert.Equal(t, sql1, sql2)
	assert.Equal(t, vars1, vars2)
}

func TestSoftDeletedRowsExcluded(t *testing.T) {
	sql, _ := dryRunSQL(t, Search("x", "name"), Equal("status", "ACTIVE"))
	assert.Contains(t, sql, `"widgets"."deleted_at" IS NULL`)
}
