package query

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Pattern turns a user search term into an ILIKE pattern. ok is false when the
// term is blank and no constraint should be applied.
func Pattern(term string) (pattern string, ok bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", false
	}
	return "%" + likeEscaper.Replace(term) + "%", true
}

// Search matches term case-insensitively against any of the given column
// expressions. Columns are trusted SQL, never user input.
func Search(term string, columns ...string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		pattern, ok := Pattern(term)
		if !ok || len(columns) == 0 {
			return db
		}
		parts := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			parts[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
}

// Equal constrains column to value unless value is the zero value.
func Equal[V comparable](column string, value V) Scope {
	return func(db *gorm.DB) *gorm.DB {
		var zero V
		if value == zero {
			return db
		}
		return db.Where(fmt.Sprintf("%s = ?", column), value)
	}
}

// AtLeast applies column >= n. Zero means unbounded.
func AtLeast(column string, n int) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if n == 0 {
			return db
		}
		return db.Where(fmt.Sprintf("%s >= ?", column), n)
	}
}

// AtMost applies column <= n. Zero means unbounded.
func AtMost(column string, n int) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if n == 0 {
			return db
		}
		return db.Where(fmt.Sprintf("%s <= ?", column), n)
	}
}

func From(column string, t time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if t.IsZero() {
			return db
		}
		return db.Where(fmt.Sprintf("%s >= ?", column), t)
	}
}

func Until(column string, t time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if t.IsZero() {
			return db
		}
		return db.Where(fmt.Sprintf("%s <= ?", column), t)
	}
}

// ContainsFold is a single-column case-insensitive substring match.
func ContainsFold(column, value string) Scope {
	return Search(value, column)
}
