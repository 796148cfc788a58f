// Package orm holds the paging contract shared by every store backend and
// the gorm scopes the SQL backend builds its list queries from.
package orm

import (
	"math"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Pagination is the metadata block returned next to every list.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
	Limit       int   `json:"limit"`
}

// Normalize replaces non-positive page or limit values with the defaults.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// Offset is the number of records skipped before page. It saturates at
// math.MaxInt instead of wrapping.
func Offset(page, limit int) int {
	page, limit = Normalize(page, limit)
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// PastEnd reports whether page starts beyond the last of total records,
// in which case the page is empty and the backend need not be queried.
func PastEnd(page, limit int, total int64) bool {
	page, limit = Normalize(page, limit)
	return int64(page-1) >= pageCount(total, limit)
}

func pageCount(total int64, limit int) int64 {
	if total <= 0 {
		return 0
	}
	n := total / int64(limit)
	if total%int64(limit) != 0 {
		n++
	}
	return n
}

// NewPagination derives the page metadata for total matching records.
func NewPagination(page, limit int, total int64) Pagination {
	page, limit = Normalize(page, limit)

	totalPages := int(pageCount(total, limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
		Limit:       limit,
	}
}

// Paginate is a gorm scope applying offset and limit for page.
func Paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		page, limit := Normalize(page, limit)
		return db.Offset(Offset(page, limit)).Limit(limit)
	}
}

// LikeEscape is the escape character used by ContainsPattern.
const LikeEscape = "!"

var likeReplacer = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_", "[", "![")

// ContainsPattern turns term into a lower-cased LIKE pattern matching it as a
// literal substring. Pair it with ESCAPE '!'.
func ContainsPattern(term string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(term)) + "%"
}

// Search is a gorm scope matching term case-insensitively against any of
// exprs, which are column names or SQL expressions yielding text. An
// empty term leaves the query unchanged.
func Search(term string, exprs ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(exprs) == 0 {
			return db
		}
		clauses, args := SearchClause(term, exprs...)
		return db.Where(clauses, args...)
	}
}

// SearchClause builds the OR-joined condition used by Search, for callers
// that need to add further alternatives.
func SearchClause(term string, exprs ...string) (string, []interface{}) {
	pattern := ContainsPattern(term)
	parts := make([]string, len(exprs))
	args := make([]interface{}, len(exprs))
	for i, expr := range exprs {
		parts[i] = "LOWER(" + expr + ") LIKE ? ESCAPE '" + LikeEscape + "'"
		args[i] = pattern
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}
