package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

// applySearch adds a case-insensitive substring match OR-ed across the given
// columns. Columns are fixed per entity; user input never names a column.
func applySearch(db *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" {
		return db
	}

	pattern := "%" + strings.ToLower(search) + "%"
	conds := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}
	return db.Where(strings.Join(conds, " OR "), args...)
}

// applySort orders by the requested column when it is in the sortable set,
// otherwise by descending creation time.
func applySort(db *gorm.DB, q domain.ListQuery, sortable map[string]struct{}) *gorm.DB {
	if _, ok := sortable[q.SortBy]; !ok {
		return db.Order("created_at DESC")
	}

	dir := "DESC"
	if q.SortOrder == "asc" {
		dir = "ASC"
	}
	return db.Order(q.SortBy + " " + dir)
}

func sortableSet(columns ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		set[col] = struct{}{}
	}
	return set
}
