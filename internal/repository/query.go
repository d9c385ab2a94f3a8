package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/easycd-api/internal/models"
)

// listQuery accumulates WHERE conditions with positional arguments.
type listQuery struct {
	alias      string
	conditions []string
	args       []interface{}
}

// newListQuery starts a query that hides soft-deleted rows of alias.
func newListQuery(alias string) *listQuery {
	return &listQuery{alias: alias, conditions: []string{alias + ".deleted = FALSE"}}
}

func (q *listQuery) next(value interface{}) string {
	q.args = append(q.args, value)
	return fmt.Sprintf("$%d", len(q.args))
}

// eq adds column = value when value is non-empty.
func (q *listQuery) eq(column, value string) {
	if value == "" {
		return
	}
	q.conditions = append(q.conditions, fmt.Sprintf("%s.%s = %s", q.alias, column, q.next(value)))
}

func (q *listQuery) eqAny(column string, value interface{}) {
	q.conditions = append(q.conditions, fmt.Sprintf("%s.%s = %s", q.alias, column, q.next(value)))
}

// search matches term case-insensitively against any of columns.
func (q *listQuery) search(term string, columns ...string) {
	if term == "" {
		return
	}
	placeholder := q.next("%" + strings.ToLower(term) + "%")
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = fmt.Sprintf("LOWER(%s.%s) LIKE %s", q.alias, c, placeholder)
	}
	q.conditions = append(q.conditions, "("+strings.Join(parts, " OR ")+")")
}

func (q *listQuery) where() string {
	return strings.Join(q.conditions, " AND ")
}

// orderBy resolves the requested sort against allowed columns, falling back to created_at DESC.
func orderBy(page models.PageRequest, alias string, allowed map[string]string) string {
	column, ok := allowed[page.SortBy]
	if !ok {
		column = "created_at"
	}
	order := strings.ToUpper(page.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	return fmt.Sprintf("%s.%s %s", alias, column, order)
}

// selectPage runs the page query and the matching count.
func selectPage[T any](ctx context.Context, db *sqlx.DB, name, columns, from string, q *listQuery, page models.PageRequest, sorts map[string]string) ([]T, int, error) {
	page.Normalize()
	where := q.where()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT %d OFFSET %d",
		columns, from, where, orderBy(page, q.alias, sorts), page.PageSize, page.Offset())
	items := make([]T, 0)
	if err := db.SelectContext(ctx, &items, query, q.args...); err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", name, err)
	}

	var total int
	if err := db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", from, where), q.args...); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", name, err)
	}
	return items, total, nil
}

// prefixColumns qualifies a comma separated column list with alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
