package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// backRef names a TEXT[] column holding ids of rows that point at its owner.
type backRef struct {
	table  string
	column string
}

var (
	personEnrollments        = backRef{table: "people", column: "enrollments"}
	personSolicitations      = backRef{table: "people", column: "solicitations"}
	personActivities         = backRef{table: "people", column: "complementary_activities"}
	grideSubjects            = backRef{table: "curriculum_grides", column: "subjects"}
	subjectClassrooms        = backRef{table: "subjects", column: "classrooms"}
	classroomEnrollments     = backRef{table: "classrooms", column: "enrollments"}
	activityTypeActivities   = backRef{table: "complementary_activity_types", column: "activities"}
	solicitationTypeRequests = backRef{table: "solicitation_types", column: "solicitations"}
)

// push appends id to the owner's array unless already present.
func (b backRef) push(ctx context.Context, db *sqlx.DB, ownerID, id string) error {
	query := fmt.Sprintf(`UPDATE %[1]s SET %[2]s = array_append(%[2]s, $2), updated_at = $3 WHERE id = $1 AND NOT ($2 = ANY(%[2]s))`, b.table, b.column)
	if _, err := db.ExecContext(ctx, query, ownerID, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("add %s.%s: %w", b.table, b.column, err)
	}
	return nil
}

// pull removes every occurrence of id from the owner's array.
func (b backRef) pull(ctx context.Context, db *sqlx.DB, ownerID, id string) error {
	query := fmt.Sprintf(`UPDATE %[1]s SET %[2]s = array_remove(%[2]s, $2), updated_at = $3 WHERE id = $1`, b.table, b.column)
	if _, err := db.ExecContext(ctx, query, ownerID, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("remove %s.%s: %w", b.table, b.column, err)
	}
	return nil
}

// softDelete marks a live row deleted. It returns sql.ErrNoRows when nothing matched.
func softDelete(ctx context.Context, db *sqlx.DB, table, id, actorID string) error {
	now := time.Now().UTC()
	var actor interface{}
	if actorID != "" {
		actor = actorID
	}
	query := fmt.Sprintf(`UPDATE %s SET deleted = TRUE, deleted_at = $2, deleted_by = $3, updated_at = $2 WHERE id = $1 AND deleted = FALSE`, table)
	res, err := db.ExecContext(ctx, query, id, now, actor)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// countLive counts non-deleted rows of table whose column equals value.
func countLive(ctx context.Context, db *sqlx.DB, table, column, value string) (int, error) {
	var total int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 AND deleted = FALSE`, table, column)
	if err := db.GetContext(ctx, &total, query, value); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}

// liveIDs returns ids of non-deleted rows of table whose column equals value.
func liveIDs(ctx context.Context, db *sqlx.DB, table, column, value string) ([]string, error) {
	ids := make([]string, 0)
	query := fmt.Sprintf(`SELECT id FROM %s WHERE %s = $1 AND deleted = FALSE ORDER BY created_at`, table, column)
	if err := db.SelectContext(ctx, &ids, query, value); err != nil {
		return nil, fmt.Errorf("list %s ids: %w", table, err)
	}
	return ids, nil
}
