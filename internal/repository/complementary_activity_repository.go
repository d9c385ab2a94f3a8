package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/easycd-api/internal/models"
)

const (
	activityTypeColumns = "id, name, description, score, max_score, activities, created_at, updated_at, deleted, deleted_at, deleted_by"
	activityColumns     = "id, type_id, student_id, description, evidence, evidence_file, evidence_mime, quantity, status, created_at, updated_at, deleted, deleted_at, deleted_by"
)

// ComplementaryActivityTypeRepository manages persistence for activity types.
type ComplementaryActivityTypeRepository struct {
	db *sqlx.DB
}

// NewComplementaryActivityTypeRepository constructs a ComplementaryActivityTypeRepository.
func NewComplementaryActivityTypeRepository(db *sqlx.DB) *ComplementaryActivityTypeRepository {
	return &ComplementaryActivityTypeRepository{db: db}
}

// List returns activity types matching the provided filters.
func (r *ComplementaryActivityTypeRepository) List(ctx context.Context, filter models.ComplementaryActivityTypeFilter) ([]models.ComplementaryActivityType, int, error) {
	q := newListQuery("t")
	q.search(filter.Search, "name")
	sorts := map[string]string{"name": "name", "score": "score", "created_at": "created_at"}
	return selectPage[models.ComplementaryActivityType](ctx, r.db, "complementary activity types", prefixColumns("t", activityTypeColumns), "complementary_activity_types t", q, filter.PageRequest, sorts)
}

// FindByID fetches a live activity type.
func (r *ComplementaryActivityTypeRepository) FindByID(ctx context.Context, id string) (*models.ComplementaryActivityType, error) {
	var activityType models.ComplementaryActivityType
	query := fmt.Sprintf("SELECT %s FROM complementary_activity_types WHERE id = $1 AND deleted = FALSE", activityTypeColumns)
	if err := r.db.GetContext(ctx, &activityType, query, id); err != nil {
		return nil, err
	}
	return &activityType, nil
}

// Create inserts a new activity type.
func (r *ComplementaryActivityTypeRepository) Create(ctx context.Context, activityType *models.ComplementaryActivityType) error {
	if activityType.ID == "" {
		activityType.ID = uuid.NewString()
	}
	activityType.Touch(time.Now().UTC())
	const query = `INSERT INTO complementary_activity_types (id, name, description, score, max_score, created_at, updated_at)
        VALUES (:id, :name, :description, :score, :max_score, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, activityType); err != nil {
		return fmt.Errorf("create complementary activity type: %w", err)
	}
	return nil
}

// Update modifies an existing activity type.
func (r *ComplementaryActivityTypeRepository) Update(ctx context.Context, activityType *models.ComplementaryActivityType) error {
	activityType.UpdatedAt = time.Now().UTC()
	const query = `UPDATE complementary_activity_types SET name = :name, description = :description, score = :score, max_score = :max_score, updated_at = :updated_at WHERE id = :id AND deleted = FALSE`
	if _, err := r.db.NamedExecContext(ctx, query, activityType); err != nil {
		return fmt.Errorf("update complementary activity type: %w", err)
	}
	return nil
}

// SoftDelete marks the activity type deleted.
func (r *ComplementaryActivityTypeRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	return softDelete(ctx, r.db, "complementary_activity_types", id, actorID)
}

func (r *ComplementaryActivityTypeRepository) AddActivity(ctx context.Context, typeID, activityID string) error {
	return activityTypeActivities.push(ctx, r.db, typeID, activityID)
}

func (r *ComplementaryActivityTypeRepository) RemoveActivity(ctx context.Context, typeID, activityID string) error {
	return activityTypeActivities.pull(ctx, r.db, typeID, activityID)
}

// ComplementaryActivityRepository manages persistence for complementary activities.
type ComplementaryActivityRepository struct {
	db *sqlx.DB
}

// NewComplementaryActivityRepository constructs a ComplementaryActivityRepository.
func NewComplementaryActivityRepository(db *sqlx.DB) *ComplementaryActivityRepository {
	return &ComplementaryActivityRepository{db: db}
}

// List returns activities matching the provided filters.
func (r *ComplementaryActivityRepository) List(ctx context.Context, filter models.ComplementaryActivityFilter) ([]models.ComplementaryActivity, int, error) {
	q := newListQuery("a")
	q.eq("type_id", filter.TypeID)
	q.eq("student_id", filter.StudentID)
	if filter.Status != nil {
		q.eqAny("status", string(*filter.Status))
	}
	sorts := map[string]string{"status": "status", "quantity": "quantity", "created_at": "created_at"}
	return selectPage[models.ComplementaryActivity](ctx, r.db, "complementary activities", prefixColumns("a", activityColumns), "complementary_activities a", q, filter.PageRequest, sorts)
}

// FindByID fetches a live activity.
func (r *ComplementaryActivityRepository) FindByID(ctx context.Context, id string) (*models.ComplementaryActivity, error) {
	var activity models.ComplementaryActivity
	query := fmt.Sprintf("SELECT %s FROM complementary_activities WHERE id = $1 AND deleted = FALSE", activityColumns)
	if err := r.db.GetContext(ctx, &activity, query, id); err != nil {
		return nil, err
	}
	return &activity, nil
}

// Create inserts a new activity.
func (r *ComplementaryActivityRepository) Create(ctx context.Context, activity *models.ComplementaryActivity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	activity.Touch(time.Now().UTC())
	const query = `INSERT INTO complementary_activities (id, type_id, student_id, description, evidence, quantity, status, created_at, updated_at)
        VALUES (:id, :type_id, :student_id, :description, :evidence, :quantity, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, activity); err != nil {
		return fmt.Errorf("create complementary activity: %w", err)
	}
	return nil
}

// Update modifies an existing activity including its review status and evidence file.
func (r *ComplementaryActivityRepository) Update(ctx context.Context, activity *models.ComplementaryActivity) error {
	activity.UpdatedAt = time.Now().UTC()
	const query = `UPDATE complementary_activities SET type_id = :type_id, student_id = :student_id, description = :description, evidence = :evidence,
        evidence_file = :evidence_file, evidence_mime = :evidence_mime, quantity = :quantity, status = :status, updated_at = :updated_at WHERE id = :id AND deleted = FALSE`
	if _, err := r.db.NamedExecContext(ctx, query, activity); err != nil {
		return fmt.Errorf("update complementary activity: %w", err)
	}
	return nil
}

// SoftDelete marks the activity deleted.
func (r *ComplementaryActivityRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	return softDelete(ctx, r.db, "complementary_activities", id, actorID)
}

// ListIDsByType returns live activity ids of a type.
func (r *ComplementaryActivityRepository) ListIDsByType(ctx context.Context, typeID string) ([]string, error) {
	return liveIDs(ctx, r.db, "complementary_activities", "type_id", typeID)
}

// ListIDsByStudent returns live activity ids of a student.
func (r *ComplementaryActivityRepository) ListIDsByStudent(ctx context.Context, studentID string) ([]string, error) {
	return liveIDs(ctx, r.db, "complementary_activities", "student_id", studentID)
}

// ListAcceptedByStudent returns the student's accepted activities of live types.
func (r *ComplementaryActivityRepository) ListAcceptedByStudent(ctx context.Context, studentID string) ([]models.ComplementaryActivity, error) {
	query := fmt.Sprintf(`SELECT %s FROM complementary_activities a
        JOIN complementary_activity_types t ON t.id = a.type_id AND t.deleted = FALSE
        WHERE a.student_id = $1 AND a.status = $2 AND a.deleted = FALSE ORDER BY a.created_at`, prefixColumns("a", activityColumns))
	activities := make([]models.ComplementaryActivity, 0)
	if err := r.db.SelectContext(ctx, &activities, query, studentID, models.ActivityAccepted); err != nil {
		return nil, fmt.Errorf("list accepted activities: %w", err)
	}
	return activities, nil
}
