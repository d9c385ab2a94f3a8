package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/easycd-api/internal/models"
)

const courseColumns = "id, name, description, coordinator_id, created_at, updated_at, deleted, deleted_at, deleted_by"

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses matching the provided filters.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	q := newListQuery("c")
	q.eq("coordinator_id", filter.CoordinatorID)
	q.search(filter.Search, "name")
	sorts := map[string]string{"name": "name", "created_at": "created_at"}
	return selectPage[models.Course](ctx, r.db, "courses", prefixColumns("c", courseColumns), "courses c", q, filter.PageRequest, sorts)
}

// FindByID fetches a live course.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1 AND deleted = FALSE", courseColumns)
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	course.Touch(time.Now().UTC())
	const query = `INSERT INTO courses (id, name, description, coordinator_id, created_at, updated_at)
        VALUES (:id, :name, :description, :coordinator_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update modifies an existing course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = :name, description = :description, coordinator_id = :coordinator_id, updated_at = :updated_at WHERE id = :id AND deleted = FALSE`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// SoftDelete marks the course deleted.
func (r *CourseRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	return softDelete(ctx, r.db, "courses", id, actorID)
}

// CountByCoordinator counts live courses coordinated by personID.
func (r *CourseRepository) CountByCoordinator(ctx context.Context, personID string) (int, error) {
	return countLive(ctx, r.db, "courses", "coordinator_id", personID)
}
