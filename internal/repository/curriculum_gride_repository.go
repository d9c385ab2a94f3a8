package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/easycd-api/internal/models"
)

const grideColumns = "id, name, description, course_id, active, dt_start, dt_end, subjects, created_at, updated_at, deleted, deleted_at, deleted_by"

// CurriculumGrideRepository manages persistence for curriculum grides.
type CurriculumGrideRepository struct {
	db *sqlx.DB
}

// NewCurriculumGrideRepository constructs a CurriculumGrideRepository.
func NewCurriculumGrideRepository(db *sqlx.DB) *CurriculumGrideRepository {
	return &CurriculumGrideRepository{db: db}
}

// List returns grides matching the provided filters.
func (r *CurriculumGrideRepository) List(ctx context.Context, filter models.CurriculumGrideFilter) ([]models.CurriculumGride, int, error) {
	q := newListQuery("g")
	q.eq("course_id", filter.CourseID)
	if filter.Active != nil {
		q.eqAny("active", *filter.Active)
	}
	q.search(filter.Search, "name")
	sorts := map[string]string{"name": "name", "dt_start": "dt_start", "created_at": "created_at"}
	return selectPage[models.CurriculumGride](ctx, r.db, "curriculum grides", prefixColumns("g", grideColumns), "curriculum_grides g", q, filter.PageRequest, sorts)
}

// FindByID fetches a live gride.
func (r *CurriculumGrideRepository) FindByID(ctx context.Context, id string) (*models.CurriculumGride, error) {
	var gride models.CurriculumGride
	query := fmt.Sprintf("SELECT %s FROM curriculum_grides WHERE id = $1 AND deleted = FALSE", grideColumns)
	if err := r.db.GetContext(ctx, &gride, query, id); err != nil {
		return nil, err
	}
	return &gride, nil
}

// Create inserts a new gride.
func (r *CurriculumGrideRepository) Create(ctx context.Context, gride *models.CurriculumGride) error {
	if gride.ID == "" {
		gride.ID = uuid.NewString()
	}
	gride.Touch(time.Now().UTC())
	const query = `INSERT INTO curriculum_grides (id, name, description, course_id, active, dt_start, dt_end, created_at, updated_at)
        VALUES (:id, :name, :description, :course_id, :active, :dt_start, :dt_end, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, gride); err != nil {
		return fmt.Errorf("create curriculum gride: %w", err)
	}
	return nil
}

// Update modifies an existing gride.
func (r *CurriculumGrideRepository) Update(ctx context.Context, gride *models.CurriculumGride) error {
	gride.UpdatedAt = time.Now().UTC()
	const query = `UPDATE curriculum_grides SET name = :name, description = :description, course_id = :course_id, active = :active, dt_start = :dt_start, dt_end = :dt_end, updated_at = :updated_at WHERE id = :id AND deleted = FALSE`
	if _, err := r.db.NamedExecContext(ctx, query, gride); err != nil {
		return fmt.Errorf("update curriculum gride: %w", err)
	}
	return nil
}

// SoftDelete marks the gride deleted.
func (r *CurriculumGrideRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	return softDelete(ctx, r.db, "curriculum_grides", id, actorID)
}

// CountByCourse counts live grides of a course.
func (r *CurriculumGrideRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	return countLive(ctx, r.db, "curriculum_grides", "course_id", courseID)
}

func (r *CurriculumGrideRepository) AddSubject(ctx context.Context, grideID, subjectID string) error {
	return grideSubjects.push(ctx, r.db, grideID, subjectID)
}

func (r *CurriculumGrideRepository) RemoveSubject(ctx context.Context, grideID, subjectID string) error {
	return grideSubjects.pull(ctx, r.db, grideID, subjectID)
}
