package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/easycd-api/internal/models"
)

const subjectColumns = "id, name, description, code, workload, curriculum_gride_id, classrooms, created_at, updated_at, deleted, deleted_at, deleted_by"

// SubjectRepository manages persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns subjects matching the provided filters.
func (r *SubjectRepository) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error) {
	q := newListQuery("s")
	q.eq("curriculum_gride_id", filter.CurriculumGrideID)
	q.search(filter.Search, "name", "code")
	sorts := map[string]string{"name": "name", "code": "code", "created_at": "created_at"}
	return selectPage[models.Subject](ctx, r.db, "subjects", prefixColumns("s", subjectColumns), "subjects s", q, filter.PageRequest, sorts)
}

// FindByID fetches a live subject.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	var subject models.Subject
	query := fmt.Sprintf("SELECT %s FROM subjects WHERE id = $1 AND deleted = FALSE", subjectColumns)
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	subject.Touch(time.Now().UTC())
	const query = `INSERT INTO subjects (id, name, description, code, workload, curriculum_gride_id, created_at, updated_at)
        VALUES (:id, :name, :description, :code, :workload, :curriculum_gride_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Update modifies an existing subject.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	subject.UpdatedAt = time.Now().UTC()
	const query = `UPDATE subjects SET name = :name, description = :description, code = :code, workload = :workload, curriculum_gride_id = :curriculum_gride_id, updated_at = :updated_at WHERE id = :id AND deleted = FALSE`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// SoftDelete marks the subject deleted.
func (r *SubjectRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	return softDelete(ctx, r.db, "subjects", id, actorID)
}

// CountByGride counts live subjects of a gride.
func (r *SubjectRepository) CountByGride(ctx context.Context, grideID string) (int, error) {
	return countLive(ctx, r.db, "subjects", "curriculum_gride_id", grideID)
}

func (r *SubjectRepository) AddClassroom(ctx context.Context, subjectID, classroomID string) error {
	return subjectClassrooms.push(ctx, r.db, subjectID, classroomID)
}

func (r *SubjectRepository) RemoveClassroom(ctx context.Context, subjectID, classroomID string) error {
	return subjectClassrooms.pull(ctx, r.db, subjectID, classroomID)
}
