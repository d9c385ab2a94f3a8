package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/easycd-api/internal/models"
)

const classroomColumns = "id, name, subject_id, teacher_id, semester, capacity, schedule, enrollments, created_at, updated_at, deleted, deleted_at, deleted_by"

// ClassroomRepository manages persistence for classrooms.
type ClassroomRepository struct {
	db *sqlx.DB
}

// NewClassroomRepository constructs a ClassroomRepository.
func NewClassroomRepository(db *sqlx.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// List returns classrooms matching the provided filters.
func (r *ClassroomRepository) List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error) {
	q := newListQuery("c")
	q.eq("subject_id", filter.SubjectID)
	q.eq("teacher_id", filter.TeacherID)
	q.eq("semester", filter.Semester)
	sorts := map[string]string{"name": "name", "semester": "semester", "created_at": "created_at"}
	return selectPage[models.Classroom](ctx, r.db, "classrooms", prefixColumns("c", classroomColumns), "classrooms c", q, filter.PageRequest, sorts)
}

// FindByID fetches a live classroom.
func (r *ClassroomRepository) FindByID(ctx context.Context, id string) (*models.Classroom, error) {
	var classroom models.Classroom
	query := fmt.Sprintf("SELECT %s FROM classrooms WHERE id = $1 AND deleted = FALSE", classroomColumns)
	if err := r.db.GetContext(ctx, &classroom, query, id); err != nil {
		return nil, err
	}
	return &classroom, nil
}

// Create inserts a new classroom.
func (r *ClassroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	if classroom.ID == "" {
		classroom.ID = uuid.NewString()
	}
	classroom.Touch(time.Now().UTC())
	const query = `INSERT INTO classrooms (id, name, subject_id, teacher_id, semester, capacity, schedule, created_at, updated_at)
        VALUES (:id, :name, :subject_id, :teacher_id, :semester, :capacity, :schedule, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, classroom); err != nil {
		return fmt.Errorf("create classroom: %w", err)
	}
	return nil
}

// Update modifies an existing classroom.
func (r *ClassroomRepository) Update(ctx context.Context, classroom *models.Classroom) error {
	classroom.UpdatedAt = time.Now().UTC()
	const query = `UPDATE classrooms SET name = :name, subject_id = :subject_id, teacher_id = :teacher_id, semester = :semester, capacity = :capacity, schedule = :schedule, updated_at = :updated_at WHERE id = :id AND deleted = FALSE`
	if _, err := r.db.NamedExecContext(ctx, query, classroom); err != nil {
		return fmt.Errorf("update classroom: %w", err)
	}
	return nil
}

// SoftDelete marks the classroom deleted.
func (r *ClassroomRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	return softDelete(ctx, r.db, "classrooms", id, actorID)
}

// CountBySubject counts live classrooms of a subject.
func (r *ClassroomRepository) CountBySubject(ctx context.Context, subjectID string) (int, error) {
	return countLive(ctx, r.db, "classrooms", "subject_id", subjectID)
}

// CountByTeacher counts live classrooms taught by personID.
func (r *ClassroomRepository) CountByTeacher(ctx context.Context, personID string) (int, error) {
	return countLive(ctx, r.db, "classrooms", "teacher_id", personID)
}

func (r *ClassroomRepository) AddEnrollment(ctx context.Context, classroomID, enrollmentID string) error {
	return classroomEnrollments.push(ctx, r.db, classroomID, enrollmentID)
}

func (r *ClassroomRepository) RemoveEnrollment(ctx context.Context, classroomID, enrollmentID string) error {
	return classroomEnrollments.pull(ctx, r.db, classroomID, enrollmentID)
}
